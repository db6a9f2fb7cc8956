package requests

import (
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thedevsaddam/govalidator"

	"mahjong/pkg/app"
)

// 出生日期支持的格式
const (
	BirthDateLayout     = "2006-01-02"
	BirthDateHourLayout = "2006-01-02 15:04"
)

// PredictionRequest 麻将方位测算请求
type PredictionRequest struct {
	Name              string `json:"name"`
	Gender            string `json:"gender"`
	Birthdate         string `json:"birthdate"`
	Province          string `json:"province"`
	City              string `json:"city"`
	District          string `json:"district"`
	DeviceFingerprint string `json:"deviceFingerprint"`

	Birth   time.Time `json:"-"`
	HasHour bool      `json:"-"`
}

// ValidatePrediction 解析并验证测算请求，验证失败时返回 ValidationError
func ValidatePrediction(c *gin.Context) (*PredictionRequest, error) {
	var req PredictionRequest
	if err := BindJSON(c, &req); err != nil {
		return nil, err
	}
	req.trim()

	rules := govalidator.MapData{
		"name":              []string{"required", "max_cn:50"},
		"gender":            []string{"in:male,female"},
		"birthdate":         []string{"required"},
		"province":          []string{"required", "max_cn:50"},
		"city":              []string{"required", "max_cn:50"},
		"district":          []string{"required", "max_cn:50"},
		"deviceFingerprint": []string{"required", "max:128"},
	}
	messages := govalidator.MapData{
		"name": []string{
			"required:姓名不能为空",
			"max_cn:姓名长度不能超过 50 个字符",
		},
		"gender": []string{
			"in:性别只能是 male 或 female",
		},
		"birthdate": []string{
			"required:出生日期不能为空",
		},
		"province": []string{
			"required:省份不能为空",
			"max_cn:省份名称过长",
		},
		"city": []string{
			"required:城市不能为空",
			"max_cn:城市名称过长",
		},
		"district": []string{
			"required:区县不能为空",
			"max_cn:区县名称过长",
		},
		"deviceFingerprint": []string{
			"required:设备标识不能为空",
			"max:设备标识过长",
		},
	}

	if err := ValidateStruct(&req, rules, messages); err != nil {
		return nil, err
	}
	if err := req.parseBirthdate(); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *PredictionRequest) trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Gender = strings.ToLower(strings.TrimSpace(r.Gender))
	r.Birthdate = strings.TrimSpace(r.Birthdate)
	r.Province = strings.TrimSpace(r.Province)
	r.City = strings.TrimSpace(r.City)
	r.District = strings.TrimSpace(r.District)
	r.DeviceFingerprint = strings.TrimSpace(r.DeviceFingerprint)
}

// parseBirthdate 出生日期按业务时区解析，带时分时用于排时柱
func (r *PredictionRequest) parseBirthdate() error {
	loc := app.Location()
	if t, err := time.ParseInLocation(BirthDateHourLayout, r.Birthdate, loc); err == nil {
		r.Birth, r.HasHour = t, true
	} else if t, err := time.ParseInLocation(BirthDateLayout, r.Birthdate, loc); err == nil {
		r.Birth = t
	} else {
		return ValidationError{Errors: url.Values{"birthdate": {"出生日期格式应为 YYYY-MM-DD 或 YYYY-MM-DD HH:mm"}}}
	}

	if r.Birth.Year() < 1900 || r.Birth.After(app.TimenowInTimezone()) {
		return ValidationError{Errors: url.Values{"birthdate": {"出生日期超出有效范围"}}}
	}
	return nil
}
