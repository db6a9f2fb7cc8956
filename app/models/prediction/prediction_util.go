package prediction

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

// Bazi 四柱八字
type Bazi struct {
	Year  string `json:"year"`
	Month string `json:"month"`
	Day   string `json:"day"`
	Hour  string `json:"hour"`
}

// IsZero 四柱都为空
func (b Bazi) IsZero() bool {
	return b.Year == "" && b.Month == "" && b.Day == "" && b.Hour == ""
}

// Wuxing 五行分析
type Wuxing struct {
	Summary string `json:"summary"`
	Gold    string `json:"gold"`
	Wood    string `json:"wood"`
	Water   string `json:"water"`
	Fire    string `json:"fire"`
	Earth   string `json:"earth"`
}

// IsZero 没有任何五行信息
func (w Wuxing) IsZero() bool {
	return w == Wuxing{}
}

// TwelvePalaces 十二宫中与麻将运势相关的四宫
type TwelvePalaces struct {
	Minggong string `json:"minggong"` // 命宫
	Wealth   string `json:"wealth"`   // 财帛宫
	Health   string `json:"health"`   // 疾厄宫
	Travel   string `json:"travel"`   // 迁移宫
}

// IsZero 没有任何宫位信息
func (t TwelvePalaces) IsZero() bool {
	return t == TwelvePalaces{}
}

// Shensha 神煞
type Shensha struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Effect      string `json:"effect"`
}

// Identity 判断是否为同一次测算的身份信息
type Identity struct {
	Name      string
	Gender    string
	Birthdate string
	Province  string
	City      string
	District  string
	Date      string
}

// Reading 大模型生成的测算内容
type Reading struct {
	Direction     string
	LuckyNumber   int
	LuckyColor    string
	LuckyItem     string
	Advice        string
	LunarDate     string
	ChineseZodiac string
	StarSign      string
	GoodFor       []string
	BadFor        []string
	Bazi          Bazi
	BaziAnalysis  string
	Wuxing        Wuxing
	TwelvePalaces TwelvePalaces
	Dayun         string
	Liunian       string
	Shenshas      []Shensha
}

// Result 接口返回的测算结果
type Result struct {
	ID            uint64         `json:"id"`
	Name          string         `json:"name"`
	Direction     string         `json:"direction"`
	LuckyNumber   int            `json:"luckyNumber"`
	LuckyColor    string         `json:"luckyColor"`
	LuckyItem     string         `json:"luckyItem"`
	Advice        string         `json:"advice"`
	Date          string         `json:"date"`
	LunarDate     string         `json:"lunarDate,omitempty"`
	ChineseZodiac string         `json:"chineseZodiac,omitempty"`
	StarSign      string         `json:"starSign,omitempty"`
	GoodFor       []string       `json:"goodFor,omitempty"`
	BadFor        []string       `json:"badFor,omitempty"`
	Bazi          *Bazi          `json:"bazi,omitempty"`
	BaziAnalysis  string         `json:"baziAnalysis,omitempty"`
	Wuxing        *Wuxing        `json:"wuxing,omitempty"`
	TwelvePalaces *TwelvePalaces `json:"twelvePalaces,omitempty"`
	Dayun         string         `json:"dayun,omitempty"`
	Liunian       string         `json:"liunian,omitempty"`
	Shenshas      []Shensha      `json:"shenshas,omitempty"`
}

// New 根据身份信息和生成内容组装一条测算记录
func New(userID uint64, id Identity, r Reading) *Prediction {
	return &Prediction{
		UserID:         userID,
		Name:           id.Name,
		Gender:         id.Gender,
		Birthdate:      id.Birthdate,
		Province:       id.Province,
		City:           id.City,
		District:       id.District,
		Direction:      r.Direction,
		LuckyNumber:    r.LuckyNumber,
		LuckyColor:     r.LuckyColor,
		LuckyItem:      r.LuckyItem,
		Advice:         r.Advice,
		LunarDate:      r.LunarDate,
		ChineseZodiac:  r.ChineseZodiac,
		StarSign:       r.StarSign,
		GoodFor:        datatypes.NewJSONType(r.GoodFor),
		BadFor:         datatypes.NewJSONType(r.BadFor),
		Bazi:           datatypes.NewJSONType(r.Bazi),
		BaziAnalysis:   r.BaziAnalysis,
		Wuxing:         datatypes.NewJSONType(r.Wuxing),
		TwelvePalaces:  datatypes.NewJSONType(r.TwelvePalaces),
		Dayun:          r.Dayun,
		Liunian:        r.Liunian,
		Shenshas:       datatypes.NewJSONType(r.Shenshas),
		PredictionDate: id.Date,
		CreatedAt:      time.Now().UTC(),
	}
}

// Validate 验证记录
func (p *Prediction) Validate() error {
	if p.UserID == 0 {
		return errors.New("user_id is required")
	}
	if p.Name == "" || p.Birthdate == "" {
		return errors.New("name and birthdate are required")
	}
	if p.PredictionDate == "" {
		return errors.New("prediction_date is required")
	}
	if p.Direction == "" {
		return errors.New("direction is required")
	}
	if p.LuckyNumber < 1 || p.LuckyNumber > 9 {
		return errors.New("lucky number must be between 1 and 9")
	}
	return nil
}

// Result 转换为接口返回结构，空的扩展字段不输出
func (p *Prediction) Result() Result {
	res := Result{
		ID:            p.ID,
		Name:          p.Name,
		Direction:     p.Direction,
		LuckyNumber:   p.LuckyNumber,
		LuckyColor:    p.LuckyColor,
		LuckyItem:     p.LuckyItem,
		Advice:        p.Advice,
		Date:          p.PredictionDate,
		LunarDate:     p.LunarDate,
		ChineseZodiac: p.ChineseZodiac,
		StarSign:      p.StarSign,
		GoodFor:       p.GoodFor.Data(),
		BadFor:        p.BadFor.Data(),
		BaziAnalysis:  p.BaziAnalysis,
		Dayun:         p.Dayun,
		Liunian:       p.Liunian,
		Shenshas:      p.Shenshas.Data(),
	}
	if bazi := p.Bazi.Data(); !bazi.IsZero() {
		res.Bazi = &bazi
	}
	if wuxing := p.Wuxing.Data(); !wuxing.IsZero() {
		res.Wuxing = &wuxing
	}
	if palaces := p.TwelvePalaces.Data(); !palaces.IsZero() {
		res.TwelvePalaces = &palaces
	}
	return res
}
