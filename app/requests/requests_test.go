package requests

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(method, target, body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestValidatePrediction(t *testing.T) {
	body := `{
		"name": "  张三 ",
		"gender": "Male",
		"birthdate": "1990-06-15 08:30",
		"province": "广东省",
		"city": "广州市",
		"district": "天河区",
		"deviceFingerprint": "fp-1"
	}`

	req, err := ValidatePrediction(newContext(http.MethodPost, "/api/mahjong-prediction", body))
	require.NoError(t, err)
	assert.Equal(t, "张三", req.Name)
	assert.Equal(t, "male", req.Gender)
	assert.True(t, req.HasHour)
	assert.Equal(t, 8, req.Birth.Hour())
	assert.Equal(t, 1990, req.Birth.Year())
}

func TestValidatePredictionDateOnly(t *testing.T) {
	body := `{"name":"李四","birthdate":"1985-01-02","province":"北京市","city":"北京市","district":"朝阳区","deviceFingerprint":"fp-2"}`

	req, err := ValidatePrediction(newContext(http.MethodPost, "/", body))
	require.NoError(t, err)
	assert.False(t, req.HasHour)
	assert.Empty(t, req.Gender)
}

func TestValidatePredictionErrors(t *testing.T) {
	cases := map[string]struct {
		body  string
		field string
	}{
		"not json":     {`name=张三`, "body"},
		"missing city": {`{"name":"张三","birthdate":"1990-06-15","province":"广东省","district":"天河区","deviceFingerprint":"fp"}`, "city"},
		"bad date":     {`{"name":"张三","birthdate":"1990/06/15","province":"广东省","city":"广州市","district":"天河区","deviceFingerprint":"fp"}`, "birthdate"},
		"too early":    {`{"name":"张三","birthdate":"1899-12-31","province":"广东省","city":"广州市","district":"天河区","deviceFingerprint":"fp"}`, "birthdate"},
		"future":       {`{"name":"张三","birthdate":"2999-01-01","province":"广东省","city":"广州市","district":"天河区","deviceFingerprint":"fp"}`, "birthdate"},
		"gender":       {`{"name":"张三","gender":"x","birthdate":"1990-06-15","province":"广东省","city":"广州市","district":"天河区","deviceFingerprint":"fp"}`, "gender"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ValidatePrediction(newContext(http.MethodPost, "/", tc.body))
			require.Error(t, err)

			var verr ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Errors, tc.field)
			assert.NotEmpty(t, verr.Message())
		})
	}
}

func TestParseHistoryQuery(t *testing.T) {
	cases := []struct {
		target string
		device string
		limit  int
	}{
		{"/api/history", "", RecentHistoryLimit},
		{"/api/history?deviceFingerprint=fp", "fp", DeviceHistoryLimit},
		{"/api/history?limit=5", "", 5},
		{"/api/history?limit=abc", "", RecentHistoryLimit},
		{"/api/history?limit=0", "", 1},
		{"/api/history?limit=500&deviceFingerprint=fp", "fp", MaxHistoryLimit},
	}

	for _, tc := range cases {
		q := ParseHistoryQuery(newContext(http.MethodGet, tc.target, ""))
		assert.Equal(t, tc.device, q.DeviceFingerprint, tc.target)
		assert.Equal(t, tc.limit, q.Limit, tc.target)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError{Errors: map[string][]string{
		"name": {"姓名不能为空"},
		"city": {"城市不能为空"},
	}}
	assert.Equal(t, "城市不能为空", err.Message())
	assert.Equal(t, "请求参数错误", ValidationError{}.Message())
}

func TestValidatePredictionCountsCharacters(t *testing.T) {
	body := func(name, district string) string {
		return `{"name":"` + name + `","birthdate":"1990-06-15","province":"广东省","city":"广州市","district":"` + district + `","deviceFingerprint":"fp"}`
	}

	req, err := ValidatePrediction(newContext(http.MethodPost, "/", body(strings.Repeat("张", 50), strings.Repeat("区", 17))))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("张", 50), req.Name)

	_, err = ValidatePrediction(newContext(http.MethodPost, "/", body(strings.Repeat("张", 51), "天河区")))
	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"姓名长度不能超过 50 个字符"}, verr.Errors["name"])

	_, err = ValidatePrediction(newContext(http.MethodPost, "/", body("张三", strings.Repeat("区", 51))))
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"区县名称过长"}, verr.Errors["district"])
}
