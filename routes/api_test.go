package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mahjong/app/http/controllers/api"
	"mahjong/app/http/middlewares"
	"mahjong/app/models/fortune"
	"mahjong/app/models/prediction"
	"mahjong/app/repositories"
	"mahjong/app/services"
	"mahjong/pkg/ai"
	"mahjong/pkg/app"
	"mahjong/pkg/database"
	"mahjong/pkg/database/migrations"
	"mahjong/pkg/limiter"
	"mahjong/pkg/logger"
)

type stubAI struct {
	readingErr error
	fortuneErr error
	calls      int
}

func (s *stubAI) PersonalizedReading(_ context.Context, p ai.Params) (prediction.Reading, error) {
	s.calls++
	if s.readingErr != nil {
		return prediction.Reading{}, s.readingErr
	}
	return prediction.Reading{
		Direction:   "西",
		LuckyNumber: 6,
		LuckyColor:  "白色",
		LuckyItem:   "手链",
		Advice:      p.Name + " 宜坐西方",
	}, nil
}

func (s *stubAI) DailyFortune(_ context.Context, t time.Time) (fortune.Data, error) {
	s.calls++
	if s.fortuneErr != nil {
		return fortune.Data{}, s.fortuneErr
	}
	return fortune.Data{
		LunarDate:      "二月初九",
		ChineseZodiac:  "兔",
		GoodFor:        []string{"打牌"},
		BadFor:         []string{"远行"},
		StarSign:       "角宿",
		LuckyDirection: "南",
		LuckyNumber:    9,
	}, nil
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T, stub *stubAI, dailyLimit int) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(sqlite.Open(":memory:"), logger.NewGormLogger(), database.PoolConfig{MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, migrations.RegisterTables()))
	t.Cleanup(func() { _ = database.Close(db) })

	now := time.Date(2025, 3, 8, 10, 30, 0, 0, app.Location())
	clock := func() time.Time { return now }

	users := repositories.NewUserRepository(db)
	fortunes := services.NewFortuneService(repositories.NewFortuneRepository(db), stub, nil, services.FortuneOptions{}).WithClock(clock)
	predictions := services.NewPredictionService(users, repositories.NewPredictionRepository(db), stub, dailyLimit).WithClock(clock)
	histories := services.NewHistoryService(users, repositories.NewHistoryRepository(db, app.Location()))

	l, err := limiter.New(nil, "test")
	require.NoError(t, err)

	router := gin.New()
	router.Use(middlewares.RequestID(), middlewares.Recovery())
	RegisterAPIRoutes(router, Controllers{
		Fortune:    api.NewFortuneController(fortunes),
		Prediction: api.NewPredictionController(predictions),
		History:    api.NewHistoryController(histories),
		Health:     api.NewHealthController(db, nil, nil),
	}, l)

	return &testServer{router: router, db: db}
}

type envelope struct {
	Success        bool            `json:"success"`
	Data           json.RawMessage `json:"data"`
	Message        string          `json:"message"`
	RemainingCount *int            `json:"remainingCount"`
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (s *testServer) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Model(model).Count(&n).Error)
	return n
}

func predictionBody(name string) map[string]string {
	return map[string]string{
		"name":              name,
		"gender":            "female",
		"birthdate":         "1992-11-03 07:45",
		"province":          "四川省",
		"city":              "成都市",
		"district":          "武侯区",
		"deviceFingerprint": "fp-123",
	}
}

func TestPredictionEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubAI{}, 3)

	rec, env := srv.do(t, http.MethodPost, "/api/mahjong-prediction", predictionBody("小红"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, env.Success)
	require.NotNil(t, env.RemainingCount)
	assert.Equal(t, 2, *env.RemainingCount)
	assert.NotEmpty(t, rec.Header().Get(middlewares.RequestIDHeader))

	var result prediction.Result
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "西", result.Direction)
	assert.Equal(t, "2025-03-08", result.Date)

	rec, env = srv.do(t, http.MethodGet, "/api/prediction/"+jsonID(result.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched prediction.Result
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, result, fetched)
}

func TestPredictionValidation(t *testing.T) {
	srv := newTestServer(t, &stubAI{}, 3)

	cases := map[string]func(map[string]string){
		"missing name":       func(b map[string]string) { delete(b, "name") },
		"blank district":     func(b map[string]string) { b["district"] = "   " },
		"missing device":     func(b map[string]string) { b["deviceFingerprint"] = "" },
		"bad birthdate":      func(b map[string]string) { b["birthdate"] = "15/06/1990" },
		"unknown gender":     func(b map[string]string) { b["gender"] = "other" },
		"name over 50 runes": func(b map[string]string) { b["name"] = strings.Repeat("龙", 51) },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			body := predictionBody("小红")
			mutate(body)

			rec, env := srv.do(t, http.MethodPost, "/api/mahjong-prediction", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Message)
		})
	}

	assert.Equal(t, int64(0), srv.count(t, &prediction.Prediction{}))
}

func TestPredictionDailyLimit(t *testing.T) {
	srv := newTestServer(t, &stubAI{}, 1)

	rec, _ := srv.do(t, http.MethodPost, "/api/mahjong-prediction", predictionBody("小红"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := srv.do(t, http.MethodPost, "/api/mahjong-prediction", predictionBody("小明"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, int64(1), srv.count(t, &prediction.Prediction{}))
}

func TestPredictionAIErrors(t *testing.T) {
	t.Run("upstream", func(t *testing.T) {
		srv := newTestServer(t, &stubAI{readingErr: &ai.UpstreamError{StatusCode: 502}}, 3)
		rec, env := srv.do(t, http.MethodPost, "/api/mahjong-prediction", predictionBody("小红"))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.False(t, env.Success)
	})

	t.Run("parse", func(t *testing.T) {
		srv := newTestServer(t, &stubAI{readingErr: &ai.ParseError{Field: "direction", Reason: "is missing"}}, 3)
		rec, env := srv.do(t, http.MethodPost, "/api/mahjong-prediction", predictionBody("小红"))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.False(t, env.Success)
		assert.Equal(t, int64(0), srv.count(t, &prediction.Prediction{}))
	})
}

func TestPredictionShowErrors(t *testing.T) {
	srv := newTestServer(t, &stubAI{}, 3)

	rec, _ := srv.do(t, http.MethodGet, "/api/prediction/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = srv.do(t, http.MethodGet, "/api/prediction/-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, id := range []string{"0", "424242"} {
		rec, env := srv.do(t, http.MethodGet, "/api/prediction/"+id, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, id)
		assert.False(t, env.Success)
	}
}

func TestDailyFortuneEndpoint(t *testing.T) {
	stub := &stubAI{}
	srv := newTestServer(t, stub, 3)

	rec1, env1 := srv.do(t, http.MethodGet, "/api/daily-fortune", nil)
	require.Equal(t, http.StatusOK, rec1.Code)
	rec2, env2 := srv.do(t, http.MethodGet, "/api/daily-fortune", nil)
	require.Equal(t, http.StatusOK, rec2.Code)

	assert.JSONEq(t, string(env1.Data), string(env2.Data))
	assert.Equal(t, 1, stub.calls)

	var data fortune.Data
	require.NoError(t, json.Unmarshal(env1.Data, &data))
	assert.Equal(t, "2025-03-08", data.Date)
	assert.Equal(t, "南", data.LuckyDirection)
	assert.NotNil(t, data.GoodFor)
}

func TestDailyFortuneUpstreamFailure(t *testing.T) {
	srv := newTestServer(t, &stubAI{fortuneErr: &ai.UpstreamError{StatusCode: 500}}, 3)

	rec, env := srv.do(t, http.MethodGet, "/api/daily-fortune", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.False(t, env.Success)
}

func TestHistoryEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubAI{}, 3)

	for _, name := range []string{"小红", "小明"} {
		rec, _ := srv.do(t, http.MethodPost, "/api/mahjong-prediction", predictionBody(name))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, env := srv.do(t, http.MethodGet, "/api/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &all))
	require.Len(t, all, 2)
	assert.Equal(t, "小明", all[0]["name"])

	rec, env = srv.do(t, http.MethodGet, "/api/history?deviceFingerprint=fp-123&limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	assert.Len(t, mine, 1)

	rec, env = srv.do(t, http.MethodGet, "/api/history?deviceFingerprint=unknown", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", string(env.Data))
}

func TestHealthAndNotFound(t *testing.T) {
	srv := newTestServer(t, &stubAI{}, 3)

	rec, env := srv.do(t, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), `"database":"ok"`)

	rec, _ = srv.do(t, http.MethodGet, "/api/nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func jsonID(id uint64) string {
	raw, _ := json.Marshal(id)
	return string(raw)
}

func TestPredictionAcceptsLongChineseName(t *testing.T) {
	srv := newTestServer(t, &stubAI{}, 3)

	rec, env := srv.do(t, http.MethodPost, "/api/mahjong-prediction", predictionBody(strings.Repeat("张", 20)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, env.Success)
}
