package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, status int, reply string) (*httptest.Server, *ChatRequest) {
	t.Helper()
	captured := &ChatRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(captured))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func newTestClient(url string) *Client {
	return NewClient(Config{
		BaseURL:     url + "/v1",
		APIKey:      "test-key",
		Model:       "deepseek-chat",
		Temperature: 0.7,
		MaxTokens:   800,
		Timeout:     5 * time.Second,
	})
}

func TestEndpoint(t *testing.T) {
	assert.Equal(t, "https://api.deepseek.com/v1/chat/completions", Endpoint("https://api.deepseek.com/v1"))
	assert.Equal(t, "https://api.deepseek.com/v1/chat/completions", Endpoint("https://api.deepseek.com/v1/"))
	assert.Equal(t, "https://x.test/v1/chat/completions", Endpoint("https://x.test/v1/chat/completions"))
}

func TestPersonalizedReading(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, "```json\n"+readingJSON+"\n```")
	client := newTestClient(srv.URL)

	reading, err := client.PersonalizedReading(context.Background(), Params{
		Name:     "张三",
		Gender:   "male",
		Birth:    time.Date(1990, 6, 15, 8, 30, 0, 0, time.UTC),
		HasHour:  true,
		Province: "广东省",
		City:     "广州市",
		District: "天河区",
		Today:    time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "东南", reading.Direction)
	assert.Equal(t, 8, reading.LuckyNumber)
	assert.Equal(t, "庚午", reading.Bazi.Year)

	assert.Equal(t, "deepseek-chat", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[1].Content, "张三")
	assert.Contains(t, captured.Messages[1].Content, "庚午")

	status := client.Status()
	assert.True(t, status.Configured)
	assert.Equal(t, int64(1), status.Metrics.Succeeded)
	assert.Equal(t, int64(1), status.Metrics.Strategies[StrategyFenced])
}

func TestDailyFortuneParseError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"lunarDate":"二月初九"}`)
	client := newTestClient(srv.URL)

	_, err := client.DailyFortune(context.Background(), time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.True(t, IsParse(err))
	assert.False(t, IsUpstream(err))
	assert.Equal(t, int64(1), client.Status().Metrics.ParseFailed)
}

func TestUpstreamError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusBadGateway, "")
	client := newTestClient(srv.URL)

	_, err := client.DailyFortune(context.Background(), time.Now())
	require.Error(t, err)
	assert.True(t, IsUpstream(err))

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusBadGateway, upstream.StatusCode)
	assert.NotEmpty(t, client.Status().LastError)
}

func TestUpstreamUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).Chat(context.Background(), "sys", "user")
	assert.True(t, IsUpstream(err))
}
