package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"mahjong/app/models/fortune"
	"mahjong/app/models/prediction"
	"mahjong/pkg/almanac"
	"mahjong/pkg/logger"
)

const completionsPath = "/chat/completions"

// Client 调用 chat/completions 接口的大模型客户端
type Client struct {
	cfg      Config
	endpoint string
	http     *resty.Client
	limiter  *rate.Limiter
	metrics  *Metrics

	mu       sync.RWMutex
	lastErr  error
	lastUsed time.Time
}

// NewClient 创建客户端
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}

	httpClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		cfg:      cfg,
		endpoint: Endpoint(cfg.BaseURL),
		http:     httpClient,
		limiter:  limiter,
		metrics:  NewMetrics(),
	}
}

// Endpoint 补全 chat/completions 路径
func Endpoint(baseURL string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if strings.HasSuffix(base, completionsPath) {
		return base
	}
	return base + completionsPath
}

// PersonalizedReading 个人麻将方位测算
func (c *Client) PersonalizedReading(ctx context.Context, p Params) (prediction.Reading, error) {
	start := time.Now()
	day := almanac.DayFacts(p.Today)
	chart := almanac.BirthChart(p.Birth, p.HasHour)

	content, err := c.Chat(ctx, readingSystemPrompt, readingPrompt(p, day, chart))
	if err != nil {
		c.metrics.RecordUpstreamError(OpReading, time.Since(start))
		return prediction.Reading{}, err
	}

	obj, strategy, err := Extract(content)
	if err == nil {
		var reading prediction.Reading
		if reading, err = decodeReading(obj, day, chart); err == nil {
			c.metrics.RecordSuccess(OpReading, strategy, time.Since(start))
			logger.Info("AI", zap.String("op", string(OpReading)),
				zap.String("strategy", string(strategy)), zap.Duration("cost", time.Since(start)))
			return reading, nil
		}
	}

	c.metrics.RecordParseError(OpReading, time.Since(start))
	logger.Warn("AI", zap.String("op", string(OpReading)), zap.Error(err),
		zap.String("reply", truncate(content, 500)))
	return prediction.Reading{}, err
}

// DailyFortune 生成某天的运势
func (c *Client) DailyFortune(ctx context.Context, t time.Time) (fortune.Data, error) {
	start := time.Now()
	day := almanac.DayFacts(t)

	content, err := c.Chat(ctx, fortuneSystemPrompt, fortunePrompt(day))
	if err != nil {
		c.metrics.RecordUpstreamError(OpFortune, time.Since(start))
		return fortune.Data{}, err
	}

	obj, strategy, err := Extract(content)
	if err == nil {
		var data fortune.Data
		if data, err = decodeFortune(obj, day); err == nil {
			c.metrics.RecordSuccess(OpFortune, strategy, time.Since(start))
			logger.Info("AI", zap.String("op", string(OpFortune)),
				zap.String("strategy", string(strategy)), zap.Duration("cost", time.Since(start)))
			return data, nil
		}
	}

	c.metrics.RecordParseError(OpFortune, time.Since(start))
	logger.Warn("AI", zap.String("op", string(OpFortune)), zap.Error(err),
		zap.String("reply", truncate(content, 500)))
	return fortune.Data{}, err
}

// Chat 发送一轮对话，返回模型回复的文本
func (c *Client) Chat(ctx context.Context, system, user string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", c.fail(&UpstreamError{Err: fmt.Errorf("rate limiter: %w", err)})
		}
	}

	body := ChatRequest{
		Model: c.cfg.Model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}

	var result ChatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.cfg.APIKey).
		SetBody(body).
		SetResult(&result).
		Post(c.endpoint)
	if err != nil {
		return "", c.fail(&UpstreamError{Err: err})
	}
	if resp.IsError() {
		return "", c.fail(&UpstreamError{StatusCode: resp.StatusCode(), Body: resp.String()})
	}
	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", c.fail(&UpstreamError{})
	}

	c.mu.Lock()
	c.lastErr = nil
	c.lastUsed = time.Now()
	c.mu.Unlock()

	return result.Choices[0].Message.Content, nil
}

func (c *Client) fail(err *UpstreamError) error {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
	logger.Error("AI", zap.String("endpoint", c.endpoint), zap.Error(err))
	return err
}

// Status 健康检查输出
type Status struct {
	Configured bool     `json:"configured"`
	Model      string   `json:"model"`
	LastError  string   `json:"lastError,omitempty"`
	LastUsed   string   `json:"lastUsed,omitempty"`
	Metrics    Snapshot `json:"metrics"`
}

// Status 当前状态与调用指标
func (c *Client) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Status{
		Configured: c.cfg.APIKey != "" && c.cfg.BaseURL != "",
		Model:      c.cfg.Model,
		Metrics:    c.metrics.Snapshot(),
	}
	if c.lastErr != nil {
		s.LastError = c.lastErr.Error()
	}
	if !c.lastUsed.IsZero() {
		s.LastUsed = c.lastUsed.Format(time.RFC3339)
	}
	return s
}

// IsUpstream 判断是否为上游不可用
func IsUpstream(err error) bool {
	var upstream *UpstreamError
	return errors.As(err, &upstream)
}

// IsParse 判断是否为回复格式错误
func IsParse(err error) bool {
	var parse *ParseError
	return errors.As(err, &parse)
}
