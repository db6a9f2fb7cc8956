// Package ai 与兼容 OpenAI 协议的大模型接口交互，生成运势和个人测算
package ai

import (
	"context"
	"fmt"
	"time"

	"mahjong/app/models/fortune"
	"mahjong/app/models/prediction"
)

// Config 客户端配置
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	MaxRetries  int
	RateLimit   float64 // 每秒请求数，<=0 表示不限
	RateBurst   int
}

// Service 业务层依赖的能力，测试中可替换
type Service interface {
	PersonalizedReading(ctx context.Context, p Params) (prediction.Reading, error)
	DailyFortune(ctx context.Context, day time.Time) (fortune.Data, error)
}

// Params 个人测算的输入
type Params struct {
	Name     string
	Gender   string // male、female 或空
	Birth    time.Time
	HasHour  bool // 出生日期是否带时分
	Province string
	City     string
	District string
	Today    time.Time // 业务时区下的当前时间
}

// Message 对话消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest chat/completions 请求体
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Stream      bool      `json:"stream"`
}

// ChatResponse chat/completions 响应体，只取用到的字段
type ChatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// UpstreamError 上游不可用：网络错误、非 2xx 状态或空回复
type UpstreamError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("ai upstream request failed: %v", e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("ai upstream returned status %d: %s", e.StatusCode, truncate(e.Body, 200))
	default:
		return "ai upstream returned an empty reply"
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ParseError 模型回复无法解析为符合要求的 JSON
type ParseError struct {
	Field  string // 缺失或不合法的字段，为空表示没有找到 JSON 对象
	Reason string
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return "ai reply parse failed: " + e.Reason
	}
	return fmt.Sprintf("ai reply parse failed: field %q %s", e.Field, e.Reason)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
