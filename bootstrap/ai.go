package bootstrap

import (
	"fmt"
	"time"

	"mahjong/pkg/ai"
	"mahjong/pkg/config"
	"mahjong/pkg/logger"
)

// SetupAI 初始化大模型客户端。缺少 API Key 时仍返回客户端，调用会以上游错误失败
func SetupAI() *ai.Client {
	cfg := ai.Config{
		BaseURL:     config.GetString("ai.base_url"),
		APIKey:      config.GetString("ai.api_key"),
		Model:       config.GetString("ai.model"),
		Temperature: config.GetFloat64("ai.temperature"),
		MaxTokens:   config.GetInt("ai.max_tokens"),
		Timeout:     time.Duration(config.GetInt("ai.timeout")) * time.Second,
		MaxRetries:  config.GetInt("ai.max_retries"),
		RateLimit:   config.GetFloat64("ai.rate_limit"),
		RateBurst:   config.GetInt("ai.rate_burst"),
	}

	if cfg.APIKey == "" {
		logger.WarnString("AI", "Config", "缺少必要的配置: AI_API_KEY 未设置")
	}

	client := ai.NewClient(cfg)
	logger.InfoString("AI", "Setup", fmt.Sprintf("AI 客户端初始化成功 [地址: %s, 模型: %s]",
		ai.Endpoint(cfg.BaseURL), cfg.Model))
	return client
}
