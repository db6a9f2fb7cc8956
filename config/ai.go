package config

import (
	"mahjong/pkg/config"
)

func init() {
	config.Add("ai", func() map[string]interface{} {
		return map[string]interface{}{
			// 兼容 OpenAI 协议的接口地址，未以 /chat/completions 结尾时自动补全
			"base_url": config.Env("AI_BASE_URL", "https://api.deepseek.com/v1"),
			"api_key":  config.Env("AI_API_KEY", ""),
			"model":    config.Env("AI_MODEL", "deepseek-chat"),

			"temperature": config.Env("AI_TEMPERATURE", 0.7),
			"max_tokens":  config.Env("AI_MAX_TOKENS", 1500),

			// 单位：秒
			"timeout": config.Env("AI_TIMEOUT", 90),

			// 默认不重试，失败直接返回给调用方
			"max_retries": config.Env("AI_MAX_RETRIES", 0),

			// 每秒最多发往上游的请求数
			"rate_limit": config.Env("AI_RATE_LIMIT", 5),
			"rate_burst": config.Env("AI_RATE_BURST", 10),
		}
	})
}
