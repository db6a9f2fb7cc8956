// Package config 站点配置信息
package config

import "mahjong/pkg/config"

func init() {
	config.Add("app", func() map[string]interface{} {
		return map[string]interface{}{

			// 应用名称
			"name": config.Env("APP_NAME", "Mahjong"),

			// 当前环境，用以区分多环境，一般为 local, stage, production, testing
			"env": config.Env("APP_ENV", "production"),

			// 是否进入调试模式，开启后错误响应会带上 error 字段
			"debug": config.Env("APP_DEBUG", false),

			// 应用服务端口
			"port": config.Env("APP_PORT", "3000"),

			// 业务时区，"今天"的判断和日期展示都使用它
			"timezone": config.Env("TIMEZONE", "Asia/Shanghai"),

			// 全局每 IP 限流，格式同 ulule/limiter：5-S、10-M、1000-H、2000-D
			"api_rate_limit": config.Env("API_RATE_LIMIT", "3000-H"),

			// 提交测算的每 IP 限流
			"predict_rate_limit": config.Env("PREDICT_RATE_LIMIT", "60-H"),

			// 允许的跨域来源，逗号分隔，* 表示全部
			"cors_origins": config.Env("CORS_ORIGINS", "*"),

			// 请求体大小上限（字节）
			"max_body_bytes": config.Env("MAX_BODY_BYTES", 8192),
		}
	})
}
