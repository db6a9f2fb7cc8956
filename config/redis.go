package config

import (
	"mahjong/pkg/config"
)

func init() {
	config.Add("redis", func() map[string]interface{} {
		return map[string]interface{}{
			// 关闭后运势缓存直接读数据库，限流使用进程内存储
			"enabled":  config.Env("REDIS_ENABLED", false),
			"host":     config.Env("REDIS_HOST", "127.0.0.1"),
			"port":     config.Env("REDIS_PORT", "6379"),
			"username": config.Env("REDIS_USERNAME", ""),
			"password": config.Env("REDIS_PASSWORD", ""),

			// 业务类存储使用 1 号库（运势缓存、限流）
			"database": config.Env("REDIS_MAIN_DB", 1),

			"prefix": config.Env("REDIS_PREFIX", "mahjong"),
		}
	})
}
