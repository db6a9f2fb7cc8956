package config

import (
	"mahjong/pkg/config"
)

func init() {
	config.Add("database", func() map[string]interface{} {
		return map[string]interface{}{
			// 默认连接：postgresql、mysql、sqlite
			"connection": config.Env("DB_CONNECTION", "mysql"),

			// 连接池配置，对所有驱动生效
			"max_idle_connections": config.Env("DB_MAX_IDLE_CONNECTIONS", 10),
			"max_open_connections": config.Env("DB_MAX_OPEN_CONNECTIONS", 25),
			"max_life_seconds":     config.Env("DB_MAX_LIFE_SECONDS", 5*60),

			// PostgreSQL 数据库配置
			"postgresql": map[string]interface{}{
				"host":     config.Env("DB_HOST", "127.0.0.1"),
				"port":     config.Env("DB_PORT", "5432"),
				"database": config.Env("DB_DATABASE", "mahjong_prediction"),
				"username": config.Env("DB_USERNAME", ""),
				"password": config.Env("DB_PASSWORD", ""),
			},

			// MySQL 数据库配置
			"mysql": map[string]interface{}{
				"host":     config.Env("DB_HOST", "127.0.0.1"),
				"port":     config.Env("DB_PORT", "3306"),
				"database": config.Env("DB_DATABASE", "mahjong_prediction"),
				"username": config.Env("DB_USERNAME", "mahjong_app"),
				"password": config.Env("DB_PASSWORD", ""),
				"charset":  "utf8mb4",
			},

			// SQLite 配置
			"sqlite": map[string]interface{}{
				"database": config.Env("DB_SQL_FILE", "database/database.db"),
			},
		}
	})
}
