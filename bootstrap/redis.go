package bootstrap

import (
	"context"
	"fmt"

	"mahjong/pkg/config"
	"mahjong/pkg/logger"
	"mahjong/pkg/redis"
)

// SetupRedis 初始化 Redis，未启用时返回 nil
func SetupRedis(ctx context.Context) (*redis.RedisClient, error) {
	if !config.GetBool("redis.enabled") {
		logger.InfoString("Redis", "Setup", "Redis 未启用，运势缓存关闭，限流使用内存存储")
		return nil, nil
	}

	address := fmt.Sprintf("%v:%v", config.GetString("redis.host"), config.GetString("redis.port"))
	client, err := redis.NewClient(ctx, redis.RedisConfig{
		Address:  address,
		Username: config.GetString("redis.username"),
		Password: config.GetString("redis.password"),
		DB:       config.GetInt("redis.database"),
		Prefix:   config.GetString("redis.prefix"),
	})
	if err != nil {
		return nil, err
	}

	logger.InfoString("Redis", "Setup", "Redis 连接成功 "+address)
	return client, nil
}
