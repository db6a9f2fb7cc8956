// Package redis 封装 Redis 连接，用于运势缓存和限流存储
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// 关键配置常量
const (
	// DefaultPoolSize Redis 连接池大小
	DefaultPoolSize = 100
	// DefaultTimeout 默认操作超时时间
	DefaultTimeout = 5 * time.Second
	// DefaultMinIdleConns 最小空闲连接数
	DefaultMinIdleConns = 10
	// DefaultMaxRetries 最大重试次数
	DefaultMaxRetries = 3
	// DefaultIdleTimeout 空闲超时
	DefaultIdleTimeout = 5 * time.Minute
)

// RedisClient Redis 客户端封装
type RedisClient struct {
	Client *redis.Client
	Prefix string
}

// RedisConfig Redis 配置结构
type RedisConfig struct {
	Address      string
	Username     string
	Password     string
	DB           int
	Prefix       string
	PoolSize     int
	MinIdleConns int
	Timeout      time.Duration
}

// NewClient 创建客户端并测试连接
func NewClient(ctx context.Context, config RedisConfig) (*RedisClient, error) {
	if config.PoolSize <= 0 {
		config.PoolSize = DefaultPoolSize
	}
	if config.MinIdleConns <= 0 {
		config.MinIdleConns = DefaultMinIdleConns
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	rds := &RedisClient{
		Prefix: config.Prefix,
		Client: redis.NewClient(&redis.Options{
			Addr:         config.Address,
			Username:     config.Username,
			Password:     config.Password,
			DB:           config.DB,
			PoolSize:     config.PoolSize,
			MinIdleConns: config.MinIdleConns,

			PoolTimeout:     config.Timeout,
			ConnMaxIdleTime: DefaultIdleTimeout,
			ConnMaxLifetime: 24 * time.Hour,

			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,

			MaxRetries:      DefaultMaxRetries,
			MinRetryBackoff: 8 * time.Millisecond,
			MaxRetryBackoff: 512 * time.Millisecond,
		}),
	}

	if err := rds.Ping(ctx); err != nil {
		_ = rds.Client.Close()
		return nil, fmt.Errorf("redis connect %s: %w", config.Address, err)
	}
	return rds, nil
}

// Key 加上统一前缀
func (rds *RedisClient) Key(parts ...string) string {
	key := rds.Prefix
	for _, p := range parts {
		if key == "" {
			key = p
			continue
		}
		key += ":" + p
	}
	return key
}

// Ping 测试 Redis 连接
func (rds *RedisClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	return rds.Client.Ping(ctx).Err()
}

// GetJSON 读取并解码 JSON，键不存在时返回 false
func (rds *RedisClient) GetJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	raw, err := rds.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// SetJSON 编码为 JSON 后存储
func (rds *RedisClient) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()
	return rds.Client.Set(ctx, key, raw, expiration).Err()
}

// Close 关闭连接池
func (rds *RedisClient) Close() error {
	return rds.Client.Close()
}
