// Package services 业务逻辑，组合仓库与大模型客户端
package services

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrDailyLimitReached 当天测算次数已用完
	ErrDailyLimitReached = errors.New("daily prediction limit reached")
	// ErrPredictionNotFound 测算记录不存在
	ErrPredictionNotFound = errors.New("prediction not found")
	// ErrFortuneNotFound 当天运势不存在且不允许生成
	ErrFortuneNotFound = errors.New("daily fortune not found")
)

// Cache 运势缓存，Redis 关闭时传 nil
type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Key(parts ...string) string
}

// Clock 返回业务时区下的当前时间
type Clock func() time.Time
