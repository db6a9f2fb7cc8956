// Package limiter 处理限流逻辑
package limiter

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	limiterlib "github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"mahjong/pkg/logger"
	"mahjong/pkg/redis"
)

// Limiter 按 key 计数的限流器，存储可以是 Redis 或进程内存
type Limiter struct {
	store limiterlib.Store
}

// New 创建限流器。rds 为 nil 时使用内存存储，只在单实例部署下准确
func New(rds *redis.RedisClient, prefix string) (*Limiter, error) {
	options := limiterlib.StoreOptions{
		// 为 limiter 设置前缀，保持 redis 里数据的整洁
		Prefix:          prefix + ":limiter",
		CleanUpInterval: time.Minute,
	}

	if rds == nil {
		return &Limiter{store: memory.NewStoreWithOptions(options)}, nil
	}

	store, err := sredis.NewStoreWithOptions(rds.Client, options)
	if err != nil {
		return nil, err
	}
	return &Limiter{store: store}, nil
}

// GetKeyIP 获取 Limitor 的 Key，IP
func GetKeyIP(c *gin.Context) string {
	return c.ClientIP()
}

// GetKeyRouteWithIP Limitor 的 Key，路由+IP，针对单个路由做限流
func GetKeyRouteWithIP(c *gin.Context) string {
	return routeToKeyString(c.FullPath()) + c.ClientIP()
}

// CheckRate 检测请求是否超额，formatted 形如 "60-H"
func (l *Limiter) CheckRate(c *gin.Context, key string, formatted string) (limiterlib.Context, error) {
	var context limiterlib.Context
	rate, err := limiterlib.NewRateFromFormatted(formatted)
	if err != nil {
		logger.LogIf(err)
		return context, err
	}

	limiterObj := limiterlib.New(l.store, rate)

	// 同一个请求经过多个限流中间件时只计一次
	onceKey := "limiter-once:" + formatted
	if c.GetBool(onceKey) {
		return limiterObj.Peek(c, key)
	}
	c.Set(onceKey, true)
	return limiterObj.Get(c, key)
}

// routeToKeyString 辅助方法，将 URL 中的 / 格式为 -
func routeToKeyString(routeName string) string {
	routeName = strings.ReplaceAll(routeName, "/", "-")
	routeName = strings.ReplaceAll(routeName, ":", "_")
	return routeName
}
