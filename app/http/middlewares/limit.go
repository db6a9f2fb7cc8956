package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"mahjong/pkg/app"
	"mahjong/pkg/limiter"
	"mahjong/pkg/logger"
	"mahjong/pkg/response"
)

// LimitIP 全局限流中间件，针对 IP 进行限流
//
// 支持的限流格式:
// - 5 reqs/second:   "5-S"
// - 10 reqs/minute:  "10-M"
// - 1000 reqs/hour:  "1000-H"
// - 2000 reqs/day:   "2000-D"
func LimitIP(l *limiter.Limiter, limit string) gin.HandlerFunc {
	if app.IsTesting() {
		limit = "1000000-H"
	}

	return func(c *gin.Context) {
		if ok := limitHandler(c, l, limiter.GetKeyIP(c), limit); !ok {
			return
		}
		c.Next()
	}
}

// LimitPerRoute 针对单个路由的限流中间件，基于 IP + 路由路径
func LimitPerRoute(l *limiter.Limiter, limit string) gin.HandlerFunc {
	if app.IsTesting() {
		limit = "1000000-H"
	}

	return func(c *gin.Context) {
		// 针对单个路由，增加访问次数
		c.Set("limiter-once:"+limit, false)

		if ok := limitHandler(c, l, limiter.GetKeyRouteWithIP(c), limit); !ok {
			return
		}
		c.Next()
	}
}

func limitHandler(c *gin.Context, l *limiter.Limiter, key string, limit string) bool {
	// 获取超额的情况
	rate, err := l.CheckRate(c, key, limit)
	if err != nil {
		// 限流存储出错时放行
		logger.LogIf(err)
		return true
	}

	// 设置 RateLimit 相关响应头
	c.Header("X-RateLimit-Limit", cast.ToString(rate.Limit))
	c.Header("X-RateLimit-Remaining", cast.ToString(rate.Remaining))
	c.Header("X-RateLimit-Reset", cast.ToString(rate.Reset))

	if rate.Reached {
		// 提示用户超额了
		response.Abort429(c)
		return false
	}
	return true
}
