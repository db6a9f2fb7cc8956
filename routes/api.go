// Package routes 注册路由
package routes

import (
	"github.com/gin-gonic/gin"

	"mahjong/app/http/controllers/api"
	"mahjong/app/http/middlewares"
	"mahjong/pkg/config"
	"mahjong/pkg/limiter"
)

// Controllers 路由用到的控制器
type Controllers struct {
	Fortune    *api.FortuneController
	Prediction *api.PredictionController
	History    *api.HistoryController
	Health     *api.HealthController
}

// RegisterAPIRoutes 注册所有 API 路由
func RegisterAPIRoutes(r *gin.Engine, ctrl Controllers, l *limiter.Limiter) {
	apiGroup := r.Group("/api")

	// 全局限流：默认每小时每 IP 3000 请求
	apiGroup.Use(middlewares.LimitIP(l, config.GetString("app.api_rate_limit", "3000-H")))
	{
		// GET /api/daily-fortune 今日运势，所有用户共享
		apiGroup.GET("/daily-fortune", ctrl.Fortune.Show)

		// POST /api/mahjong-prediction 提交测算，单独限流
		apiGroup.POST("/mahjong-prediction",
			middlewares.LimitPerRoute(l, config.GetString("app.predict_rate_limit", "60-H")),
			ctrl.Prediction.Store,
		)

		// GET /api/prediction/:id 查看测算结果
		apiGroup.GET("/prediction/:id", ctrl.Prediction.Show)

		// GET /api/history 最近测算，带 deviceFingerprint 时只看本设备
		apiGroup.GET("/history", ctrl.History.Index)

		// GET /api/health 健康检查
		apiGroup.GET("/health", ctrl.Health.Show)
	}
}
