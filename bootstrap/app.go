package bootstrap

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mahjong/app/http/controllers/api"
	"mahjong/app/repositories"
	"mahjong/app/services"
	"mahjong/pkg/ai"
	"mahjong/pkg/app"
	"mahjong/pkg/config"
	"mahjong/pkg/limiter"
	"mahjong/pkg/redis"
	"mahjong/routes"
)

// SetupRouter 组装仓库、服务和控制器，返回配置好路由的 Gin 引擎。rds 可以为 nil
func SetupRouter(db *gorm.DB, rds *redis.RedisClient, aiClient *ai.Client) (*gin.Engine, error) {
	users := repositories.NewUserRepository(db)
	predictions := repositories.NewPredictionRepository(db)
	histories := repositories.NewHistoryRepository(db, app.Location())
	fortunes := repositories.NewFortuneRepository(db)

	// Redis 关闭时不能把 nil 指针放进接口
	var cache services.Cache
	if rds != nil {
		cache = rds
	}

	fortuneService := services.NewFortuneService(fortunes, aiClient, cache, services.FortuneOptions{
		Source:        config.GetString("fortune.source"),
		LocalFallback: config.GetBool("fortune.local_fallback"),
	})
	predictionService := services.NewPredictionService(users, predictions, aiClient, config.GetInt("prediction.daily_limit"))
	historyService := services.NewHistoryService(users, histories)

	l, err := limiter.New(rds, config.GetString("redis.prefix", "mahjong"))
	if err != nil {
		return nil, err
	}

	if !config.GetBool("app.debug") {
		// 减少不必要的日志输出
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	SetupRoute(router, routes.Controllers{
		Fortune:    api.NewFortuneController(fortuneService),
		Prediction: api.NewPredictionController(predictionService),
		History:    api.NewHistoryController(historyService),
		Health:     api.NewHealthController(db, rds, aiClient),
	}, l)

	return router, nil
}
