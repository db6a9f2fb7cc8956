package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mahjong/pkg/ai"
	"mahjong/pkg/database"
	"mahjong/pkg/redis"
	"mahjong/pkg/response"
)

// AIStatus 提供大模型客户端状态
type AIStatus interface {
	Status() ai.Status
}

// HealthController 健康检查
type HealthController struct {
	db    *gorm.DB
	redis *redis.RedisClient
	ai    AIStatus
}

// NewHealthController 创建控制器，rds 与 aiStatus 可以为 nil
func NewHealthController(db *gorm.DB, rds *redis.RedisClient, aiStatus AIStatus) *HealthController {
	return &HealthController{db: db, redis: rds, ai: aiStatus}
}

// Show GET /api/health
func (hc *HealthController) Show(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	data := gin.H{
		"database": "ok",
		"redis":    "disabled",
		"time":     time.Now().Unix(),
	}

	healthy := true
	if err := database.Ping(ctx, hc.db); err != nil {
		data["database"] = err.Error()
		healthy = false
	}
	if hc.redis != nil {
		data["redis"] = "ok"
		if err := hc.redis.Ping(ctx); err != nil {
			data["redis"] = err.Error()
		}
	}
	if hc.ai != nil {
		data["ai"] = hc.ai.Status()
	}

	if !healthy {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, response.Response{
			Success: false,
			Data:    data,
			Message: "数据库不可用",
		})
		return
	}
	response.Data(c, data)
}
