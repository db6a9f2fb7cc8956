package api

import (
	"github.com/gin-gonic/gin"

	"mahjong/app/services"
	"mahjong/pkg/response"
)

// FortuneController 每日运势
type FortuneController struct {
	fortunes *services.FortuneService
}

// NewFortuneController 创建控制器
func NewFortuneController(fortunes *services.FortuneService) *FortuneController {
	return &FortuneController{fortunes: fortunes}
}

// Show GET /api/daily-fortune
func (fc *FortuneController) Show(c *gin.Context) {
	data, err := fc.fortunes.Today(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	response.Data(c, data)
}
