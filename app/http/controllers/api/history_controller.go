package api

import (
	"github.com/gin-gonic/gin"

	"mahjong/app/models/history"
	"mahjong/app/requests"
	"mahjong/app/services"
	"mahjong/pkg/response"
)

// HistoryController 测算历史
type HistoryController struct {
	history *services.HistoryService
}

// NewHistoryController 创建控制器
func NewHistoryController(history *services.HistoryService) *HistoryController {
	return &HistoryController{history: history}
}

// Index GET /api/history?deviceFingerprint=&limit=
func (hc *HistoryController) Index(c *gin.Context) {
	query := requests.ParseHistoryQuery(c)

	var (
		records []history.Record
		err     error
	)
	if query.DeviceFingerprint == "" {
		records, err = hc.history.Recent(c.Request.Context(), query.Limit)
	} else {
		records, err = hc.history.ForDevice(c.Request.Context(), query.DeviceFingerprint, query.Limit)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	response.Data(c, records)
}
