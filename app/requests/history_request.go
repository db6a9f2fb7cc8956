package requests

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

// 历史记录条数
const (
	RecentHistoryLimit = 10
	DeviceHistoryLimit = 20
	MaxHistoryLimit    = 100
)

// HistoryQuery 历史记录查询参数
type HistoryQuery struct {
	DeviceFingerprint string
	Limit             int
}

// ParseHistoryQuery 读取查询参数；limit 缺失或不合法时按是否带设备标识取默认值，并限制在 1..100
func ParseHistoryQuery(c *gin.Context) HistoryQuery {
	q := HistoryQuery{DeviceFingerprint: strings.TrimSpace(c.Query("deviceFingerprint"))}

	limit := RecentHistoryLimit
	if q.DeviceFingerprint != "" {
		limit = DeviceHistoryLimit
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if n, err := cast.ToIntE(raw); err == nil {
			limit = n
		}
	}

	switch {
	case limit < 1:
		limit = 1
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	q.Limit = limit
	return q
}
