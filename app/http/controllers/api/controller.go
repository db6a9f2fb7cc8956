// Package api 处理 /api 下的请求
package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"mahjong/app/requests"
	"mahjong/app/services"
	"mahjong/pkg/ai"
	"mahjong/pkg/response"
)

// abortWithError 按错误类型返回对应的状态码
func abortWithError(c *gin.Context, err error) {
	var validation requests.ValidationError
	switch {
	case errors.As(err, &validation):
		response.Abort400(c, validation.Message())
	case errors.Is(err, services.ErrDailyLimitReached):
		response.Abort429(c, "今日测算次数已用完，请明天再来")
	case errors.Is(err, services.ErrPredictionNotFound):
		response.Abort404(c, "测算记录不存在")
	case errors.Is(err, services.ErrFortuneNotFound):
		response.Abort404(c, "今日运势尚未生成")
	case ai.IsUpstream(err):
		response.Abort503(c, err, "AI 服务暂时不可用，请稍后再试")
	case ai.IsParse(err):
		response.Abort500(c, err, "AI 返回的数据格式不正确")
	default:
		response.Abort500(c, err)
	}
}
