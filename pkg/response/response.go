// Package response 提供统一的 HTTP 响应处理
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mahjong/pkg/config"
	"mahjong/pkg/logger"
)

/* 标准响应结构
{
    "success": true,
    "data": {},           // 成功时返回的数据
    "message": "",        // 提示信息
    "error": "",          // 调试模式下的错误详情
    "remainingCount": 2   // 仅测算接口
}
*/

// Response 统一响应结构体
type Response struct {
	Success        bool        `json:"success"`
	Data           interface{} `json:"data,omitempty"`
	Message        string      `json:"message,omitempty"`
	Error          string      `json:"error,omitempty"`
	RemainingCount *int        `json:"remainingCount,omitempty"`
}

// ------------------ 成功响应系列 ------------------

// Data 响应 200 和数据
func Data(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// DataWithRemaining 响应 200、数据和当天剩余次数
func DataWithRemaining(c *gin.Context, data interface{}, remaining int) {
	c.JSON(http.StatusOK, Response{
		Success:        true,
		Data:           data,
		RemainingCount: &remaining,
	})
}

// ------------------ 错误响应系列 ------------------

// Abort400 响应 400 错误
func Abort400(c *gin.Context, msg ...string) {
	abort(c, http.StatusBadRequest, nil, getMsg("请求参数错误", msg...))
}

// Abort404 响应 404 错误
func Abort404(c *gin.Context, msg ...string) {
	abort(c, http.StatusNotFound, nil, getMsg("资源不存在", msg...))
}

// Abort413 响应 413 错误
func Abort413(c *gin.Context, msg ...string) {
	abort(c, http.StatusRequestEntityTooLarge, nil, getMsg("请求内容过大", msg...))
}

// Abort429 响应 429 错误
func Abort429(c *gin.Context, msg ...string) {
	abort(c, http.StatusTooManyRequests, nil, getMsg("请求太频繁，请稍后再试", msg...))
}

// Abort500 响应 500 错误，err 会写入日志
func Abort500(c *gin.Context, err error, msg ...string) {
	logger.LogIf(err)
	abort(c, http.StatusInternalServerError, err, getMsg("服务器内部错误", msg...))
}

// Abort503 响应 503 错误，err 会写入日志
func Abort503(c *gin.Context, err error, msg ...string) {
	logger.LogIf(err)
	abort(c, http.StatusServiceUnavailable, err, getMsg("服务暂时不可用，请稍后再试", msg...))
}

func abort(c *gin.Context, status int, err error, message string) {
	resp := Response{
		Success: false,
		Message: message,
	}
	if err != nil && config.GetBool("app.debug") {
		resp.Error = err.Error()
	}
	c.AbortWithStatusJSON(status, resp)
}

// getMsg 获取消息内容
func getMsg(defaultMsg string, msg ...string) string {
	if len(msg) > 0 {
		return msg[0]
	}
	return defaultMsg
}
