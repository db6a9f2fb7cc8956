package bootstrap

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mahjong/app/http/middlewares"
	"mahjong/pkg/config"
	"mahjong/pkg/limiter"
	"mahjong/routes"
)

// SetupRoute 路由初始化：全局中间件、API 路由和 404 处理
func SetupRoute(router *gin.Engine, ctrl routes.Controllers, l *limiter.Limiter) {
	registerGlobalMiddleWare(router)

	routes.RegisterAPIRoutes(router, ctrl, l)

	setup404Handler(router)
}

// registerGlobalMiddleWare 注册全局中间件
func registerGlobalMiddleWare(router *gin.Engine) {
	router.Use(
		middlewares.RequestID(),
		middlewares.BodyLimit(config.GetInt64("app.max_body_bytes", 8192)),
		middlewares.Logger(),
		middlewares.Recovery(),
		middlewares.SecurityHeaders(),
		middlewares.Cors(config.GetString("app.cors_origins", "*")),
	)
}

// setup404Handler 根据 Accept 头返回 HTML 或 JSON 格式的 404
func setup404Handler(router *gin.Engine) {
	router.NoRoute(func(c *gin.Context) {
		acceptString := c.Request.Header.Get("Accept")
		if strings.Contains(acceptString, "text/html") {
			c.String(http.StatusNotFound, "页面返回 404")
			return
		}
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "路由未定义，请确认 url 和请求方法是否正确。",
		})
	})
}
