package api

import (
	"Chronicle/internal/api/handler"

	"github.com/gin-gonic/gin"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	PostHandler  *handler.PostHandler
	AuthHandler  *handler.AuthHandler
	AdminHandler *handler.AdminHandler

	// 后台鉴权, 页面跳转登录, 接口返回未授权
	PageAuth gin.HandlerFunc
	APIAuth  gin.HandlerFunc
}
