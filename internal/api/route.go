package api

import (
	"Chronicle/internal/api/config"
	"Chronicle/internal/api/middleware"
	"Chronicle/internal/pkg/logger"
	"Chronicle/internal/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, cfg *config.Config) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	logger.SetupGin(r, cfg.Logstash)
	r.Use(gin.CustomRecovery(response.Recovery))

	r.NoRoute(response.RouteNotFound)

	// 前台
	r.GET("/", group.PostHandler.Home)
	r.GET("/post/:id", group.PostHandler.GetPost)
	r.POST("/search", group.PostHandler.Search)

	// 登录
	r.GET(middleware.LoginPath, group.AuthHandler.LoginPage)
	r.POST(middleware.LoginPath, group.AuthHandler.Login)
	r.GET("/logout", group.AuthHandler.Logout)

	// 后台页面
	adminGroup := r.Group("")
	adminGroup.Use(group.PageAuth)
	{
		adminGroup.GET("/dashboard", group.AdminHandler.Dashboard)
		adminGroup.GET("/add-post", group.AdminHandler.UploadPolicy)
		adminGroup.POST("/add-post", group.AdminHandler.CreatePost)
		adminGroup.GET("/edit-post/:id", group.AdminHandler.EditPost)
		adminGroup.PUT("/edit-post/:id", group.AdminHandler.UpdatePost)
		adminGroup.DELETE("/delete-post/:id", group.AdminHandler.DeletePost)
	}

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		authGroup := apiGroup.Group("")
		authGroup.Use(group.APIAuth)
		{
			authGroup.GET("/analytics", group.AdminHandler.Analytics)
			authGroup.GET("/top-posts", group.AdminHandler.TopPosts)
		}
	}

	return r
}
