package wire

import (
	"Chronicle/internal/api"
	"Chronicle/internal/api/config"
	"Chronicle/internal/api/handler"
	"Chronicle/internal/api/middleware"
	"Chronicle/internal/job"
	"Chronicle/internal/pkg/cron"
	"Chronicle/internal/pkg/minio"
	"Chronicle/internal/pkg/redis"
	"Chronicle/internal/pkg/security"
	"Chronicle/internal/repository"
	"Chronicle/internal/service"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router      *gin.Engine
	Handler     http.Handler
	DB          *mongo.Database
	CronManager *cron.Manager
}

func BuildApplication(db *mongo.Database, store *redis.Store, storage *minio.Storage, cfg *config.Config) (*ApplicationContainer, error) {
	loc, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Server.Timezone, err)
	}

	postRepo := repository.NewPostRepo(db)
	siteVisitRepo := repository.NewSiteVisitRepo(db)
	adminRepo := repository.NewAdminRepo(db)

	tokens := security.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, time.Duration(cfg.Auth.TokenTTL)*time.Second)

	authService := service.NewAuthService(adminRepo, tokens, store)
	visitService := service.NewVisitService(siteVisitRepo, loc)
	postService := service.NewPostService(postRepo, visitService, int64(cfg.Server.SearchLimit))
	adminService := service.NewAdminService(postRepo, siteVisitRepo, storage, store, cfg.Upload.MaxSize, loc)

	handlers := &api.HandlersGroup{
		PostHandler:  handler.NewPostHandler(postService, visitService, cfg.Server.PageSize),
		AuthHandler:  handler.NewAuthHandler(authService, cfg.Auth),
		AdminHandler: handler.NewAdminHandler(adminService, postService, cfg.Server.PageSize, cfg.Upload.MaxSize),
		PageAuth:     middleware.PageAuthMiddleware(authService, cfg.Auth.CookieName),
		APIAuth:      middleware.APIAuthMiddleware(authService, cfg.Auth.CookieName),
	}

	router := api.SetupRouter(handlers, cfg)

	cronMgr := cron.NewCronManager(job.NewMediaCleanupJob(store, storage, cfg.Cron.MediaBatchSize), cfg.Cron, loc)

	return &ApplicationContainer{
		Router:      router,
		Handler:     middleware.MethodOverride(router),
		DB:          db,
		CronManager: cronMgr,
	}, nil
}
