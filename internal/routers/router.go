// Package routers 组装 HTTP 路由
package routers

import (
	"time"

	"github.com/noteledger/note-ledger-service/internal/app"
	"github.com/noteledger/note-ledger-service/internal/middleware"
	"github.com/noteledger/note-ledger-service/internal/routers/api_router"
	"github.com/noteledger/note-ledger-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/user/register",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
	limiter.BucketRule{
		Key:          "/api/user/login",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

// NewRouter 创建公共 API 路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo())
		api.Use(gin.Logger())
		api.Use(middleware.TraceMiddleware())
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLog())
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		userHandler := api_router.NewUserHandler(appContainer)
		noteHandler := api_router.NewNoteHandler(appContainer)
		versionHandler := api_router.NewNoteVersionHandler(appContainer)
		shareHandler := api_router.NewShareHandler(appContainer)
		attachmentHandler := api_router.NewAttachmentHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)

		// 无需认证的接口
		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)
		api.GET("/health", healthHandler.Check)

		// 认证接口
		auth := api.Group("", middleware.UserAuthTokenWithConfig(cfg.Security.AuthTokenKey))

		auth.POST("/user/change_password", userHandler.UserChangePassword)
		auth.GET("/user/info", userHandler.UserInfo)

		auth.POST("/note", noteHandler.Create)
		auth.GET("/note/:id", noteHandler.Get)
		auth.PUT("/note/:id", noteHandler.Update)
		auth.DELETE("/note/:id", noteHandler.Delete)
		auth.GET("/notes", noteHandler.List)
		auth.POST("/note/:id/revert", noteHandler.Revert)

		auth.GET("/note/:id/versions", versionHandler.List)
		auth.GET("/note/:id/versions/:version", versionHandler.Get)
		auth.GET("/note/:id/diff", versionHandler.Diff)

		auth.POST("/note/:id/share", shareHandler.Share)
		auth.DELETE("/note/:id/share/:uid", shareHandler.Revoke)
		auth.GET("/note/:id/shares", shareHandler.List)

		auth.POST("/note/:id/attachments", attachmentHandler.Upload)
		auth.GET("/note/:id/attachments", attachmentHandler.List)
		auth.DELETE("/attachments/:id", attachmentHandler.Delete)
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
