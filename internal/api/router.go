package api

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"

	"github.com/d60-Lab/microblog/config"
	"github.com/d60-Lab/microblog/internal/api/handler"
	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/internal/auth"
	"github.com/d60-Lab/microblog/pkg/response"
)

// NewRouter wires middleware and routes. Handler outputs are either a
// redirect or a (template, context) page envelope; HTML rendering sits in
// front of this service.
func NewRouter(cfg *config.Config, h *handler.Handler, authMgr *auth.Manager) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.Otel.Enabled {
		r.Use(otelgin.Middleware("microblog"))
	}
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(middleware.RateLimit(rate.Limit(50), 100))
	r.Use(middleware.Authenticate(authMgr))

	login := middleware.LoginRequired(cfg.Auth.LoginURL)

	r.GET("/", h.Index)
	r.GET("/group/:slug/", h.GroupFeed)
	r.GET("/profile/:username/", h.ProfileFeed)
	r.GET("/profile/:username/follow/", login, h.ProfileFollow)
	r.GET("/profile/:username/unfollow/", login, h.ProfileUnfollow)
	r.GET("/posts/:post_id/", h.PostDetail)
	r.GET("/create/", login, h.PostCreate)
	r.POST("/create/", login, h.PostCreate)
	r.GET("/posts/:post_id/edit/", login, h.PostEdit)
	r.POST("/posts/:post_id/edit/", login, h.PostEdit)
	r.POST("/posts/:post_id/comment/", login, h.AddComment)
	r.GET("/follow/", login, h.FollowFeed)

	r.GET("/auth/login", h.LoginForm)
	r.POST("/auth/login", h.Login)

	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.NoRoute(func(c *gin.Context) { response.NotFound(c) })
	return r
}
