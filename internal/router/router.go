package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/apconnect/directory-api/internal/middleware"
	"github.com/apconnect/directory-api/internal/model"
)

// Handler is a group of routes mounted under /api/v1.
type Handler interface {
	RegisterRoutes(gin.IRouter)
}

// AuthHandler mounts identity routes, some of which need the authenticate middleware.
type AuthHandler interface {
	RegisterRoutes(gin.IRouter, gin.HandlerFunc)
}

type Handlers struct {
	Health    Handler
	Auth      AuthHandler
	Search    Handler
	Reference Handler
	Dashboard Handler
	Admin     Handler
}

type RouterConfig struct {
	Mode           string
	RateLimit      rate.Limit
	RateBurst      int
	AllowedOrigins []string
	RequestTimeout time.Duration
	PublicMaxAge   time.Duration
	MaxBodyBytes   int64
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	handlers Handlers
	config   RouterConfig
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	handlers Handlers,
	httpMetrics *middleware.HTTPMetrics,
	config RouterConfig,
) *Router {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = middleware.DefaultTimeoutConfig().Duration
	}
	if config.PublicMaxAge <= 0 {
		config.PublicMaxAge = 60 * time.Second
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	r := &Router{
		engine:   engine,
		auth:     auth,
		handlers: handlers,
		config:   config,
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
	)
	if httpMetrics != nil {
		engine.Use(httpMetrics.Middleware())
	}
	engine.Use(
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.CORS(middleware.DefaultCORSConfig(config.AllowedOrigins...)),
		middleware.Compress(middleware.DefaultCompressConfig()),
	)

	if config.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	sizeLimit := middleware.DefaultSizeLimitConfig()
	if config.MaxBodyBytes > 0 {
		sizeLimit.MaxBodySize = config.MaxBodyBytes
	}
	engine.Use(
		middleware.SizeLimit(sizeLimit),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.RequestTimeout}),
	)

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(api)
	}

	// Public listings are cacheable by browsers and CDNs.
	public := api.Group("", middleware.Cache(middleware.PublicCacheConfig(r.config.PublicMaxAge)))
	r.handlers.Search.RegisterRoutes(public)
	r.handlers.Reference.RegisterRoutes(public)

	noStore := api.Group("", middleware.Cache(middleware.NoStoreConfig()))
	r.handlers.Auth.RegisterRoutes(noStore, r.auth.Authenticate())

	protected := noStore.Group("", r.auth.Authenticate())
	r.handlers.Dashboard.RegisterRoutes(protected)

	admin := protected.Group("", r.auth.RequireRole(model.RoleAdmin))
	r.handlers.Admin.RegisterRoutes(admin)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
