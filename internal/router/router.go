package router

import (
	"github.com/gin-gonic/gin"

	"github.com/sirwalterjones/sessionremind/internal/middleware"
)

// Handler registers its routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	CronSecret     string
}

type Router struct {
	engine    *gin.Engine
	auth      *middleware.AuthMiddleware
	config    Config
	healthH   Handler
	authH     Handler
	messageH  Handler
	usageH    Handler
	extractH  Handler
	dispatchH Handler
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	healthH Handler,
	authH Handler,
	messageH Handler,
	usageH Handler,
	extractH Handler,
	dispatchH Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   config.RateLimitRPS,
		Burst: config.RateLimitBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return &Router{
		engine:    engine,
		auth:      auth,
		config:    config,
		healthH:   healthH,
		authH:     authH,
		messageH:  messageH,
		usageH:    usageH,
		extractH:  extractH,
		dispatchH: dispatchH,
	}
}

func (r *Router) Setup() {
	// Health and metrics live outside the versioned API.
	r.healthH.RegisterRoutes(r.engine.Group(""))

	api := r.engine.Group("/api/v1")

	// Public routes
	r.authH.RegisterRoutes(api)

	// Cron-triggered routes, guarded by the shared secret rather than a
	// user token.
	cron := api.Group("")
	cron.Use(middleware.CronAuth(r.config.CronSecret))
	r.dispatchH.RegisterRoutes(cron)

	// Owner-scoped routes
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.messageH.RegisterRoutes(protected)
	r.usageH.RegisterRoutes(protected)
	r.extractH.RegisterRoutes(protected)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
