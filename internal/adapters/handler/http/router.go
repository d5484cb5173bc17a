package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/bpr-hq/bpr-dashboard/docs"
	"github.com/bpr-hq/bpr-dashboard/internal/adapters/cache"
	"github.com/bpr-hq/bpr-dashboard/internal/adapters/handler/http/middleware"
)

type RouteRegistrar interface {
	RegisterRoutes(router *gin.RouterGroup)
}

type RouterDependencies struct {
	VictoryTargetHandler *VictoryTargetHandler
	PowerMoveHandler     *PowerMoveHandler
	TaskHandler          *TaskHandler
	CommitmentHandler    *CommitmentHandler
	ClientHandler        *ClientHandler
	UserHandler          *UserHandler
	BrandHandler         *BrandHandler
	AssignmentHandler    *AssignmentHandler
	DashboardHandler     *DashboardHandler
	TokenService         middleware.TokenValidator
	// DB and Redis are optional. A nil DB means in-memory storage.
	DB          *sqlx.DB
	Redis       *redis.Client
	Logger      *zap.Logger
	CORSOrigins []string
	RateLimit   int
	RateWindow  time.Duration
	StartTime   time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	RegisterValidators()

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))
	router.Use(cors.New(corsConfig(deps.CORSOrigins)))

	if deps.Redis != nil && deps.RateLimit > 0 {
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, deps.RateWindow, log))
	}

	router.GET("/health", healthHandler(deps))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")
	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.TokenService))

	registrars := []RouteRegistrar{
		deps.VictoryTargetHandler,
		deps.PowerMoveHandler,
		deps.TaskHandler,
		deps.CommitmentHandler,
		deps.ClientHandler,
		deps.UserHandler,
		deps.BrandHandler,
		deps.AssignmentHandler,
		deps.DashboardHandler,
	}
	for _, r := range registrars {
		r.RegisterRoutes(protected)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Brand-ID"},
		ExposeHeaders: []string{"Content-Length", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()))
	}
}

// healthHandler reports 503 when a configured backend is unreachable.
// Backends that are not configured are reported as "disabled".
func healthHandler(deps RouterDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		dbStatus := "disabled"
		if deps.DB != nil {
			dbStatus = "connected"
			if err := deps.DB.PingContext(ctx); err != nil {
				dbStatus = "unreachable"
			}
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if err := cache.Healthy(ctx, deps.Redis, 2*time.Second); err != nil {
				redisStatus = "unreachable"
			}
		}

		status, code := "ok", http.StatusOK
		if dbStatus == "unreachable" || redisStatus == "unreachable" {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":   status,
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		})
	}
}
