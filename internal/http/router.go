package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/ppl-catering/internal/busy"
	"github.com/nurpe/ppl-catering/internal/http/middleware"
	"github.com/nurpe/ppl-catering/internal/metrics"
)

type RouterOptions struct {
	Environment string
	CORSOrigins []string
	RateLimiter *middleware.RateLimiter
	Tracker     *busy.Tracker
	Log         zerolog.Logger
}

func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, opts RouterOptions) *gin.Engine {
	if opts.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if opts.Tracker == nil {
		opts.Tracker = busy.NewTracker()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(opts.Log))
	router.Use(middleware.Metrics())
	router.Use(cors.New(corsConfig(opts.CORSOrigins)))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, opts.Tracker.Snapshot())
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	chain := []gin.HandlerFunc{authMiddleware}
	if opts.RateLimiter != nil {
		chain = append(chain, opts.RateLimiter.Handler())
	}
	chain = append(chain, middleware.RequireWrite(), middleware.Busy(opts.Tracker))
	handler.Register(router, chain...)

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && strings.TrimSpace(origins[0]) == "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
