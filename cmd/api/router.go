package main

import (
	"net/http"

	"petstat/internal/config"
	"petstat/internal/metrics"
	"petstat/internal/middleware"
	"petstat/internal/modules/auth"
	"petstat/internal/modules/pet"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type routerDeps struct {
	cfg       *config.Config
	jwt       middleware.TokenValidator
	auth      *auth.Handler
	pets      *pet.Handler
	collector *metrics.Collector
	gatherer  prometheus.Gatherer
}

// newRouter wires the HTTP surface. The returned func stops background work.
func newRouter(d routerDeps) (*gin.Engine, func()) {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(),
		middleware.CORS(d.cfg.CORSAllowedOrigins),
		middleware.Metrics(d.collector),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler(d.gatherer)))

	limiter := middleware.NewRateLimiter(middleware.PerMinute(d.cfg.AuthRateLimitPerMinute))

	v1 := r.Group("/api/v1")
	{
		d.auth.RegisterPublicRoutes(v1, limiter.Middleware())

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(d.jwt))
		{
			d.auth.RegisterProtectedRoutes(protected)
			d.pets.RegisterProtectedRoutes(protected)
		}
	}

	return r, limiter.Stop
}
