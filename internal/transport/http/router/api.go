package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"rizal-api/internal/core/config"
	"rizal-api/internal/core/server"
	mdw "rizal-api/internal/transport/http/middleware"
	resp "rizal-api/internal/transport/http/response"
)

func NewAPIEngine(l *zap.Logger, cfg *config.Config, mods ...APIModule) *gin.Engine {
	r := server.NewRouter(l, cfg.App, cfg.CORS)

	lim := cfg.Limits
	rps := rate.Limit(lim.RPS)
	if lim.RPS <= 0 {
		rps = rate.Inf
	}
	limiter := mdw.RateLimit(rps, lim.Burst)
	if lim.PerIP {
		limiter = mdw.RateLimitPerIP(rps, lim.Burst)
	}

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.AccessLog(l),
		mdw.Metrics(),
		mdw.Recovery(l),
		limiter,
		mdw.ConcurrencyLimit(max(1, lim.MaxInFlight)),
		mdw.MaxBodyBytes(max(1, lim.MaxBodyBytes)),
		mdw.Timeout(time.Duration(max(1, lim.RequestTimeoutS))*time.Second),
	)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, resp.Status{Message: cfg.App.Name, Status: "running"})
	})
	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, resp.Status{Status: "healthy"}) })
	r.GET("/metrics", mdw.MetricsHandler())

	MountAll(&r.RouterGroup, mods...)
	return r
}
