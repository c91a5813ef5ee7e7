package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"rizal-api/internal/core/config"
	"rizal-api/internal/core/logger"
)

// NewRouter 基础 engine：运行模式 + CORS；业务中间件由调用方追加
func NewRouter(l *zap.Logger, app config.App, c config.CORS) *gin.Engine {
	switch app.Env {
	case "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}
	gin.DefaultWriter = logger.ToWriter(l, zapcore.DebugLevel)
	gin.DefaultErrorWriter = logger.ToWriter(l, zapcore.ErrorLevel)

	r := gin.New()
	r.Use(EchoRequestHeaders(c.AllowOrigins), cors.New(CORSConfig(c)))
	return r
}

// CORSConfig 只放行配置的来源，允许携带凭证；
// AllowHeaders 是无预检声明时的兜底列表
func CORSConfig(c config.CORS) cors.Config {
	return cors.Config{
		AllowOrigins: c.AllowOrigins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions,
		},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept",
			"Authorization", "X-Requested-With", "X-Request-ID",
		},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

func BuildServer(addr string, handler http.Handler, rt, wt, it time.Duration, errLog *log.Logger) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    rt,
		WriteTimeout:   wt,
		IdleTimeout:    it,
		MaxHeaderBytes: 1 << 20, // 1MB
		ErrorLog:       errLog,
	}
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }
