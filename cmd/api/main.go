package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"rizal-api/internal/core/config"
	"rizal-api/internal/core/logger"
	"rizal-api/internal/core/server"
	"rizal-api/internal/repo"
	"rizal-api/internal/service"
	"rizal-api/internal/transport/http/handler"
	"rizal-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	l, cleanup := logger.New(cfg.Log)
	defer cleanup()
	undo := logger.RedirectStdLog(l)
	defer undo()

	// 依赖：内存存储 → service → handler
	userRepo := repo.NewUserRepo()
	userSvc := service.NewUserService(userRepo, l)
	userH := handler.NewUserHandler(userSvc)

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{Name: "users_stored", Help: "Number of users currently held in memory"},
		func() float64 { return float64(userRepo.Len()) },
	))

	r := router.NewAPIEngine(l, cfg, userH)

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
		logger.ToStdLogger(l, zapcore.WarnLevel),
	)

	// 启动日志
	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	l.Info("user api starting",
		zap.String("addr", addr),
		zap.String("env", cfg.App.Env),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("users", baseURL+"/users"),
		zap.Strings("cors", cfg.CORS.AllowOrigins),
	)

	// 异步启动
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("user api start FAILED", zap.Error(err))
		}
	}()
	l.Info("user api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		l.Warn("shutdown", zap.Error(err))
	}
	l.Info("user api stopped gracefully", zap.Int("users_dropped", userRepo.Len()))
}
