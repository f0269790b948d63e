package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-event-registration/internal/api"
	"github.com/sanosuguru/go-event-registration/internal/api/handler"
	apimiddleware "github.com/sanosuguru/go-event-registration/internal/api/middleware"
	"github.com/sanosuguru/go-event-registration/internal/application"
	"github.com/sanosuguru/go-event-registration/internal/config"
	"github.com/sanosuguru/go-event-registration/internal/domain/event"
	"github.com/sanosuguru/go-event-registration/internal/pkg/logger"
	"github.com/sanosuguru/go-event-registration/internal/pkg/metrics"
	"github.com/sanosuguru/go-event-registration/internal/storage/jsonfile"
	"github.com/sanosuguru/go-event-registration/internal/storage/memory"
)

func main() {
	cfg := config.Load()
	logger.Set(logger.NewLogger(cfg.Env))
	defer logger.Sync()

	m := metrics.New()

	// ストア構築（memoryは永続化なし、jsonはスナップショットファイル）
	var store event.Store
	switch cfg.Store.Driver {
	case "memory":
		store = memory.NewStore()
	default:
		store = jsonfile.NewStore(cfg.Store.SnapshotPath)
	}

	// 起動時にスナップショットを読み込む（永続化能力を持つストアのみ）
	if p, ok := store.(event.Persistent); ok {
		if err := p.Load(); err != nil {
			logger.Fatal("スナップショットの読み込みに失敗しました", zap.Error(err))
		}
		logger.Info("スナップショットを読み込みました",
			zap.String("path", cfg.Store.SnapshotPath),
			zap.Int("events", len(store.ListAll())),
		)
	}

	service := application.NewRegistrationService(store, m)

	// Echo インスタンス作成
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// ミドルウェア設定
	apimiddleware.SetupMiddleware(e)
	e.Use(apimiddleware.PrometheusMiddleware(m))

	// ハンドラー登録
	eventHandler := handler.NewEventHandler(service)
	registrationHandler := handler.NewRegistrationHandler(service)
	reportHandler := handler.NewReportHandler(service)
	healthHandler := handler.NewHealthHandler()

	v1 := e.Group("/api/v1")
	v1.GET("/health", healthHandler.Check)
	v1.POST("/events", eventHandler.Create)
	v1.GET("/events", eventHandler.List)
	v1.GET("/events/:id", eventHandler.GetByID)
	v1.POST("/events/:id/enrollments", registrationHandler.Enroll)
	v1.DELETE("/events/:id/enrollments/:email", registrationHandler.Cancel)
	v1.POST("/events/:id/check-ins", registrationHandler.CheckIn)
	v1.GET("/events/:id/report", reportHandler.EventReport)
	v1.GET("/reports/availability", reportHandler.Availability)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), apimiddleware.MetricsBasicAuth())

	// サーバー起動
	go func() {
		if err := e.Start(fmt.Sprintf(":%s", cfg.Server.Port)); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("サーバーシャットダウンエラー", zap.Error(err))
	}

	// 終了時にスナップショットを書き出す（永続化能力を持つストアのみ）
	if p, ok := store.(event.Persistent); ok {
		if err := p.Save(); err != nil {
			logger.Error("スナップショットの保存に失敗しました", zap.Error(err))
		} else {
			logger.Info("スナップショットを保存しました", zap.String("path", cfg.Store.SnapshotPath))
		}
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
