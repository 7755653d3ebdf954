package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/printshop-console/internal/console"
	"github.com/noah-isme/printshop-console/internal/repository"
	"github.com/noah-isme/printshop-console/internal/service"
	"github.com/noah-isme/printshop-console/pkg/config"
	"github.com/noah-isme/printshop-console/pkg/storage"
)

type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	metrics  *service.MetricsService
	notifier *service.NotificationService
	exports  *service.ExportQueue
	console  *console.Console
	server   *http.Server
}

func newApp(cfg *config.Config, logr *zap.Logger) (*app, error) {
	metrics := service.NewMetricsService()
	cons := console.New(console.Options{Out: color.Output, Logger: logr})
	notifier := service.NewNotificationService(cfg.Notify.TTL, cons.Toast, metrics, logr)
	cons.SetToasts(notifier)

	files, err := storage.NewLocalStorage(cfg.Export.Dir)
	if err != nil {
		return nil, err
	}
	removed, err := files.CleanupOlderThan(cfg.Export.Retention)
	if err != nil {
		logr.Warn("export cleanup failed", zap.Error(err))
	} else if len(removed) > 0 {
		logr.Info("removed expired exports", zap.Int("count", len(removed)))
	}
	exports := service.NewExportQueue(service.NewExportService(files, logr), notifier, logr)
	exports.Start(context.Background())

	client := repository.NewClient(cfg.API.BaseURL, cfg.API.Timeout, metrics, logr)
	opts := service.ResourceOptions{
		Notifier:     notifier,
		Confirmer:    cons,
		ConfirmSaves: cfg.Form.ConfirmSaves,
		PageSize:     cfg.List.PageSize,
		Metrics:      metrics,
		Logger:       logr,
	}
	cons.Mount(console.NewResourceScreen(service.NewDieCutService(repository.NewDieCutRepository(client), opts), exports))
	cons.Mount(console.NewResourceScreen(service.NewRawMaterialService(repository.NewRawMaterialRepository(client), opts), exports))
	cons.Mount(console.NewResourceScreen(service.NewInkService(repository.NewInkRepository(client), opts), exports))

	a := &app{
		cfg:      cfg,
		logger:   logr,
		metrics:  metrics,
		notifier: notifier,
		exports:  exports,
		console:  cons,
	}
	a.serveMetrics()
	return a, nil
}

func (a *app) serveMetrics() {
	if a.cfg.Metrics.Addr == "" {
		return
	}
	a.server = &http.Server{Addr: a.cfg.Metrics.Addr, Handler: metricsRouter(a.metrics), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Warn("metrics listener stopped", zap.String("addr", a.cfg.Metrics.Addr), zap.Error(err))
		}
	}()
	a.logger.Info("metrics listening", zap.String("addr", a.cfg.Metrics.Addr))
}

// metricsRouter serves the console's registry. Gin runs in release mode so
// route logs stay out of the REPL.
func metricsRouter(metrics *service.MetricsService) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	return r
}

func (a *app) Close() {
	a.exports.Stop()
	a.notifier.Close()
	if a.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.server.Shutdown(ctx); err != nil {
			a.logger.Warn("metrics shutdown failed", zap.Error(err))
		}
	}
}
