package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/printshop-console/internal/service"
	"github.com/noah-isme/printshop-console/internal/stub"
	"github.com/noah-isme/printshop-console/pkg/config"
	"github.com/noah-isme/printshop-console/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := stub.NewServer(stub.Options{
		AllowedOrigins: cfg.Stub.AllowedOrigins,
		Metrics:        service.NewMetricsService(),
		Logger:         logr,
		Docs:           cfg.Env != config.EnvProduction,
	})
	if cfg.Stub.Seed {
		srv.Seed(time.Now())
		logr.Sugar().Infow("seeded sample inventory",
			"die_cuts", srv.DieCuts.Len(),
			"raw_materials", srv.RawMaterials.Len(),
			"inks", srv.Inks.Len())
	}

	addr := fmt.Sprintf(":%d", cfg.Stub.Port)
	logr.Sugar().Infow("inventory stub starting", "addr", addr, "env", cfg.Env)
	if err := srv.Router().Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
