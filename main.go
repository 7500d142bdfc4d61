package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/glovebox/glovebox/backend/go-services/internal/config"
	"github.com/glovebox/glovebox/backend/go-services/internal/oidc"
	"github.com/glovebox/glovebox/backend/go-services/internal/server"
	"github.com/glovebox/glovebox/backend/go-services/pkg/logger"
	"github.com/glovebox/glovebox/backend/go-services/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v minio=%v oidc=%v tz=%s",
		cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.MinIO.Endpoint != "", cfg.OIDC.Issuer != "", cfg.Expiry.Location)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, closeStores, err := server.Connect(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to connect stores: %v", err)
	}
	defer closeStores()

	opts := server.Options{}
	if cfg.OIDC.Issuer != "" {
		ver, err := oidc.NewVerifier(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID)
		if err != nil {
			logger.Warnf("federated login disabled: %v", err)
		} else {
			opts.Federated = ver
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r := server.NewRouter(cfg, stores, opts)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	if err := server.ListenAndServe(ctx, srv, server.ShutdownGrace); err != nil {
		logger.Errorf("server: %v", err)
	}
}
