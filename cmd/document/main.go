// Command document runs the tracked-document vault on its own.
package main

import (
	"context"
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
	logger.Init(os.Getenv("LOG_LEVEL"))
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	port := os.Getenv("DOC_SERVICE_PORT")
	if port == "" {
		port = "5010"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, closeStores, err := server.Connect(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to connect stores: %v", err)
	}
	defer closeStores()

	opts := server.Options{}
	if cfg.OIDC.Issuer != "" {
		if ver, err := oidc.NewVerifier(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID); err != nil {
			logger.Warnf("federated tokens disabled: %v", err)
		} else {
			opts.Federated = ver
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + port,
		Handler:      server.NewDocumentRouter(cfg, stores, opts),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	// stores close via the deferred closeStores once in-flight requests finish
	if err := server.ListenAndServe(ctx, srv, server.ShutdownGrace); err != nil {
		logger.Errorf("document service: %v", err)
	}
}
