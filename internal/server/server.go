// Package server assembles the gin engine from configuration and stores.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glovebox/glovebox/backend/go-services/handlers"
	"github.com/glovebox/glovebox/backend/go-services/internal/config"
	dochandler "github.com/glovebox/glovebox/backend/go-services/internal/document/handler"
	docservice "github.com/glovebox/glovebox/backend/go-services/internal/document/service"
	"github.com/glovebox/glovebox/backend/go-services/internal/logbook"
	"github.com/glovebox/glovebox/backend/go-services/internal/sessions"
	"github.com/glovebox/glovebox/backend/go-services/internal/tokens"
	"github.com/glovebox/glovebox/backend/go-services/internal/users"
	"github.com/glovebox/glovebox/backend/go-services/internal/vehicle"
	"github.com/glovebox/glovebox/backend/go-services/pkg/logger"
	"github.com/glovebox/glovebox/backend/go-services/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options tune NewRouter. Federated accepts ID tokens from an external identity
// provider in addition to locally issued tokens. Clock fixes "now" in tests.
type Options struct {
	Federated middleware.Verifier
	Clock     func() time.Time
}

var startTime = time.Now()

func base(cfg *config.Config, st *Stores, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.CORS(), logger.Middleware(), gin.Recovery())
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && st.Redis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(st.Redis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}
	r.Use(middleware.RequestTime(opts.Clock))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", func(c *gin.Context) {
		deps, ok := readiness(c.Request.Context(), st)
		status := http.StatusOK
		state := "ready"
		if !ok {
			status, state = http.StatusServiceUnavailable, "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterSwagger(r)
	return r
}

// readiness pings every configured backend. Scan storage is reported but optional.
func readiness(ctx context.Context, st *Stores) (map[string]bool, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	deps := map[string]bool{"scans": st.Scans != nil}
	ok := true
	if st.Mongo != nil {
		deps["mongodb"] = st.Mongo.Ping(ctx, nil) == nil
		ok = ok && deps["mongodb"]
	}
	if st.Redis != nil {
		deps["redis"] = st.Redis.Ping(ctx).Err() == nil
		ok = ok && deps["redis"]
	}
	return deps, ok
}

// NewRouter builds the full API: accounts, garage, logbook and document vault.
func NewRouter(cfg *config.Config, st *Stores, opts Options) *gin.Engine {
	r := base(cfg, st, opts)

	usersSvc := users.NewService(st.Users)
	sessionsSvc := sessions.NewService(st.Sessions)
	vehicleSvc := vehicle.NewService(st.Vehicles)
	auth := handlers.NewAuthHandler(cfg, usersSvc, sessionsSvc)
	auth.Register(r)

	verifier := middleware.Chain{tokens.NewVerifier(cfg.JWT.Secret)}
	if opts.Federated != nil {
		verifier = append(verifier, opts.Federated)
	}
	authed := r.Group("/", middleware.AuthMiddleware(verifier, usersSvc.Resolver(tokens.Issuer)))

	auth.RegisterProfile(authed.Group("/api/v1"))
	vehicle.RegisterRoutes(authed, vehicleSvc)
	logbook.RegisterRoutes(authed, logbook.NewService(st.Logs, vehicleSvc))
	dochandler.RegisterDocumentRoutes(authed, docservice.New(st.Documents, st.Scans, cfg.MinIO.URLExpiry), cfg.Expiry.Location)
	return r
}

// NewDocumentRouter serves only the document vault. Callers authenticate with
// tokens issued by the main service (same JWT secret) or the federated issuer.
func NewDocumentRouter(cfg *config.Config, st *Stores, opts Options) *gin.Engine {
	r := base(cfg, st, opts)
	verifier := middleware.Chain{tokens.NewVerifier(cfg.JWT.Secret)}
	resolve := middleware.SubjectResolver
	if opts.Federated != nil {
		verifier = append(verifier, opts.Federated)
		resolve = users.NewService(st.Users).Resolver(tokens.Issuer)
	}
	authed := r.Group("/", middleware.AuthMiddleware(verifier, resolve))
	dochandler.RegisterDocumentRoutes(authed, docservice.New(st.Documents, st.Scans, cfg.MinIO.URLExpiry), cfg.Expiry.Location)
	return r
}
