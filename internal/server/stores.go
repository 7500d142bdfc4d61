package server

import (
	"context"
	"fmt"

	"github.com/glovebox/glovebox/backend/go-services/internal/config"
	"github.com/glovebox/glovebox/backend/go-services/internal/database"
	docrepo "github.com/glovebox/glovebox/backend/go-services/internal/document/repository"
	"github.com/glovebox/glovebox/backend/go-services/internal/logbook"
	"github.com/glovebox/glovebox/backend/go-services/internal/sessions"
	"github.com/glovebox/glovebox/backend/go-services/internal/storage"
	"github.com/glovebox/glovebox/backend/go-services/internal/users"
	"github.com/glovebox/glovebox/backend/go-services/internal/vehicle"
	"github.com/glovebox/glovebox/backend/go-services/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Stores are the backends the HTTP layer runs on. Scans is nil when object
// storage is not configured; Mongo and Redis are nil when not in use.
type Stores struct {
	Users     users.UserRepository
	Sessions  sessions.Repository
	Vehicles  vehicle.Repository
	Logs      logbook.Repository
	Documents docrepo.Repository
	Scans     storage.ObjectStore
	Mongo     *mongo.Client
	Redis     *redis.Client
}

// MemoryStores keeps everything in process, including scans.
func MemoryStores() *Stores {
	return &Stores{
		Users:     users.NewMemoryUserRepository(),
		Sessions:  sessions.NewMemoryRepository(),
		Vehicles:  vehicle.NewMemoryRepository(),
		Logs:      logbook.NewMemoryRepository(),
		Documents: docrepo.NewMemoryRepo(),
		Scans:     storage.NewMemoryStorage(),
	}
}

// Connect opens the configured backends, falling back to memory for anything
// left unconfigured. The returned func releases the connections.
func Connect(ctx context.Context, cfg *config.Config) (*Stores, func(), error) {
	st := MemoryStores()
	st.Scans = nil
	closers := []func(){}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if addr := cfg.Redis.Addr(); addr != "" {
		rc := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rc.Ping(ctx).Err(); err != nil {
			logger.Warnf("redis %s unavailable, continuing without it: %v", addr, err)
			_ = rc.Close()
		} else {
			logger.Infof("connected to Redis at %s", addr)
			st.Redis = rc
			sessions.SetBlacklistClient(rc)
			st.Sessions = sessions.NewRedisRepository(rc, "session:")
			closers = append(closers, func() {
				sessions.SetBlacklistClient(nil)
				_ = rc.Close()
			})
		}
	}

	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("mongodb: %w", err)
		}
		closers = append(closers, func() { _ = client.Disconnect(context.Background()) })
		db := client.Database(cfg.MongoDB.Database)
		st.Mongo = client
		st.Users = users.NewMongoUserRepository(ctx, db.Collection("users"))
		st.Vehicles = vehicle.NewMongoRepository(ctx, db.Collection("vehicles"))
		st.Logs = logbook.NewMongoRepository(ctx, db.Collection("logs"))
		st.Documents = docrepo.NewMongoRepo(ctx, db.Collection("documents"))
		if st.Redis == nil {
			st.Sessions = sessions.NewMongoRepository(ctx, db.Collection("sessions"))
		}
		logger.Infof("using MongoDB database %q", cfg.MongoDB.Database)
	}

	if cfg.MinIO.Endpoint != "" {
		ms, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf("minio unavailable, scans disabled: %v", err)
		} else {
			st.Scans = ms
		}
	}

	return st, cleanup, nil
}
