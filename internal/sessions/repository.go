package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/glovebox/glovebox/backend/go-services/internal/database"
	"github.com/glovebox/glovebox/backend/go-services/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository provides session persistence operations
type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByRefresh(ctx context.Context, refresh string) (*Session, error)
	DeleteByRefresh(ctx context.Context, refresh string) error
}

// MongoRepository implements Repository using a Mongo collection
type MongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository also installs a TTL index so Mongo drops expired sessions itself.
func NewMongoRepository(ctx context.Context, col *mongo.Collection) *MongoRepository {
	err := database.EnsureIndexes(ctx, col,
		mongo.IndexModel{Keys: bson.D{{Key: "refreshToken", Value: 1}}, Options: options.Index().SetUnique(true)},
		mongo.IndexModel{Keys: bson.D{{Key: "expiresAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	)
	if err != nil {
		logger.Warnf("sessions index: %v", err)
	}
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, s *Session) error {
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.ExpiresAt.IsZero() {
		s.ExpiresAt = now.Add(7 * 24 * time.Hour)
	}
	_, err := r.col.InsertOne(ctx, s)
	return err
}

func (r *MongoRepository) GetByRefresh(ctx context.Context, refresh string) (*Session, error) {
	var s Session
	if err := r.col.FindOne(ctx, bson.M{"refreshToken": refresh}).Decode(&s); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *MongoRepository) DeleteByRefresh(ctx context.Context, refresh string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"refreshToken": refresh})
	return err
}

// MemoryRepository keeps sessions in process; used when neither Redis nor Mongo is configured.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]Session
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: map[string]Session{}}
}

func (r *MemoryRepository) Create(ctx context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	r.store[s.RefreshToken] = *s
	return nil
}

func (r *MemoryRepository) GetByRefresh(ctx context.Context, refresh string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.store[refresh]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *MemoryRepository) DeleteByRefresh(ctx context.Context, refresh string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.store, refresh)
	return nil
}
