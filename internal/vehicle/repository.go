package vehicle

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/glovebox/glovebox/backend/go-services/internal/database"
	"github.com/glovebox/glovebox/backend/go-services/pkg/logger"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository stores vehicles. Lookups are owner scoped and List is oldest first.
type Repository interface {
	Create(ctx context.Context, v *Vehicle) error
	Get(ctx context.Context, userID, id string) (*Vehicle, error)
	List(ctx context.Context, userID string) ([]*Vehicle, error)
	Replace(ctx context.Context, v *Vehicle) error
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(ctx context.Context, col *mongo.Collection) *MongoRepository {
	if err := database.EnsureIndex(ctx, col, false, "userId", "createdAt"); err != nil {
		logger.Warnf("vehicles index: %v", err)
	}
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, v *Vehicle) error {
	stamp(v)
	_, err := r.col.InsertOne(ctx, v)
	return err
}

func (r *MongoRepository) Get(ctx context.Context, userID, id string) (*Vehicle, error) {
	var v Vehicle
	if err := r.col.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *MongoRepository) List(ctx context.Context, userID string) ([]*Vehicle, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	out := []*Vehicle{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepository) Replace(ctx context.Context, v *Vehicle) error {
	v.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": v.ID, "userId": v.UserID}, v)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type MemoryRepository struct {
	mu       sync.RWMutex
	vehicles map[string]Vehicle
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{vehicles: map[string]Vehicle{}}
}

func (r *MemoryRepository) Create(_ context.Context, v *Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stamp(v)
	r.vehicles[v.ID] = *v
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, userID, id string) (*Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vehicles[id]
	if !ok || v.UserID != userID {
		return nil, ErrNotFound
	}
	return &v, nil
}

func (r *MemoryRepository) List(_ context.Context, userID string) ([]*Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*Vehicle{}
	for _, v := range r.vehicles {
		if v.UserID == userID {
			v := v
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) Replace(_ context.Context, v *Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.vehicles[v.ID]
	if !ok || cur.UserID != v.UserID {
		return ErrNotFound
	}
	v.UpdatedAt = time.Now().UTC()
	r.vehicles[v.ID] = *v
	return nil
}

func stamp(v *Vehicle) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	v.CreatedAt = time.Now().UTC()
	v.UpdatedAt = v.CreatedAt
}
