package logbook

import (
	"context"
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

// Repository stores log entries. List returns newest first.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	List(ctx context.Context, userID, vehicleID string) ([]*Entry, error)
	TotalSpent(ctx context.Context, userID, vehicleID string) (float64, error)
	Delete(ctx context.Context, userID, id string) error
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(ctx context.Context, col *mongo.Collection) *MongoRepository {
	model := mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "vehicleId", Value: 1}, {Key: "createdAt", Value: -1}}}
	if err := database.EnsureIndexes(ctx, col, model); err != nil {
		logger.Warnf("logs index: %v", err)
	}
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, e *Entry) error {
	stamp(e)
	_, err := r.col.InsertOne(ctx, e)
	return err
}

func (r *MongoRepository) List(ctx context.Context, userID, vehicleID string) ([]*Entry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"userId": userID, "vehicleId": vehicleID}, opts)
	if err != nil {
		return nil, err
	}
	out := []*Entry{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TotalSpent sums cost server side.
func (r *MongoRepository) TotalSpent(ctx context.Context, userID, vehicleID string) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID, "vehicleId": vehicleID}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$cost"}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *MongoRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type MemoryRepository struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{entries: map[string]Entry{}}
}

func (r *MemoryRepository) Create(_ context.Context, e *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stamp(e)
	r.entries[e.ID] = *e
	return nil
}

func (r *MemoryRepository) List(_ context.Context, userID, vehicleID string) ([]*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*Entry{}
	for _, e := range r.entries {
		if e.UserID == userID && e.VehicleID == vehicleID {
			e := e
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) TotalSpent(ctx context.Context, userID, vehicleID string) (float64, error) {
	list, err := r.List(ctx, userID, vehicleID)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, e := range list {
		total += e.Cost
	}
	return total, nil
}

func (r *MemoryRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.UserID != userID {
		return ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func stamp(e *Entry) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
}
