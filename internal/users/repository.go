package users

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/glovebox/glovebox/backend/go-services/internal/database"
	"github.com/glovebox/glovebox/backend/go-services/internal/models"
	"github.com/glovebox/glovebox/backend/go-services/pkg/logger"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository defines persistence operations for users.
// Getters return (nil, nil) when no user matches.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpsertBySub(ctx context.Context, u *models.User) (*models.User, error)
	UpdateName(ctx context.Context, id, name string) (*models.User, error)
}

// MongoUserRepository implements UserRepository using MongoDB
type MongoUserRepository struct {
	col *mongo.Collection
}

// NewMongoUserRepository creates a new repository for the given collection
func NewMongoUserRepository(ctx context.Context, col *mongo.Collection) *MongoUserRepository {
	err := database.EnsureIndexes(ctx, col,
		mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		mongo.IndexModel{Keys: bson.D{{Key: "sub", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
	)
	if err != nil {
		logger.Warnf("users index: %v", err)
	}
	return &MongoUserRepository{col: col}
}

func (r *MongoUserRepository) Create(ctx context.Context, u *models.User) error {
	stamp(u)
	if _, err := r.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) UpsertBySub(ctx context.Context, u *models.User) (*models.User, error) {
	now := time.Now().UTC()
	filter := bson.M{"sub": u.Sub}
	set := bson.M{"name": u.Name, "updatedAt": now}
	if u.Email != "" {
		// email is sparse-unique, so an empty value must not be written
		set["email"] = u.Email
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"_id": uuid.NewString(), "createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var updated models.User
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *MongoUserRepository) UpdateName(ctx context.Context, id, name string) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.User
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"name": name, "updatedAt": time.Now().UTC()}}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}

// MemoryUserRepository is the in-process UserRepository used without MongoDB and in tests.
type MemoryUserRepository struct {
	mu   sync.RWMutex
	byID map[string]models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{byID: map[string]models.User{}}
}

func (r *MemoryUserRepository) Create(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if u.Email != "" && existing.Email == u.Email {
			return ErrEmailTaken
		}
	}
	stamp(u)
	r.byID[u.ID] = *u
	return nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.byID[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byID {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) UpsertBySub(ctx context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	for id, existing := range r.byID {
		if existing.Sub == u.Sub {
			existing.Email = u.Email
			existing.Name = u.Name
			existing.UpdatedAt = now
			r.byID[id] = existing
			return &existing, nil
		}
	}
	created := *u
	created.ID = ""
	stamp(&created)
	r.byID[created.ID] = created
	return &created, nil
}

func (r *MemoryUserRepository) UpdateName(ctx context.Context, id, name string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	u.Name = name
	u.UpdatedAt = time.Now().UTC()
	r.byID[id] = u
	return &u, nil
}

func stamp(u *models.User) {
	now := time.Now().UTC()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}
