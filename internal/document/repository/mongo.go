package repository

import (
	"context"
	"errors"
	"time"

	"github.com/glovebox/glovebox/backend/go-services/internal/database"
	"github.com/glovebox/glovebox/backend/go-services/internal/document"
	"github.com/glovebox/glovebox/backend/go-services/pkg/logger"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements a MongoDB-backed repository for tracked documents.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(ctx context.Context, col *mongo.Collection) *MongoRepo {
	if err := database.EnsureIndex(ctx, col, false, "userId", "vehicleId", "createdAt"); err != nil {
		logger.Warnf("documents index: %v", err)
	}
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Create(ctx context.Context, d *document.TrackedDocument) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.CreatedAt = time.Now().UTC()
	d.UpdatedAt = d.CreatedAt
	_, err := m.col.InsertOne(ctx, d)
	return err
}

func (m *MongoRepo) Get(ctx context.Context, userID, id string) (*document.TrackedDocument, error) {
	var d document.TrackedDocument
	err := m.col.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, document.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (m *MongoRepo) ListByVehicle(ctx context.Context, userID, vehicleID string) ([]*document.TrackedDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := m.col.Find(ctx, bson.M{"userId": userID, "vehicleId": vehicleID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*document.TrackedDocument{}
	for cur.Next(ctx) {
		var d document.TrackedDocument
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, cur.Err()
}

func (m *MongoRepo) set(ctx context.Context, userID, id string, set bson.M) (*document.TrackedDocument, error) {
	set["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d document.TrackedDocument
	err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": id, "userId": userID}, bson.M{"$set": set}, opts).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, document.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (m *MongoRepo) Update(ctx context.Context, userID, id, title, expiryDate string) (*document.TrackedDocument, error) {
	return m.set(ctx, userID, id, bson.M{"title": title, "expiryDate": expiryDate})
}

func (m *MongoRepo) SetAttachment(ctx context.Context, userID, id, key, contentType string) (*document.TrackedDocument, error) {
	return m.set(ctx, userID, id, bson.M{"attachmentKey": key, "attachmentType": contentType})
}

func (m *MongoRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return document.ErrNotFound
	}
	return nil
}
