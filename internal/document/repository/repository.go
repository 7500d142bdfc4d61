package repository

import (
	"context"

	"github.com/glovebox/glovebox/backend/go-services/internal/document"
)

// Repository persists tracked documents. Every lookup is scoped to the owning
// user; a document owned by someone else behaves as missing (document.ErrNotFound).
type Repository interface {
	Create(ctx context.Context, d *document.TrackedDocument) error
	Get(ctx context.Context, userID, id string) (*document.TrackedDocument, error)
	ListByVehicle(ctx context.Context, userID, vehicleID string) ([]*document.TrackedDocument, error)
	Update(ctx context.Context, userID, id, title, expiryDate string) (*document.TrackedDocument, error)
	SetAttachment(ctx context.Context, userID, id, key, contentType string) (*document.TrackedDocument, error)
	Delete(ctx context.Context, userID, id string) error
}
