package document

import (
	"errors"
	"time"

	"github.com/glovebox/glovebox/backend/go-services/internal/expiry"
)

var (
	ErrNotFound        = errors.New("document not found")
	ErrInvalidInput    = errors.New("invalid document")
	ErrNoScan          = errors.New("document has no scan attached")
	ErrStorageDisabled = errors.New("scan storage is not configured")
)

// TrackedDocument is a dated paper kept for a vehicle (insurance, licence, tax...).
// ExpiryDate is YYYY-MM-DD or empty when the document does not expire.
type TrackedDocument struct {
	ID             string    `json:"id" bson:"_id"`
	UserID         string    `json:"userId" bson:"userId"`
	VehicleID      string    `json:"vehicleId" bson:"vehicleId"`
	Title          string    `json:"title" bson:"title"`
	ExpiryDate     string    `json:"expiryDate" bson:"expiryDate"`
	AttachmentKey  string    `json:"attachmentKey,omitempty" bson:"attachmentKey,omitempty"`
	AttachmentType string    `json:"attachmentType,omitempty" bson:"attachmentType,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Classified pairs a document with its expiry band at a reference time.
// Err is set instead of Result when the stored date no longer validates.
type Classified struct {
	Document *TrackedDocument
	Result   expiry.Result
	Err      error
}
