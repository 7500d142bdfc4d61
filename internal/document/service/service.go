package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/glovebox/glovebox/backend/go-services/internal/document"
	"github.com/glovebox/glovebox/backend/go-services/internal/document/repository"
	"github.com/glovebox/glovebox/backend/go-services/internal/expiry"
	"github.com/glovebox/glovebox/backend/go-services/internal/storage"
	"github.com/glovebox/glovebox/backend/go-services/pkg/logger"
	"github.com/glovebox/glovebox/backend/go-services/pkg/metrics"
)

// SaveInput is a submitted document form. An empty ID creates a new document.
type SaveInput struct {
	ID         string
	Title      string
	ExpiryDate string
	VehicleID  string
}

// Service defines the document business operations used by the handler layer.
type Service interface {
	List(ctx context.Context, userID, vehicleID string) ([]*document.TrackedDocument, error)
	Classify(ctx context.Context, userID, vehicleID string, now time.Time) ([]document.Classified, error)
	Save(ctx context.Context, userID string, in SaveInput) (*document.TrackedDocument, error)
	Get(ctx context.Context, userID, id string) (*document.TrackedDocument, error)
	Delete(ctx context.Context, userID, id string) error
	AttachScan(ctx context.Context, userID, id string, r io.Reader, size int64, contentType string) (*document.TrackedDocument, error)
	OpenScan(ctx context.Context, userID, id string) (io.ReadCloser, string, error)
	ScanURL(ctx context.Context, userID, id string) (string, error)
}

// New returns a Service over repo. scans may be nil when object storage is not
// configured; scan operations then fail with document.ErrStorageDisabled.
func New(repo repository.Repository, scans storage.ObjectStore, urlExpiry time.Duration) Service {
	if urlExpiry <= 0 {
		urlExpiry = 15 * time.Minute
	}
	return &vault{repo: repo, scans: scans, urlExpiry: urlExpiry}
}

// NewMemoryService returns a Service backed by the in-memory repository and scan store.
func NewMemoryService() Service {
	return New(repository.NewMemoryRepo(), storage.NewMemoryStorage(), 0)
}

type vault struct {
	repo      repository.Repository
	scans     storage.ObjectStore
	urlExpiry time.Duration
}

func (v *vault) List(ctx context.Context, userID, vehicleID string) ([]*document.TrackedDocument, error) {
	return v.repo.ListByVehicle(ctx, userID, vehicleID)
}

// Classify lists the vehicle's documents with their band at now. A stored date
// that fails validation is reported on its own entry and does not fail the list.
func (v *vault) Classify(ctx context.Context, userID, vehicleID string, now time.Time) ([]document.Classified, error) {
	docs, err := v.repo.ListByVehicle(ctx, userID, vehicleID)
	if err != nil {
		return nil, err
	}
	out := make([]document.Classified, 0, len(docs))
	for _, d := range docs {
		res, cerr := expiry.Classify(d.ExpiryDate, now)
		if cerr != nil {
			logger.Warnf("document %s has unusable expiry date: %v", d.ID, cerr)
			metrics.DocumentsClassified.WithLabelValues("invalid").Inc()
			out = append(out, document.Classified{Document: d, Err: cerr})
			continue
		}
		metrics.DocumentsClassified.WithLabelValues(string(res.Status)).Inc()
		out = append(out, document.Classified{Document: d, Result: res})
	}
	return out, nil
}

func (v *vault) Save(ctx context.Context, userID string, in SaveInput) (*document.TrackedDocument, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", document.ErrInvalidInput)
	}
	if err := expiry.Validate(in.ExpiryDate); err != nil {
		return nil, err
	}

	if in.ID != "" {
		d, err := v.repo.Update(ctx, userID, in.ID, title, in.ExpiryDate)
		if err != nil {
			return nil, err
		}
		metrics.RecordsSaved.WithLabelValues("document", "update").Inc()
		return d, nil
	}

	if in.VehicleID == "" {
		return nil, fmt.Errorf("%w: vehicleId is required", document.ErrInvalidInput)
	}
	d := &document.TrackedDocument{
		UserID:     userID,
		VehicleID:  in.VehicleID,
		Title:      title,
		ExpiryDate: in.ExpiryDate,
	}
	if err := v.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	metrics.RecordsSaved.WithLabelValues("document", "create").Inc()
	return d, nil
}

func (v *vault) Get(ctx context.Context, userID, id string) (*document.TrackedDocument, error) {
	return v.repo.Get(ctx, userID, id)
}

// Delete removes the document and, best effort, its scan.
func (v *vault) Delete(ctx context.Context, userID, id string) error {
	d, err := v.repo.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := v.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	if d.AttachmentKey != "" && v.scans != nil {
		if err := v.scans.Delete(ctx, d.AttachmentKey); err != nil {
			logger.Warnf("delete scan %s: %v", d.AttachmentKey, err)
		}
	}
	return nil
}

func scanKey(d *document.TrackedDocument) string {
	return fmt.Sprintf("scans/%s/%s/%s", d.UserID, d.VehicleID, d.ID)
}

func (v *vault) AttachScan(ctx context.Context, userID, id string, r io.Reader, size int64, contentType string) (*document.TrackedDocument, error) {
	if v.scans == nil {
		return nil, document.ErrStorageDisabled
	}
	d, err := v.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := scanKey(d)
	if err := v.scans.Upload(ctx, key, r, size, contentType); err != nil {
		return nil, fmt.Errorf("upload scan: %w", err)
	}
	return v.repo.SetAttachment(ctx, userID, id, key, contentType)
}

func (v *vault) scanOf(ctx context.Context, userID, id string) (*document.TrackedDocument, error) {
	if v.scans == nil {
		return nil, document.ErrStorageDisabled
	}
	d, err := v.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if d.AttachmentKey == "" {
		return nil, document.ErrNoScan
	}
	return d, nil
}

func (v *vault) OpenScan(ctx context.Context, userID, id string) (io.ReadCloser, string, error) {
	d, err := v.scanOf(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}
	rc, ct, err := v.scans.Download(ctx, d.AttachmentKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, "", document.ErrNoScan
	}
	return rc, ct, err
}

func (v *vault) ScanURL(ctx context.Context, userID, id string) (string, error) {
	d, err := v.scanOf(ctx, userID, id)
	if err != nil {
		return "", err
	}
	return v.scans.PresignedURL(ctx, d.AttachmentKey, v.urlExpiry)
}
