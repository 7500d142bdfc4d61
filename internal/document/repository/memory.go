package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/glovebox/glovebox/backend/go-services/internal/document"
	"github.com/google/uuid"
)

// MemoryRepo is the in-process Repository used when MongoDB is not configured.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]document.TrackedDocument
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]document.TrackedDocument)}
}

func (m *MemoryRepo) Create(_ context.Context, d *document.TrackedDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.CreatedAt = time.Now().UTC()
	d.UpdatedAt = d.CreatedAt
	m.store[d.ID] = *d
	return nil
}

func (m *MemoryRepo) Get(_ context.Context, userID, id string) (*document.TrackedDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.store[id]
	if !ok || d.UserID != userID {
		return nil, document.ErrNotFound
	}
	return &d, nil
}

// ListByVehicle returns the vehicle's documents oldest first.
func (m *MemoryRepo) ListByVehicle(_ context.Context, userID, vehicleID string) ([]*document.TrackedDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*document.TrackedDocument, 0)
	for _, d := range m.store {
		if d.UserID == userID && d.VehicleID == vehicleID {
			d := d
			out = append(out, &d)
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

func (m *MemoryRepo) modify(userID, id string, fn func(d *document.TrackedDocument)) (*document.TrackedDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[id]
	if !ok || d.UserID != userID {
		return nil, document.ErrNotFound
	}
	fn(&d)
	d.UpdatedAt = time.Now().UTC()
	m.store[id] = d
	return &d, nil
}

func (m *MemoryRepo) Update(_ context.Context, userID, id, title, expiryDate string) (*document.TrackedDocument, error) {
	return m.modify(userID, id, func(d *document.TrackedDocument) {
		d.Title = title
		d.ExpiryDate = expiryDate
	})
}

func (m *MemoryRepo) SetAttachment(_ context.Context, userID, id, key, contentType string) (*document.TrackedDocument, error) {
	return m.modify(userID, id, func(d *document.TrackedDocument) {
		d.AttachmentKey = key
		d.AttachmentType = contentType
	})
}

func (m *MemoryRepo) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[id]
	if !ok || d.UserID != userID {
		return document.ErrNotFound
	}
	delete(m.store, id)
	return nil
}
