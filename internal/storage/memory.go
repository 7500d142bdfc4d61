package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"
)

// ErrPresignUnsupported is returned by stores that cannot hand out direct URLs.
var ErrPresignUnsupported = errors.New("presigned urls not supported")

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryStorage keeps objects in process. Used when MinIO is not configured.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: map[string]memoryObject{}}
}

func (m *MemoryStorage) Upload(_ context.Context, key string, reader io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.objects[key] = memoryObject{data: data, contentType: contentType}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) Download(_ context.Context, key string) (io.ReadCloser, string, error) {
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return nil, "", ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), obj.contentType, nil
}

func (m *MemoryStorage) PresignedURL(context.Context, string, time.Duration) (string, error) {
	return "", ErrPresignUnsupported
}

func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}
