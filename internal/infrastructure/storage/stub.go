package storage

import (
	"context"
	"io"
	"sync"

	catalogapp "github.com/pedezap/backend/internal/application/catalog"
)

var _ catalogapp.ImageStorage = (*MemoryImageStorage)(nil)

// MemoryImageStorage keeps objects in memory. It backs local development
// and tests where no object store is running.
type MemoryImageStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string
}

// NewMemoryImageStorage creates an in-memory image store serving URLs
// under baseURL.
func NewMemoryImageStorage(baseURL string) *MemoryImageStorage {
	return &MemoryImageStorage{
		objects: make(map[string][]byte),
		baseURL: baseURL,
	}
}

// Put stores the object in memory
func (s *MemoryImageStorage) Put(_ context.Context, key string, _ string, body io.Reader, _ int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

// URL composes the object address from the base URL
func (s *MemoryImageStorage) URL(_ context.Context, key string) (string, error) {
	return s.baseURL + "/" + key, nil
}

// Delete removes the object; deleting a missing key is not an error
func (s *MemoryImageStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Get returns a stored object, primarily for assertions in tests
func (s *MemoryImageStorage) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}
