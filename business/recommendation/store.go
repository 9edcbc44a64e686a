package recommendation

import (
	"context"
	"sync"
)

// MatrixStore persists the encoded matrix as a single blob.
//
// SaveMatrix must replace the previous blob atomically: a concurrent LoadMatrix sees either the
// old blob or the new one, never a mix. LoadMatrix returns ErrMatrixNotFound when nothing was
// ever saved.
type MatrixStore interface {
	SaveMatrix(ctx context.Context, data []byte) error
	LoadMatrix(ctx context.Context) ([]byte, error)
}

// MemoryStore keeps the blob in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) SaveMatrix(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cp := make([]byte, len(data))
	copy(cp, data)

	s.mu.Lock()
	s.data = cp
	s.mu.Unlock()

	return nil
}

func (s *MemoryStore) LoadMatrix(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, ErrMatrixNotFound
	}

	cp := make([]byte, len(s.data))
	copy(cp, s.data)
	return cp, nil
}
