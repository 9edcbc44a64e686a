package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"myShopCart/business/recommendation"
)

// MatrixFileStore keeps the encoded matrix in a single file on local disk.
type MatrixFileStore struct {
	path string
}

func NewMatrixFileStore(path string) *MatrixFileStore {
	return &MatrixFileStore{path: path}
}

func (s *MatrixFileStore) Path() string {
	return s.path
}

// SaveMatrix writes data to a temp file next to the target and renames it into place,
// so readers never observe a half-written matrix.
func (s *MatrixFileStore) SaveMatrix(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create matrix directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp matrix file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	_ = tmp.Chmod(0o644)

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write matrix: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync matrix: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close matrix file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace matrix file: %w", err)
	}

	return nil
}

func (s *MatrixFileStore) LoadMatrix(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, recommendation.ErrMatrixNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read matrix file: %w", err)
	}

	return data, nil
}
