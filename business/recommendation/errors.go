package recommendation

import (
	"errors"
	"fmt"
)

var (
	// ErrMatrixNotFound is returned by a MatrixStore when nothing has been saved yet.
	// The engine turns it into an empty matrix.
	ErrMatrixNotFound = errors.New("co-occurrence matrix not found")

	// ErrCorruptMatrix means a stored matrix exists but cannot be decoded.
	ErrCorruptMatrix = errors.New("co-occurrence matrix is corrupt")

	// ErrInvalidOrder means the order history handed to Build is malformed.
	ErrInvalidOrder = errors.New("invalid order")
)

// StoreError wraps a failure of the persistence backend.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("matrix store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsStoreError reports whether err was caused by the matrix store.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
