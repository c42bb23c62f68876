package store

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRecord is wrapped by validation failures on append.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrInvalidDay is returned for program days outside 1..7.
	ErrInvalidDay = errors.New("invalid program day")
)

// StorageError reports a failed key-value operation.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err came from the key-value layer.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
