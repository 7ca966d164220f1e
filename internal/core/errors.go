package core

import (
	"errors"
	"fmt"
)

// ErrDatasetNotArray is returned when the seed source body is valid JSON but not an array.
var ErrDatasetNotArray = errors.New("dataset is not a JSON array")

// FetchError reports that the seed dataset could not be retrieved or decoded.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch dataset %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// StoreError reports a failed record store operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// ValidationError describes a request parameter that could not be used as
// given. Callers currently fall back to defaults instead of rejecting.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewStoreError wraps err as a StoreError unless it is nil or already one.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}
