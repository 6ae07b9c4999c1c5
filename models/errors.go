package models

import (
	"errors"
	"fmt"
)

var (
	// ErrSchema matches any *SchemaError with errors.Is.
	ErrSchema = errors.New("schema error")
	// ErrDataUnavailable matches any *DataUnavailableError with errors.Is.
	ErrDataUnavailable = errors.New("data unavailable")
)

// SchemaError reports a required column missing from the dataset.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: required column %q is missing", e.Column)
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// DataUnavailableError reports that the listings source could not be read.
type DataUnavailableError struct {
	Source string
	Err    error
}

func (e *DataUnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("data unavailable: %s", e.Source)
	}
	return fmt.Sprintf("data unavailable: %s: %v", e.Source, e.Err)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}

func (e *DataUnavailableError) Is(target error) bool {
	return target == ErrDataUnavailable
}
