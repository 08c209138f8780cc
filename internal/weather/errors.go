package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingData matches every MissingDataError.
	ErrMissingData = errors.New("missing weather data")
	// ErrInvalidData matches every ValidationError.
	ErrInvalidData = errors.New("invalid weather data")
)

// MissingDataError reports absent payload keys or an empty series.
type MissingDataError struct {
	Reason string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingData, e.Reason)
}

func (e *MissingDataError) Is(target error) bool {
	return target == ErrMissingData
}

// ValidationError reports a malformed sample. Index is -1 when the problem
// concerns the series as a whole.
type ValidationError struct {
	Index  int
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v: %s", ErrInvalidData, e.Reason)
	}
	return fmt.Sprintf("%v: sample %d (%q): %s", ErrInvalidData, e.Index, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidData
}
