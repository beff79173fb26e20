package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotLoaded is returned when a ledger operation requires a loaded
	// roster and none has been loaded yet.
	ErrNotLoaded = errors.New("ledger not loaded")

	// ErrEmptyPeriod is returned when a ledger is configured with no days.
	ErrEmptyPeriod = errors.New("reporting period has no days")

	// ErrRowOutOfRange is returned for a row index outside the roster.
	ErrRowOutOfRange = errors.New("row index out of range")

	// ErrDayOutOfRange is returned for a day index outside the period.
	ErrDayOutOfRange = errors.New("day index out of range")
)

// IndexError carries the offending index alongside the sentinel.
type IndexError struct {
	Kind  string // "row" or "day"
	Index int
	Limit int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0,%d)", e.Kind, e.Index, e.Limit)
}

func (e *IndexError) Unwrap() error {
	if e.Kind == "row" {
		return ErrRowOutOfRange
	}
	return ErrDayOutOfRange
}
