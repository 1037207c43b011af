package beamer

import (
	"errors"
	"fmt"
)

// Sentinel errors for the beamer package.
var (
	// ErrDomain is returned when a physical input is outside its valid
	// range, such as a non-positive beam diameter or an incidence angle at
	// or beyond 90 degrees.
	ErrDomain = errors.New("beamer: value out of domain")

	// ErrInvalidDimension is returned when a coordinate batch is not a
	// 2xN array of equal-length x and y rows.
	ErrInvalidDimension = errors.New("beamer: invalid coordinate dimension")
)

// DomainError reports an invalid physical input detected at construction.
// It matches ErrDomain with errors.Is.
type DomainError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("beamer: invalid %s %g: %s", e.Field, e.Value, e.Reason)
}

// Unwrap returns ErrDomain.
func (e *DomainError) Unwrap() error {
	return ErrDomain
}

func domainError(field string, value float64, reason string) error {
	return &DomainError{Field: field, Value: value, Reason: reason}
}
