// Package apperr holds the error kinds the calculator distinguishes.
// Callers classify them with errors.As; the HTTP layer maps them to status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError is a missing or non-positive numeric input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidUnitError is an unknown unit token or a cross-family conversion.
type InvalidUnitError struct {
	Unit string
	From string
	To   string
}

func (e *InvalidUnitError) Error() string {
	if e.Unit != "" {
		return fmt.Sprintf("unknown unit %q", e.Unit)
	}
	return fmt.Sprintf("cannot convert %s to %s", e.From, e.To)
}

// NotFoundError is a referenced catalog row or calculation that does not exist.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// CargoTooLargeError reports the first container axis the box does not fit along.
type CargoTooLargeError struct {
	Axis      string
	Cargo     float64
	Container float64
}

func (e *CargoTooLargeError) Error() string {
	return fmt.Sprintf("cargo %s %.2fcm exceeds container %s %.2fcm", e.Axis, e.Cargo, e.Axis, e.Container)
}

// PersistenceError wraps a backing store failure. It is never retried here.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Persistence wraps err for op, or returns nil when err is nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// Kind returns a stable machine-readable code for err.
func Kind(err error) string {
	var (
		validation *ValidationError
		unit       *InvalidUnitError
		notFound   *NotFoundError
		tooLarge   *CargoTooLargeError
		persist    *PersistenceError
	)
	switch {
	case errors.As(err, &validation):
		return "validation_error"
	case errors.As(err, &unit):
		return "invalid_unit"
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &tooLarge):
		return "cargo_too_large"
	case errors.As(err, &persist):
		return "persistence_error"
	default:
		return "internal_error"
	}
}

// HTTPStatus maps err to the status code the API answers with.
func HTTPStatus(err error) int {
	switch Kind(err) {
	case "validation_error", "invalid_unit":
		return http.StatusBadRequest
	case "not_found":
		return http.StatusNotFound
	case "cargo_too_large":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
