package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrValidation = errors.New("validation error")
	ErrIntegrity  = errors.New("integrity error")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

// ValidationError reports the fields that violated a declared constraint.
// It matches ErrValidation under errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// FieldError is a shortcut for a single-field validation failure.
func FieldError(field, message string) *ValidationError {
	v := NewValidationError()
	v.Add(field, message)
	return v
}

// Add records message for field. The first message recorded for a field wins.
func (v *ValidationError) Add(field, message string) {
	if _, ok := v.Fields[field]; ok {
		return
	}
	v.Fields[field] = message
}

func (v *ValidationError) Merge(other map[string]string) {
	for field, msg := range other {
		v.Add(field, msg)
	}
}

// OrNil returns v as an error when it holds at least one field, nil otherwise.
func (v *ValidationError) OrNil() error {
	if len(v.Fields) == 0 {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v.Fields[k])
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (v *ValidationError) Unwrap() error { return ErrValidation }

// IntegrityError wraps a store-level constraint violation.
type IntegrityError struct {
	Constraint string
	Err        error
}

func (e *IntegrityError) Error() string {
	if e.Constraint != "" {
		return "integrity error: " + e.Constraint + ": " + e.Err.Error()
	}
	return "integrity error: " + e.Err.Error()
}

func (e *IntegrityError) Is(target error) bool { return target == ErrIntegrity }

func (e *IntegrityError) Unwrap() error { return e.Err }
