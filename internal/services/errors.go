// Package services implements the application operations for the Cliente
// resource. This file centralizes service-level error values and the
// structured validation failure type so that handlers can translate them
// into HTTP results consistently.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrClienteNotFound indicates that the targeted cliente does not exist.
	// Handlers translate it into the structured not-found response; it is
	// never raised for validation failures.
	ErrClienteNotFound = errors.New("cliente not found")

	// ErrDuplicateCliente is returned when a write slips past the uniqueness
	// pre-checks and hits the numero_documento/email unique indexes, i.e.
	// two writers raced. The second writer is rejected.
	ErrDuplicateCliente = errors.New("cliente conflicts with an existing record")
)

// FieldViolation describes a single failed rule on one input field.
// Code names the rule ("required", "in", "max", "email", "unique") and
// Param carries the rule's argument when it has one (the allowed values,
// the length cap). Messages are rendered at the transport layer so they
// can be localized per request.
type FieldViolation struct {
	Field string
	Code  string
	Param string
}

// ValidationError aggregates every violation found for one request. The
// operation it guards never runs when this error is returned.
type ValidationError struct {
	Violations []FieldViolation
}

// Error summarizes the failure; the per-field details live in Violations.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Violations))
}
