// Package domain defines the Cliente entity, the storage-independent
// representation of a customer record. The entity carries no persistence
// tags; translation to and from the stored row shape lives in the repo
// package's mapper.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document type sets accepted by the API. The create and update paths
// historically accept different spellings (NI vs DNI, PASSAPORTE vs
// PASSPORTE); both lists are preserved verbatim until the canonical set
// is confirmed.
// TODO: confirm with the billing team whether NI/PASSAPORTE on create
// should be folded into DNI/PASSPORTE.
var (
	DocumentTypesCreate = []string{"NI", "RUC", "CE", "PASSAPORTE"}
	DocumentTypesUpdate = []string{"DNI", "RUC", "CE", "PASSPORTE"}
)

// Cliente represents a customer record.
//
// Fields:
//   - ID: stable UUID, assigned once at creation and never rewritten.
//   - TipoDocumento: document type, restricted to a fixed set per operation.
//   - NumeroDocumento: document number, unique across all clientes.
//   - RazonSocial: legal/business name.
//   - Direccion / Telefono: optional contact data (nil when absent).
//   - Email: contact email, unique across all clientes.
//   - CreatedAt / UpdatedAt: lifecycle timestamps; equal at creation,
//     UpdatedAt is refreshed on every successful update.
//
// A Cliente is a transient projection: it is constructed fresh on every
// read and holds no behavior beyond field access.
type Cliente struct {
	ID              string
	TipoDocumento   string
	NumeroDocumento string
	RazonSocial     string
	Direccion       *string
	Telefono        *string
	Email           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewCliente builds a fresh entity for the create path: it assigns a new
// UUID and identical UTC creation/update timestamps. Reconstruction from a
// stored row goes through the repo mapper instead.
func NewCliente(tipoDocumento, numeroDocumento, razonSocial string, direccion, telefono *string, email string) *Cliente {
	now := time.Now().UTC()
	return &Cliente{
		ID:              uuid.NewString(),
		TipoDocumento:   tipoDocumento,
		NumeroDocumento: numeroDocumento,
		RazonSocial:     razonSocial,
		Direccion:       direccion,
		Telefono:        telefono,
		Email:           email,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// ValidDocumentType reports whether value belongs to the given set.
func ValidDocumentType(value string, set []string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}
