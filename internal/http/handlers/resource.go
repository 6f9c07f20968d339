// Outbound presentation for the cliente resource. The projection
// whitelists exactly the nine documented keys; nothing else ever leaves
// through this shape.
package handlers

import (
	"time"

	"github.com/marvera/go-clientes-backend/internal/domain"
)

// timestampLayout is the wire format for created_at / updated_at.
const timestampLayout = "2006-01-02 15:04:05"

// ClienteResource is the response record for a single cliente.
type ClienteResource struct {
	ID              string  `json:"id" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	TipoDocumento   string  `json:"tipo_documento" example:"RUC"`
	NumeroDocumento string  `json:"numero_documento" example:"2012345678"`
	RazonSocial     string  `json:"razon_social" example:"Acme S.A."`
	Direccion       *string `json:"direccion" example:"Av. Siempre Viva 123"`
	Telefono        *string `json:"telefono" example:"555-1234"`
	Email           string  `json:"email" example:"acme@example.com"`
	CreatedAt       *string `json:"created_at" example:"2025-03-01 12:30:45"`
	UpdatedAt       *string `json:"updated_at" example:"2025-03-01 12:30:45"`
}

// NewClienteResource projects an entity onto the response shape.
func NewClienteResource(c *domain.Cliente) ClienteResource {
	return ClienteResource{
		ID:              c.ID,
		TipoDocumento:   c.TipoDocumento,
		NumeroDocumento: c.NumeroDocumento,
		RazonSocial:     c.RazonSocial,
		Direccion:       c.Direccion,
		Telefono:        c.Telefono,
		Email:           c.Email,
		CreatedAt:       formatTimestamp(c.CreatedAt),
		UpdatedAt:       formatTimestamp(c.UpdatedAt),
	}
}

// NewClienteCollection projects a slice of entities; it always returns a
// non-nil slice so an empty list serializes as [] rather than null.
func NewClienteCollection(cs []domain.Cliente) []ClienteResource {
	out := make([]ClienteResource, 0, len(cs))
	for i := range cs {
		out = append(out, NewClienteResource(&cs[i]))
	}
	return out
}

// formatTimestamp renders t as "YYYY-MM-DD HH:MM:SS", or nil when the
// timestamp was never set.
func formatTimestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(timestampLayout)
	return &s
}
