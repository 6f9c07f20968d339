package repo

import "github.com/marvera/go-clientes-backend/internal/domain"

// ToDomain reconstructs a Cliente entity from its stored row, including
// the storage-assigned id and timestamps. The conversion is lossless for
// all fields.
func ToDomain(m *ClienteModel) *domain.Cliente {
	return &domain.Cliente{
		ID:              m.ID,
		TipoDocumento:   m.TipoDocumento,
		NumeroDocumento: m.NumeroDocumento,
		RazonSocial:     m.RazonSocial,
		Direccion:       m.Direccion,
		Telefono:        m.Telefono,
		Email:           m.Email,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ToModel projects an entity onto the row shape for insertion: the id and
// the six business fields. Timestamps are left zero so that storage
// assigns them.
func ToModel(c *domain.Cliente) *ClienteModel {
	return &ClienteModel{
		ID:              c.ID,
		TipoDocumento:   c.TipoDocumento,
		NumeroDocumento: c.NumeroDocumento,
		RazonSocial:     c.RazonSocial,
		Direccion:       c.Direccion,
		Telefono:        c.Telefono,
		Email:           c.Email,
	}
}
