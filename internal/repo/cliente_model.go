// Package repo implements the data persistence layer for the Cliente
// entity, backed by GORM. The stored row shape (ClienteModel) is owned
// exclusively by this package; the rest of the application only ever sees
// domain.Cliente values produced by the mapper.
package repo

import "time"

// ClienteModel is the stored row representation for the clientes table.
//
// numero_documento and email carry unique indexes: uniqueness is
// pre-checked at validation time, and the index is the second line of
// defense when two concurrent writers race past that check. Both are
// plain text columns; only the 255-capped fields declare a length.
type ClienteModel struct {
	ID              string    `gorm:"type:char(36);primaryKey"`
	TipoDocumento   string    `gorm:"column:tipo_documento;type:varchar(32);not null"`
	NumeroDocumento string    `gorm:"column:numero_documento;type:text;not null;uniqueIndex:ux_clientes_numero_documento"`
	RazonSocial     string    `gorm:"column:razon_social;type:varchar(255);not null"`
	Direccion       *string   `gorm:"type:varchar(255)"`
	Telefono        *string   `gorm:"type:varchar(255)"`
	Email           string    `gorm:"type:text;not null;uniqueIndex:ux_clientes_email"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the database table name for ClienteModel.
func (ClienteModel) TableName() string { return "clientes" }
