// Repository functions for the Cliente entity.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. Every row leaving this package is
// translated to a domain.Cliente via the mapper.
//
// Error semantics:
//   - When a cliente is not found, lookup functions return ErrNotFound
//     (an alias of gorm.ErrRecordNotFound).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/marvera/go-clientes-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist. It
// aliases gorm.ErrRecordNotFound for consistency across the service layer
// and handlers; it is also the Go rendering of the repository contract's
// "absent result" for updates against a missing id.
var ErrNotFound = gorm.ErrRecordNotFound

// SaveCliente persists a new entity and returns it as stored: the row is
// re-read after the insert so storage-assigned timestamps are reflected
// back. The id comes from the entity; timestamps are left to GORM.
func SaveCliente(ctx context.Context, db *gorm.DB, c *domain.Cliente) (*domain.Cliente, error) {
	m := ToModel(c)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}

	var fresh ClienteModel
	if err := db.WithContext(ctx).First(&fresh, "id = ?", m.ID).Error; err != nil {
		return nil, err
	}
	return ToDomain(&fresh), nil
}

// UpdateCliente applies a partial column update to the cliente identified
// by id. Only the supplied columns change; UpdatedAt is refreshed by GORM.
// Returns ErrNotFound when the id does not exist; it never creates a row.
func UpdateCliente(ctx context.Context, db *gorm.DB, id string, fields map[string]any) (*domain.Cliente, error) {
	var m ClienteModel
	if err := db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		if err := db.WithContext(ctx).Model(&m).Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	var fresh ClienteModel
	if err := db.WithContext(ctx).First(&fresh, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return ToDomain(&fresh), nil
}

// ClienteExists reports whether a cliente with the given id exists,
// without materializing the row.
func ClienteExists(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&ClienteModel{}).
		Where("id = ?", id).
		Count(&n).Error
	return n > 0, err
}

// GetCliente fetches a single cliente by id, or ErrNotFound if missing.
func GetCliente(ctx context.Context, db *gorm.DB, id string) (*domain.Cliente, error) {
	var m ClienteModel
	if err := db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return ToDomain(&m), nil
}

// ListClientes returns all clientes ordered by creation time descending
// (most recent first). It returns an empty slice when the table is empty.
func ListClientes(ctx context.Context, db *gorm.DB) ([]domain.Cliente, error) {
	var rows []ClienteModel
	err := db.WithContext(ctx).
		Order("created_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Cliente, 0, len(rows))
	for i := range rows {
		out = append(out, *ToDomain(&rows[i]))
	}
	return out, nil
}

// CountClientesByNumeroDocumento counts clientes holding the given
// document number. A non-empty excludeID leaves that record out of the
// count, so an update keeping its own value does not collide with itself.
func CountClientesByNumeroDocumento(ctx context.Context, db *gorm.DB, numero, excludeID string) (int64, error) {
	q := db.WithContext(ctx).
		Model(&ClienteModel{}).
		Where("numero_documento = ?", numero)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

// CountClientesByEmail counts clientes holding the given email, optionally
// excluding one record by id (see CountClientesByNumeroDocumento).
func CountClientesByEmail(ctx context.Context, db *gorm.DB, email, excludeID string) (int64, error) {
	q := db.WithContext(ctx).
		Model(&ClienteModel{}).
		Where("email = ?", email)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

// ClientesStats returns aggregate metadata for the clientes table: the
// total number of rows and the maximum UpdatedAt among them. Used by the
// HTTP layer for ETag generation on the list endpoint. When the table is
// empty the count is 0 and maxUpdatedAt is nil.
func ClientesStats(ctx context.Context, db *gorm.DB) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&ClienteModel{})

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
