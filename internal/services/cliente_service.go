// ClienteService implements the create/update/fetch/list operations for
// the Cliente resource. Each operation is a bounded synchronous sequence:
// evaluate the declared rules, construct or patch the entity, delegate to
// the repository. Validation is entirely the rule set's responsibility;
// the operations add no further business checks.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/marvera/go-clientes-backend/internal/domain"
	"github.com/marvera/go-clientes-backend/internal/repo"
)

// ClienteRepo defines the repository contract required by ClienteService.
// Implementations are responsible for persistence of the cliente aggregate;
// the delete operation is deliberately absent (it is not part of the live
// contract).
type ClienteRepo interface {
	// Save persists a new entity and returns it as stored.
	Save(ctx context.Context, db *gorm.DB, c *domain.Cliente) (*domain.Cliente, error)

	// Update applies a partial column map to an existing record. It returns
	// repo.ErrNotFound when the id does not exist and never creates a row.
	Update(ctx context.Context, db *gorm.DB, id string, fields map[string]any) (*domain.Cliente, error)

	// Exists reports whether a record with the given id exists.
	Exists(ctx context.Context, db *gorm.DB, id string) (bool, error)

	// Get fetches a record by id (repo.ErrNotFound when missing).
	Get(ctx context.Context, db *gorm.DB, id string) (*domain.Cliente, error)

	// List returns all records, most recent first.
	List(ctx context.Context, db *gorm.DB) ([]domain.Cliente, error)

	// CountByNumeroDocumento counts records holding the document number,
	// optionally excluding one record by id.
	CountByNumeroDocumento(ctx context.Context, db *gorm.DB, numero, excludeID string) (int64, error)

	// CountByEmail counts records holding the email, optionally excluding
	// one record by id.
	CountByEmail(ctx context.Context, db *gorm.DB, email, excludeID string) (int64, error)
}

// ClienteService provides the cliente operations. It owns the GORM handle
// and a repository; there is no ambient persistence access anywhere else.
type ClienteService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the cliente repository used by this service.
	Repo ClienteRepo
}

// NewClienteService constructs a ClienteService.
func NewClienteService(db *gorm.DB, r ClienteRepo) *ClienteService {
	return &ClienteService{DB: db, Repo: r}
}

// CreateClienteInput carries the create payload. Pointer fields
// distinguish "absent" from "empty"; only Direccion and Telefono may be
// legitimately absent.
type CreateClienteInput struct {
	TipoDocumento   *string
	NumeroDocumento *string
	RazonSocial     *string
	Direccion       *string
	Telefono        *string
	Email           *string
}

// UpdateClienteInput carries the partial update payload; every field is
// optional and a nil field is left unchanged.
type UpdateClienteInput struct {
	TipoDocumento   *string
	NumeroDocumento *string
	RazonSocial     *string
	Direccion       *string
	Telefono        *string
	Email           *string
}

// Create validates the input, builds a fresh entity (new UUID, identical
// creation/update timestamps) and persists it. On rule failure it returns
// a *ValidationError and writes nothing.
func (s *ClienteService) Create(ctx context.Context, in CreateClienteInput) (*domain.Cliente, error) {
	violations, err := s.validateCreate(ctx, in)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	c := domain.NewCliente(
		*in.TipoDocumento,
		*in.NumeroDocumento,
		*in.RazonSocial,
		in.Direccion,
		in.Telefono,
		*in.Email,
	)

	saved, err := s.Repo.Save(ctx, s.DB, c)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicateCliente
		}
		return nil, err
	}
	return saved, nil
}

// Update validates the partial input and applies only the supplied fields
// to the record identified by id. Uniqueness checks exclude the record's
// own row. Returns ErrClienteNotFound when the id does not exist; it never
// creates a record.
func (s *ClienteService) Update(ctx context.Context, id string, in UpdateClienteInput) (*domain.Cliente, error) {
	// Rules run before the target is resolved: an invalid payload against a
	// missing id reports the validation failure, not the missing record.
	violations, err := s.validateUpdate(ctx, id, in)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	ok, err := s.Repo.Exists(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrClienteNotFound
	}

	fields := map[string]any{}
	if in.TipoDocumento != nil {
		fields["tipo_documento"] = *in.TipoDocumento
	}
	if in.NumeroDocumento != nil {
		fields["numero_documento"] = *in.NumeroDocumento
	}
	if in.RazonSocial != nil {
		fields["razon_social"] = *in.RazonSocial
	}
	if in.Direccion != nil {
		fields["direccion"] = *in.Direccion
	}
	if in.Telefono != nil {
		fields["telefono"] = *in.Telefono
	}
	if in.Email != nil {
		fields["email"] = *in.Email
	}

	updated, err := s.Repo.Update(ctx, s.DB, id, fields)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrClienteNotFound
		case isDuplicate(err):
			return nil, ErrDuplicateCliente
		}
		return nil, err
	}
	return updated, nil
}

// Get fetches a single cliente by id.
func (s *ClienteService) Get(ctx context.Context, id string) (*domain.Cliente, error) {
	c, err := s.Repo.Get(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrClienteNotFound
		}
		return nil, err
	}
	return c, nil
}

// List returns all clientes.
func (s *ClienteService) List(ctx context.Context) ([]domain.Cliente, error) {
	return s.Repo.List(ctx, s.DB)
}

// isDuplicate detects unique-constraint violations across drivers that may
// not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
