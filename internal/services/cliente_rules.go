// Rule sets for the create and update operations. These are explicit
// predicates evaluated before an operation runs: field presence, format,
// length caps, enumeration membership, and uniqueness pre-checks against
// the repository. They return structured violations, never panic and never
// throw; a violation list is the whole outcome.
//
// The two paths accept different document-type sets on purpose (see
// domain.DocumentTypesCreate / DocumentTypesUpdate). Uniqueness on the
// update path excludes the target's own row so a record keeping its value
// does not collide with itself.
package services

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/marvera/go-clientes-backend/internal/domain"
)

// maxFieldLen caps razon_social, direccion and telefono by rune length.
// numero_documento and email carry no length rule; only presence, format
// and uniqueness apply to them.
const maxFieldLen = 255

// validate is the shared format validator (email rule). validator.Validate
// is safe for concurrent use.
var validate = validator.New()

func validEmail(v string) bool {
	return validate.Var(v, "email") == nil
}

// present reports whether a pointer field was supplied with a non-blank
// value. Required rules treat blank the same as absent.
func present(p *string) bool {
	return p != nil && strings.TrimSpace(*p) != ""
}

func tooLong(v string) bool {
	return utf8.RuneCountInString(v) > maxFieldLen
}

var maxParam = strconv.Itoa(maxFieldLen)

// validateCreate evaluates the create rule set. The error return carries
// infrastructure failures from the uniqueness queries only; rule outcomes
// are the violation list.
func (s *ClienteService) validateCreate(ctx context.Context, in CreateClienteInput) ([]FieldViolation, error) {
	var out []FieldViolation

	switch {
	case !present(in.TipoDocumento):
		out = append(out, FieldViolation{Field: "tipo_documento", Code: "required"})
	case !domain.ValidDocumentType(*in.TipoDocumento, domain.DocumentTypesCreate):
		out = append(out, FieldViolation{
			Field: "tipo_documento",
			Code:  "in",
			Param: strings.Join(domain.DocumentTypesCreate, ", "),
		})
	}

	switch {
	case !present(in.NumeroDocumento):
		out = append(out, FieldViolation{Field: "numero_documento", Code: "required"})
	default:
		n, err := s.Repo.CountByNumeroDocumento(ctx, s.DB, *in.NumeroDocumento, "")
		if err != nil {
			return nil, err
		}
		if n > 0 {
			out = append(out, FieldViolation{Field: "numero_documento", Code: "unique"})
		}
	}

	switch {
	case !present(in.RazonSocial):
		out = append(out, FieldViolation{Field: "razon_social", Code: "required"})
	case tooLong(*in.RazonSocial):
		out = append(out, FieldViolation{Field: "razon_social", Code: "max", Param: maxParam})
	}

	if in.Direccion != nil && tooLong(*in.Direccion) {
		out = append(out, FieldViolation{Field: "direccion", Code: "max", Param: maxParam})
	}
	if in.Telefono != nil && tooLong(*in.Telefono) {
		out = append(out, FieldViolation{Field: "telefono", Code: "max", Param: maxParam})
	}

	switch {
	case !present(in.Email):
		out = append(out, FieldViolation{Field: "email", Code: "required"})
	case !validEmail(*in.Email):
		out = append(out, FieldViolation{Field: "email", Code: "email"})
	default:
		n, err := s.Repo.CountByEmail(ctx, s.DB, *in.Email, "")
		if err != nil {
			return nil, err
		}
		if n > 0 {
			out = append(out, FieldViolation{Field: "email", Code: "unique"})
		}
	}

	return out, nil
}

// validateUpdate evaluates the partial-update rule set: every rule fires
// only when its field was supplied, and uniqueness excludes the record
// identified by id.
func (s *ClienteService) validateUpdate(ctx context.Context, id string, in UpdateClienteInput) ([]FieldViolation, error) {
	var out []FieldViolation

	if in.TipoDocumento != nil && !domain.ValidDocumentType(*in.TipoDocumento, domain.DocumentTypesUpdate) {
		out = append(out, FieldViolation{
			Field: "tipo_documento",
			Code:  "in",
			Param: strings.Join(domain.DocumentTypesUpdate, ", "),
		})
	}

	if in.NumeroDocumento != nil {
		n, err := s.Repo.CountByNumeroDocumento(ctx, s.DB, *in.NumeroDocumento, id)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			out = append(out, FieldViolation{Field: "numero_documento", Code: "unique"})
		}
	}

	if in.RazonSocial != nil && tooLong(*in.RazonSocial) {
		out = append(out, FieldViolation{Field: "razon_social", Code: "max", Param: maxParam})
	}
	if in.Direccion != nil && tooLong(*in.Direccion) {
		out = append(out, FieldViolation{Field: "direccion", Code: "max", Param: maxParam})
	}
	if in.Telefono != nil && tooLong(*in.Telefono) {
		out = append(out, FieldViolation{Field: "telefono", Code: "max", Param: maxParam})
	}

	if in.Email != nil {
		switch {
		case !validEmail(*in.Email):
			out = append(out, FieldViolation{Field: "email", Code: "email"})
		default:
			n, err := s.Repo.CountByEmail(ctx, s.DB, *in.Email, id)
			if err != nil {
				return nil, err
			}
			if n > 0 {
				out = append(out, FieldViolation{Field: "email", Code: "unique"})
			}
		}
	}

	return out, nil
}
