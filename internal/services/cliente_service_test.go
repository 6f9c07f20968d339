package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/marvera/go-clientes-backend/internal/domain"
	"github.com/marvera/go-clientes-backend/internal/repo"
)

// ---------- test DB + repo shim ----------

func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique DSN per call to avoid cross-test contamination
	dsn := fmt.Sprintf("file:cliente_service_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Minimal shim implementing ClienteRepo using the repo package (like router.go)
type testClienteRepo struct{}

func (testClienteRepo) Save(ctx context.Context, db *gorm.DB, c *domain.Cliente) (*domain.Cliente, error) {
	return repo.SaveCliente(ctx, db, c)
}

func (testClienteRepo) Update(ctx context.Context, db *gorm.DB, id string, fields map[string]any) (*domain.Cliente, error) {
	return repo.UpdateCliente(ctx, db, id, fields)
}

func (testClienteRepo) Exists(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	return repo.ClienteExists(ctx, db, id)
}

func (testClienteRepo) Get(ctx context.Context, db *gorm.DB, id string) (*domain.Cliente, error) {
	return repo.GetCliente(ctx, db, id)
}

func (testClienteRepo) List(ctx context.Context, db *gorm.DB) ([]domain.Cliente, error) {
	return repo.ListClientes(ctx, db)
}

func (testClienteRepo) CountByNumeroDocumento(ctx context.Context, db *gorm.DB, numero, excludeID string) (int64, error) {
	return repo.CountClientesByNumeroDocumento(ctx, db, numero, excludeID)
}

func (testClienteRepo) CountByEmail(ctx context.Context, db *gorm.DB, email, excludeID string) (int64, error) {
	return repo.CountClientesByEmail(ctx, db, email, excludeID)
}

func newService(t *testing.T) *ClienteService {
	t.Helper()
	return NewClienteService(newServiceDB(t), testClienteRepo{})
}

func strptr(s string) *string { return &s }

func validCreateInput() CreateClienteInput {
	return CreateClienteInput{
		TipoDocumento:   strptr("RUC"),
		NumeroDocumento: strptr("2012345678"),
		RazonSocial:     strptr("Acme S.A."),
		Direccion:       strptr("Av. Siempre Viva 123"),
		Telefono:        strptr("555-1234"),
		Email:           strptr("acme@example.com"),
	}
}

func countRows(t *testing.T, s *ClienteService) int {
	t.Helper()
	list, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	return len(list)
}

func violationFor(t *testing.T, err error, field string) FieldViolation {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	for _, v := range ve.Violations {
		if v.Field == field {
			return v
		}
	}
	t.Fatalf("no violation for field %q in %+v", field, ve.Violations)
	return FieldViolation{}
}

// ---------- create ----------

func TestCreate_Success(t *testing.T) {
	s := newService(t)

	c, err := s.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.ID == "" {
		t.Fatal("expected generated id")
	}
	if c.TipoDocumento != "RUC" || c.NumeroDocumento != "2012345678" ||
		c.RazonSocial != "Acme S.A." || c.Email != "acme@example.com" {
		t.Fatalf("input not echoed: %+v", c)
	}
	if c.Direccion == nil || *c.Direccion != "Av. Siempre Viva 123" ||
		c.Telefono == nil || *c.Telefono != "555-1234" {
		t.Fatalf("optional fields not echoed: %+v", c)
	}
	if !c.CreatedAt.Equal(c.UpdatedAt) {
		t.Fatalf("created_at != updated_at at creation: %v / %v", c.CreatedAt, c.UpdatedAt)
	}
}

func TestCreate_OptionalFieldsMayBeAbsent(t *testing.T) {
	s := newService(t)

	in := validCreateInput()
	in.Direccion = nil
	in.Telefono = nil
	c, err := s.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Direccion != nil || c.Telefono != nil {
		t.Fatalf("absent optionals must stay nil: %+v", c)
	}
}

func TestCreate_MissingRequiredFields(t *testing.T) {
	s := newService(t)

	_, err := s.Create(context.Background(), CreateClienteInput{})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	want := map[string]bool{"tipo_documento": false, "numero_documento": false, "razon_social": false, "email": false}
	for _, v := range ve.Violations {
		if v.Code != "required" {
			t.Errorf("field %s: code %q, want required", v.Field, v.Code)
		}
		want[v.Field] = true
	}
	for f, seen := range want {
		if !seen {
			t.Errorf("missing required violation for %s", f)
		}
	}
	if n := countRows(t, s); n != 0 {
		t.Fatalf("failed create persisted %d rows", n)
	}
}

func TestCreate_BlankCountsAsMissing(t *testing.T) {
	s := newService(t)

	in := validCreateInput()
	in.RazonSocial = strptr("   ")
	_, err := s.Create(context.Background(), in)
	if v := violationFor(t, err, "razon_social"); v.Code != "required" {
		t.Fatalf("blank razon_social: code %q, want required", v.Code)
	}
}

func TestCreate_DocumentTypeEnumeration(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	// "DNI" belongs to the update-path set, not the create-path set.
	in := validCreateInput()
	in.TipoDocumento = strptr("DNI")
	_, err := s.Create(ctx, in)
	v := violationFor(t, err, "tipo_documento")
	if v.Code != "in" {
		t.Fatalf("code %q, want in", v.Code)
	}
	if v.Param != "NI, RUC, CE, PASSAPORTE" {
		t.Fatalf("unexpected enumeration param: %q", v.Param)
	}

	// Every create-path value passes.
	for i, tipo := range domain.DocumentTypesCreate {
		in := validCreateInput()
		in.TipoDocumento = strptr(tipo)
		in.NumeroDocumento = strptr(fmt.Sprintf("num-%d", i))
		in.Email = strptr(fmt.Sprintf("u%d@example.com", i))
		if _, err := s.Create(ctx, in); err != nil {
			t.Fatalf("tipo %s rejected: %v", tipo, err)
		}
	}
}

func TestCreate_InvalidEmailFormat(t *testing.T) {
	s := newService(t)

	for _, bad := range []string{"not-an-email", "a@", "@example.com", "a b@example.com"} {
		in := validCreateInput()
		in.Email = strptr(bad)
		_, err := s.Create(context.Background(), in)
		if v := violationFor(t, err, "email"); v.Code != "email" {
			t.Errorf("email %q: code %q, want email", bad, v.Code)
		}
	}
}

func TestCreate_RazonSocialTooLong(t *testing.T) {
	s := newService(t)

	long := make([]rune, 256)
	for i := range long {
		long[i] = 'á' // multibyte on purpose: the cap is rune-based
	}
	in := validCreateInput()
	in.RazonSocial = strptr(string(long))
	_, err := s.Create(context.Background(), in)
	v := violationFor(t, err, "razon_social")
	if v.Code != "max" || v.Param != "255" {
		t.Fatalf("unexpected violation: %+v", v)
	}
}

func TestCreate_NumeroDocumentoAndEmailHaveNoLengthCap(t *testing.T) {
	s := newService(t)

	in := validCreateInput()
	in.NumeroDocumento = strptr(strings.Repeat("9", 300))
	in.Email = strptr(strings.Repeat("a", 300) + "@example.com")
	got, err := s.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("long numero_documento/email must pass: %v", err)
	}
	if got.NumeroDocumento != *in.NumeroDocumento || got.Email != *in.Email {
		t.Fatalf("stored values truncated: %+v", got)
	}
}

func TestCreate_DuplicateNumeroDocumento(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	if _, err := s.Create(ctx, validCreateInput()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	in := validCreateInput()
	in.Email = strptr("other@example.com") // only numero collides
	_, err := s.Create(ctx, in)
	if v := violationFor(t, err, "numero_documento"); v.Code != "unique" {
		t.Fatalf("code %q, want unique", v.Code)
	}
	if n := countRows(t, s); n != 1 {
		t.Fatalf("record count changed: %d", n)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	if _, err := s.Create(ctx, validCreateInput()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	in := validCreateInput()
	in.NumeroDocumento = strptr("9999") // only email collides
	_, err := s.Create(ctx, in)
	if v := violationFor(t, err, "email"); v.Code != "unique" {
		t.Fatalf("code %q, want unique", v.Code)
	}
	if n := countRows(t, s); n != 1 {
		t.Fatalf("record count changed: %d", n)
	}
}

// ---------- update ----------

func TestUpdate_PartialFields(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	got, err := s.Update(ctx, created.ID, UpdateClienteInput{RazonSocial: strptr("Acme Corp")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.RazonSocial != "Acme Corp" {
		t.Fatalf("razon_social not updated: %q", got.RazonSocial)
	}
	if got.NumeroDocumento != created.NumeroDocumento || got.Email != created.Email {
		t.Fatalf("omitted fields changed: %+v", got)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at changed: %v -> %v", created.CreatedAt, got.CreatedAt)
	}
	if !got.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("updated_at did not increase: %v -> %v", created.UpdatedAt, got.UpdatedAt)
	}
}

func TestUpdate_MissingID(t *testing.T) {
	s := newService(t)

	got, err := s.Update(context.Background(), uuid.NewString(), UpdateClienteInput{RazonSocial: strptr("X")})
	if got != nil {
		t.Fatalf("update of missing id returned a record: %+v", got)
	}
	if !errors.Is(err, ErrClienteNotFound) {
		t.Fatalf("expected ErrClienteNotFound, got %v", err)
	}
	if n := countRows(t, s); n != 0 {
		t.Fatalf("update created %d rows", n)
	}
}

func TestUpdate_InvalidPayloadOnMissingID_ReportsValidation(t *testing.T) {
	s := newService(t)

	// Rules run before the id is resolved: a bad payload against an id that
	// does not exist must surface as a validation failure, not not-found.
	_, err := s.Update(context.Background(), uuid.NewString(), UpdateClienteInput{
		TipoDocumento: strptr("XX"),
	})
	if errors.Is(err, ErrClienteNotFound) {
		t.Fatalf("validation must precede id resolution, got %v", err)
	}
	v := violationFor(t, err, "tipo_documento")
	if v.Code != "in" {
		t.Fatalf("unexpected violation: %+v", v)
	}
}

func TestUpdate_KeepingOwnValuesPassesUniqueness(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Re-supplying the record's own email and numero must not collide with itself.
	got, err := s.Update(ctx, created.ID, UpdateClienteInput{
		RazonSocial:     strptr("Acme Corp"),
		NumeroDocumento: strptr(created.NumeroDocumento),
		Email:           strptr(created.Email),
	})
	if err != nil {
		t.Fatalf("self-uniqueness rejected: %v", err)
	}
	if got.RazonSocial != "Acme Corp" {
		t.Fatalf("update did not apply: %+v", got)
	}
}

func TestUpdate_UniquenessAgainstOtherRecords(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	if _, err := s.Create(ctx, validCreateInput()); err != nil {
		t.Fatalf("seed a: %v", err)
	}
	other := validCreateInput()
	other.NumeroDocumento = strptr("777")
	other.Email = strptr("other@example.com")
	b, err := s.Create(ctx, other)
	if err != nil {
		t.Fatalf("seed b: %v", err)
	}

	_, err = s.Update(ctx, b.ID, UpdateClienteInput{Email: strptr("acme@example.com")})
	if v := violationFor(t, err, "email"); v.Code != "unique" {
		t.Fatalf("code %q, want unique", v.Code)
	}
	_, err = s.Update(ctx, b.ID, UpdateClienteInput{NumeroDocumento: strptr("2012345678")})
	if v := violationFor(t, err, "numero_documento"); v.Code != "unique" {
		t.Fatalf("code %q, want unique", v.Code)
	}
}

func TestUpdate_DocumentTypeEnumeration(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// "DNI" is accepted on the update path.
	if _, err := s.Update(ctx, created.ID, UpdateClienteInput{TipoDocumento: strptr("DNI")}); err != nil {
		t.Fatalf("DNI rejected on update: %v", err)
	}
	// "NI" (create-path spelling) is not.
	_, err = s.Update(ctx, created.ID, UpdateClienteInput{TipoDocumento: strptr("NI")})
	v := violationFor(t, err, "tipo_documento")
	if v.Code != "in" || v.Param != "DNI, RUC, CE, PASSPORTE" {
		t.Fatalf("unexpected violation: %+v", v)
	}
}

func TestUpdate_EmptyInputRefreshesNothing(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := s.Update(ctx, created.ID, UpdateClienteInput{})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.RazonSocial != created.RazonSocial || got.Email != created.Email {
		t.Fatalf("empty update mutated the record: %+v", got)
	}
}

// ---------- get / list ----------

func TestGet_MissingID(t *testing.T) {
	s := newService(t)
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrClienteNotFound) {
		t.Fatalf("expected ErrClienteNotFound, got %v", err)
	}
}

func TestGetAndList(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != created.ID || got.Email != created.Email {
		t.Fatalf("Get mismatch: %+v", got)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("unexpected list: %#v", list)
	}
}

// ---------- duplicates slipping past validation ----------

func TestIsDuplicate(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{gorm.ErrDuplicatedKey, true},
		{errors.New("UNIQUE constraint failed: clientes.email"), true},
		{errors.New("duplicate key value violates unique constraint"), true},
		{errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		if got := isDuplicate(tc.err); got != tc.want {
			t.Errorf("isDuplicate(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
