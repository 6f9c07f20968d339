package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func strptr(s string) *string { return &s }

func TestNewCliente_AssignsIDAndTimestamps(t *testing.T) {
	start := time.Now().UTC().Add(-time.Second)

	c := NewCliente("RUC", "2012345678", "Acme S.A.", strptr("Av. Siempre Viva 123"), strptr("555-1234"), "acme@example.com")

	if c.ID == "" {
		t.Fatal("expected a generated ID")
	}
	if _, err := uuid.Parse(c.ID); err != nil {
		t.Fatalf("ID is not a UUID: %q (%v)", c.ID, err)
	}
	if !c.CreatedAt.Equal(c.UpdatedAt) {
		t.Fatalf("CreatedAt (%v) != UpdatedAt (%v) at creation", c.CreatedAt, c.UpdatedAt)
	}
	if c.CreatedAt.Before(start) {
		t.Fatalf("CreatedAt seems unset: %v", c.CreatedAt)
	}
	if c.TipoDocumento != "RUC" || c.NumeroDocumento != "2012345678" || c.RazonSocial != "Acme S.A." {
		t.Fatalf("unexpected fields: %+v", c)
	}
	if c.Direccion == nil || *c.Direccion != "Av. Siempre Viva 123" {
		t.Fatalf("unexpected Direccion: %v", c.Direccion)
	}
	if c.Email != "acme@example.com" {
		t.Fatalf("unexpected Email: %q", c.Email)
	}
}

func TestNewCliente_UniqueIDs(t *testing.T) {
	a := NewCliente("RUC", "1", "A", nil, nil, "a@example.com")
	b := NewCliente("RUC", "2", "B", nil, nil, "b@example.com")
	if a.ID == b.ID {
		t.Fatalf("two fresh entities share the ID %q", a.ID)
	}
}

func TestNewCliente_OptionalFieldsNil(t *testing.T) {
	c := NewCliente("CE", "123", "Acme", nil, nil, "a@example.com")
	if c.Direccion != nil || c.Telefono != nil {
		t.Fatalf("optional fields should stay nil: %+v", c)
	}
}

func TestValidDocumentType(t *testing.T) {
	cases := []struct {
		value string
		set   []string
		want  bool
	}{
		{"NI", DocumentTypesCreate, true},
		{"RUC", DocumentTypesCreate, true},
		{"PASSAPORTE", DocumentTypesCreate, true},
		{"DNI", DocumentTypesCreate, false}, // update-path spelling
		{"DNI", DocumentTypesUpdate, true},
		{"PASSPORTE", DocumentTypesUpdate, true},
		{"NI", DocumentTypesUpdate, false},
		{"", DocumentTypesCreate, false},
		{"ruc", DocumentTypesCreate, false}, // case-sensitive
	}
	for _, tc := range cases {
		if got := ValidDocumentType(tc.value, tc.set); got != tc.want {
			t.Errorf("ValidDocumentType(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
