package core

import (
	"errors"
	"testing"
)

func TestCheckUpload(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		contentType string
		size        int64
		maxSize     int64
		wantErr     error
	}{
		{name: "csv media type", fileName: "suppliers.txt", contentType: "text/csv", size: 10},
		{name: "media type with params", fileName: "upload", contentType: "text/csv; charset=utf-8", size: 10},
		{name: "csv extension any case", fileName: "SUPPLIERS.CSV", contentType: "application/octet-stream", size: 10},
		{name: "neither", fileName: "suppliers.xlsx", contentType: "application/vnd.ms-excel", size: 10, wantErr: ErrNotCSV},
		{name: "bad media type no extension", fileName: "data", contentType: "text/;;", size: 10, wantErr: ErrNotCSV},
		{name: "exactly at default limit", fileName: "a.csv", size: DefaultMaxUploadSize},
		{name: "over default limit", fileName: "a.csv", size: DefaultMaxUploadSize + 1, wantErr: ErrFileTooLarge},
		{name: "custom limit", fileName: "a.csv", size: 101, maxSize: 100, wantErr: ErrFileTooLarge},
		{name: "type checked before size", fileName: "a.pdf", size: DefaultMaxUploadSize * 2, wantErr: ErrNotCSV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckUpload(tt.fileName, tt.contentType, tt.size, tt.maxSize)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("CheckUpload() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckUpload() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := map[string]bool{
		"info@acme.test":      true,
		"first.last+x@a.b.io": true,
		"no-at-sign":          false,
		"a@b":                 false,
		"@acme.test":          false,
		"a b@acme.test":       false,
	}
	for in, want := range tests {
		if got := IsValidEmail(in); got != want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidateSupplierInput(t *testing.T) {
	tests := []struct {
		name       string
		in         SupplierInput
		wantFields []string
	}{
		{name: "valid", in: SupplierInput{Name: "Acme", Email: "info@acme.test"}},
		{name: "email optional", in: SupplierInput{Name: "Acme"}},
		{name: "blank name", in: SupplierInput{Name: "   "}, wantFields: []string{"name"}},
		{name: "blank name and bad email", in: SupplierInput{Email: "nope"}, wantFields: []string{"name", "email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertInputFields(t, ValidateSupplierInput(tt.in), "supplier", tt.wantFields)
		})
	}
}

func TestValidateSupplierUpdate(t *testing.T) {
	blank := ""
	bad := "x@"
	good := "Beta"

	assertInputFields(t, ValidateSupplierUpdate(SupplierUpdate{}), "supplier", nil)
	assertInputFields(t, ValidateSupplierUpdate(SupplierUpdate{Name: &good}), "supplier", nil)
	assertInputFields(t, ValidateSupplierUpdate(SupplierUpdate{Name: &blank, Email: &bad}), "supplier", []string{"name", "email"})
}

func TestValidateEnquiries(t *testing.T) {
	assertInputFields(t, ValidateContact(ContactRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.test", Message: "Hello",
	}), "enquiry", nil)

	assertInputFields(t, ValidateContact(ContactRequest{Email: "bad"}), "enquiry",
		[]string{"first_name", "last_name", "email", "message"})

	assertInputFields(t, ValidateCatalogue(CatalogueRequest{
		Name: "Ada", Email: "ada@example.test", Company: "Engines", SupplierSlug: "acme",
	}), "enquiry", nil)

	assertInputFields(t, ValidateCatalogue(CatalogueRequest{Name: "Ada"}), "enquiry",
		[]string{"email", "company", "supplier_slug"})
}

func assertInputFields(t *testing.T, err error, entity string, wantFields []string) {
	t.Helper()

	if len(wantFields) == 0 {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		return
	}

	var ie *InputError
	if !errors.As(err, &ie) {
		t.Fatalf("error %v is not an *InputError", err)
	}
	if ie.Entity != entity {
		t.Errorf("Entity = %q, want %q", ie.Entity, entity)
	}
	if len(ie.Errors) != len(wantFields) {
		t.Fatalf("got %d field errors (%v), want %v", len(ie.Errors), ie.Errors, wantFields)
	}
	for i, f := range wantFields {
		if ie.Errors[i].Field != f {
			t.Errorf("Errors[%d].Field = %q, want %q", i, ie.Errors[i].Field, f)
		}
	}
}
