package core

// validation.go holds the checks that run before data reaches a Store:
//  1. Upload checks: media type / extension and size, before parsing
//  2. Input checks: admin supplier forms and the public enquiry forms
//
// Input validation collects every problem so forms can show them together.

import (
	"errors"
	"fmt"
	"mime"
	"regexp"
	"strings"
)

// DefaultMaxUploadSize is the largest CSV accepted for import (5 MiB).
const DefaultMaxUploadSize int64 = 5 * 1024 * 1024

var (
	// ErrNotCSV is returned when the upload is neither text/csv nor *.csv.
	ErrNotCSV = errors.New("invalid file type: please upload a csv file")

	// ErrFileTooLarge is returned when the upload exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrNoFile is returned when the upload form carried no file.
	ErrNoFile = errors.New("no file provided")
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// CheckUpload enforces the upload boundary: the file must declare a CSV
// media type or carry a .csv extension, and must not exceed maxSize bytes.
// A non-positive maxSize means DefaultMaxUploadSize.
func CheckUpload(fileName, contentType string, size, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}

	if !isCSVMediaType(contentType) && !strings.HasSuffix(strings.ToLower(fileName), ".csv") {
		return ErrNotCSV
	}

	if size > maxSize {
		return fmt.Errorf("%w: %d bytes exceeds %d byte limit", ErrFileTooLarge, size, maxSize)
	}
	return nil
}

func isCSVMediaType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "text/csv"
}

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// InputError carries every validation failure for one submitted entity.
type InputError struct {
	Entity string // "supplier" or "enquiry"
	Errors []ValidationError
}

func (e *InputError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		parts[i] = ve.Error()
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, "; "))
}

type inputChecker struct {
	errs []ValidationError
}

func (c *inputChecker) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		c.errs = append(c.errs, ValidationError{Field: field, Message: "required field is empty"})
	}
}

func (c *inputChecker) email(field, value string, required bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			c.required(field, value)
		}
		return
	}
	if !IsValidEmail(value) {
		c.errs = append(c.errs, ValidationError{Field: field, Value: value, Message: "invalid email address"})
	}
}

func (c *inputChecker) result(entity string) error {
	if len(c.errs) == 0 {
		return nil
	}
	return &InputError{Entity: entity, Errors: c.errs}
}

// ValidateSupplierInput checks an admin create form.
func ValidateSupplierInput(in SupplierInput) error {
	var c inputChecker
	c.required("name", in.Name)
	c.email("email", in.Email, false)
	return c.result("supplier")
}

// ValidateSupplierUpdate checks the fields present in a partial update.
func ValidateSupplierUpdate(u SupplierUpdate) error {
	var c inputChecker
	if u.Name != nil {
		c.required("name", *u.Name)
	}
	if u.Email != nil {
		c.email("email", *u.Email, false)
	}
	return c.result("supplier")
}

// ValidateContact checks the public contact form.
func ValidateContact(r ContactRequest) error {
	var c inputChecker
	c.required("first_name", r.FirstName)
	c.required("last_name", r.LastName)
	c.email("email", r.Email, true)
	c.required("message", r.Message)
	return c.result("enquiry")
}

// ValidateCatalogue checks the catalogue download form.
func ValidateCatalogue(r CatalogueRequest) error {
	var c inputChecker
	c.required("name", r.Name)
	c.email("email", r.Email, true)
	c.required("company", r.Company)
	c.required("supplier_slug", r.SupplierSlug)
	return c.result("enquiry")
}
