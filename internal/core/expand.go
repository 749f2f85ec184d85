package core

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases name and replaces every run of characters outside
// [a-z0-9] with a single hyphen. Leading and trailing hyphens are kept.
func Slugify(name string) string {
	return nonAlnumRun.ReplaceAllString(strings.ToLower(name), "-")
}

// SplitCategories expands a raw comma-separated category cell.
// Pieces are trimmed and empty pieces dropped; nil input yields an empty slice.
func SplitCategories(raw *string) []string {
	out := []string{}
	if raw == nil {
		return out
	}
	for _, part := range strings.Split(*raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NewID returns a fresh supplier identifier.
func NewID() string {
	return uuid.New().String()
}

// ExpandRecord materializes a parsed record into a storable Supplier:
// it assigns an id, derives the slug, expands categories and stamps both
// timestamps with now.
func ExpandRecord(rec SupplierRecord, now time.Time, newID func() string) Supplier {
	if newID == nil {
		newID = NewID
	}
	return Supplier{
		ID:          newID(),
		Name:        rec.Name,
		Email:       deref(rec.Email),
		Phone:       deref(rec.Phone),
		Website:     deref(rec.Website),
		Description: deref(rec.Description),
		City:        deref(rec.City),
		Categories:  SplitCategories(rec.Categories),
		Slug:        Slugify(rec.Name),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ExpandRecords applies ExpandRecord to every record, keeping order.
func ExpandRecords(recs []SupplierRecord, now time.Time, newID func() string) []Supplier {
	out := make([]Supplier, len(recs))
	for i, rec := range recs {
		out[i] = ExpandRecord(rec, now, newID)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
