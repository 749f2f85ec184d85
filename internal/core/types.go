package core

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by a Store when no supplier matches the lookup.
var ErrNotFound = errors.New("supplier not found")

// SupplierRecord is one supplier parsed out of an uploaded CSV file.
//
// Optional fields are nil when the header row had no matching column, and
// point at an empty string when the column exists but the cell was blank.
type SupplierRecord struct {
	Name        string  `json:"name"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Website     *string `json:"website,omitempty"`
	Description *string `json:"description,omitempty"`
	City        *string `json:"city,omitempty"`
	Categories  *string `json:"categories,omitempty"` // raw comma-separated text
}

// Supplier is a stored directory entry.
type Supplier struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Email       string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone       string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Website     string    `json:"website,omitempty" bson:"website,omitempty"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	City        string    `json:"city,omitempty" bson:"city,omitempty"`
	Categories  []string  `json:"categories" bson:"categories"`
	LogoURL     string    `json:"logo_url,omitempty" bson:"logo_url,omitempty"`
	Slug        string    `json:"slug" bson:"slug"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// SupplierInput is the admin form payload for creating a supplier.
type SupplierInput struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Website     string   `json:"website"`
	Description string   `json:"description"`
	City        string   `json:"city"`
	Categories  []string `json:"categories"`
	LogoURL     string   `json:"logo_url"`
}

// SupplierUpdate is a partial update. Nil fields are left unchanged.
type SupplierUpdate struct {
	Name        *string   `json:"name,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Website     *string   `json:"website,omitempty"`
	Description *string   `json:"description,omitempty"`
	City        *string   `json:"city,omitempty"`
	Categories  *[]string `json:"categories,omitempty"`
	LogoURL     *string   `json:"logo_url,omitempty"`

	// Slug is set by the service when Name changes.
	Slug *string `json:"-"`
}

// Apply copies the non-nil fields of u onto s and stamps UpdatedAt.
func (u SupplierUpdate) Apply(s *Supplier, now time.Time) {
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.Email != nil {
		s.Email = *u.Email
	}
	if u.Phone != nil {
		s.Phone = *u.Phone
	}
	if u.Website != nil {
		s.Website = *u.Website
	}
	if u.Description != nil {
		s.Description = *u.Description
	}
	if u.City != nil {
		s.City = *u.City
	}
	if u.Categories != nil {
		s.Categories = append([]string(nil), (*u.Categories)...)
	}
	if u.LogoURL != nil {
		s.LogoURL = *u.LogoURL
	}
	if u.Slug != nil {
		s.Slug = *u.Slug
	}
	s.UpdatedAt = now
}

// SupplierFilter narrows a supplier listing. Zero values match everything.
type SupplierFilter struct {
	Search     string   // case-insensitive substring of name, description or city
	Categories []string // supplier must carry at least one
	City       string   // exact match
}

// IsZero reports whether the filter matches every supplier.
func (f SupplierFilter) IsZero() bool {
	return f.Search == "" && len(f.Categories) == 0 && f.City == ""
}

// SortOption selects the ordering of a supplier listing.
type SortOption string

const (
	SortNameAsc  SortOption = "name-asc"
	SortNameDesc SortOption = "name-desc"
	SortNewest   SortOption = "newest"
	SortOldest   SortOption = "oldest"
	SortCityAsc  SortOption = "city-asc"
	SortCityDesc SortOption = "city-desc"
)

// DefaultSort is used when no sort is requested.
const DefaultSort = SortNameAsc

// PageRequest selects one page of a listing. Page is 1-based.
type PageRequest struct {
	Page  int
	Limit int
}

// Page is one page of results plus the numbers a pager needs.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int   `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	Start      int   `json:"start"` // 1-based index of the first item, 0 when empty
	End        int   `json:"end"`
	Visible    []int `json:"visible_pages"` // 0 marks an ellipsis
}

// LeadKind distinguishes the public enquiry forms.
type LeadKind string

const (
	LeadContact   LeadKind = "contact"
	LeadCatalogue LeadKind = "catalogue"
)

// ContactRequest is the public "send us a message" form.
type ContactRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Company      string `json:"company"`
	Message      string `json:"message"`
	OptIn        bool   `json:"opt_in"`
	SupplierSlug string `json:"supplier_slug,omitempty"`
}

// CatalogueRequest is the gated catalogue download form on a supplier page.
type CatalogueRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Company      string `json:"company"`
	Phone        string `json:"phone"`
	SupplierSlug string `json:"supplier_slug"`
}

// Lead is a stored enquiry from either public form.
type Lead struct {
	ID           string    `json:"id" bson:"_id"`
	Kind         LeadKind  `json:"kind" bson:"kind"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Company      string    `json:"company,omitempty" bson:"company,omitempty"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Message      string    `json:"message,omitempty" bson:"message,omitempty"`
	OptIn        bool      `json:"opt_in" bson:"opt_in"`
	SupplierSlug string    `json:"supplier_slug,omitempty" bson:"supplier_slug,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Store is the persistence boundary for suppliers and leads.
// Implementations must be safe for concurrent use.
type Store interface {
	List(ctx context.Context, filter SupplierFilter) ([]Supplier, error)
	Get(ctx context.Context, id string) (Supplier, error)
	GetBySlug(ctx context.Context, slug string) (Supplier, error)
	Create(ctx context.Context, s Supplier) (Supplier, error)
	Update(ctx context.Context, id string, u SupplierUpdate) (Supplier, error)
	Delete(ctx context.Context, id string) error
	BulkInsert(ctx context.Context, suppliers []Supplier) ([]Supplier, error)
	SaveLead(ctx context.Context, lead Lead) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
