package core

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
)

// ImportTimeout is the maximum duration for parsing or inserting one import.
var ImportTimeout = 2 * time.Minute

// DefaultFeaturedCount is how many suppliers the homepage features.
const DefaultFeaturedCount = 3

// recentCount is how many recently added suppliers Stats reports.
const recentCount = 5

// ServiceOptions tunes a Service. Zero values take the package defaults.
type ServiceOptions struct {
	MaxUploadSize        int64
	MaxConcurrentImports int
	ImportWait           time.Duration
	AuditCapacity        int
}

// Service provides the business logic for the supplier directory.
type Service struct {
	store   Store
	limiter *ImportLimiter
	audit   *AuditLog

	maxUploadSize int64
	now           func() time.Time
	newID         func() string
}

// NewService creates a new Service on top of store.
func NewService(store Store, opts ServiceOptions) *Service {
	maxUpload := opts.MaxUploadSize
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadSize
	}
	return &Service{
		store:         store,
		limiter:       NewImportLimiter(opts.MaxConcurrentImports, opts.ImportWait),
		audit:         NewAuditLog(opts.AuditCapacity),
		maxUploadSize: maxUpload,
		now:           time.Now,
		newID:         NewID,
	}
}

// Store returns the underlying store.
func (s *Service) Store() Store { return s.store }

// Limiter returns the import limiter, for health reporting and shutdown.
func (s *Service) Limiter() *ImportLimiter { return s.limiter }

// Audit returns the audit trail.
func (s *Service) Audit() *AuditLog { return s.audit }

// MaxUploadSize returns the upload size limit in bytes.
func (s *Service) MaxUploadSize() int64 { return s.maxUploadSize }

// =============================================================================
// Public catalogue
// =============================================================================

// ListSuppliers filters, sorts and pages the directory.
func (s *Service) ListSuppliers(ctx context.Context, filter SupplierFilter, opt SortOption, req PageRequest) (Page[Supplier], error) {
	suppliers, err := s.store.List(ctx, filter)
	if err != nil {
		return Page[Supplier]{}, fmt.Errorf("list suppliers: %w", err)
	}
	SortSuppliers(suppliers, opt)
	return Paginate(suppliers, req), nil
}

// Featured returns the first n suppliers in store order.
func (s *Service) Featured(ctx context.Context, n int) ([]Supplier, error) {
	if n <= 0 {
		n = DefaultFeaturedCount
	}
	suppliers, err := s.store.List(ctx, SupplierFilter{})
	if err != nil {
		return nil, fmt.Errorf("featured suppliers: %w", err)
	}
	if len(suppliers) > n {
		suppliers = suppliers[:n]
	}
	return suppliers, nil
}

// Categories returns every distinct category, sorted.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	suppliers, err := s.store.List(ctx, SupplierFilter{})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	seen := make(map[string]struct{})
	for _, sup := range suppliers {
		for _, c := range sup.Categories {
			seen[c] = struct{}{}
		}
	}
	return sortedKeys(seen), nil
}

// Cities returns every distinct non-empty city, sorted.
func (s *Service) Cities(ctx context.Context) ([]string, error) {
	suppliers, err := s.store.List(ctx, SupplierFilter{})
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	seen := make(map[string]struct{})
	for _, sup := range suppliers {
		if sup.City != "" {
			seen[sup.City] = struct{}{}
		}
	}
	return sortedKeys(seen), nil
}

// SupplierBySlug looks up a supplier page. Returns ErrNotFound when absent.
func (s *Service) SupplierBySlug(ctx context.Context, slug string) (Supplier, error) {
	sup, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		return Supplier{}, fmt.Errorf("get supplier %q: %w", slug, err)
	}
	return sup, nil
}

// SupplierByID looks up a supplier by id. Returns ErrNotFound when absent.
func (s *Service) SupplierByID(ctx context.Context, id string) (Supplier, error) {
	sup, err := s.store.Get(ctx, id)
	if err != nil {
		return Supplier{}, fmt.Errorf("get supplier %s: %w", id, err)
	}
	return sup, nil
}

// SubmitContact validates and stores a contact form enquiry.
func (s *Service) SubmitContact(ctx context.Context, req ContactRequest) (Lead, error) {
	if err := ValidateContact(req); err != nil {
		return Lead{}, err
	}
	lead := Lead{
		ID:           s.newID(),
		Kind:         LeadContact,
		Name:         strings.TrimSpace(req.FirstName + " " + req.LastName),
		Email:        strings.TrimSpace(req.Email),
		Company:      req.Company,
		Message:      req.Message,
		OptIn:        req.OptIn,
		SupplierSlug: req.SupplierSlug,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.SaveLead(ctx, lead); err != nil {
		return Lead{}, fmt.Errorf("save contact: %w", err)
	}
	return lead, nil
}

// SubmitCatalogueRequest validates and stores a catalogue download request.
// The supplier must exist.
func (s *Service) SubmitCatalogueRequest(ctx context.Context, req CatalogueRequest) (Lead, error) {
	if err := ValidateCatalogue(req); err != nil {
		return Lead{}, err
	}
	if _, err := s.store.GetBySlug(ctx, req.SupplierSlug); err != nil {
		return Lead{}, fmt.Errorf("catalogue request: %w", err)
	}
	lead := Lead{
		ID:           s.newID(),
		Kind:         LeadCatalogue,
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Company:      req.Company,
		Phone:        req.Phone,
		SupplierSlug: req.SupplierSlug,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.SaveLead(ctx, lead); err != nil {
		return Lead{}, fmt.Errorf("save catalogue request: %w", err)
	}
	return lead, nil
}

// =============================================================================
// Admin
// =============================================================================

// CreateSupplier validates in and stores a new supplier.
func (s *Service) CreateSupplier(ctx context.Context, in SupplierInput) (Supplier, error) {
	if err := ValidateSupplierInput(in); err != nil {
		return Supplier{}, err
	}

	now := s.now().UTC()
	name := strings.TrimSpace(in.Name)
	categories := in.Categories
	if categories == nil {
		categories = []string{}
	}

	created, err := s.store.Create(ctx, Supplier{
		ID:          s.newID(),
		Name:        name,
		Email:       strings.TrimSpace(in.Email),
		Phone:       in.Phone,
		Website:     in.Website,
		Description: in.Description,
		City:        in.City,
		Categories:  categories,
		LogoURL:     in.LogoURL,
		Slug:        Slugify(name),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return Supplier{}, fmt.Errorf("create supplier: %w", err)
	}

	s.audit.Record(ctx, AuditLogParams{
		Action:       ActionSupplierCreate,
		SupplierID:   created.ID,
		RowsAffected: 1,
		Detail:       created.Name,
	})
	return created, nil
}

// UpdateSupplier applies a partial update. A new name also changes the slug.
func (s *Service) UpdateSupplier(ctx context.Context, id string, u SupplierUpdate) (Supplier, error) {
	if err := ValidateSupplierUpdate(u); err != nil {
		return Supplier{}, err
	}
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		slug := Slugify(name)
		u.Name = &name
		u.Slug = &slug
	}

	updated, err := s.store.Update(ctx, id, u)
	if err != nil {
		return Supplier{}, fmt.Errorf("update supplier %s: %w", id, err)
	}

	s.audit.Record(ctx, AuditLogParams{
		Action:       ActionSupplierUpdate,
		SupplierID:   id,
		RowsAffected: 1,
		Detail:       updated.Name,
	})
	return updated, nil
}

// DeleteSupplier removes a supplier. Returns ErrNotFound when absent.
func (s *Service) DeleteSupplier(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete supplier %s: %w", id, err)
	}
	s.audit.Record(ctx, AuditLogParams{
		Action:       ActionSupplierDelete,
		SupplierID:   id,
		RowsAffected: 1,
	})
	return nil
}

// ImportPreview is the result of parsing an upload without storing it.
type ImportPreview struct {
	FileName string           `json:"file_name"`
	Records  []SupplierRecord `json:"records"`
	Stats    ParseStats       `json:"stats"`
}

// PreviewImport checks and parses an uploaded CSV. Nothing is written.
func (s *Service) PreviewImport(ctx context.Context, fileName, contentType string, data []byte) (ImportPreview, error) {
	if err := CheckUpload(fileName, contentType, int64(len(data)), s.maxUploadSize); err != nil {
		return ImportPreview{}, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return ImportPreview{}, err
	}
	defer s.limiter.Release()

	records, stats, err := ParseCSVWithStats(DecodeUpload(data))
	if err != nil {
		slog.Info("import preview rejected",
			"file", fileName,
			"reason", err.Error(),
			"data_rows", stats.DataRows,
		)
		return ImportPreview{}, fmt.Errorf("preview %s: %w", fileName, err)
	}

	slog.Info("import preview parsed",
		"file", fileName,
		"accepted", stats.Accepted,
		"skipped_short", stats.SkippedShort,
		"skipped_no_name", stats.SkippedNoName,
	)

	return ImportPreview{FileName: fileName, Records: records, Stats: stats}, nil
}

// ConfirmImport expands previewed records into suppliers and stores them.
func (s *Service) ConfirmImport(ctx context.Context, records []SupplierRecord) ([]Supplier, error) {
	if len(records) == 0 {
		return nil, ErrEmptyResult
	}

	var c inputChecker
	for i, rec := range records {
		c.required(fmt.Sprintf("records[%d].name", i), rec.Name)
	}
	if err := c.result("supplier"); err != nil {
		return nil, err
	}

	importCtx, cancel := context.WithTimeout(ctx, ImportTimeout)
	defer cancel()

	suppliers := ExpandRecords(records, s.now().UTC(), s.newID)
	inserted, err := s.store.BulkInsert(importCtx, suppliers)
	if err != nil {
		return nil, fmt.Errorf("bulk import: %w", err)
	}

	s.audit.Record(ctx, AuditLogParams{
		Action:       ActionBulkImport,
		RowsAffected: len(inserted),
	})
	slog.Info("bulk import stored", "suppliers", len(inserted))

	return inserted, nil
}

// DirectoryStats summarizes the directory for the admin dashboard.
type DirectoryStats struct {
	TotalSuppliers int                 `json:"total_suppliers"`
	Categories     int                 `json:"categories"`
	Cities         int                 `json:"cities"`
	Recent         []Supplier          `json:"recent"`
	Imports        ImportLimiterStatus `json:"imports"`
}

// Stats computes dashboard numbers.
func (s *Service) Stats(ctx context.Context) (DirectoryStats, error) {
	suppliers, err := s.store.List(ctx, SupplierFilter{})
	if err != nil {
		return DirectoryStats{}, fmt.Errorf("stats: %w", err)
	}

	categories := make(map[string]struct{})
	cities := make(map[string]struct{})
	for _, sup := range suppliers {
		for _, c := range sup.Categories {
			categories[c] = struct{}{}
		}
		if sup.City != "" {
			cities[sup.City] = struct{}{}
		}
	}

	SortSuppliers(suppliers, SortNewest)
	recent := suppliers
	if len(recent) > recentCount {
		recent = recent[:recentCount]
	}

	return DirectoryStats{
		TotalSuppliers: len(suppliers),
		Categories:     len(categories),
		Cities:         len(cities),
		Recent:         recent,
		Imports:        s.limiter.Status(),
	}, nil
}

// RecordLogin notes an admin sign-in attempt in the audit trail.
func (s *Service) RecordLogin(ctx context.Context, username string, ok bool) {
	action := ActionLogin
	if !ok {
		action = ActionLoginFailed
	}
	s.audit.Record(ctx, AuditLogParams{Action: action, Detail: username})
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
