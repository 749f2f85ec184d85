package core

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionSupplierCreate AuditAction = "supplier_create"
	ActionSupplierUpdate AuditAction = "supplier_update"
	ActionSupplierDelete AuditAction = "supplier_delete"
	ActionBulkImport     AuditAction = "bulk_import"
	ActionLogin          AuditAction = "login"
	ActionLoginFailed    AuditAction = "login_failed"
)

// AuditSeverity represents the severity level of an audit entry.
type AuditSeverity string

const (
	SeverityLow      AuditSeverity = "low"
	SeverityMedium   AuditSeverity = "medium"
	SeverityHigh     AuditSeverity = "high"
	SeverityCritical AuditSeverity = "critical"
)

// DefaultAuditCapacity is how many entries an AuditLog keeps.
const DefaultAuditCapacity = 1000

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	ID           string        `json:"id"`
	Action       AuditAction   `json:"action"`
	Severity     AuditSeverity `json:"severity"`
	SupplierID   string        `json:"supplierId,omitempty"`
	Actor        string        `json:"actor,omitempty"`
	RowsAffected int           `json:"rowsAffected,omitempty"`
	IPAddress    string        `json:"ipAddress,omitempty"`
	UserAgent    string        `json:"userAgent,omitempty"`
	Detail       string        `json:"detail,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// AuditLogParams contains parameters for creating an audit log entry.
type AuditLogParams struct {
	Action       AuditAction
	SupplierID   string
	RowsAffected int
	Detail       string
}

// determineSeverity returns the appropriate severity for an action.
func determineSeverity(action AuditAction) AuditSeverity {
	switch action {
	case ActionBulkImport, ActionSupplierDelete:
		return SeverityHigh
	case ActionLoginFailed:
		return SeverityCritical
	case ActionLogin:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// AuditLogFilter narrows a List call. Zero values match everything.
type AuditLogFilter struct {
	Action     AuditAction
	SupplierID string
	Limit      int
}

// AuditLog is a fixed-size in-memory ring of audit entries.
type AuditLog struct {
	mu      sync.RWMutex
	entries []AuditEntry
	next    int
	full    bool
	now     func() time.Time
}

// NewAuditLog keeps the most recent capacity entries.
func NewAuditLog(capacity int) *AuditLog {
	if capacity <= 0 {
		capacity = DefaultAuditCapacity
	}
	return &AuditLog{
		entries: make([]AuditEntry, capacity),
		now:     time.Now,
	}
}

// Record stores an entry built from params and the request metadata in ctx.
func (a *AuditLog) Record(ctx context.Context, params AuditLogParams) AuditEntry {
	entry := AuditEntry{
		ID:           uuid.New().String(),
		Action:       params.Action,
		Severity:     determineSeverity(params.Action),
		SupplierID:   params.SupplierID,
		Actor:        GetActorFromContext(ctx),
		RowsAffected: params.RowsAffected,
		IPAddress:    GetIPAddressFromContext(ctx),
		UserAgent:    GetUserAgentFromContext(ctx),
		Detail:       params.Detail,
		CreatedAt:    a.now().UTC(),
	}

	a.mu.Lock()
	a.entries[a.next] = entry
	a.next = (a.next + 1) % len(a.entries)
	if a.next == 0 {
		a.full = true
	}
	a.mu.Unlock()

	return entry
}

// Len returns the number of stored entries.
func (a *AuditLog) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.full {
		return len(a.entries)
	}
	return a.next
}

// List returns matching entries, newest first.
func (a *AuditLog) List(filter AuditLogFilter) []AuditEntry {
	a.mu.RLock()
	defer a.mu.RUnlock()

	n := a.next
	if a.full {
		n = len(a.entries)
	}

	out := make([]AuditEntry, 0, n)
	for i := 0; i < n; i++ {
		idx := (a.next - 1 - i + len(a.entries)) % len(a.entries)
		e := a.entries[idx]
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		if filter.SupplierID != "" && e.SupplierID != filter.SupplierID {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out
}
