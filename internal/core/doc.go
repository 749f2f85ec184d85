// Package core provides the business logic for the supplier directory.
//
// This package holds all domain logic independent of any UI or transport
// layer. It is used by the web handlers, the supplierctl CLI and tests
// without modification.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Ingestion: [ParseCSV] turns uploaded CSV text into [SupplierRecord]s,
//     and [ExpandRecord] turns a record into a storable [Supplier].
//   - Listing: [ApplyFilter], [SortSuppliers] and [Paginate] implement the
//     public catalogue on top of any [Store].
//   - Service: The main entry point for all operations (catalogue, admin
//     CRUD, import preview and confirm, enquiries).
//   - Audit: An in-memory trail of admin changes.
//
// # CSV Ingestion
//
// Headers are matched by substring against fixed alias lists, so a file
// headed "Company Name,Contact Email,Categories" needs no mapping step:
//
//	records, err := core.ParseCSV(text)
//	if errors.Is(err, core.ErrSchema) {
//	    // no name column
//	}
//
// Rows shorter than the header and rows with a blank name are dropped
// silently. [ParseCSVWithStats] reports how many of each were dropped.
//
// Imports run in two steps. [Service.PreviewImport] checks and parses an
// upload while holding an [ImportLimiter] slot; [Service.ConfirmImport]
// expands the accepted records and bulk-inserts them.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - CSV001-CSV003: Ingestion errors (malformed, no name column, empty)
//   - FILE001-FILE004: File errors (size, type, missing)
//   - SUP001-SUP002, LEAD001: Supplier and enquiry errors
//   - AUTH001-AUTH002: Admin sign-in errors
//
// # Audit Logging
//
// Admin actions are recorded with severity levels:
//
//   - Low: Sign-in
//   - Medium: Supplier create and update
//   - High: Bulk import, supplier delete
//   - Critical: Failed sign-in
package core
