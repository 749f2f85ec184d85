package core

// ingest.go turns the text of an uploaded CSV file into SupplierRecords.
//
// Headers are matched loosely so uploaders do not have to follow an exact
// schema: every logical field has an ordered alias list, and a header matches
// an alias when the lowercased header contains the alias text.
//
// Splitting is naive: lines are split on '\n' and cells on ','. Quoted commas
// are NOT respected and only one bounding pair of '"' is stripped from each
// cell, so a cell such as "Tech, Software" becomes two cells. Known limitation.

import (
	"strings"
)

// Logical supplier fields a CSV column can map to.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldWebsite     = "website"
	FieldDescription = "description"
	FieldCity        = "city"
	FieldCategories  = "categories"
)

// ColumnAlias lists the header substrings accepted for one field, in priority order.
type ColumnAlias struct {
	Field   string
	Aliases []string
}

// ColumnAliases is the fixed header mapping used by ParseCSV.
var ColumnAliases = []ColumnAlias{
	{Field: FieldName, Aliases: []string{"name", "company_name", "business_name", "company"}},
	{Field: FieldEmail, Aliases: []string{"email", "contact_email", "email_address"}},
	{Field: FieldPhone, Aliases: []string{"phone", "phone_number", "telephone", "contact_phone"}},
	{Field: FieldWebsite, Aliases: []string{"website", "url", "web_address"}},
	{Field: FieldDescription, Aliases: []string{"description", "about", "summary"}},
	{Field: FieldCity, Aliases: []string{"city", "location", "address"}},
	{Field: FieldCategories, Aliases: []string{"categories", "category", "industry", "sectors"}},
}

// Unresolved is the column index of a field no header matched.
const Unresolved = -1

// ErrorKind classifies a ParseCSV failure.
type ErrorKind int

const (
	KindMalformedInput ErrorKind = iota + 1
	KindSchema
	KindEmptyResult
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformedInput:
		return "malformed_input"
	case KindSchema:
		return "schema_error"
	case KindEmptyResult:
		return "empty_result"
	default:
		return "unknown"
	}
}

// ParseError is returned by ParseCSV. Compare with errors.Is against
// ErrMalformedInput, ErrSchema or ErrEmptyResult.
type ParseError struct {
	Kind    ErrorKind
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

// Is matches any ParseError of the same kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

var (
	ErrMalformedInput = &ParseError{
		Kind:    KindMalformedInput,
		Message: "csv must contain at least a header row and one data row",
	}
	ErrSchema = &ParseError{
		Kind:    KindSchema,
		Message: "csv must contain a name/company_name column",
	}
	ErrEmptyResult = &ParseError{
		Kind:    KindEmptyResult,
		Message: "no valid supplier data found in csv",
	}
)

// ParseStats describes what ParseCSVWithStats did with each data row.
// Dropped rows are not errors; the counts exist for previews and logs.
type ParseStats struct {
	DataRows      int            `json:"data_rows"`
	Accepted      int            `json:"accepted"`
	SkippedShort  int            `json:"skipped_short"`   // fewer cells than the header
	SkippedNoName int            `json:"skipped_no_name"` // blank name cell
	Headers       []string       `json:"headers"`
	Columns       map[string]int `json:"columns"` // field -> header index, Unresolved if absent
}

// ParseCSV parses raw CSV text into supplier records, preserving row order.
// Every returned record has a non-blank Name.
func ParseCSV(content string) ([]SupplierRecord, error) {
	records, _, err := ParseCSVWithStats(content)
	return records, err
}

// ParseCSVWithStats is ParseCSV plus row accounting.
func ParseCSVWithStats(content string) ([]SupplierRecord, ParseStats, error) {
	var stats ParseStats

	lines := nonBlankLines(content)
	if len(lines) < 2 {
		return nil, stats, ErrMalformedInput
	}

	headers := splitHeader(lines[0])
	stats.Headers = headers
	stats.Columns = ResolveColumns(headers)

	nameIdx := stats.Columns[FieldName]
	if nameIdx == Unresolved {
		return nil, stats, ErrSchema
	}

	dataRows := lines[1:]
	stats.DataRows = len(dataRows)
	records := make([]SupplierRecord, 0, len(dataRows))

	for _, line := range dataRows {
		cells := splitRow(line)
		if len(cells) < len(headers) {
			stats.SkippedShort++
			continue
		}

		rec := SupplierRecord{
			Name:        cells[nameIdx],
			Email:       optionalCell(cells, stats.Columns[FieldEmail]),
			Phone:       optionalCell(cells, stats.Columns[FieldPhone]),
			Website:     optionalCell(cells, stats.Columns[FieldWebsite]),
			Description: optionalCell(cells, stats.Columns[FieldDescription]),
			City:        optionalCell(cells, stats.Columns[FieldCity]),
			Categories:  optionalCell(cells, stats.Columns[FieldCategories]),
		}

		if strings.TrimSpace(rec.Name) == "" {
			stats.SkippedNoName++
			continue
		}
		records = append(records, rec)
	}

	stats.Accepted = len(records)
	if len(records) == 0 {
		return nil, stats, ErrEmptyResult
	}
	return records, stats, nil
}

// ResolveColumns maps every field in ColumnAliases to a header index.
// headers must already be trimmed and lowercased.
func ResolveColumns(headers []string) map[string]int {
	cols := make(map[string]int, len(ColumnAliases))
	for _, ca := range ColumnAliases {
		cols[ca.Field] = ResolveColumn(headers, ca.Aliases)
	}
	return cols
}

// ResolveColumn returns the index of the leftmost header containing the
// first alias that matches any header, or Unresolved.
// Alias priority wins over column position.
func ResolveColumn(headers []string, aliases []string) int {
	for _, alias := range aliases {
		for i, h := range headers {
			if strings.Contains(h, alias) {
				return i
			}
		}
	}
	return Unresolved
}

func nonBlankLines(content string) []string {
	raw := strings.Split(content, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func splitHeader(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}

func splitRow(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = stripBoundingQuotes(strings.TrimSpace(p))
	}
	return parts
}

// stripBoundingQuotes removes at most one leading and one trailing '"'.
// Escaped quotes inside the value are left alone.
func stripBoundingQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return s
}

func optionalCell(cells []string, idx int) *string {
	if idx == Unresolved || idx >= len(cells) {
		return nil
	}
	v := cells[idx]
	return &v
}
