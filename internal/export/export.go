// Package export writes the supplier directory as CSV or XLSX.
//
// Both formats use the same columns. Headers match the import aliases, so an
// exported CSV imports cleanly as long as no cell contains a comma; categories
// are joined with "; " for that reason. CSV cells that a spreadsheet would run
// as a formula get a leading quote. XLSX cells are typed strings and are
// written as is.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/JonMunkholm/suppliers/internal/core"
	"github.com/jszwec/csvutil"
	"github.com/xuri/excelize/v2"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// CategorySeparator joins a supplier's categories in one cell.
const CategorySeparator = "; "

// ParseFormat accepts "csv" or "xlsx", case-insensitively. Empty means csv.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// FileName returns a download name like suppliers.csv.
func (f Format) FileName() string {
	return "suppliers." + string(f)
}

// Row is one exported supplier.
type Row struct {
	Name        string `csv:"name"`
	Email       string `csv:"email"`
	Phone       string `csv:"phone"`
	Website     string `csv:"website"`
	Description string `csv:"description"`
	City        string `csv:"city"`
	Categories  string `csv:"categories"`
	Slug        string `csv:"slug"`
	CreatedAt   string `csv:"created_at"`
}

type column struct {
	Header string
	Width  float64
	value  func(Row) string
}

var columns = []column{
	{Header: "name", Width: 30, value: func(r Row) string { return r.Name }},
	{Header: "email", Width: 30, value: func(r Row) string { return r.Email }},
	{Header: "phone", Width: 18, value: func(r Row) string { return r.Phone }},
	{Header: "website", Width: 30, value: func(r Row) string { return r.Website }},
	{Header: "description", Width: 50, value: func(r Row) string { return r.Description }},
	{Header: "city", Width: 20, value: func(r Row) string { return r.City }},
	{Header: "categories", Width: 35, value: func(r Row) string { return r.Categories }},
	{Header: "slug", Width: 25, value: func(r Row) string { return r.Slug }},
	{Header: "created_at", Width: 22, value: func(r Row) string { return r.CreatedAt }},
}

// Rows flattens suppliers into export rows, keeping order.
func Rows(suppliers []core.Supplier) []Row {
	rows := make([]Row, len(suppliers))
	for i, s := range suppliers {
		rows[i] = Row{
			Name:        s.Name,
			Email:       s.Email,
			Phone:       s.Phone,
			Website:     s.Website,
			Description: s.Description,
			City:        s.City,
			Categories:  strings.Join(s.Categories, CategorySeparator),
			Slug:        s.Slug,
			CreatedAt:   s.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}
	return rows
}

// csvSafe returns r with formula-like text cells neutralized.
func (r Row) csvSafe() Row {
	r.Name = sanitizeCell(r.Name)
	r.Email = sanitizeCell(r.Email)
	r.Phone = sanitizeCell(r.Phone)
	r.Website = sanitizeCell(r.Website)
	r.Description = sanitizeCell(r.Description)
	r.City = sanitizeCell(r.City)
	r.Categories = sanitizeCell(r.Categories)
	return r
}

// Write encodes suppliers to w in format f.
func Write(w io.Writer, f Format, suppliers []core.Supplier) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, suppliers)
	case FormatXLSX:
		data, err := XLSX(suppliers)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
}

// WriteCSV writes an RFC 4180 CSV with a header row.
func WriteCSV(w io.Writer, suppliers []core.Supplier) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if err := enc.EncodeHeader(Row{}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range Rows(suppliers) {
		if err := enc.Encode(row.csvSafe()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// XLSX builds a single-sheet workbook with a frozen, styled header row.
func XLSX(suppliers []core.Supplier) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Suppliers"
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return nil, fmt.Errorf("last column name: %w", err)
	}
	for i, col := range columns {
		letter, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column name: %w", err)
		}
		f.SetColWidth(sheetName, letter, letter, col.Width)
		f.SetCellValue(sheetName, letter+"1", col.Header)
	}
	f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle)

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	for r, row := range Rows(suppliers) {
		rowNum := r + 2
		for c, col := range columns {
			cell, err := excelize.CoordinatesToCellName(c+1, rowNum)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			f.SetCellValue(sheetName, cell, col.value(row))
		}
	}

	if len(suppliers) > 0 {
		if err := f.AutoFilter(sheetName, fmt.Sprintf("A1:%s%d", lastCol, len(suppliers)+1), nil); err != nil {
			return nil, fmt.Errorf("set auto filter: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// phoneLike matches phone numbers and signed numbers, which may start with
// + or - without being a formula.
var phoneLike = regexp.MustCompile(`^[+-]?[0-9][0-9 ().x-]*$`)

// sanitizeCell defuses spreadsheet formula injection.
func sanitizeCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '@', '\t', '\r', '|':
		return "'" + s
	case '+', '-':
		if phoneLike.MatchString(s) {
			return s
		}
		return "'" + s
	}
	return s
}
