package core

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []SupplierRecord
		wantErr error
	}{
		{
			name:    "single row with name email city",
			content: "name,email,city\nAcme Corp,info@acme.test,Boston",
			want: []SupplierRecord{{
				Name:  "Acme Corp",
				Email: strPtr("info@acme.test"),
				City:  strPtr("Boston"),
			}},
		},
		{
			name:    "no name-like column",
			content: "description,city\nMakes widgets,Boston",
			wantErr: ErrSchema,
		},
		{
			name:    "header only",
			content: "name,email,city\n",
			wantErr: ErrMalformedInput,
		},
		{
			name:    "empty input",
			content: "",
			wantErr: ErrMalformedInput,
		},
		{
			name:    "blank lines do not count as rows",
			content: "name,email\n\n   \n",
			wantErr: ErrMalformedInput,
		},
		{
			name:    "empty name cell leaves nothing",
			content: "name,email\n,bademail@x.test",
			wantErr: ErrEmptyResult,
		},
		{
			name:    "quoted comma is split naively",
			content: "Company Name,Contact Email,Categories\nWidget Co,sales@widget.test,\"Tech, Software\"",
			want: []SupplierRecord{{
				Name:       "Widget Co",
				Email:      strPtr("sales@widget.test"),
				Categories: strPtr("Tech"),
			}},
		},
		{
			name:    "bounding quotes stripped",
			content: "name,city\n\"Acme Corp\",\"Boston\"",
			want: []SupplierRecord{{
				Name: "Acme Corp",
				City: strPtr("Boston"),
			}},
		},
		{
			name:    "crlf line endings",
			content: "name,phone\r\nAcme,555-0100\r\nBeta,555-0101\r\n",
			want: []SupplierRecord{
				{Name: "Acme", Phone: strPtr("555-0100")},
				{Name: "Beta", Phone: strPtr("555-0101")},
			},
		},
		{
			name:    "short rows are dropped",
			content: "name,email,city\nAcme,a@acme.test\nBeta,b@beta.test,Austin",
			want: []SupplierRecord{{
				Name:  "Beta",
				Email: strPtr("b@beta.test"),
				City:  strPtr("Austin"),
			}},
		},
		{
			name:    "extra cells are ignored",
			content: "name\nAcme,extra,more",
			want:    []SupplierRecord{{Name: "Acme"}},
		},
		{
			name:    "resolved column with empty cell is empty not nil",
			content: "name,website\nAcme,",
			want:    []SupplierRecord{{Name: "Acme", Website: strPtr("")}},
		},
		{
			name:    "all aliases resolved",
			content: "company_name,email_address,telephone,url,about,location,industry\nAcme,a@acme.test,555,acme.test,Widgets,Boston,Manufacturing",
			want: []SupplierRecord{{
				Name:        "Acme",
				Email:       strPtr("a@acme.test"),
				Phone:       strPtr("555"),
				Website:     strPtr("acme.test"),
				Description: strPtr("Widgets"),
				City:        strPtr("Boston"),
				Categories:  strPtr("Manufacturing"),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCSV(tt.content)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseCSV() error = %v, want %v", err, tt.wantErr)
				}
				if got != nil {
					t.Errorf("ParseCSV() records = %v, want nil on error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCSV() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseCSV() = %s, want %s", describe(got), describe(tt.want))
			}
		})
	}
}

func TestParseCSV_QuotedCommaExpandsToOneCategory(t *testing.T) {
	content := "Company Name,Contact Email,Categories\nWidget Co,sales@widget.test,\"Tech, Software\""

	records, stats, err := ParseCSVWithStats(content)
	if err != nil {
		t.Fatalf("ParseCSVWithStats() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if got := len(splitRow(strings.Split(content, "\n")[1])); got != 4 {
		t.Errorf("row split into %d cells, want 4", got)
	}
	if stats.Columns[FieldName] != 0 || stats.Columns[FieldEmail] != 1 || stats.Columns[FieldCategories] != 2 {
		t.Errorf("columns = %v", stats.Columns)
	}

	cats := SplitCategories(records[0].Categories)
	if !reflect.DeepEqual(cats, []string{"Tech"}) {
		t.Errorf("SplitCategories() = %v, want [Tech]", cats)
	}
}

func TestParseCSV_LargeFileSingleSurvivor(t *testing.T) {
	var b strings.Builder
	b.WriteString("name\n")
	for i := 0; i < 6000; i++ {
		switch {
		case i == 4242:
			b.WriteString("Only Survivor\n")
		case i%2 == 0:
			b.WriteString(",\n")
		default:
			b.WriteString("   \t,\n")
		}
	}

	// Rows of only "," split into two cells against a one-column header.
	records, stats, err := ParseCSVWithStats(b.String())
	if err != nil {
		t.Fatalf("ParseCSVWithStats() error = %v", err)
	}
	if len(records) != 1 || records[0].Name != "Only Survivor" {
		t.Fatalf("records = %v, want only the survivor", records)
	}
	if stats.DataRows != 6000 || stats.Accepted != 1 || stats.SkippedNoName != 5999 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestParseCSV_Idempotent(t *testing.T) {
	content := "name,city,categories\nAcme,Boston,Tech\nBeta,,Food\n,Nowhere,X\nGamma,Austin,"

	first, err1 := ParseCSV(content)
	second, err2 := ParseCSV(content)
	if err1 != nil || err2 != nil {
		t.Fatalf("ParseCSV() errors = %v, %v", err1, err2)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two parses differ:\n%s\n%s", describe(first), describe(second))
	}
}

func TestParseCSV_NameRequiredAndOrderPreserved(t *testing.T) {
	content := strings.Join([]string{
		"name,email",
		"Zeta,z@z.test",
		"   ,blank@x.test",
		"Alpha,a@a.test",
		"\"\",quoted@x.test",
		"Mid,m@m.test",
	}, "\n")

	records, stats, err := ParseCSVWithStats(content)
	if err != nil {
		t.Fatalf("ParseCSVWithStats() error = %v", err)
	}

	var names []string
	for _, r := range records {
		if strings.TrimSpace(r.Name) == "" {
			t.Errorf("record with blank name survived: %+v", r)
		}
		names = append(names, r.Name)
	}
	if want := []string{"Zeta", "Alpha", "Mid"}; !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
	if stats.SkippedNoName != 2 {
		t.Errorf("SkippedNoName = %d, want 2", stats.SkippedNoName)
	}
}

func TestResolveColumn(t *testing.T) {
	nameAliases := []string{"name", "company_name", "business_name", "company"}

	tests := []struct {
		name    string
		headers []string
		aliases []string
		want    int
	}{
		{
			name:    "containment picks leftmost header for first alias",
			headers: []string{"business_name", "name"},
			aliases: nameAliases,
			want:    0,
		},
		{
			name:    "alias priority beats column position",
			headers: []string{"company", "name"},
			aliases: nameAliases,
			want:    1,
		},
		{
			name:    "lower priority alias when higher absent",
			headers: []string{"city", "company"},
			aliases: nameAliases,
			want:    1,
		},
		{
			name:    "substring match",
			headers: []string{"id", "supplier name"},
			aliases: nameAliases,
			want:    1,
		},
		{
			name:    "no match",
			headers: []string{"description", "city"},
			aliases: nameAliases,
			want:    Unresolved,
		},
		{
			name:    "address resolves city",
			headers: []string{"name", "street address"},
			aliases: []string{"city", "location", "address"},
			want:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveColumn(tt.headers, tt.aliases); got != tt.want {
				t.Errorf("ResolveColumn(%v) = %d, want %d", tt.headers, got, tt.want)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	_, err := ParseCSV("city\nBoston")

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error %v is not a *ParseError", err)
	}
	if pe.Kind != KindSchema {
		t.Errorf("Kind = %v, want %v", pe.Kind, KindSchema)
	}
	if pe.Kind.String() != "schema_error" {
		t.Errorf("Kind.String() = %q", pe.Kind.String())
	}
	if errors.Is(err, ErrEmptyResult) {
		t.Error("schema error matched ErrEmptyResult")
	}
}

func describe(recs []SupplierRecord) string {
	var b strings.Builder
	b.WriteString("[")
	for i, r := range recs {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString("{name=" + r.Name)
		for _, f := range []struct {
			k string
			v *string
		}{
			{"email", r.Email}, {"phone", r.Phone}, {"website", r.Website},
			{"description", r.Description}, {"city", r.City}, {"categories", r.Categories},
		} {
			if f.v != nil {
				b.WriteString(" " + f.k + "=" + *f.v)
			}
		}
		b.WriteString("}")
	}
	b.WriteString("]")
	return b.String()
}
