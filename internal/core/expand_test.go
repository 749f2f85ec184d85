package core

import (
	"reflect"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "Acme Corp", want: "acme-corp"},
		{name: "punctuation run collapses", in: "Smith & Sons, Ltd.", want: "smith-sons-ltd-"},
		{name: "leading hyphen kept", in: "  Acme", want: "-acme"},
		{name: "digits kept", in: "3M Company", want: "3m-company"},
		{name: "non ascii replaced", in: "Café Münch", want: "caf-m-nch"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitCategories(t *testing.T) {
	tests := []struct {
		name string
		raw  *string
		want []string
	}{
		{name: "nil", raw: nil, want: []string{}},
		{name: "empty", raw: strPtr(""), want: []string{}},
		{name: "single", raw: strPtr("Tech"), want: []string{"Tech"}},
		{name: "trims and drops empties", raw: strPtr(" Tech , ,Food,"), want: []string{"Tech", "Food"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitCategories(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitCategories() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestExpandRecord(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := SupplierRecord{
		Name:       "Widget Co",
		Email:      strPtr("sales@widget.test"),
		City:       strPtr("Leeds"),
		Categories: strPtr("Tech;Hardware, Tools"),
	}

	got := ExpandRecord(rec, now, func() string { return "fixed-id" })

	want := Supplier{
		ID:         "fixed-id",
		Name:       "Widget Co",
		Email:      "sales@widget.test",
		City:       "Leeds",
		Categories: []string{"Tech;Hardware", "Tools"},
		Slug:       "widget-co",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandRecord() = %+v, want %+v", got, want)
	}
}

func TestExpandRecords_FreshIDs(t *testing.T) {
	recs := []SupplierRecord{{Name: "A"}, {Name: "B"}, {Name: "C"}}

	out := ExpandRecords(recs, time.Now(), nil)

	seen := make(map[string]bool)
	for i, s := range out {
		if s.Name != recs[i].Name {
			t.Errorf("out[%d].Name = %q, want %q", i, s.Name, recs[i].Name)
		}
		if s.ID == "" || seen[s.ID] {
			t.Errorf("out[%d].ID = %q is empty or repeated", i, s.ID)
		}
		seen[s.ID] = true
		if s.Categories == nil {
			t.Errorf("out[%d].Categories is nil, want empty slice", i)
		}
	}
}
