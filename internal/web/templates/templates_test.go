package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/suppliers/internal/core"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func pageOf(items []core.Supplier, page, limit int) core.Page[core.Supplier] {
	return core.Paginate(items, core.PageRequest{Page: page, Limit: limit})
}

func TestSupplierCards_EscapesFields(t *testing.T) {
	items := []core.Supplier{{
		Name:        `<script>alert("x")</script>`,
		City:        "Leeds & Bradford",
		Description: `<img src=x onerror=alert(1)>`,
		Categories:  []string{"<b>Tech</b>"},
		Slug:        "script-alert-x-script-",
	}}

	out := render(t, SupplierCards(pageOf(items, 1, 12), ""))

	for _, bad := range []string{"<script>", "<img", "<b>"} {
		if strings.Contains(out, bad) {
			t.Errorf("output contains unescaped %q:\n%s", bad, out)
		}
	}
	for _, want := range []string{
		"&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;",
		"Leeds &amp; Bradford",
		"&lt;b&gt;Tech&lt;/b&gt;",
		`href="/suppliers/script-alert-x-script-"`,
		"Showing 1-1 of 1 suppliers",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Pagination") {
		t.Error("single page rendered a pager")
	}
}

func TestSupplierCards_Pager(t *testing.T) {
	items := make([]core.Supplier, 50)
	for i := range items {
		items[i] = core.Supplier{Name: "Supplier", Slug: "supplier"}
	}

	tests := []struct {
		name    string
		page    int
		query   string
		want    []string
		notWant []string
	}{
		{
			name:  "first page",
			page:  1,
			query: "",
			want: []string{
				`<span class="px-3 py-1 font-bold" aria-current="page">1</span>`,
				`hx-get="/suppliers?page=2"`,
				`hx-get="/suppliers?page=10"`,
				"…",
				"Showing 1-5 of 50 suppliers",
			},
			notWant: []string{`hx-get="/suppliers?page=1"`},
		},
		{
			name:  "middle page keeps query",
			page:  5,
			query: "search=tech&sort=name-asc",
			want: []string{
				`aria-current="page">5</span>`,
				`hx-get="/suppliers?search=tech&amp;sort=name-asc&amp;page=4"`,
				`href="/suppliers?search=tech&amp;sort=name-asc&amp;page=6"`,
				`hx-target="#supplier-results"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(t, SupplierCards(pageOf(items, tt.page, 5), tt.query))
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, bad := range tt.notWant {
				if strings.Contains(out, bad) {
					t.Errorf("output contains %q", bad)
				}
			}
		})
	}
}

func TestSupplierCards_Empty(t *testing.T) {
	out := render(t, SupplierCards(pageOf(nil, 1, 12), ""))
	if !strings.Contains(out, "No suppliers match your search.") {
		t.Errorf("unexpected empty output: %s", out)
	}
}

func TestSupplierDetail(t *testing.T) {
	out := render(t, SupplierDetail(core.Supplier{
		Name:    "Harbor & Co",
		Email:   "sales@harbor.example",
		Phone:   "+1 (555) 000-1111",
		Website: "javascript:alert(1)",
		Slug:    "harbor-co",
	}))

	for _, want := range []string{
		"Harbor &amp; Co",
		`href="mailto:sales@harbor.example"`,
		"+1 (555) 000-1111",
		`href="about:invalid#TemplFailedSanitizationURL"`,
		`id="supplier-harbor-co"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, `href="javascript:`) {
		t.Error("unsafe website URL rendered as a link")
	}
}

func TestErrorAlert(t *testing.T) {
	tests := []struct {
		name, message, action, code string
		want                        []string
		notWant                     []string
	}{
		{
			name:    "full",
			message: "File is not a CSV",
			action:  "Upload a .csv file",
			code:    "FILE002",
			want:    []string{`role="alert"`, "File is not a CSV", "Upload a .csv file", "Code: FILE002"},
		},
		{
			name:    "message only",
			message: "<oops>",
			want:    []string{"&lt;oops&gt;"},
			notWant: []string{"Code:", "text-red-700"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(t, ErrorAlert(tt.message, tt.action, tt.code))
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, bad := range tt.notWant {
				if strings.Contains(out, bad) {
					t.Errorf("output contains %q", bad)
				}
			}
		})
	}
}

func TestPageHref(t *testing.T) {
	tests := []struct {
		query string
		page  int
		want  string
	}{
		{"", 2, "/suppliers?page=2"},
		{"city=Leeds", 3, "/suppliers?city=Leeds&page=3"},
	}
	for _, tt := range tests {
		if got := PageHref(tt.query, tt.page); got != tt.want {
			t.Errorf("PageHref(%q, %d) = %q, want %q", tt.query, tt.page, got, tt.want)
		}
	}
}
