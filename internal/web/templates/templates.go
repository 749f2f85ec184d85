// Package templates holds the HTML fragments served to HTMX callers.
//
// Components are written in .templ files; the generated *_templ.go files are
// committed. Run `templ generate` after editing a .templ file.
package templates

import (
	"net/url"
	"strconv"
)

// SupplierPath is the fragment URL of one supplier.
func SupplierPath(slug string) string {
	return "/suppliers/" + url.PathEscape(slug)
}

// PageHref links to page p of the card listing, keeping the listing query.
func PageHref(query string, p int) string {
	if query == "" {
		return "/suppliers?page=" + strconv.Itoa(p)
	}
	return "/suppliers?" + query + "&page=" + strconv.Itoa(p)
}
