package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/JonMunkholm/suppliers/internal/core"
)

// maxJSONBody caps JSON request bodies other than imports.
const maxJSONBody = 1 << 20

// parseIntParam parses a positive integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// parseListParam splits a comma-separated query parameter, dropping blanks.
func parseListParam(q url.Values, name string) []string {
	var out []string
	for _, v := range q[name] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// parseListing reads search, category, city, sort, page and limit.
func parseListing(r *http.Request) (core.SupplierFilter, core.SortOption, core.PageRequest) {
	q := r.URL.Query()
	filter := core.SupplierFilter{
		Search:     strings.TrimSpace(q.Get("search")),
		Categories: parseListParam(q, "category"),
		City:       strings.TrimSpace(q.Get("city")),
	}
	page := core.PageRequest{
		Page:  parseIntParam(r, "page", 1),
		Limit: parseIntParam(r, "limit", core.DefaultPageLimit),
	}
	return filter, core.ParseSortOption(q.Get("sort")), page
}

// listingQuery re-encodes the listing parameters without the page, for pager links.
func listingQuery(r *http.Request) string {
	q := r.URL.Query()
	q.Del("page")
	return q.Encode()
}

// decodeJSON reads a JSON body of at most maxJSONBody bytes into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	return decodeBody(r.Body, v)
}

// decodeBody decodes JSON from body. Any failure is errInvalidBody.
func decodeBody(body io.Reader, v any) error {
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}
