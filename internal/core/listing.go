package core

// listing.go provides the in-memory filter/sort/paginate pipeline behind the
// public catalogue. Stores that push filtering down to a database still use
// SortSuppliers and Paginate so every backend orders and pages identically.

import (
	"sort"
	"strings"
)

const (
	DefaultPageLimit = 12
	MaxPageLimit     = 100
)

// MatchesFilter reports whether s passes every condition in f.
func MatchesFilter(s Supplier, f SupplierFilter) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(s.Name), q) &&
			!strings.Contains(strings.ToLower(s.Description), q) &&
			!strings.Contains(strings.ToLower(s.City), q) {
			return false
		}
	}

	if len(f.Categories) > 0 && !hasAnyCategory(s.Categories, f.Categories) {
		return false
	}

	if f.City != "" && s.City != f.City {
		return false
	}

	return true
}

// ApplyFilter returns the suppliers matching f in their original order.
func ApplyFilter(suppliers []Supplier, f SupplierFilter) []Supplier {
	if f.IsZero() {
		return suppliers
	}
	out := make([]Supplier, 0, len(suppliers))
	for _, s := range suppliers {
		if MatchesFilter(s, f) {
			out = append(out, s)
		}
	}
	return out
}

func hasAnyCategory(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

// ParseSortOption converts a query value to a SortOption.
// Unknown or empty values fall back to DefaultSort.
func ParseSortOption(v string) SortOption {
	switch opt := SortOption(strings.ToLower(strings.TrimSpace(v))); opt {
	case SortNameAsc, SortNameDesc, SortNewest, SortOldest, SortCityAsc, SortCityDesc:
		return opt
	default:
		return DefaultSort
	}
}

// SortSuppliers sorts in place. The sort is stable so ties keep store order.
func SortSuppliers(suppliers []Supplier, opt SortOption) {
	var less func(a, b Supplier) bool

	switch opt {
	case SortNameDesc:
		less = func(a, b Supplier) bool { return strings.ToLower(a.Name) > strings.ToLower(b.Name) }
	case SortNewest:
		less = func(a, b Supplier) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortOldest:
		less = func(a, b Supplier) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortCityAsc:
		less = func(a, b Supplier) bool { return strings.ToLower(a.City) < strings.ToLower(b.City) }
	case SortCityDesc:
		less = func(a, b Supplier) bool { return strings.ToLower(a.City) > strings.ToLower(b.City) }
	default:
		less = func(a, b Supplier) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	}

	sort.SliceStable(suppliers, func(i, j int) bool {
		return less(suppliers[i], suppliers[j])
	})
}

// Normalize fills defaults and caps the limit.
func (r PageRequest) Normalize() PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = DefaultPageLimit
	}
	if r.Limit > MaxPageLimit {
		r.Limit = MaxPageLimit
	}
	return r
}

// Paginate slices items into the requested page. A page past the end
// yields no items but still reports the totals.
func Paginate[T any](items []T, req PageRequest) Page[T] {
	req = req.Normalize()
	total := len(items)

	p := Page[T]{
		Items:      []T{},
		Page:       req.Page,
		Limit:      req.Limit,
		TotalItems: total,
		TotalPages: (total + req.Limit - 1) / req.Limit,
	}
	p.Visible = VisiblePages(p.Page, p.TotalPages)

	start := (req.Page - 1) * req.Limit
	if start >= total {
		return p
	}
	end := start + req.Limit
	if end > total {
		end = total
	}

	p.Items = items[start:end]
	p.Start = start + 1
	p.End = end
	return p
}

// VisiblePages lists the page links a pager shows: the first and last page
// plus one page either side of current. 0 marks a gap.
//
//	VisiblePages(5, 10) == []int{1, 0, 4, 5, 6, 0, 10}
func VisiblePages(current, total int) []int {
	const delta = 1

	if total < 1 {
		return []int{}
	}

	pages := []int{1}
	if current-delta > 2 {
		pages = append(pages, 0)
	}

	lo := current - delta
	if lo < 2 {
		lo = 2
	}
	hi := current + delta
	if hi > total-1 {
		hi = total - 1
	}
	for i := lo; i <= hi; i++ {
		pages = append(pages, i)
	}

	if current+delta < total-1 {
		pages = append(pages, 0, total)
	} else if total > 1 {
		pages = append(pages, total)
	}
	return pages
}
