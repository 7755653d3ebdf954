package models

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Query parameter names understood by the inventory backend.
const (
	QueryParamPage = "page"
	QueryParamSize = "size"
	QueryParamSort = "sort"
)

// SortDirection represents ordering direction for sortable columns.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortSpec is the single active sort column. A nil *SortSpec means the
// backend default ordering applies.
type SortSpec struct {
	Field     string
	Direction SortDirection
}

// Token renders the combined "<field>,<direction>" sort parameter.
func (s *SortSpec) Token() string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("%s,%s", s.Field, s.Direction)
}

// Indicator reports the direction applied to field, or "" when the column is
// not the active one.
func (s *SortSpec) Indicator(field string) SortDirection {
	if s == nil || s.Field != field {
		return ""
	}
	return s.Direction
}

// NextSort advances field through none -> asc -> desc -> none. Selecting a
// different column than the active one starts it at asc and forgets the old one.
func NextSort(current *SortSpec, field string) *SortSpec {
	if current == nil || current.Field != field {
		return &SortSpec{Field: field, Direction: SortAsc}
	}
	if current.Direction == SortAsc {
		return &SortSpec{Field: field, Direction: SortDesc}
	}
	return nil
}

// ParseSort reads a "<field>,<direction>" token. Direction defaults to asc.
func ParseSort(token string) *SortSpec {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	field, dir, _ := strings.Cut(token, ",")
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}
	spec := &SortSpec{Field: field, Direction: SortAsc}
	if strings.EqualFold(strings.TrimSpace(dir), string(SortDesc)) {
		spec.Direction = SortDesc
	}
	return spec
}

// PageRequest addresses one page, 0-based.
type PageRequest struct {
	PageIndex int
	PageSize  int
}

// Query is the flat parameter mapping handed to a listing capability.
type Query map[string]string

// Values converts the query into url.Values.
func (q Query) Values() url.Values {
	values := url.Values{}
	for k, v := range q {
		values.Set(k, v)
	}
	return values
}

// String renders the query with sorted keys, mostly for logs.
func (q Query) String() string {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+q[k])
	}
	return strings.Join(parts, "&")
}

// Page is the normalized result of a listing call.
//
// When Partial is set the backend answered with a bare sequence instead of a
// page envelope and the counters were synthesized: everything is reported as
// a single page. Callers must not treat those counters as real pagination.
type Page[T any] struct {
	Items      []T
	PageIndex  int
	PageSize   int
	TotalItems int
	TotalPages int
	Partial    bool
}

// InRange reports whether index addresses an existing page.
func (p *Page[T]) InRange(index int) bool {
	return p != nil && index >= 0 && index < p.TotalPages
}

// HasPrev reports whether a previous page exists.
func (p *Page[T]) HasPrev() bool {
	return p != nil && p.PageIndex > 0
}

// HasNext reports whether a following page exists.
func (p *Page[T]) HasNext() bool {
	return p != nil && p.PageIndex+1 < p.TotalPages
}

// Range returns the 1-based window of items shown, e.g. 21..40 of 57.
// An empty page yields 0, 0.
func (p *Page[T]) Range() (from, to int) {
	if p == nil || len(p.Items) == 0 {
		return 0, 0
	}
	from = p.PageIndex*p.PageSize + 1
	to = from + len(p.Items) - 1
	if p.TotalItems > 0 && to > p.TotalItems {
		to = p.TotalItems
	}
	return from, to
}
