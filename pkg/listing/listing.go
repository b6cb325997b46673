package listing

import (
	"cmp"
	"encoding/hex"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
)

// SortOrder is the direction of a sort
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FilterFunc reports whether an item matches a categorical filter value
type FilterFunc[T any] func(item T, value string) bool

// Spec describes how the rows of one screen are searched, filtered, sorted and paged.
// A PerPage of zero shows every row on a single page.
type Spec[T any] struct {
	PerPage      int
	SearchFields func(item T) []string
	Filters      map[string]FilterFunc[T]
	Sorts        map[string]func(a, b T) int
}

// Query holds what the operator typed and picked on a screen
type Query struct {
	Search    string            `form:"search"`
	Filters   map[string]string `form:"-"`
	SortBy    string            `form:"sort_by"`
	SortOrder SortOrder         `form:"sort_order"`
	Page      int               `form:"page"`
	// QueryKey is the fingerprint returned with the page the operator is looking at.
	QueryKey string `form:"query_key"`
}

// Key fingerprints the search, filters and sort of the query. Paging is not part of it.
func (q Query) Key() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(strings.TrimSpace(q.Search)))
	b.WriteByte(0)

	names := make([]string, 0, len(q.Filters))
	for name, value := range q.Filters {
		if strings.TrimSpace(value) != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(strings.ToLower(strings.TrimSpace(q.Filters[name])))
		b.WriteByte(0)
	}

	b.WriteString(q.SortBy)
	b.WriteByte(0)
	b.WriteString(string(q.normalizedOrder()))

	sum := blake2b.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:8])
}

// EffectivePage is the page to serve. A changed search, filter or sort starts over at page 1.
func (q Query) EffectivePage() int {
	if q.QueryKey != "" && q.QueryKey != q.Key() {
		return 1
	}
	if q.Page < 1 {
		return 1
	}
	return q.Page
}

func (q Query) normalizedOrder() SortOrder {
	if strings.EqualFold(string(q.SortOrder), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// Filter returns the items matching the search text and every non-empty filter.
// The relative order of the input is preserved.
func Filter[T any](items []T, q Query, spec Spec[T]) []T {
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	active := make(map[string]string, len(q.Filters))
	for name, value := range q.Filters {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := spec.Filters[name]; ok {
			active[name] = value
		}
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if needle != "" && !matchesSearch(item, needle, spec) {
			continue
		}
		if !matchesFilters(item, active, spec) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSearch[T any](item T, needle string, spec Spec[T]) bool {
	if spec.SearchFields == nil {
		return true
	}
	for _, field := range spec.SearchFields(item) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func matchesFilters[T any](item T, active map[string]string, spec Spec[T]) bool {
	for name, value := range active {
		if !spec.Filters[name](item, value) {
			return false
		}
	}
	return true
}

// Sort orders items in place by the query's sort key. Unknown keys leave the order untouched.
func Sort[T any](items []T, q Query, spec Spec[T]) {
	compare, ok := spec.Sorts[q.SortBy]
	if !ok || compare == nil {
		return
	}
	if q.normalizedOrder() == SortDesc {
		slices.SortStableFunc(items, func(a, b T) int { return compare(b, a) })
		return
	}
	slices.SortStableFunc(items, compare)
}

// Apply filters, sorts and pages a full in-memory list
func Apply[T any](items []T, q Query, spec Spec[T]) *PaginatedResult[T] {
	filtered := Filter(items, q, spec)
	Sort(filtered, q, spec)

	perPage := spec.PerPage
	if perPage <= 0 {
		perPage = max(len(filtered), 1)
	}

	total := len(filtered)
	totalPages := (total + perPage - 1) / perPage
	page := q.EffectivePage()
	if page > totalPages {
		page = max(totalPages, 1)
	}

	start := min((page-1)*perPage, total)
	end := min(start+perPage, total)

	result := NewPaginatedResult(filtered[start:end], NewPagination(page, perPage, int64(total)))
	result.QueryKey = q.Key()
	return result
}

// Equals matches a field against the filter value, ignoring case
func Equals[T any](field func(T) string) FilterFunc[T] {
	return func(item T, value string) bool {
		return strings.EqualFold(strings.TrimSpace(field(item)), value)
	}
}

// Bool matches a boolean field against "true"/"false", "1"/"0" or "yes"/"no".
// Values that are not booleans match nothing.
func Bool[T any](field func(T) bool) FilterFunc[T] {
	return func(item T, value string) bool {
		want, ok := ParseBool(value)
		if !ok {
			return false
		}
		return field(item) == want
	}
}

// ParseBool parses the boolean spellings accepted by filters
func ParseBool(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "on":
		return true, true
	case "no", "n", "off":
		return false, true
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, false
	}
	return b, true
}

// ByString compares items by a string field, ignoring case
func ByString[T any](field func(T) string) func(a, b T) int {
	return func(a, b T) int {
		return strings.Compare(strings.ToLower(field(a)), strings.ToLower(field(b)))
	}
}

// ByNumber compares items by a numeric field
func ByNumber[T any, N cmp.Ordered](field func(T) N) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(field(a), field(b))
	}
}

// ByTime compares items by a time field
func ByTime[T any](field func(T) time.Time) func(a, b T) int {
	return func(a, b T) int {
		return field(a).Compare(field(b))
	}
}
