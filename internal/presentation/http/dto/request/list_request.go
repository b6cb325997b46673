package request

// reservedListParams are the list query parameters that are not column filters
var reservedListParams = map[string]bool{
	"search":     true,
	"sort_by":    true,
	"sort_order": true,
	"page":       true,
	"query_key":  true,
	"session":    true,
}

// IsFilterParam reports whether a list query parameter names a column filter
func IsFilterParam(name string) bool {
	return !reservedListParams[name]
}
