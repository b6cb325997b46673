package upstream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var errNoShape = errors.New("response matches no known envelope")

// Meta carries what an envelope says besides the records
type Meta struct {
	Message    string
	Pagination *Pagination
	Stats      map[string]any
}

// Pagination is the paging block of a list envelope. The API names the fields
// inconsistently, so every spelling seen in the wild is accepted.
type Pagination struct {
	Total       int64 `json:"total"`
	TotalCount  int64 `json:"total_count"`
	Limit       int   `json:"limit"`
	Offset      int   `json:"offset"`
	Page        int   `json:"page"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
}

// TotalItems returns the total number of records the API reports, 0 when unknown
func (p *Pagination) TotalItems() int64 {
	if p == nil {
		return 0
	}
	return max(p.Total, p.TotalCount)
}

// DecodeList parses a list response. Recognised shapes:
//
//	{"success": true, "data": {"<key>": [...], "pagination": {...}, "stats": {...}}}
//	{"success": true, "data": [...]}
//	[...]
//	{"<key>": [...]}
//
// An envelope with "success": false is reported as KindRejected.
func DecodeList[T any](body []byte, key string) ([]T, *Meta, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil, errNoShape
	}

	if body[0] == '[' {
		var items []T
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, nil, fmt.Errorf("decode list: %w", err)
		}
		return items, &Meta{}, nil
	}

	top, meta, err := decodeObject(body)
	if err != nil {
		return nil, nil, err
	}

	if data, ok := top["data"]; ok {
		data = bytes.TrimSpace(data)
		if len(data) > 0 && data[0] == '[' {
			var items []T
			if err := json.Unmarshal(data, &items); err != nil {
				return nil, nil, fmt.Errorf("decode data: %w", err)
			}
			return items, meta, nil
		}

		var inner map[string]json.RawMessage
		if err := json.Unmarshal(data, &inner); err == nil {
			readMeta(inner, meta)
			for _, name := range []string{key, "items", "rows"} {
				if raw, ok := inner[name]; ok && isArray(raw) {
					var items []T
					if err := json.Unmarshal(raw, &items); err != nil {
						return nil, nil, fmt.Errorf("decode data.%s: %w", name, err)
					}
					return items, meta, nil
				}
			}
		}
		return nil, nil, fmt.Errorf("%w: data has no %q array", errNoShape, key)
	}

	if raw, ok := top[key]; ok && isArray(raw) {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, nil, fmt.Errorf("decode %s: %w", key, err)
		}
		return items, meta, nil
	}

	return nil, nil, fmt.Errorf("%w: no %q array", errNoShape, key)
}

// DecodeOne parses a single record response. Recognised shapes:
//
//	{"success": true, "data": {"<singular>": {...}}}
//	{"success": true, "data": {...}}
//	{"<singular>": {...}}
//	{...}
func DecodeOne[T any](body []byte, singular string) (T, *Meta, error) {
	var zero T
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return zero, nil, errNoShape
	}

	top, meta, err := decodeObject(body)
	if err != nil {
		return zero, nil, err
	}

	raw := json.RawMessage(body)
	if data, ok := top["data"]; ok {
		raw = data
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(data, &inner); err == nil {
			if nested, ok := inner[singular]; ok && isObject(nested) {
				raw = nested
			}
		}
	} else if nested, ok := top[singular]; ok && isObject(nested) {
		raw = nested
	} else if onlyStatusFields(top) {
		return zero, nil, fmt.Errorf("%w: envelope carries no record", errNoShape)
	}

	if !isObject(raw) {
		return zero, nil, fmt.Errorf("%w: record is not an object", errNoShape)
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, nil, fmt.Errorf("decode record: %w", err)
	}
	return out, meta, nil
}

// decodeObject reads the top-level object, its message and success flag
func decodeObject(body []byte) (map[string]json.RawMessage, *Meta, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errNoShape, err)
	}

	meta := &Meta{Message: messageOf(top)}
	readMeta(top, meta)

	if raw, ok := top["success"]; ok && !truthy(raw) {
		return nil, nil, &Error{Kind: KindRejected, Message: meta.Message}
	}
	return top, meta, nil
}

func readMeta(obj map[string]json.RawMessage, meta *Meta) {
	if raw, ok := obj["pagination"]; ok && isObject(raw) {
		var p Pagination
		if err := json.Unmarshal(raw, &p); err == nil {
			meta.Pagination = &p
		}
	}
	if raw, ok := obj["stats"]; ok && isObject(raw) {
		var stats map[string]any
		if err := json.Unmarshal(raw, &stats); err == nil {
			meta.Stats = stats
		}
	}
}

// messageOf extracts a human readable message from an envelope or error body
func messageOf(obj map[string]json.RawMessage) string {
	for _, name := range []string{"message", "error", "msg"} {
		raw, ok := obj[name]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
	}
	return ""
}

// MessageFromBody extracts the message of an error body, empty if there is none
func MessageFromBody(body []byte) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(body), &obj); err != nil {
		return ""
	}
	return messageOf(obj)
}

func onlyStatusFields(obj map[string]json.RawMessage) bool {
	for name := range obj {
		switch name {
		case "success", "message", "error", "msg", "status", "code":
		default:
			return false
		}
	}
	return true
}

func truthy(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "false", "0", `"false"`, `"0"`, "null":
		return false
	}
	return true
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}
