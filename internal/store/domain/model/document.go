package model

import (
	"encoding/json"
	"strings"
	"time"

	"sharvari-site/internal/shared/errors"
)

// Standard timestamp fields stamped by the store client.
const (
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Fields is the top-level field map of a stored document.
type Fields map[string]interface{}

// Document is a stored record tagged with its id.
type Document struct {
	ID         string `json:"id"`
	Collection string `json:"-"`
	Fields     Fields `json:"-"`
}

// MarshalJSON renders the document as {"id": ..., <fields>}.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(d.Fields)+1)
	for k, v := range d.Fields {
		out[k] = v
	}
	out["id"] = d.ID
	return json.Marshal(out)
}

type serverTimestamp struct{}

// ServerTimestamp is a field value that backends replace with their own
// write time.
var ServerTimestamp = serverTimestamp{}

// IsServerTimestamp reports whether v is the ServerTimestamp sentinel.
func IsServerTimestamp(v interface{}) bool {
	_, ok := v.(serverTimestamp)
	return ok
}

// ValidateRef checks a (collection, id) pair. id may be empty when ids are
// assigned by the store.
func ValidateRef(collection, id string, requireID bool) error {
	if strings.TrimSpace(collection) == "" || strings.Contains(collection, "/") || strings.HasPrefix(collection, "$") {
		return errors.ErrInvalidCollectionID
	}
	if requireID && strings.TrimSpace(id) == "" {
		return errors.ErrInvalidDocumentID
	}
	if strings.Contains(id, "/") {
		return errors.ErrInvalidDocumentID
	}
	return nil
}

// Clone returns a deep copy of f. Nested maps and slices are copied so
// callers can mutate the result freely.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = CloneValue(v)
	}
	return out
}

// CloneValue deep-copies JSON-like values.
func CloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case Fields:
		return t.Clone()
	case map[string]interface{}:
		return map[string]interface{}(Fields(t).Clone())
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = CloneValue(e)
		}
		return out
	case []map[string]interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = CloneValue(e)
		}
		return out
	case []string:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	default:
		return v
	}
}

// String returns the string value of key or "".
func (f Fields) String(key string) string {
	s, _ := f[key].(string)
	return s
}

// Bool returns the bool value of key, or def when absent or not a bool.
func (f Fields) Bool(key string, def bool) bool {
	if b, ok := f[key].(bool); ok {
		return b
	}
	return def
}

// Time returns the time value of key.
func (f Fields) Time(key string) (time.Time, bool) {
	switch t := f[key].(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t != nil {
			return *t, !t.IsZero()
		}
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// Merge copies every key of src over f (top-level merge) and returns f.
func (f Fields) Merge(src Fields) Fields {
	for k, v := range src {
		f[k] = CloneValue(v)
	}
	return f
}
