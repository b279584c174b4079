// Package record defines the records exchanged with the external record store
// and the port every collection is reached through.
package record

import (
	"context"
	"errors"
)

// KeyType selects whether field maps are keyed by field name or field id.
type KeyType string

const (
	KeyTypeName KeyType = "name"
	KeyTypeID   KeyType = "id"
)

// Fields is a loosely typed field map as stored in a collection.
type Fields map[string]any

// Record is one row of a collection.
type Record struct {
	ID          string `json:"id"`
	Fields      Fields `json:"fields"`
	CreatedTime string `json:"createdTime,omitempty"`
}

// Value returns the raw value of a field, nil when absent.
func (r *Record) Value(field string) any {
	if r == nil || r.Fields == nil {
		return nil
	}
	return r.Fields[field]
}

// String returns a field as a string when it holds one.
func (r *Record) String(field string) string {
	s, _ := r.Value(field).(string)
	return s
}

// FilterItem is one leaf of a filter predicate.
type FilterItem struct {
	FieldID  string `json:"fieldId"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// Filter is the store's JSON predicate tree.
type Filter struct {
	Conjunction string       `json:"conjunction"`
	FilterSet   []FilterItem `json:"filterSet"`
}

// Is builds an exact-match predicate on one field.
func Is(fieldID string, value any) Filter {
	return And(FilterItem{FieldID: fieldID, Operator: "is", Value: value})
}

// And combines leaves under an "and" conjunction.
func And(items ...FilterItem) Filter {
	return Filter{Conjunction: "and", FilterSet: items}
}

// File is an upload destined for an attachment field.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Query bounds list reads. Zero values mean the store client defaults.
type Query struct {
	Take    int
	KeyType KeyType
}

// Store is the record store contract. Every call issues exactly one request
// and never retries.
type Store interface {
	Create(ctx context.Context, tableID string, records []Fields, keyType KeyType) ([]Record, error)
	Get(ctx context.Context, tableID, recordID string) (*Record, error)
	Update(ctx context.Context, tableID, recordID string, fields Fields) (*Record, error)
	Delete(ctx context.Context, tableID, recordID string) error
	// Search matches terms fuzzily on the server side; callers must re-filter.
	Search(ctx context.Context, tableID string, terms []string) ([]Record, error)
	Filter(ctx context.Context, tableID string, filter Filter, take int) ([]Record, error)
	List(ctx context.Context, tableID string, q Query) ([]Record, error)
	UploadFile(ctx context.Context, tableID, recordID, fieldID string, file File) (*Record, error)
	Ping(ctx context.Context) error
}

// IsNotFound reports whether err is a store 404.
func IsNotFound(err error) bool {
	var nf interface{ NotFound() bool }
	return errors.As(err, &nf) && nf.NotFound()
}

// ErrorDetail returns the upstream diagnostic text of a store error, or the
// error text itself.
func ErrorDetail(err error) string {
	var d interface{ Detail() string }
	if errors.As(err, &d) {
		return d.Detail()
	}
	return err.Error()
}
