// Package record holds the normalized row model shared by the whole
// label pipeline: an ordered string-keyed, string-valued mapping.
package record

import (
	"bytes"
	"encoding/json"
)

// Record is one normalized row. Field order is the order fields were set,
// which loaders keep identical to the source column order. Lookups on
// absent fields return the zero value, never an error; downstream code
// relies on that to keep payload positions stable across heterogeneous
// rows.
type Record struct {
	fields []string
	values map[string]string
}

// New returns an empty Record ready for Set calls.
func New() Record {
	return Record{values: make(map[string]string)}
}

// Set adds a field or overwrites an existing one. First-set order is
// preserved on overwrite.
func (r *Record) Set(name, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, exists := r.values[name]; !exists {
		r.fields = append(r.fields, name)
	}
	r.values[name] = value
}

// Get returns the value for name, or "" if the field is absent.
func (r Record) Get(name string) string {
	return r.values[name]
}

// Lookup returns the value for name and whether the field is present.
func (r Record) Lookup(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Has reports whether the field is present.
func (r Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Fields returns the field names in insertion order. The returned slice
// is a copy; callers may reorder it freely.
func (r Record) Fields() []string {
	out := make([]string, len(r.fields))
	copy(out, r.fields)
	return out
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.fields)
}

// MarshalJSON emits the record as a JSON object with keys in field order.
// Stock map marshaling would sort keys alphabetically and lose the source
// column order the web UI displays.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
