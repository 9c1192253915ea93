// Package wire builds the flat url-encoded form bodies the Pushover
// message API accepts.
package wire

import (
	"net/url"
	"strings"
)

// Form is a url-encoded form body that preserves insertion order.
// url.Values sorts keys alphabetically on Encode, which makes the emitted
// body depend on key spelling instead of the mapping order, so the form
// keeps its own key list.
type Form struct {
	keys   []string
	values map[string]string
}

func NewForm() *Form {
	return &Form{values: make(map[string]string)}
}

// Set records a key/value pair. Setting an existing key overwrites its
// value but keeps its original position.
func (f *Form) Set(key, value string) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Get returns the value for key, or "" when the key was never set.
func (f *Form) Get(key string) string {
	return f.values[key]
}

// Has reports whether key was set, even to an empty value.
func (f *Form) Has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (f *Form) Keys() []string {
	keys := make([]string, len(f.keys))
	copy(keys, f.keys)
	return keys
}

// Encode serializes the form as application/x-www-form-urlencoded in
// insertion order.
func (f *Form) Encode() string {
	var b strings.Builder
	for i, key := range f.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f.values[key]))
	}
	return b.String()
}
