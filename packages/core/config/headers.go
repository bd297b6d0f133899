package config

import "strings"

// Header is a single header entry. Name keeps the casing of the most
// recent write; lookups compare case-insensitively.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered header set. First insertion fixes the position of
// a key; later writes for the same key (any casing) replace the value and
// the stored casing in place.
type Headers []Header

// Set writes a header, replacing an existing entry with the same
// case-insensitive name.
func (h Headers) Set(name, value string) Headers {
	for i := range h {
		if strings.EqualFold(h[i].Name, name) {
			h[i].Name = name
			h[i].Value = value
			return h
		}
	}
	return append(h, Header{Name: name, Value: value})
}

// Get returns the value for a case-insensitive name, or "" if absent.
func (h Headers) Get(name string) string {
	v, _ := h.Lookup(name)
	return v
}

// Lookup reports whether a header is present and returns its value.
func (h Headers) Lookup(name string) (string, bool) {
	for i := range h {
		if strings.EqualFold(h[i].Name, name) {
			return h[i].Value, true
		}
	}
	return "", false
}

// Clone returns an independent copy.
func (h Headers) Clone() Headers {
	if len(h) == 0 {
		return nil
	}
	out := make(Headers, len(h))
	copy(out, h)
	return out
}

// Merge overlays other onto a copy of h. Entries in other win on
// case-insensitive collisions and keep their own casing.
func (h Headers) Merge(other Headers) Headers {
	out := h.Clone()
	for _, e := range other {
		out = out.Set(e.Name, e.Value)
	}
	return out
}
