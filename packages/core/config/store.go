package config

import (
	"sort"
	"time"
)

const (
	// DefaultTimeout is the request timeout used when neither the spec
	// nor the store overrides it.
	DefaultTimeout = 3000 * time.Millisecond
	// DefaultFollowRedirects is the redirect policy used when nothing
	// overrides it.
	DefaultFollowRedirects = true
)

// Store holds process-wide request defaults. A spec builder consults it
// at Resolve time, never earlier.
type Store struct {
	baseURL         string
	headers         Headers
	timeout         time.Duration
	followRedirects bool
}

// NewStore returns a store with the built-in defaults: no base URL, no
// headers, 3 second timeout, redirects followed.
func NewStore() *Store {
	return &Store{
		timeout:         DefaultTimeout,
		followRedirects: DefaultFollowRedirects,
	}
}

var defaultStore = NewStore()

// Default returns the process-wide defaults store. It is created once at
// process start and never reset automatically.
func Default() *Store {
	return defaultStore
}

// SetBaseURL sets the default base URL prepended to relative paths.
func (s *Store) SetBaseURL(baseURL string) *Store {
	s.baseURL = baseURL
	return s
}

// SetTimeout sets the default request timeout. Non-positive values are
// ignored.
func (s *Store) SetTimeout(d time.Duration) *Store {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// SetHeader sets one default header, last write wins per key.
func (s *Store) SetHeader(name, value string) *Store {
	s.headers = s.headers.Set(name, value)
	return s
}

// SetHeaders sets every entry of the mapping as an individual header.
// Go maps iterate in random order, so entries apply in sorted-key order.
func (s *Store) SetHeaders(headers map[string]string) *Store {
	for _, k := range sortedKeys(headers) {
		s.headers = s.headers.Set(k, headers[k])
	}
	return s
}

// SetFollowRedirects sets the default redirect-follow policy.
func (s *Store) SetFollowRedirects(follow bool) *Store {
	s.followRedirects = follow
	return s
}

// BaseURL returns the configured base URL, "" if unset.
func (s *Store) BaseURL() string {
	return s.baseURL
}

// Timeout returns the default request timeout.
func (s *Store) Timeout() time.Duration {
	return s.timeout
}

// Headers returns a copy of the default headers.
func (s *Store) Headers() Headers {
	return s.headers.Clone()
}

// FollowRedirects returns the default redirect-follow policy.
func (s *Store) FollowRedirects() bool {
	return s.followRedirects
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
