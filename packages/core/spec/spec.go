package spec

import (
	"sort"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/reqspec/packages/body"
	"github.com/abdul-hamid-achik/reqspec/packages/core/config"
)

// Spec is the mutable accumulator for one planned HTTP call. Build it
// with chained With* calls and finish with Resolve.
type Spec struct {
	method          string
	rawPath         string
	baseURL         string
	pathParams      map[string]string
	query           []QueryParam
	headers         config.Headers
	body            body.Candidate
	file            *fileUpload
	timeout         time.Duration
	timeoutSet      bool
	followRedirects bool
	redirectsSet    bool
	auth            *BasicAuth
	defaults        *config.Store
	registry        *Registry
	err             error
}

// BasicAuth carries basic-auth credentials through to the transport.
type BasicAuth struct {
	User string
	Pass string
}

type fileUpload struct {
	name        string
	path        string
	filename    string
	contentType string
}

// New returns an empty spec. Method and path must be set before Resolve.
func New() *Spec {
	return &Spec{
		pathParams: make(map[string]string),
	}
}

// Get starts a spec for a GET request.
func Get(path string) *Spec { return New().Method("GET", path) }

// Post starts a spec for a POST request.
func Post(path string) *Spec { return New().Method("POST", path) }

// Put starts a spec for a PUT request.
func Put(path string) *Spec { return New().Method("PUT", path) }

// Patch starts a spec for a PATCH request.
func Patch(path string) *Spec { return New().Method("PATCH", path) }

// Delete starts a spec for a DELETE request.
func Delete(path string) *Spec { return New().Method("DELETE", path) }

// Options starts a spec for an OPTIONS request.
func Options(path string) *Spec { return New().Method("OPTIONS", path) }

// Trace starts a spec for a TRACE request.
func Trace(path string) *Spec { return New().Method("TRACE", path) }

// FromHandler returns a new spec seeded by a registered handler. The
// handler runs immediately against the fresh spec with the given data.
func FromHandler(name string, data any) (*Spec, error) {
	s := New()
	if err := DefaultRegistry().Invoke(name, s, data); err != nil {
		return nil, err
	}
	return s, nil
}

// Method sets the HTTP verb and the (possibly templated) path. Any verb
// is accepted; the shorthand constructors cover the common ones.
func (s *Spec) Method(method, path string) *Spec {
	s.method = strings.ToUpper(method)
	s.rawPath = path
	return s
}

// WithBaseURL overrides the defaults store's base URL for this spec.
func (s *Spec) WithBaseURL(baseURL string) *Spec {
	s.baseURL = baseURL
	return s
}

// WithPathParam supplies the value for one {name} path token. Later calls
// for the same key overwrite earlier ones.
func (s *Spec) WithPathParam(key, value string) *Spec {
	s.pathParams[key] = value
	return s
}

// WithPathParams applies every entry of the mapping as an individual
// WithPathParam call, in sorted-key order.
func (s *Spec) WithPathParams(params map[string]string) *Spec {
	for _, k := range sortedKeys(params) {
		s.WithPathParam(k, params[k])
	}
	return s
}

// WithQueryParam appends one query pair. Values may be strings, booleans,
// or numbers. Repeated keys are kept and serialize as repeated pairs.
func (s *Spec) WithQueryParam(key string, value any) *Spec {
	s.query = append(s.query, QueryParam{Key: key, Value: formatQueryValue(value)})
	return s
}

// WithQueryParams applies every entry of the mapping as an individual
// WithQueryParam call, in sorted-key order.
func (s *Spec) WithQueryParams(params map[string]any) *Spec {
	for _, k := range sortedKeys(params) {
		s.WithQueryParam(k, params[k])
	}
	return s
}

// WithHeader sets one header. Spec headers override defaults on
// case-insensitive key collision; last write wins within the spec.
func (s *Spec) WithHeader(name, value string) *Spec {
	s.headers = s.headers.Set(name, value)
	return s
}

// WithHeaders applies every entry of the mapping as an individual
// WithHeader call, in sorted-key order.
func (s *Spec) WithHeaders(headers map[string]string) *Spec {
	for _, k := range sortedKeys(headers) {
		s.WithHeader(k, headers[k])
	}
	return s
}

// WithBody sets a raw byte body. No content type is implied; set one via
// WithHeader if the server needs it. Replaces any other body variant.
func (s *Spec) WithBody(data []byte) *Spec {
	s.body = body.Candidate{Kind: body.Raw, Raw: data}
	return s
}

// WithBodyString sets a raw string body.
func (s *Spec) WithBodyString(data string) *Spec {
	return s.WithBody([]byte(data))
}

// WithJSON sets a JSON body serialized at resolve time. Content type
// becomes application/json unless a header explicitly overrides it.
// Replaces any other body variant.
func (s *Spec) WithJSON(v any) *Spec {
	s.body = body.Candidate{Kind: body.JSON, JSON: v}
	return s
}

// WithFormField appends one application/x-www-form-urlencoded field,
// switching the body to the form variant if it was something else.
func (s *Spec) WithFormField(key, value string) *Spec {
	if s.body.Kind != body.Form {
		s.body = body.Candidate{Kind: body.Form}
	}
	s.body.Form = append(s.body.Form, body.Field{Key: key, Value: value})
	return s
}

// WithForm applies every entry of the mapping as an individual
// WithFormField call, in sorted-key order.
func (s *Spec) WithForm(fields map[string]string) *Spec {
	for _, k := range sortedKeys(fields) {
		s.WithFormField(k, fields[k])
	}
	return s
}

// WithMultipartField appends one inline multipart part, switching the
// body to the multipart variant if it was something else.
func (s *Spec) WithMultipartField(name, value string) *Spec {
	return s.withPart(&body.Part{Name: name, Value: value})
}

// WithMultipartFile appends one file-backed multipart part. The filename
// defaults to the path's final segment; FileName and FileContentType
// options override the part's filename and content type.
func (s *Spec) WithMultipartFile(name, path string, opts ...FileOption) *Spec {
	f := &fileUpload{name: name, path: path}
	for _, opt := range opts {
		opt(f)
	}
	return s.withPart(body.FilePart(f.name, f.path, f.filename, f.contentType))
}

func (s *Spec) withPart(p *body.Part) *Spec {
	if s.body.Kind != body.Multipart {
		s.body = body.Candidate{Kind: body.Multipart}
	}
	s.body.Parts = append(s.body.Parts, p)
	return s
}

// FileOption customizes the WithFile upload shorthand.
type FileOption func(*fileUpload)

// FileField sets the multipart field name, which otherwise defaults to
// "file".
func FileField(name string) FileOption {
	return func(f *fileUpload) { f.name = name }
}

// FileName overrides the filename sent in the part, which otherwise
// defaults to the path's final segment.
func FileName(filename string) FileOption {
	return func(f *fileUpload) { f.filename = filename }
}

// FileContentType sets an explicit content type for the part.
func FileContentType(contentType string) FileOption {
	return func(f *fileUpload) { f.contentType = contentType }
}

// WithFile records a file upload. At resolve time it is folded into the
// multipart body: appended when one exists, otherwise a single-part
// multipart body is synthesized around it.
func (s *Spec) WithFile(path string, opts ...FileOption) *Spec {
	f := &fileUpload{path: path}
	for _, opt := range opts {
		opt(f)
	}
	s.file = f
	return s
}

// WithGraphQL sets a GraphQL body. Only valid for POST; Resolve fails
// with body.UnsupportedMethodError otherwise. Replaces any other body
// variant.
func (s *Spec) WithGraphQL(query string, variables map[string]any) *Spec {
	s.body = body.Candidate{
		Kind:    body.GraphQL,
		GraphQL: &body.GraphQLBody{Query: query, Variables: variables},
	}
	return s
}

// WithGraphQLQuery sets a GraphQL body with no variables.
func (s *Spec) WithGraphQLQuery(query string) *Spec {
	return s.WithGraphQL(query, nil)
}

// WithTimeout overrides the default timeout for this spec. Non-positive
// values are ignored.
func (s *Spec) WithTimeout(d time.Duration) *Spec {
	if d > 0 {
		s.timeout = d
		s.timeoutSet = true
	}
	return s
}

// WithFollowRedirects overrides the default redirect policy.
func (s *Spec) WithFollowRedirects(follow bool) *Spec {
	s.followRedirects = follow
	s.redirectsSet = true
	return s
}

// WithAuth sets basic-auth credentials.
func (s *Spec) WithAuth(user, pass string) *Spec {
	s.auth = &BasicAuth{User: user, Pass: pass}
	return s
}

// WithDefaults makes the spec resolve against the given store instead of
// the process-wide one. Intended for tests and embedded use.
func (s *Spec) WithDefaults(store *config.Store) *Spec {
	s.defaults = store
	return s
}

// WithRegistry makes Use look handlers up in the given registry instead
// of the process-wide one.
func (s *Spec) WithRegistry(r *Registry) *Spec {
	s.registry = r
	return s
}

// Use applies a named handler to the live spec. The handler runs
// immediately and may issue any further configuration calls, including
// nested Use. An unknown name sticks as UnknownHandlerError and aborts
// Resolve.
func (s *Spec) Use(name string, data any) *Spec {
	if s.err != nil {
		return s
	}
	registry := s.registry
	if registry == nil {
		registry = DefaultRegistry()
	}
	if err := registry.Invoke(name, s, data); err != nil {
		s.err = err
	}
	return s
}

// Err returns the first configuration error recorded so far, if any.
func (s *Spec) Err() error {
	return s.err
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
