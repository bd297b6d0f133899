// Package specfile loads YAML request descriptions and compiles them
// onto the fluent spec builder.
//
// A request file mirrors the builder's configuration surface:
//
//	method: POST
//	path: /api/projects/{project}/repos
//	pathParams:
//	  project: backend
//	queryParams:
//	  sort: name
//	headers:
//	  X-Team: core
//	body:
//	  json:
//	    name: api
//	use:
//	  - handler: as-admin
//
// Header and query mappings apply in document order, so files control
// serialization order exactly.
package specfile

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/reqspec/packages/core/spec"
)

// RequestFile is one YAML request description.
type RequestFile struct {
	Name            string            `yaml:"name,omitempty"`
	Method          string            `yaml:"method"`
	Path            string            `yaml:"path"`
	BaseURL         string            `yaml:"baseUrl,omitempty"`
	PathParams      map[string]string `yaml:"pathParams,omitempty"`
	QueryParams     yaml.Node         `yaml:"queryParams,omitempty"`
	Headers         yaml.Node         `yaml:"headers,omitempty"`
	Body            *BodySpec         `yaml:"body,omitempty"`
	File            *FileSpec         `yaml:"file,omitempty"`
	Timeout         int               `yaml:"timeout,omitempty"` // milliseconds
	FollowRedirects *bool             `yaml:"followRedirects,omitempty"`
	Auth            *AuthSpec         `yaml:"auth,omitempty"`
	Use             []UseSpec         `yaml:"use,omitempty"`
}

// BodySpec selects one body variant. Setting more than one follows the
// builder's last-wins policy in field order: raw, json, form, graphql,
// multipart.
type BodySpec struct {
	Raw       string       `yaml:"raw,omitempty"`
	JSON      yaml.Node    `yaml:"json,omitempty"`
	Form      yaml.Node    `yaml:"form,omitempty"`
	GraphQL   *GraphQLSpec `yaml:"graphql,omitempty"`
	Multipart []PartSpec   `yaml:"multipart,omitempty"`
}

type GraphQLSpec struct {
	Query     string         `yaml:"query"`
	Variables map[string]any `yaml:"variables,omitempty"`
}

// PartSpec is one multipart entry: either an inline value or a
// file-backed part. Filename and ContentType customize file-backed
// parts.
type PartSpec struct {
	Name        string `yaml:"name"`
	Value       string `yaml:"value,omitempty"`
	Path        string `yaml:"path,omitempty"`
	Filename    string `yaml:"filename,omitempty"`
	ContentType string `yaml:"contentType,omitempty"`
}

type FileSpec struct {
	Path        string `yaml:"path"`
	Name        string `yaml:"name,omitempty"`
	Filename    string `yaml:"filename,omitempty"`
	ContentType string `yaml:"contentType,omitempty"`
}

type AuthSpec struct {
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
}

type UseSpec struct {
	Handler string     `yaml:"handler"`
	Data    yaml.Node `yaml:"data,omitempty"`
}

// Load reads and parses a request file.
func Load(path string) (*RequestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses a request file from bytes.
func Parse(data []byte) (*RequestFile, error) {
	f := &RequestFile{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("failed to parse request file: %w", err)
	}
	return f, nil
}

// Spec compiles the file onto a fresh builder. Structural problems in the
// file fail here; spec-level problems (missing method, unknown handler)
// surface from Resolve, exactly as they would for hand-built specs.
func (f *RequestFile) Spec() (*spec.Spec, error) {
	s := spec.New().Method(f.Method, f.Path)

	if f.BaseURL != "" {
		s.WithBaseURL(f.BaseURL)
	}
	for k, v := range f.PathParams {
		s.WithPathParam(k, v)
	}

	if err := eachPair(&f.QueryParams, func(key string, value *yaml.Node) error {
		var v any
		if err := value.Decode(&v); err != nil {
			return err
		}
		s.WithQueryParam(key, v)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("queryParams: %w", err)
	}

	if err := eachPair(&f.Headers, func(key string, value *yaml.Node) error {
		s.WithHeader(key, value.Value)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("headers: %w", err)
	}

	if f.Body != nil {
		if err := f.Body.apply(s); err != nil {
			return nil, err
		}
	}

	if f.File != nil {
		var opts []spec.FileOption
		if f.File.Name != "" {
			opts = append(opts, spec.FileField(f.File.Name))
		}
		if f.File.Filename != "" {
			opts = append(opts, spec.FileName(f.File.Filename))
		}
		if f.File.ContentType != "" {
			opts = append(opts, spec.FileContentType(f.File.ContentType))
		}
		s.WithFile(f.File.Path, opts...)
	}

	if f.Timeout > 0 {
		s.WithTimeout(time.Duration(f.Timeout) * time.Millisecond)
	}
	if f.FollowRedirects != nil {
		s.WithFollowRedirects(*f.FollowRedirects)
	}
	if f.Auth != nil {
		s.WithAuth(f.Auth.User, f.Auth.Pass)
	}

	for _, u := range f.Use {
		var data any
		if !u.Data.IsZero() {
			if err := u.Data.Decode(&data); err != nil {
				return nil, fmt.Errorf("handler %s: %w", u.Handler, err)
			}
		}
		s.Use(u.Handler, data)
	}

	return s, nil
}

func (b *BodySpec) apply(s *spec.Spec) error {
	if b.Raw != "" {
		s.WithBodyString(b.Raw)
	}
	if !b.JSON.IsZero() {
		var v any
		if err := b.JSON.Decode(&v); err != nil {
			return fmt.Errorf("body.json: %w", err)
		}
		s.WithJSON(v)
	}
	if err := eachPair(&b.Form, func(key string, value *yaml.Node) error {
		s.WithFormField(key, value.Value)
		return nil
	}); err != nil {
		return fmt.Errorf("body.form: %w", err)
	}
	if b.GraphQL != nil {
		s.WithGraphQL(b.GraphQL.Query, b.GraphQL.Variables)
	}
	for _, p := range b.Multipart {
		if p.Path != "" {
			var opts []spec.FileOption
			if p.Filename != "" {
				opts = append(opts, spec.FileName(p.Filename))
			}
			if p.ContentType != "" {
				opts = append(opts, spec.FileContentType(p.ContentType))
			}
			s.WithMultipartFile(p.Name, p.Path, opts...)
		} else {
			s.WithMultipartField(p.Name, p.Value)
		}
	}
	return nil
}

// eachPair walks a YAML mapping node in document order. A zero node is
// treated as an absent mapping.
func eachPair(n *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	if n.IsZero() || n.Tag == "!!null" {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("expected a mapping, got %s", nodeKind(n))
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i].Value, n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.MappingNode:
		return "mapping"
	default:
		return "node"
	}
}
