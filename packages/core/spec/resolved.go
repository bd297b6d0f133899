package spec

import (
	"strings"
	"time"

	"github.com/abdul-hamid-achik/reqspec/packages/body"
	"github.com/abdul-hamid-achik/reqspec/packages/core/config"
	"github.com/abdul-hamid-achik/reqspec/packages/core/template"
)

// ResolvedRequest is the immutable, fully-merged request descriptor ready
// for a transport. Treat it as read-only after Resolve returns it.
type ResolvedRequest struct {
	AbsoluteURL     string
	Method          string
	Headers         config.Headers
	Body            []byte
	ContentType     string
	Timeout         time.Duration
	FollowRedirects bool
	Auth            *BasicAuth
}

// Header returns a merged header value by case-insensitive name.
func (r *ResolvedRequest) Header(name string) string {
	return r.Headers.Get(name)
}

// HasBody reports whether any body bytes will be sent.
func (r *ResolvedRequest) HasBody() bool {
	return len(r.Body) > 0
}

// Resolve finalizes the spec against the defaults store. This is the only
// point at which defaults are read. It validates completeness, substitutes
// path tokens, serializes the query, merges headers, encodes the single
// active body, and fills timeout and redirect policy from the store where
// the spec has no override.
func (s *Spec) Resolve() (*ResolvedRequest, error) {
	if s.err != nil {
		return nil, s.err
	}
	if err := s.checkComplete(); err != nil {
		return nil, err
	}

	defaults := s.defaults
	if defaults == nil {
		defaults = config.Default()
	}

	path, err := template.Resolve(s.rawPath, s.pathParams)
	if err != nil {
		return nil, err
	}

	absoluteURL, err := s.buildURL(path, defaults)
	if err != nil {
		return nil, err
	}

	headers := defaults.Headers().Merge(s.headers)

	candidate := s.body
	if s.file != nil {
		part := body.FilePart(s.file.name, s.file.path, s.file.filename, s.file.contentType)
		if candidate.Kind == body.Multipart {
			candidate.Parts = append(candidate.Parts, part)
		} else {
			candidate = body.Candidate{Kind: body.Multipart, Parts: []*body.Part{part}}
		}
	}

	encoded, err := body.Encode(s.method, &candidate)
	if err != nil {
		return nil, err
	}

	contentType := encoded.ContentType
	if contentType != "" {
		// Multipart must carry the generated boundary; other encodings
		// yield to an explicit header.
		if candidate.Kind == body.Multipart {
			headers = headers.Set("Content-Type", contentType)
		} else if existing, ok := headers.Lookup("Content-Type"); ok {
			contentType = existing
		} else {
			headers = headers.Set("Content-Type", contentType)
		}
	}

	timeout := defaults.Timeout()
	if s.timeoutSet {
		timeout = s.timeout
	}
	followRedirects := defaults.FollowRedirects()
	if s.redirectsSet {
		followRedirects = s.followRedirects
	}

	return &ResolvedRequest{
		AbsoluteURL:     absoluteURL,
		Method:          s.method,
		Headers:         headers,
		Body:            encoded.Data,
		ContentType:     contentType,
		Timeout:         timeout,
		FollowRedirects: followRedirects,
		Auth:            s.auth,
	}, nil
}

// MissingPathParams returns the path template tokens that have no
// supplied value yet, in order of first appearance. Useful for
// pre-flight checks that want to report every missing parameter at
// once; Resolve itself stops at the first.
func (s *Spec) MissingPathParams() []string {
	var missing []string
	for _, token := range template.Tokens(s.rawPath) {
		if _, ok := s.pathParams[token]; !ok {
			missing = append(missing, token)
		}
	}
	return missing
}

func (s *Spec) checkComplete() error {
	switch {
	case s.method == "" && s.rawPath == "":
		return &IncompleteSpecError{Missing: "method and path"}
	case s.method == "":
		return &IncompleteSpecError{Missing: "method"}
	case s.rawPath == "":
		return &IncompleteSpecError{Missing: "path"}
	}
	return nil
}

func (s *Spec) buildURL(path string, defaults *config.Store) (string, error) {
	absoluteURL := path
	if !isAbsoluteURL(path) {
		base := s.baseURL
		if base == "" {
			base = defaults.BaseURL()
		}
		if base == "" {
			return "", &MissingBaseURLError{Path: path}
		}
		if strings.HasSuffix(base, "/") && strings.HasPrefix(path, "/") {
			base = strings.TrimSuffix(base, "/")
		}
		absoluteURL = base + path
	}

	if query := encodeQuery(s.query); query != "" {
		absoluteURL += "?" + query
	}
	return absoluteURL, nil
}

func isAbsoluteURL(path string) bool {
	return strings.Contains(path, "://")
}
