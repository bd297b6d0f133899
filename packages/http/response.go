package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Response is the transport's view of what came back for a resolved
// request: the status, the headers, the fully-read body, and how long
// the exchange took.
type Response struct {
	StatusCode int
	Status     string
	Headers    map[string]string
	Body       []byte
	Duration   time.Duration
}

// StatusClass buckets a status code for display and flow control.
type StatusClass int

const (
	ClassInformational StatusClass = iota
	ClassSuccess
	ClassRedirect
	ClassClientError
	ClassServerError
)

func (c StatusClass) String() string {
	switch c {
	case ClassInformational:
		return "informational"
	case ClassSuccess:
		return "success"
	case ClassRedirect:
		return "redirect"
	case ClassClientError:
		return "client error"
	case ClassServerError:
		return "server error"
	default:
		return "unknown"
	}
}

// Class returns the status bucket of the response.
func (r *Response) Class() StatusClass {
	switch {
	case r.StatusCode >= 500:
		return ClassServerError
	case r.StatusCode >= 400:
		return ClassClientError
	case r.StatusCode >= 300:
		return ClassRedirect
	case r.StatusCode >= 200:
		return ClassSuccess
	default:
		return ClassInformational
	}
}

// IsError reports whether the response is a client or server error.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// Header returns a response header by case-insensitive name, "" if
// absent.
func (r *Response) Header(name string) string {
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

func (r *Response) BodyString() string {
	return string(r.Body)
}

// Extract returns the value at a gjson path of the response body, or an
// error when the path matches nothing.
func (r *Response) Extract(path string) (string, error) {
	result := gjson.GetBytes(r.Body, path)
	if !result.Exists() {
		return "", fmt.Errorf("path %q not found in response body", path)
	}
	return result.String(), nil
}

func (r *Response) DurationMs() int64 {
	return r.Duration.Milliseconds()
}
