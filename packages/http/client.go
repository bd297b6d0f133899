package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abdul-hamid-achik/reqspec/packages/core/spec"
)

const (
	// DefaultMaxRedirects is the maximum number of redirects to follow
	// when the resolved request allows redirects.
	DefaultMaxRedirects = 10
	// DefaultMaxIdleConns is the maximum number of idle connections in the pool
	DefaultMaxIdleConns = 100
	// DefaultMaxIdleConnsPerHost is the maximum number of idle connections per host
	DefaultMaxIdleConnsPerHost = 10
	// DefaultIdleConnTimeout is how long idle connections stay in the pool
	DefaultIdleConnTimeout = 90 * time.Second
)

// Client sends resolved requests. Timeout and redirect policy come from
// each ResolvedRequest, not from the client.
type Client struct {
	transport    *http.Transport
	maxRedirects int
	validateSSL  bool
	requestID    bool
	logger       zerolog.Logger
}

type ClientOption func(*Client)

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		maxRedirects: DefaultMaxRedirects,
		validateSSL:  true,
		requestID:    true,
		logger:       zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.transport = &http.Transport{
		MaxIdleConns:        DefaultMaxIdleConns,
		MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,
		IdleConnTimeout:     DefaultIdleConnTimeout,
	}
	if !c.validateSSL {
		c.transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return c
}

// WithLogger attaches a zerolog logger; every request logs one event at
// debug level and failures log at error level.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMaxRedirects caps how many redirects are followed.
func WithMaxRedirects(max int) ClientOption {
	return func(c *Client) {
		c.maxRedirects = max
	}
}

// WithValidateSSL enables or disables SSL certificate validation.
func WithValidateSSL(validate bool) ClientOption {
	return func(c *Client) {
		c.validateSSL = validate
	}
}

// WithRequestID enables or disables the generated X-Request-ID header.
func WithRequestID(enabled bool) ClientOption {
	return func(c *Client) {
		c.requestID = enabled
	}
}

// Do executes a resolved request and reads the full response body.
func (c *Client) Do(req *spec.ResolvedRequest) (*Response, error) {
	ctx := context.Background()
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	var bodyReader io.Reader
	if req.HasBody() {
		bodyReader = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.AbsoluteURL, bodyReader)
	if err != nil {
		return nil, err
	}

	for _, h := range req.Headers {
		httpReq.Header.Set(h.Name, h.Value)
	}
	if c.requestID && httpReq.Header.Get("X-Request-ID") == "" {
		httpReq.Header.Set("X-Request-ID", uuid.NewString())
	}
	if req.Auth != nil {
		httpReq.SetBasicAuth(req.Auth.User, req.Auth.Pass)
	}

	httpClient := &http.Client{
		Transport: c.transport,
		CheckRedirect: func(r *http.Request, via []*http.Request) error {
			if !req.FollowRedirects {
				return http.ErrUseLastResponse
			}
			if len(via) >= c.maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	start := time.Now()
	httpResp, err := httpClient.Do(httpReq)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error().
			Str("method", req.Method).
			Str("url", req.AbsoluteURL).
			Dur("duration", duration).
			Err(err).
			Msg("request failed")
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.AbsoluteURL).
		Int("status", httpResp.StatusCode).
		Dur("duration", duration).
		Int("bytes", len(respBody)).
		Msg("request complete")

	headers := make(map[string]string)
	for k := range httpResp.Header {
		headers[k] = httpResp.Header.Get(k)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Headers:    headers,
		Body:       respBody,
		Duration:   duration,
	}, nil
}
