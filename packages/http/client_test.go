package http

import (
	"encoding/base64"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/reqspec/packages/core/config"
	"github.com/abdul-hamid-achik/reqspec/packages/core/spec"
)

func resolvedFor(t *testing.T, server *httptest.Server, build func(s *spec.Spec) *spec.Spec) *spec.ResolvedRequest {
	t.Helper()
	store := config.NewStore().SetBaseURL(server.URL)
	s := build(spec.Get("/"))
	resolved, err := s.WithDefaults(store).Resolve()
	require.NoError(t, err)
	return resolved
}

func TestClientDo(t *testing.T) {
	var gotMethod, gotHeader, gotRequestID string
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotMethod = r.Method
		gotHeader = r.Header.Get("X-Team")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	resolved := resolvedFor(t, server, func(s *spec.Spec) *spec.Spec {
		return s.WithHeader("X-Team", "core")
	})

	resp, err := NewClient().Do(resolved)
	require.NoError(t, err)

	assert.Equal(t, "GET", gotMethod)
	assert.Equal(t, "core", gotHeader)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, ClassSuccess, resp.Class())
	assert.Equal(t, `{"ok":true}`, resp.BodyString())

	value, err := resp.Extract("ok")
	require.NoError(t, err)
	assert.Equal(t, "true", value)
}

func TestClientSendsBody(t *testing.T) {
	var gotBody, gotContentType string
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		gotContentType = r.Header.Get("Content-Type")
	}))
	defer server.Close()

	store := config.NewStore().SetBaseURL(server.URL)
	resolved, err := spec.Post("/").
		WithJSON(map[string]any{"name": "api"}).
		WithDefaults(store).
		Resolve()
	require.NoError(t, err)

	_, err = NewClient().Do(resolved)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"api"}`, gotBody)
	assert.Equal(t, "application/json", gotContentType)
}

func TestClientBasicAuth(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer server.Close()

	resolved := resolvedFor(t, server, func(s *spec.Spec) *spec.Spec {
		return s.WithAuth("admin", "hunter2")
	})

	_, err := NewClient().Do(resolved)
	require.NoError(t, err)

	expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("admin:hunter2"))
	assert.Equal(t, expected, gotAuth)
}

func TestClientRedirectPolicy(t *testing.T) {
	target := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(200)
	}))
	defer target.Close()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		nethttp.Redirect(w, r, target.URL, nethttp.StatusFound)
	}))
	defer server.Close()

	client := NewClient()

	followed := resolvedFor(t, server, func(s *spec.Spec) *spec.Spec {
		return s.WithFollowRedirects(true)
	})
	resp, err := client.Do(followed)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	stopped := resolvedFor(t, server, func(s *spec.Spec) *spec.Spec {
		return s.WithFollowRedirects(false)
	})
	resp, err = client.Do(stopped)
	require.NoError(t, err)
	assert.Equal(t, 302, resp.StatusCode)
	assert.Equal(t, ClassRedirect, resp.Class())
}

func TestClientTimeout(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	resolved := resolvedFor(t, server, func(s *spec.Spec) *spec.Spec {
		return s.WithTimeout(50 * time.Millisecond)
	})

	_, err := NewClient().Do(resolved)
	assert.Error(t, err)
}

func TestClientRequestIDDisabled(t *testing.T) {
	var gotRequestID string
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
	}))
	defer server.Close()

	resolved := resolvedFor(t, server, func(s *spec.Spec) *spec.Spec { return s })

	_, err := NewClient(WithRequestID(false)).Do(resolved)
	require.NoError(t, err)
	assert.Empty(t, gotRequestID)
}

func TestResponseClass(t *testing.T) {
	tests := []struct {
		status int
		class  StatusClass
		name   string
	}{
		{100, ClassInformational, "informational"},
		{204, ClassSuccess, "success"},
		{302, ClassRedirect, "redirect"},
		{404, ClassClientError, "client error"},
		{503, ClassServerError, "server error"},
	}

	for _, tt := range tests {
		resp := &Response{StatusCode: tt.status}
		assert.Equal(t, tt.class, resp.Class())
		assert.Equal(t, tt.name, resp.Class().String())
		assert.Equal(t, tt.status >= 400, resp.IsError())
	}
}

func TestResponseHelpers(t *testing.T) {
	resp := &Response{
		StatusCode: 404,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       []byte(`{"error":{"message":"not found"}}`),
		Duration:   120 * time.Millisecond,
	}

	assert.Equal(t, "application/json", resp.Header("content-type"))
	assert.Equal(t, int64(120), resp.DurationMs())

	value, err := resp.Extract("error.message")
	require.NoError(t, err)
	assert.Equal(t, "not found", value)

	_, err = resp.Extract("error.code")
	assert.ErrorContains(t, err, "not found in response body")
}
