package specfile

import (
	"bytes"
	"fmt"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/reqspec/packages/core/config"
	"github.com/abdul-hamid-achik/reqspec/packages/core/spec"
)

func testStore() *config.Store {
	return config.NewStore().SetBaseURL("http://localhost:3000")
}

func resolveYAML(t *testing.T, content string) *spec.ResolvedRequest {
	t.Helper()
	f, err := Parse([]byte(content))
	require.NoError(t, err)
	s, err := f.Spec()
	require.NoError(t, err)
	resolved, err := s.WithDefaults(testStore()).Resolve()
	require.NoError(t, err)
	return resolved
}

func TestSpecBasic(t *testing.T) {
	resolved := resolveYAML(t, `
name: list projects
method: GET
path: /api/projects
`)
	assert.Equal(t, "GET", resolved.Method)
	assert.Equal(t, "http://localhost:3000/api/projects", resolved.AbsoluteURL)
}

func TestSpecPathAndQueryParams(t *testing.T) {
	resolved := resolveYAML(t, `
method: GET
path: /api/project/{project}/repo/{repo}
pathParams:
  project: x
  repo: y
queryParams:
  gender: male
  country: IND
  age: 17
`)
	// Query params keep the file's document order.
	assert.Equal(t,
		"http://localhost:3000/api/project/x/repo/y?gender=male&country=IND&age=17",
		resolved.AbsoluteURL)
}

func TestSpecHeadersKeepDocumentOrder(t *testing.T) {
	resolved := resolveYAML(t, `
method: GET
path: /api
headers:
  X-Second-Alphabetically: b
  X-First-Alphabetically: a
`)
	require.Len(t, resolved.Headers, 2)
	assert.Equal(t, "X-Second-Alphabetically", resolved.Headers[0].Name)
	assert.Equal(t, "X-First-Alphabetically", resolved.Headers[1].Name)
}

func TestSpecJSONBody(t *testing.T) {
	resolved := resolveYAML(t, `
method: POST
path: /api/projects
body:
  json:
    name: api
    tags:
      - a
      - b
`)
	assert.Equal(t, "application/json", resolved.ContentType)
	assert.JSONEq(t, `{"name":"api","tags":["a","b"]}`, string(resolved.Body))
}

func TestSpecRawBody(t *testing.T) {
	resolved := resolveYAML(t, `
method: POST
path: /api/xml
body:
  raw: "<project/>"
headers:
  Content-Type: application/xml
`)
	assert.Equal(t, "<project/>", string(resolved.Body))
	assert.Equal(t, "application/xml", resolved.Header("Content-Type"))
}

func TestSpecFormBody(t *testing.T) {
	resolved := resolveYAML(t, `
method: POST
path: /login
body:
  form:
    user: admin
    pass: secret
`)
	assert.Equal(t, "application/x-www-form-urlencoded", resolved.ContentType)
	assert.Equal(t, "user=admin&pass=secret", string(resolved.Body))
}

func TestSpecGraphQLBody(t *testing.T) {
	resolved := resolveYAML(t, `
method: POST
path: /graphql
body:
  graphql:
    query: "{ ping }"
    variables:
      limit: 10
`)
	assert.JSONEq(t, `{"query":"{ ping }","variables":{"limit":10}}`, string(resolved.Body))
}

func TestSpecMultipartFilePartOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0644))

	resolved := resolveYAML(t, fmt.Sprintf(`
method: POST
path: /upload
body:
  multipart:
    - name: description
      value: quarterly report
    - name: doc
      path: %s
      filename: renamed.bin
      contentType: application/pdf
`, path))

	_, params, err := mime.ParseMediaType(resolved.ContentType)
	require.NoError(t, err)

	reader := multipart.NewReader(bytes.NewReader(resolved.Body), params["boundary"])

	first, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "description", first.FormName())

	second, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "doc", second.FormName())
	assert.Equal(t, "renamed.bin", second.FileName())
	assert.Equal(t, "application/pdf", second.Header.Get("Content-Type"))
}

func TestSpecTimeoutAuthRedirects(t *testing.T) {
	resolved := resolveYAML(t, `
method: GET
path: /api
timeout: 1500
followRedirects: false
auth:
  user: admin
  pass: hunter2
`)
	assert.Equal(t, 1500*time.Millisecond, resolved.Timeout)
	assert.False(t, resolved.FollowRedirects)
	require.NotNil(t, resolved.Auth)
	assert.Equal(t, "admin", resolved.Auth.User)
}

func TestSpecUseHandler(t *testing.T) {
	require.NoError(t, spec.RegisterHandler("specfile-test-auth", func(ctx *spec.HandlerContext) {
		ctx.Spec.WithHeader("Authorization", "Bearer "+ctx.Data.(string))
	}))

	resolved := resolveYAML(t, `
method: GET
path: /api
use:
  - handler: specfile-test-auth
    data: tok-9
`)
	assert.Equal(t, "Bearer tok-9", resolved.Header("Authorization"))
}

func TestSpecUnknownHandlerSurfacesAtResolve(t *testing.T) {
	f, err := Parse([]byte(`
method: GET
path: /api
use:
  - handler: never-registered-anywhere
`))
	require.NoError(t, err)
	s, err := f.Spec()
	require.NoError(t, err)

	_, err = s.WithDefaults(testStore()).Resolve()
	assert.ErrorContains(t, err, "unknown handler")
}

func TestSpecRejectsNonMappingQueryParams(t *testing.T) {
	f, err := Parse([]byte(`
method: GET
path: /api
queryParams:
  - not
  - a
  - mapping
`))
	require.NoError(t, err)
	_, err = f.Spec()
	assert.ErrorContains(t, err, "queryParams")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.yaml")
	require.NoError(t, os.WriteFile(path, []byte("method: DELETE\npath: /api/projects/{id}\npathParams:\n  id: \"9\"\n"), 0644))

	f, err := Load(path)
	require.NoError(t, err)
	s, err := f.Spec()
	require.NoError(t, err)

	resolved, err := s.WithDefaults(testStore()).Resolve()
	require.NoError(t, err)
	assert.Equal(t, "DELETE", resolved.Method)
	assert.Equal(t, "http://localhost:3000/api/projects/9", resolved.AbsoluteURL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
