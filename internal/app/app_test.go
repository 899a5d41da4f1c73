package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-engine/internal/config"
	"route-engine/internal/controllers"
	"route-engine/internal/resolve"
	"route-engine/internal/routing"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:     "0",
		LogLevel: "error",
		Mode:     "production",
		BaseURL:  "http://engine.test",
	}
}

func newPagesController() *controllers.Base {
	pages := controllers.NewBase("pages")
	pages.Register("home", "/", []string{http.MethodGet},
		func(ctx context.Context, app *resolve.App, params map[string]string) (interface{}, error) {
			return resolve.Text(http.StatusOK, "home"), nil
		})
	pages.Register("show", "/pages/{slug}", []string{http.MethodGet},
		func(ctx context.Context, app *resolve.App, params map[string]string) (interface{}, error) {
			return resolve.Text(http.StatusOK, "page "+params["slug"]), nil
		})
	return pages
}

func TestPublishCompilesRegisteredRoutes(t *testing.T) {
	a, err := New(testConfig())
	require.NoError(t, err)

	a.RegisterController(newPagesController())
	require.NoError(t, a.Publish())

	outcome, err := a.Table.Match(http.MethodGet, "/pages/about")
	require.NoError(t, err)
	assert.Equal(t, routing.CodeMatched, outcome.Code)
	assert.Equal(t, "about", outcome.PathParams["slug"])

	require.NotNil(t, a.URLs)
	assert.Equal(t, "/pages/contact", a.URLs.CreateURL("pages/show", map[string]string{"slug": "contact"}))
}

func TestPublishTwiceFails(t *testing.T) {
	a, err := New(testConfig())
	require.NoError(t, err)

	a.RegisterController(newPagesController())
	require.NoError(t, a.Publish())
	assert.ErrorIs(t, a.Publish(), routing.ErrAlreadyPublished)
}

func TestPublishWithRoutesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
routes:
  - pattern: /welcome
    methods: [GET]
    action: pages/home
groups:
  - prefix: /docs
    routes:
      - pattern: /{slug}
        methods: [GET]
        action: pages/show
`), 0o644))

	cfg := testConfig()
	cfg.RoutesFile = path

	a, err := New(cfg)
	require.NoError(t, err)
	a.RegisterController(newPagesController())
	require.NoError(t, a.Publish())

	outcome, err := a.Table.Match(http.MethodGet, "/welcome")
	require.NoError(t, err)
	assert.Equal(t, routing.CodeMatched, outcome.Code)

	outcome, err = a.Table.Match(http.MethodGet, "/docs/setup")
	require.NoError(t, err)
	assert.Equal(t, routing.CodeMatched, outcome.Code)
	assert.Equal(t, "setup", outcome.PathParams["slug"])
}

func TestPublishWithRoutesFileUnknownController(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
routes:
  - pattern: /x
    action: ghost/home
`), 0o644))

	cfg := testConfig()
	cfg.RoutesFile = path

	a, err := New(cfg)
	require.NoError(t, err)
	a.RegisterController(newPagesController())

	err = a.Publish()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestNewRequestAppCarriesConfiguration(t *testing.T) {
	cfg := testConfig()
	cfg.Mode = "debug"

	a, err := New(cfg)
	require.NoError(t, err)

	reqApp := a.NewRequestApp(httptest.NewRequest(http.MethodGet, "/?q=1", nil))
	assert.True(t, reqApp.DebugMode)
	assert.Same(t, a.ErrorController, reqApp.ErrorController)
	assert.Equal(t, "1", reqApp.Param("q"))
	assert.NotEmpty(t, reqApp.RequestID)
}

func TestJWTSecretEnablesValidator(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = "0123456789abcdef0123456789abcdef"
	cfg.JWTIssuer = "route-engine"

	a, err := New(cfg)
	require.NoError(t, err)
	assert.Len(t, a.Validators, 1)
}
