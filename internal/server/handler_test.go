package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-engine/internal/app"
	"route-engine/internal/config"
	"route-engine/internal/controllers"
	"route-engine/internal/resolve"
)

func newTestApp(t *testing.T, mode string) *app.App {
	t.Helper()

	a, err := app.New(&config.Config{
		Port:     "0",
		LogLevel: "error",
		Mode:     mode,
		BaseURL:  "http://engine.test",
	})
	require.NoError(t, err)

	articles := controllers.NewBase("articles")
	articles.Register("list", "/articles", []string{http.MethodGet},
		func(ctx context.Context, app *resolve.App, params map[string]string) (interface{}, error) {
			return resolve.JSON(http.StatusOK, map[string]string{"page": app.Param("page")}), nil
		})
	articles.Register("show", "/articles/{slug}", []string{http.MethodGet},
		func(ctx context.Context, app *resolve.App, params map[string]string) (interface{}, error) {
			return resolve.Text(http.StatusOK, "article "+params["slug"]), nil
		})
	a.RegisterController(articles)

	require.NoError(t, a.Publish())
	return a
}

func TestEngineHandlerMatchedRoute(t *testing.T) {
	handler := NewEngineHandler(newTestApp(t, "production"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles/go-routing", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "article go-routing", rec.Body.String())
}

func TestEngineHandlerQueryParams(t *testing.T) {
	handler := NewEngineHandler(newTestApp(t, "production"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles?page=3", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "3", body["page"])
}

func TestEngineHandlerNotFound(t *testing.T) {
	handler := NewEngineHandler(newTestApp(t, "production"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestEngineHandlerMethodNotAllowed(t *testing.T) {
	handler := NewEngineHandler(newTestApp(t, "production"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/articles", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestEngineHandlerBeforePublish(t *testing.T) {
	a, err := app.New(&config.Config{Port: "0", LogLevel: "error", Mode: "production"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	NewEngineHandler(a).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
