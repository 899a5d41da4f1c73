package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider implements RouteProvider for table tests
type stubProvider struct {
	name  string
	decls []Decl
}

func (p *stubProvider) Name() string       { return p.name }
func (p *stubProvider) RouteDecls() []Decl { return p.decls }

// pathProvider implements the per-action metadata alternative
type pathProvider struct {
	name  string
	paths map[string]string
}

func (p *pathProvider) Name() string                   { return p.name }
func (p *pathProvider) RouteDecls() []Decl             { return nil }
func (p *pathProvider) ActionPaths() map[string]string { return p.paths }

func TestTableAddRouteKeepsFirstNamedPattern(t *testing.T) {
	table := NewTable(nil)
	table.AddRoute([]string{"GET"}, "/user/{id}", "user/view", "h1")
	table.AddRoute([]string{"GET"}, "/member/{id}", "user/view", "h2")

	pattern, ok := table.PatternFor("user/view")
	require.True(t, ok)
	assert.Equal(t, "/user/{id}", pattern)
}

func TestTableGroupPrefix(t *testing.T) {
	table := NewTable(nil)

	table.Group("/api", func(g *Group) {
		g.AddRoute([]string{"GET"}, "/status", "api/status", "h")
		g.AddRoute([]string{"GET"}, "items/{id}", "api/item", "h")
	})

	// The prefix only lives inside the callback.
	table.AddRoute([]string{"GET"}, "/plain", "plain", "h")

	entries := table.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "/api/status", entries[0].Pattern)
	assert.Equal(t, "/api/items/{id}", entries[1].Pattern)
	assert.Equal(t, "/plain", entries[2].Pattern)
}

func TestTableRegisterControllerDedup(t *testing.T) {
	table := NewTable(nil)
	p := &stubProvider{
		name: "user",
		decls: []Decl{
			{Methods: []string{"GET"}, Pattern: "/user/{id}", Action: "view"},
		},
	}

	table.RegisterController(p)
	table.RegisterController(p)

	assert.Len(t, table.Entries(), 1)
}

func TestTableRegisterControllerActionPaths(t *testing.T) {
	table := NewTable(nil)
	table.RegisterController(&pathProvider{
		name:  "site",
		paths: map[string]string{"about": "/about"},
	})

	entries := table.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "/about", entries[0].Pattern)
	assert.Equal(t, "site/about", entries[0].Name)
	assert.Equal(t, []string{"GET"}, entries[0].Methods)
}

func TestTablePublishOnce(t *testing.T) {
	table := NewTable(nil)
	table.AddRoute([]string{"GET"}, "/user/{id}", "user/view", "h")

	require.NoError(t, table.Publish())
	assert.ErrorIs(t, table.Publish(), ErrAlreadyPublished)
}

func TestTableMatchBeforePublish(t *testing.T) {
	table := NewTable(nil)
	_, err := table.Match("GET", "/anything")
	assert.ErrorIs(t, err, ErrNotPublished)
}

func TestIndexSpecificityOrdering(t *testing.T) {
	table := NewTable(nil)
	table.AddRoute([]string{"GET"}, "/user/{id}", "user/view", "h")
	table.AddRoute([]string{"GET"}, "/user/{id}/{tab}", "user/tab", "h")
	table.AddRoute([]string{"GET"}, "/user/list", "user/list", "h")
	require.NoError(t, table.Publish())

	bucket := table.Index().Lookup("/user")
	require.Len(t, bucket, 2)
	assert.Equal(t, "/user/{id}/{tab}", bucket[0].Expression)
	assert.Equal(t, "/user/{id}", bucket[1].Expression)

	// Literal-only pattern indexes under its own full prefix.
	require.Len(t, table.Index().Lookup("/user/list"), 1)
}

func TestIndexStableOnEqualParamCount(t *testing.T) {
	table := NewTable(nil)
	table.AddRoute([]string{"GET"}, "/doc/{id}", "doc/first", "h")
	table.AddRoute([]string{"GET"}, "/doc/{name}", "doc/second", "h")
	require.NoError(t, table.Publish())

	bucket := table.Index().Lookup("/doc")
	require.Len(t, bucket, 2)
	// First registered wins on ties.
	assert.Equal(t, "/doc/{id}", bucket[0].Expression)
	assert.Equal(t, "/doc/{name}", bucket[1].Expression)
}
