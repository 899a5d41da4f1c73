// Package urls implements reverse routing: turning a symbolic route name
// plus named parameters back into a concrete URL.
package urls

import (
	"net/http"
	"net/url"
	"strings"

	"route-engine/internal/routing"
)

// Manager synthesizes URLs from the route table's reverse index. It is
// read-only over the published table and therefore safe for concurrent
// use.
type Manager struct {
	table   *routing.Table
	baseURL *url.URL
}

// NewManager creates a URL manager over a route table. baseURL supplies
// scheme and host for absolute URLs when no request is at hand; it may be
// empty.
func NewManager(table *routing.Table, baseURL string) (*Manager, error) {
	m := &Manager{table: table}

	if baseURL != "" {
		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, err
		}
		m.baseURL = parsed
	}

	return m, nil
}

// CreateURL synthesizes a relative URL for a route name.
//
// The route may carry a literal #fragment, which is stripped first and
// re-appended last. Placeholders found directly inside the route are
// substituted from params. The route's declared path template (or, for
// literal routes, the route itself) then keys into the path index, and
// the first expression of the bucket whose full parameter-name set is
// covered by the still-unconsumed params wins; buckets are pre-sorted
// most-specific first, so the richest satisfiable template is chosen.
// Params not consumed by any substitution become the query string.
//
// When no bucket or no satisfiable expression exists, the literal route
// is used as the path with any remaining placeholders left unresolved;
// callers must treat leftover {name} tokens as their own error.
func (m *Manager) CreateURL(route string, params map[string]string) string {
	route, fragment := splitFragment(route)

	remaining := make(map[string]string, len(params))
	for k, v := range params {
		remaining[k] = v
	}

	// Placeholders spelled directly inside the route name.
	route = substitute(route, collectNames(route), remaining)

	path := m.resolvePath(route, remaining)

	if len(remaining) > 0 {
		query := url.Values{}
		for k, v := range remaining {
			query.Set(k, v)
		}
		path += "?" + query.Encode()
	}

	if fragment != "" {
		path += "#" + fragment
	}

	return path
}

// CreateAbsoluteURL synthesizes an absolute URL. Scheme and host come
// from the active request when one is given, from the configured base
// URL otherwise. A route that already resolves to an absolute URL is
// passed through with its scheme normalized to lower case.
func (m *Manager) CreateAbsoluteURL(r *http.Request, route string, params map[string]string) string {
	u := m.CreateURL(route, params)

	if scheme, rest, ok := splitScheme(u); ok {
		return strings.ToLower(scheme) + "://" + rest
	}

	scheme, host := m.hostInfo(r)
	if host == "" {
		return u
	}
	return scheme + "://" + host + u
}

// ExtractStaticPart reduces a pattern to its static prefix with the same
// rule the path index uses for bucket keys
func (m *Manager) ExtractStaticPart(pattern string) string {
	return routing.StaticPrefix(pattern)
}

// resolvePath picks and fills the best path template for a route
func (m *Manager) resolvePath(route string, remaining map[string]string) string {
	if _, _, ok := splitScheme(route); ok {
		// Already absolute, nothing to resolve.
		return route
	}

	prefix := routing.StaticPrefix(route)
	if pattern, ok := m.table.PatternFor(route); ok {
		prefix = routing.StaticPrefix(pattern)
	}

	for _, expr := range m.table.Index().Lookup(prefix) {
		if !covered(expr.ParamNames, remaining) {
			continue
		}
		return substitute(expr.Expression, expr.ParamNames, remaining)
	}

	// Unregistered prefix: the literal route, unresolved placeholders and
	// all, is the caller's problem.
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return route
}

// hostInfo determines scheme and host for absolute URLs
func (m *Manager) hostInfo(r *http.Request) (scheme, host string) {
	if r != nil && r.Host != "" {
		scheme = "http"
		if r.TLS != nil {
			scheme = "https"
		}
		return scheme, r.Host
	}

	if m.baseURL != nil {
		scheme = m.baseURL.Scheme
		if scheme == "" {
			scheme = "http"
		}
		return scheme, m.baseURL.Host
	}

	return "", ""
}

// covered reports whether every name has a value available
func covered(names []string, params map[string]string) bool {
	for _, name := range names {
		if _, ok := params[name]; !ok {
			return false
		}
	}
	return true
}

// substitute replaces {name} tokens with escaped parameter values,
// consuming each used name
func substitute(s string, names []string, params map[string]string) string {
	for _, name := range names {
		value, ok := params[name]
		if !ok {
			continue
		}
		token := "{" + name + "}"
		if !strings.Contains(s, token) {
			continue
		}
		s = strings.ReplaceAll(s, token, url.PathEscape(value))
		delete(params, name)
	}
	return s
}

// collectNames lists the placeholder names appearing in a route
func collectNames(route string) []string {
	return routing.BuildPathExpression(route).ParamNames
}

// splitFragment strips a literal #fragment
func splitFragment(route string) (string, string) {
	if i := strings.IndexByte(route, '#'); i >= 0 {
		return route[:i], route[i+1:]
	}
	return route, ""
}

// splitScheme detects an already-absolute URL
func splitScheme(u string) (scheme, rest string, ok bool) {
	i := strings.Index(u, "://")
	if i <= 0 {
		return "", "", false
	}
	return u[:i], u[i+3:], true
}
