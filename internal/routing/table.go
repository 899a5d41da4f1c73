package routing

import (
	"errors"
	"fmt"
	"strings"

	"route-engine/internal/common/logging"
)

var (
	// ErrAlreadyPublished is returned when Publish is called twice
	ErrAlreadyPublished = errors.New("route table already published")
	// ErrNotPublished is returned when the table is used before Publish
	ErrNotPublished = errors.New("route table not published")
)

// Decl declares one route of a controller: the methods and pattern under
// which the named action is reachable
type Decl struct {
	Methods []string
	Pattern string
	Action  string
}

// RouteProvider is the registration contract a controller fulfills.
// RouteDecls is the conventional declaration list; providers whose routes
// are purely per-action metadata implement ActionPathProvider instead.
type RouteProvider interface {
	// Name identifies the provider and prefixes its route names
	Name() string
	// RouteDecls lists the provider's route declarations
	RouteDecls() []Decl
}

// ActionPathProvider supplies declarative per-action path metadata as an
// alternative to RouteDecls. Actions registered this way respond to GET.
type ActionPathProvider interface {
	ActionPaths() map[string]string
}

// Binding is the opaque handler stored with a route entry: the provider
// that owns the action plus the action name. The resolution layer narrows
// the provider back to its controller contract.
type Binding struct {
	Provider RouteProvider
	Action   string
}

// Entry is one published route: an immutable (methods, pattern, handler)
// triple plus the symbolic route name
type Entry struct {
	Methods []string
	Pattern string
	Name    string
	Handler interface{}
}

// Table collects route entries and compiles them on Publish. It is not
// safe for concurrent registration, and it does not need to be: routes
// are registered at boot, before the first request.
type Table struct {
	entries    []*Entry
	names      map[string]string
	registered map[string]bool
	index      *PathIndex
	dispatcher *Dispatcher
	published  bool
	logger     logging.Logger
}

// NewTable creates an empty route table
func NewTable(logger logging.Logger) *Table {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Table{
		names:      make(map[string]string),
		registered: make(map[string]bool),
		index:      NewPathIndex(),
		logger:     logger,
	}
}

// AddRoute appends a route entry. The first pattern registered under a
// route name becomes the name's declared template for reverse routing.
func (t *Table) AddRoute(methods []string, pattern, name string, handler interface{}) {
	entry := &Entry{
		Methods: append([]string(nil), methods...),
		Pattern: pattern,
		Name:    name,
		Handler: handler,
	}
	t.entries = append(t.entries, entry)

	if name != "" {
		if _, exists := t.names[name]; !exists {
			t.names[name] = pattern
		}
	}

	t.logger.Debug("route registered",
		logging.Field{Key: "pattern", Value: pattern},
		logging.Field{Key: "name", Value: name},
		logging.Field{Key: "methods", Value: methods})
}

// Group runs fn with a builder that prefixes every registered pattern.
// The prefix lives only for the duration of the callback; groups do not
// nest.
func (t *Table) Group(prefix string, fn func(g *Group)) {
	fn(&Group{table: t, prefix: normalizePrefix(prefix)})
}

// Group registers routes under a shared path prefix
type Group struct {
	table  *Table
	prefix string
}

// AddRoute appends a route entry with the group prefix applied
func (g *Group) AddRoute(methods []string, pattern, name string, handler interface{}) {
	g.table.AddRoute(methods, joinPattern(g.prefix, pattern), name, handler)
}

// RegisterController extracts a controller's route declarations and adds
// them to the table. Route names take the form "provider/action".
// Registering the same provider name twice is a no-op, so wiring code may
// pass a controller through several registration paths safely.
func (t *Table) RegisterController(p RouteProvider) {
	if t.registered[p.Name()] {
		t.logger.Debug("controller already registered", logging.Field{Key: "controller", Value: p.Name()})
		return
	}
	t.registered[p.Name()] = true

	decls := p.RouteDecls()
	if len(decls) == 0 {
		if app, ok := p.(ActionPathProvider); ok {
			for action, pattern := range app.ActionPaths() {
				decls = append(decls, Decl{Methods: []string{"GET"}, Pattern: pattern, Action: action})
			}
		}
	}

	for _, d := range decls {
		name := p.Name() + "/" + d.Action
		t.AddRoute(d.Methods, d.Pattern, name, Binding{Provider: p, Action: d.Action})
	}
}

// Publish compiles the table: every entry is parsed into a PathExpression
// and indexed under its static prefix, buckets are sorted most-specific
// first, and the dispatcher is compiled from all entries. Publish must
// run exactly once, before the first request.
func (t *Table) Publish() error {
	if t.published {
		return ErrAlreadyPublished
	}

	for _, entry := range t.entries {
		t.index.Insert(BuildPathExpression(entry.Pattern))
	}
	t.index.sortBuckets()

	dispatcher, err := compileDispatcher(t.entries)
	if err != nil {
		return fmt.Errorf("compiling dispatcher: %w", err)
	}
	t.dispatcher = dispatcher
	t.published = true

	t.logger.Info("route table published", logging.Field{Key: "routes", Value: len(t.entries)})
	return nil
}

// Match resolves a request against the compiled dispatcher
func (t *Table) Match(method, path string) (Outcome, error) {
	if !t.published {
		return Outcome{}, ErrNotPublished
	}
	return t.dispatcher.Match(method, path), nil
}

// PatternFor returns the declared path template of a route name
func (t *Table) PatternFor(name string) (string, bool) {
	pattern, ok := t.names[name]
	return pattern, ok
}

// Index exposes the reverse-lookup index for the URL manager
func (t *Table) Index() *PathIndex {
	return t.index
}

// Entries returns the registered entries in registration order
func (t *Table) Entries() []*Entry {
	return t.entries
}

// joinPattern glues a group prefix onto a pattern without doubling the
// separator
func joinPattern(prefix, pattern string) string {
	if prefix == "/" {
		return pattern
	}
	if pattern == "" || pattern == "/" {
		return prefix
	}
	if !strings.HasPrefix(pattern, "/") {
		pattern = "/" + pattern
	}
	return prefix + pattern
}
