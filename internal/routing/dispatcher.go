package routing

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
)

// Code classifies a dispatch outcome
type Code int

const (
	// CodeMatched means a route entry matched the request
	CodeMatched Code = iota
	// CodeNotFound means no pattern matched the path
	CodeNotFound
	// CodeMethodNotAllowed means a pattern matched the path, but not the method
	CodeMethodNotAllowed
	// CodeOther covers matcher results the engine does not interpret
	CodeOther
)

// String returns the string representation of a dispatch code
func (c Code) String() string {
	switch c {
	case CodeMatched:
		return "matched"
	case CodeNotFound:
		return "not_found"
	case CodeMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "other"
	}
}

// Outcome is the result of matching one request against the compiled
// routes. It is produced once per request and read-only afterwards.
type Outcome struct {
	Code Code

	// Handler is the entry's opaque handler, present only when matched
	Handler interface{}

	// PathParams maps placeholder names to captured path values, present
	// only when matched
	PathParams map[string]string

	// Method and Path echo the matched request for error synthesis
	Method string
	Path   string
}

// Dispatcher adapts the route table to gorilla/mux. The mux router does
// the actual pattern matching; the adapter's job is translating mux's
// match result into the engine's outcome contract.
type Dispatcher struct {
	router *mux.Router
}

// entryHandler smuggles a route entry through mux's http.Handler slot.
// It is never served directly.
type entryHandler struct {
	entry *Entry
}

func (entryHandler) ServeHTTP(http.ResponseWriter, *http.Request) {}

// compileDispatcher builds a mux router from the table's entries. Route
// patterns already use mux's {name} placeholder syntax, so they compile
// unmodified.
func compileDispatcher(entries []*Entry) (*Dispatcher, error) {
	router := mux.NewRouter()

	for _, entry := range entries {
		route := router.Handle(entry.Pattern, entryHandler{entry: entry})
		if len(entry.Methods) > 0 {
			route.Methods(entry.Methods...)
		}
		if err := route.GetError(); err != nil {
			return nil, err
		}
	}

	return &Dispatcher{router: router}, nil
}

// Match resolves method and path into an Outcome.
//
// mux reports a failed match through RouteMatch.MatchErr:
// ErrMethodMismatch when the path is known under other methods,
// ErrNotFound when nothing matched at all. Anything else maps to
// CodeOther and is synthesized into an error downstream.
func (d *Dispatcher) Match(method, path string) Outcome {
	req := &http.Request{
		Method: method,
		URL:    &url.URL{Path: path},
	}

	var match mux.RouteMatch
	if d.router.Match(req, &match) {
		eh, ok := match.Handler.(entryHandler)
		if !ok {
			return Outcome{Code: CodeOther, Method: method, Path: path}
		}
		return Outcome{
			Code:       CodeMatched,
			Handler:    eh.entry.Handler,
			PathParams: match.Vars,
			Method:     method,
			Path:       path,
		}
	}

	switch match.MatchErr {
	case mux.ErrMethodMismatch:
		return Outcome{Code: CodeMethodNotAllowed, Method: method, Path: path}
	case mux.ErrNotFound, nil:
		return Outcome{Code: CodeNotFound, Method: method, Path: path}
	default:
		return Outcome{Code: CodeOther, Method: method, Path: path}
	}
}
