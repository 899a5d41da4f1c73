package resolve

import (
	"context"
	"net/http"

	"route-engine/internal/routing"
)

// Response is a finished HTTP response ready to be written out
type Response interface {
	Status() int
	Header() http.Header
	Body() []byte
}

// ResponseBuilder defers response formatting until the engine asks for
// it. Build may fail; a failing builder is treated exactly like a failing
// controller action and converts the route into an error route.
type ResponseBuilder interface {
	Build() (Response, error)
}

// Controller is the contract consumed by request resolution. A controller
// also acts as a routing.RouteProvider so the table can extract its
// declarations at registration time.
type Controller interface {
	routing.RouteProvider

	// ResolveAction runs the named action. The returned value may be a
	// Response, a ResponseBuilder, or (in debug mode) any raw value.
	ResolveAction(ctx context.Context, app *App, action string, params map[string]string) (interface{}, error)

	// ResolveError renders a failure. When asPlainText is set the
	// implementation must render without templates or any other fallible
	// machinery.
	ResolveError(ctx context.Context, app *App, cause error, asPlainText bool) (interface{}, error)

	// ActionPath returns the declared path template of an action, or ""
	// when the action has none
	ActionPath(action string) string
}

// Validator is consulted before a controller action runs. All validators
// must pass; the first failure converts the route into an error route
// with an authorization-denied cause.
type Validator interface {
	Validate(ctx context.Context, app *App) error
}

// ValidatorFunc adapts a function to the Validator interface
type ValidatorFunc func(ctx context.Context, app *App) error

// Validate implements Validator
func (f ValidatorFunc) Validate(ctx context.Context, app *App) error {
	return f(ctx, app)
}
