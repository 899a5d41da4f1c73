// Package resolve drives a single request from dispatch outcome to final
// response.
//
// A Route is a request-scoped state machine. It consumes exactly one
// dispatch outcome, invokes the bound controller action behind the
// validator gate, and converts any failure into a second resolution
// attempt against the application's error controller. Failures of the
// error controller itself convert again, bounded by MaxErrorConversions;
// past the bound the engine forces plain-text rendering, and if even that
// fails it emits its own minimal text response, so Resolve always
// terminates with a response and never panics or loops forever.
package resolve

import (
	"context"
	"fmt"

	rterrors "route-engine/internal/common/errors"
	"route-engine/internal/common/logging"
	"route-engine/internal/routing"
)

// MaxErrorConversions bounds how many times a route may be converted to
// an error route before rendering degrades to plain text. The bound is
// behaviorally significant: tests and operators rely on the third
// conversion being the last templated one.
const MaxErrorConversions = 3

// ErrorAction is the fixed entry point invoked on the error controller
const ErrorAction = "error"

// Route resolves one dispatched request into one response. Routes are
// exclusively owned by the request they were created for and must not be
// reused.
type Route struct {
	app *App

	outcome    routing.Outcome
	controller Controller
	action     string
	params     map[string]string

	isError    bool
	errorCause error
	errorCount int
	plainText  bool

	pathTemplate string
	pathResolved bool
}

// NewRoute creates a route bound to a request-scoped application
func NewRoute(app *App) *Route {
	return &Route{app: app}
}

// SetDispatchedData consumes the dispatch outcome. A matched outcome
// binds controller, action and path parameters, and merges the keyed
// captures into the request's query-parameter space (captures win on
// collision). Any other outcome synthesizes the corresponding error and
// immediately converts the route into an error route.
func (r *Route) SetDispatchedData(outcome routing.Outcome) {
	r.outcome = outcome

	switch outcome.Code {
	case routing.CodeMatched:
		binding, ok := outcome.Handler.(routing.Binding)
		if !ok {
			r.convertToError(rterrors.UnsupportedDispatchCode(int(outcome.Code)).
				WithContext("reason", "handler is not a binding"))
			return
		}
		controller, ok := binding.Provider.(Controller)
		if !ok {
			r.convertToError(rterrors.UnsupportedDispatchCode(int(outcome.Code)).
				WithContext("reason", "provider is not a controller"))
			return
		}

		r.controller = controller
		r.action = binding.Action
		r.params = outcome.PathParams
		if len(outcome.PathParams) > 0 {
			r.app.MergeParams(outcome.PathParams)
		}

	case routing.CodeNotFound:
		r.convertToError(rterrors.RouteNotFound(outcome.Method, outcome.Path))

	case routing.CodeMethodNotAllowed:
		r.convertToError(rterrors.MethodNotAllowed(outcome.Method, outcome.Path))

	default:
		r.convertToError(rterrors.UnsupportedDispatchCode(int(outcome.Code)))
	}
}

// Resolve drives the route to completion. It never returns an error:
// every failure is converted into an error-route attempt, and the
// conversion bound guarantees the loop terminates with a response.
func (r *Route) Resolve(ctx context.Context) Response {
	for {
		if r.controller == nil {
			// No controller bound and no error controller configured.
			return r.lastResort()
		}

		resp, err := r.attempt(ctx)
		if err == nil {
			return resp
		}

		if r.isError && r.plainText {
			// Even the plain-text error rendering failed. Stop asking
			// controllers and emit the built-in response.
			r.app.Logger.Error("plain-text error rendering failed", err)
			return r.lastResort()
		}

		r.convertToError(err)
	}
}

// attempt performs one resolution pass: the normal action for a regular
// route, the error entry point for an error route
func (r *Route) attempt(ctx context.Context) (Response, error) {
	if !r.isError {
		if err := runValidators(ctx, r.app, r.app.Validators); err != nil {
			return nil, err
		}

		result, err := r.controller.ResolveAction(ctx, r.app, r.action, r.params)
		if err != nil {
			return nil, rterrors.ControllerFailure(r.action, err)
		}
		return r.processResponse(result)
	}

	result, err := r.controller.ResolveError(ctx, r.app, r.errorCause, r.plainText)
	if err != nil {
		return nil, rterrors.ControllerFailure(ErrorAction, err)
	}
	return r.processResponse(result)
}

// convertToError rebinds the route to the error controller. Each
// conversion increments the error counter; once the counter exceeds
// MaxErrorConversions the plain-text flag is raised so the next attempt
// renders without templates.
func (r *Route) convertToError(cause error) {
	r.errorCount++
	r.isError = true
	r.errorCause = cause
	r.controller = r.app.ErrorController
	r.action = ErrorAction

	if r.errorCount > MaxErrorConversions {
		r.plainText = true
	}

	r.app.Logger.Warn("route converted to error route",
		logging.Field{Key: "error", Value: cause.Error()},
		logging.Field{Key: "conversions", Value: r.errorCount},
		logging.Field{Key: "plain_text", Value: r.plainText})
}

// processResponse normalizes a controller return value. Finished
// responses pass through, builders are built, and anything else is a
// contract violation outside debug mode.
func (r *Route) processResponse(result interface{}) (Response, error) {
	switch v := result.(type) {
	case Response:
		return v, nil
	case ResponseBuilder:
		resp, err := v.Build()
		if err != nil {
			return nil, err
		}
		return resp, nil
	default:
		if r.app.DebugMode {
			return Text(200, stringify(v)), nil
		}
		return nil, rterrors.InvalidControllerReturn(result)
	}
}

// RoutePath resolves the declared path template of the bound action,
// lazily, through the controller's path-lookup contract. With onlyStatic
// the template is reduced by the same prefix rule the path index uses, so
// the result is a valid index key.
func (r *Route) RoutePath(onlyStatic bool) (string, bool) {
	if !r.pathResolved {
		if r.controller != nil {
			r.pathTemplate = r.controller.ActionPath(r.action)
		}
		r.pathResolved = true
	}

	if r.pathTemplate == "" {
		return "", false
	}
	if onlyStatic {
		return routing.StaticPrefix(r.pathTemplate), true
	}
	return r.pathTemplate, true
}

// ErrorCount reports how many times the route has been converted
func (r *Route) ErrorCount() int { return r.errorCount }

// lastResort renders the minimal built-in failure response
func (r *Route) lastResort() Response {
	cause := r.errorCause
	if cause == nil {
		cause = rterrors.UnsupportedDispatchCode(int(r.outcome.Code))
	}
	return plainTextFailure(cause)
}

func stringify(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
