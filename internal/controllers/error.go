package controllers

import (
	"context"
	"fmt"

	rterrors "route-engine/internal/common/errors"
	"route-engine/internal/resolve"
	"route-engine/internal/routing"
)

// ErrorController renders error routes. It is not routable: it carries
// no route declarations and is only ever reached through error-route
// conversion.
type ErrorController struct {
	// Renderer optionally formats the error page body. A nil Renderer
	// uses the built-in page. Renderer failures convert the route again,
	// like any broken error template would.
	Renderer func(cause *rterrors.RouteError) (string, error)
}

// Name implements routing.RouteProvider
func (c *ErrorController) Name() string { return "error" }

// RouteDecls implements routing.RouteProvider
func (c *ErrorController) RouteDecls() []routing.Decl { return nil }

// ActionPath implements resolve.Controller
func (c *ErrorController) ActionPath(string) string { return "" }

// ResolveAction implements resolve.Controller. The error controller has
// no normal actions; a direct invocation fails and falls through to
// ResolveError.
func (c *ErrorController) ResolveAction(ctx context.Context, app *resolve.App, action string, params map[string]string) (interface{}, error) {
	return nil, fmt.Errorf("error controller has no action %q", action)
}

// ResolveError implements resolve.Controller. The plain-text path builds
// the response from nothing but the error itself and cannot fail.
func (c *ErrorController) ResolveError(ctx context.Context, app *resolve.App, cause error, asPlainText bool) (interface{}, error) {
	routeErr := rterrors.Convert(cause)
	if routeErr == nil {
		routeErr = rterrors.ControllerFailure("unknown", nil)
	}

	if asPlainText {
		return renderError(routeErr, true), nil
	}

	if c.Renderer != nil {
		body, err := c.Renderer(routeErr)
		if err != nil {
			return nil, err
		}
		return resolve.HTML(routeErr.StatusCode(), body), nil
	}

	return renderError(routeErr, false), nil
}

// renderError builds the built-in error response. Plain text is the
// degraded form used past the conversion bound.
func renderError(routeErr *rterrors.RouteError, asPlainText bool) resolve.Response {
	if routeErr == nil {
		routeErr = rterrors.ControllerFailure("unknown", nil)
	}

	status := routeErr.StatusCode()
	if asPlainText {
		return resolve.Text(status, fmt.Sprintf("Error: %s", routeErr.Message))
	}

	body := fmt.Sprintf(
		"<!DOCTYPE html>\n<html><head><title>Error %d</title></head>\n<body><h1>Error %d</h1><p>%s</p></body></html>\n",
		status, status, routeErr.Message,
	)
	return resolve.HTML(status, body)
}
