// Package errors defines the typed error taxonomy shared by the routing
// engine. Every failure that travels through request resolution is wrapped
// in a RouteError so the error controller can pick a status code and the
// logs carry a stable error type.
package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents the type of a routing error
type ErrorType string

const (
	// ErrTypeRouteNotFound represents a path that matched no registered pattern
	ErrTypeRouteNotFound ErrorType = "route_not_found"
	// ErrTypeMethodNotAllowed represents a path that matched, but not for the request method
	ErrTypeMethodNotAllowed ErrorType = "method_not_allowed"
	// ErrTypeUnsupportedDispatchCode represents a dispatch outcome the engine does not understand
	ErrTypeUnsupportedDispatchCode ErrorType = "unsupported_dispatch_code"
	// ErrTypeInvalidControllerReturn represents a controller returning something that is not a response
	ErrTypeInvalidControllerReturn ErrorType = "invalid_controller_return"
	// ErrTypeAuthorizationDenied represents a pre-dispatch validator rejecting the request
	ErrTypeAuthorizationDenied ErrorType = "authorization_denied"
	// ErrTypeControllerFailure represents a controller action failing while executing
	ErrTypeControllerFailure ErrorType = "controller_failure"
)

// RouteError is the structured error carried through request resolution
type RouteError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *RouteError) Error() string {
	parts := []string{string(e.Type), e.Message}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%v", e.Cause))
	}

	if len(e.Context) > 0 {
		contextParts := make([]string, 0, len(e.Context))
		for k, v := range e.Context {
			contextParts = append(contextParts, fmt.Sprintf("%s=%v", k, v))
		}
		parts = append(parts, fmt.Sprintf("context={%s}", strings.Join(contextParts, ", ")))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying cause
func (e *RouteError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *RouteError) WithContext(key string, value interface{}) *RouteError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// StatusCode maps the error type to the HTTP status the error route
// should render with
func (e *RouteError) StatusCode() int {
	switch e.Type {
	case ErrTypeRouteNotFound:
		return http.StatusNotFound
	case ErrTypeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrTypeAuthorizationDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// RouteNotFound creates an error for a path that matched nothing
func RouteNotFound(method, path string) *RouteError {
	return &RouteError{
		Type:    ErrTypeRouteNotFound,
		Message: fmt.Sprintf("no route matches %s %s", method, path),
	}
}

// MethodNotAllowed creates an error for a path registered under other methods
func MethodNotAllowed(method, path string) *RouteError {
	return &RouteError{
		Type:    ErrTypeMethodNotAllowed,
		Message: fmt.Sprintf("method %s not allowed for %s", method, path),
	}
}

// UnsupportedDispatchCode creates an error for an unknown dispatch outcome
func UnsupportedDispatchCode(code int) *RouteError {
	return &RouteError{
		Type:    ErrTypeUnsupportedDispatchCode,
		Message: fmt.Sprintf("unsupported dispatch code %d", code),
	}
}

// InvalidControllerReturn creates an error for a controller result that is
// neither a response nor a response builder
func InvalidControllerReturn(result interface{}) *RouteError {
	return &RouteError{
		Type:    ErrTypeInvalidControllerReturn,
		Message: fmt.Sprintf("controller returned unsupported type %T", result),
	}
}

// AuthorizationDenied creates an error for a rejected validator
func AuthorizationDenied(reason string) *RouteError {
	return &RouteError{
		Type:    ErrTypeAuthorizationDenied,
		Message: reason,
	}
}

// ControllerFailure wraps a failure raised by a controller action
func ControllerFailure(action string, cause error) *RouteError {
	return &RouteError{
		Type:    ErrTypeControllerFailure,
		Message: fmt.Sprintf("action %s failed", action),
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	if err == nil {
		return false
	}

	routeErr, ok := err.(*RouteError)
	if !ok {
		return false
	}

	return routeErr.Type == errType
}

// Convert wraps an arbitrary error as a RouteError, passing RouteErrors
// through untouched
func Convert(err error) *RouteError {
	if err == nil {
		return nil
	}

	if routeErr, ok := err.(*RouteError); ok {
		return routeErr
	}

	return &RouteError{
		Type:    ErrTypeControllerFailure,
		Message: "unexpected failure",
		Cause:   err,
	}
}
