// Package controllers provides the building blocks user controllers are
// made of: a Base type carrying the typed action registry, and the
// default error controller every application starts with.
package controllers

import (
	"context"
	"fmt"

	rterrors "route-engine/internal/common/errors"
	"route-engine/internal/resolve"
	"route-engine/internal/routing"
)

// ActionFunc is a bound controller action. params carries the captured
// path parameters; the full unified parameter space is on the app.
type ActionFunc func(ctx context.Context, app *resolve.App, params map[string]string) (interface{}, error)

type actionEntry struct {
	fn      ActionFunc
	pattern string
	methods []string
}

// Base implements the controller plumbing: actions are bound once at
// registration time into a typed registry, so request resolution is a
// map lookup, never reflection.
//
// Concrete controllers embed a Base and register their actions in the
// constructor:
//
//	c := &UserController{Base: controllers.NewBase("user")}
//	c.Register("view", "/user/{id}", []string{"GET"}, c.view)
type Base struct {
	name    string
	actions map[string]actionEntry
	order   []string
}

// NewBase creates a controller base with the given name. The name
// prefixes the controller's route names ("user/view").
func NewBase(name string) *Base {
	return &Base{
		name:    name,
		actions: make(map[string]actionEntry),
	}
}

// Register binds an action function to a name, path pattern and method
// set. Registering the same action twice keeps the first binding.
func (b *Base) Register(action, pattern string, methods []string, fn ActionFunc) {
	if _, exists := b.actions[action]; exists {
		return
	}
	b.actions[action] = actionEntry{fn: fn, pattern: pattern, methods: methods}
	b.order = append(b.order, action)
}

// Name implements routing.RouteProvider
func (b *Base) Name() string { return b.name }

// RouteDecls implements routing.RouteProvider, in registration order
func (b *Base) RouteDecls() []routing.Decl {
	decls := make([]routing.Decl, 0, len(b.order))
	for _, action := range b.order {
		entry := b.actions[action]
		decls = append(decls, routing.Decl{
			Methods: entry.methods,
			Pattern: entry.pattern,
			Action:  action,
		})
	}
	return decls
}

// ActionPath returns the declared pattern of an action, "" when unknown
func (b *Base) ActionPath(action string) string {
	return b.actions[action].pattern
}

// ResolveAction implements resolve.Controller
func (b *Base) ResolveAction(ctx context.Context, app *resolve.App, action string, params map[string]string) (interface{}, error) {
	entry, ok := b.actions[action]
	if !ok {
		return nil, fmt.Errorf("controller %s has no action %q", b.name, action)
	}
	return entry.fn(ctx, app, params)
}

// ResolveError implements resolve.Controller with the same rendering the
// default error controller uses, so any controller can stand in as an
// error controller.
func (b *Base) ResolveError(ctx context.Context, app *resolve.App, cause error, asPlainText bool) (interface{}, error) {
	return renderError(rterrors.Convert(cause), asPlainText), nil
}
