// Package app wires the engine together: configuration, logging, the
// route table, the URL manager, validators and the error controller.
package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"route-engine/internal/auth"
	"route-engine/internal/common/logging"
	"route-engine/internal/config"
	"route-engine/internal/controllers"
	"route-engine/internal/metrics"
	"route-engine/internal/resolve"
	"route-engine/internal/routing"
	"route-engine/internal/urls"
)

// App holds all process-wide engine state. It is built once at boot and
// read-only while serving.
type App struct {
	Config  *config.Config
	Logger  logging.Logger
	Table   *routing.Table
	URLs    *urls.Manager
	Metrics *metrics.Metrics

	// Registry collects the engine's Prometheus metrics; expose it
	// through promhttp.HandlerFor
	Registry *prometheus.Registry

	// ErrorController handles every error route
	ErrorController resolve.Controller

	// Validators gate controller invocation on every request
	Validators []resolve.Validator

	registered map[string]resolve.Controller
	published  bool
}

// New creates an application instance from configuration
func New(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NewZapLogger(logging.ParseLevel(cfg.LogLevel))
	logging.SetGlobal(logger)

	registry := prometheus.NewRegistry()

	a := &App{
		Config:          cfg,
		Logger:          logger.WithFields(logging.Field{Key: "component", Value: "app"}),
		Table:           routing.NewTable(logger.WithFields(logging.Field{Key: "component", Value: "routing"})),
		Metrics:         metrics.New(registry),
		Registry:        registry,
		ErrorController: &controllers.ErrorController{},
		registered:      make(map[string]resolve.Controller),
	}

	if cfg.JWTSecret != "" {
		validator := auth.NewJWTValidator(cfg.JWTSecret, cfg.JWTIssuer)
		validator.Exempt = []string{"/health"}
		a.Validators = append(a.Validators, validator)
	}

	return a, nil
}

// RegisterController adds a controller's routes to the table and makes it
// addressable from declarative route files
func (a *App) RegisterController(c resolve.Controller) {
	a.registered[c.Name()] = c
	a.Table.RegisterController(c)
}

// Publish finalizes the route table: declarative routes from the
// configured routes file are bound to registered controllers, the table
// is compiled, and the URL manager is built over the resulting index.
// Publish must run exactly once, after all controllers are registered.
func (a *App) Publish() error {
	if a.published {
		return routing.ErrAlreadyPublished
	}

	if a.Config.RoutesFile != "" {
		if err := a.applyRoutesFile(a.Config.RoutesFile); err != nil {
			return err
		}
	}

	if err := a.Table.Publish(); err != nil {
		return err
	}

	manager, err := urls.NewManager(a.Table, a.Config.BaseURL)
	if err != nil {
		return fmt.Errorf("building url manager: %w", err)
	}
	a.URLs = manager
	a.published = true

	return nil
}

// NewRequestApp creates the request-scoped application context handed to
// controllers and validators
func (a *App) NewRequestApp(r *http.Request) *resolve.App {
	reqApp := resolve.NewApp(r, a.Logger)
	reqApp.DebugMode = a.Config.DebugMode()
	reqApp.ErrorController = a.ErrorController
	reqApp.Validators = a.Validators
	return reqApp
}

// applyRoutesFile binds YAML route declarations to registered controllers
func (a *App) applyRoutesFile(path string) error {
	rf, err := config.LoadRoutesFile(path)
	if err != nil {
		return err
	}

	for _, decl := range rf.Routes {
		if err := a.addDeclared(nil, decl); err != nil {
			return err
		}
	}
	for _, group := range rf.Groups {
		var groupErr error
		a.Table.Group(group.Prefix, func(g *routing.Group) {
			for _, decl := range group.Routes {
				if err := a.addDeclared(g, decl); err != nil {
					groupErr = err
					return
				}
			}
		})
		if groupErr != nil {
			return groupErr
		}
	}
	return nil
}

// addDeclared resolves a "controller/action" reference and registers the
// route, optionally under a group
func (a *App) addDeclared(g *routing.Group, decl config.RouteDecl) error {
	slash := strings.IndexByte(decl.Action, '/')
	if slash <= 0 || slash == len(decl.Action)-1 {
		return fmt.Errorf("route action %q: want controller/action", decl.Action)
	}

	controllerName := decl.Action[:slash]
	action := decl.Action[slash+1:]

	controller, ok := a.registered[controllerName]
	if !ok {
		return fmt.Errorf("route action %q: controller %q not registered", decl.Action, controllerName)
	}

	binding := routing.Binding{Provider: controller, Action: action}
	if g != nil {
		g.AddRoute(decl.Methods, decl.Pattern, decl.Action, binding)
		return nil
	}
	a.Table.AddRoute(decl.Methods, decl.Pattern, decl.Action, binding)
	return nil
}
