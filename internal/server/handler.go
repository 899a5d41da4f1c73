package server

import (
	"net/http"
	"time"

	"route-engine/internal/app"
	"route-engine/internal/common/logging"
	"route-engine/internal/resolve"
)

// EngineHandler bridges net/http and request resolution: one dispatch,
// one route, one response per request.
type EngineHandler struct {
	app *app.App
}

// NewEngineHandler creates the engine's http.Handler
func NewEngineHandler(a *app.App) *EngineHandler {
	return &EngineHandler{app: a}
}

// ServeHTTP implements http.Handler
func (h *EngineHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	outcome, err := h.app.Table.Match(r.Method, r.URL.Path)
	if err != nil {
		// The table was never published; nothing sensible can be served.
		h.app.Logger.Error("dispatch before publish", err)
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	code := outcome.Code.String()
	h.app.Metrics.ObserveDispatch(code)

	reqApp := h.app.NewRequestApp(r)
	route := resolve.NewRoute(reqApp)
	route.SetDispatchedData(outcome)

	resp := route.Resolve(r.Context())

	h.app.Metrics.ObserveErrorConversions(route.ErrorCount())
	h.app.Metrics.ObserveResolve(code, time.Since(start))

	if err := resolve.WriteResponse(w, resp); err != nil {
		reqApp.Logger.Warn("writing response failed", logging.Field{Key: "error", Value: err.Error()})
	}
}
