package resolve

import (
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"route-engine/internal/common/logging"
)

// App is the request-scoped application context handed to controllers and
// validators. One App exists per request; it is owned by that request and
// must never be retained past response completion.
type App struct {
	// Request is the underlying HTTP request, nil for synthetic requests
	// (tests, console tooling)
	Request *http.Request

	// RequestID identifies the request in logs
	RequestID string

	// Logger is scoped with the request ID
	Logger logging.Logger

	// DebugMode relaxes response processing: raw controller return values
	// pass through as text instead of failing
	DebugMode bool

	// ErrorController handles error routes
	ErrorController Controller

	// Validators gate controller invocation
	Validators []Validator

	queryParams url.Values
}

// NewApp creates a request-scoped application context. Query parameters
// are copied out of the request so the keyed path-parameter merge never
// mutates the underlying request.
func NewApp(r *http.Request, logger logging.Logger) *App {
	if logger == nil {
		logger = logging.Nop()
	}

	requestID := uuid.NewString()

	query := url.Values{}
	if r != nil {
		for k, vs := range r.URL.Query() {
			query[k] = append([]string(nil), vs...)
		}
	}

	return &App{
		Request:     r,
		RequestID:   requestID,
		Logger:      logger.WithFields(logging.Field{Key: "request_id", Value: requestID}),
		queryParams: query,
	}
}

// QueryParams returns the unified parameter space: request query
// parameters plus any merged keyed path parameters
func (a *App) QueryParams() url.Values {
	return a.queryParams
}

// Param returns the first value of a parameter, "" when absent
func (a *App) Param(name string) string {
	return a.queryParams.Get(name)
}

// MergeParams folds keyed path parameters into the query-parameter space.
// Path-derived values win on key collision, so downstream code sees one
// uniform parameter set with captures taking precedence.
func (a *App) MergeParams(params map[string]string) {
	for k, v := range params {
		a.queryParams.Set(k, v)
	}
}
