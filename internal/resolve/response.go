package resolve

import (
	"encoding/json"
	"fmt"
	"net/http"

	rterrors "route-engine/internal/common/errors"
)

// BasicResponse is the concrete Response used throughout the engine
type BasicResponse struct {
	status int
	header http.Header
	body   []byte
}

// NewResponse creates a response with an explicit content type
func NewResponse(status int, contentType string, body []byte) *BasicResponse {
	header := http.Header{}
	header.Set("Content-Type", contentType)
	return &BasicResponse{status: status, header: header, body: body}
}

// Text creates a plain-text response
func Text(status int, text string) *BasicResponse {
	return NewResponse(status, "text/plain; charset=utf-8", []byte(text))
}

// HTML creates an HTML response
func HTML(status int, body string) *BasicResponse {
	return NewResponse(status, "text/html; charset=utf-8", []byte(body))
}

// Status implements Response
func (r *BasicResponse) Status() int { return r.status }

// Header implements Response
func (r *BasicResponse) Header() http.Header { return r.header }

// Body implements Response
func (r *BasicResponse) Body() []byte { return r.body }

// Write sends the response over an http.ResponseWriter
func (r *BasicResponse) Write(w http.ResponseWriter) error {
	for k, vs := range r.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(r.status)
	_, err := w.Write(r.body)
	return err
}

// WriteResponse sends any Response over an http.ResponseWriter
func WriteResponse(w http.ResponseWriter, resp Response) error {
	for k, vs := range resp.Header() {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(resp.Status())
	_, err := w.Write(resp.Body())
	return err
}

// jsonBuilder defers JSON encoding until the engine builds the response.
// An encoding failure surfaces through Build and converts the route into
// an error route, the same way a broken template would.
type jsonBuilder struct {
	status int
	value  interface{}
}

// JSON creates a deferred JSON response builder
func JSON(status int, value interface{}) ResponseBuilder {
	return &jsonBuilder{status: status, value: value}
}

// Build implements ResponseBuilder
func (b *jsonBuilder) Build() (Response, error) {
	body, err := json.Marshal(b.value)
	if err != nil {
		return nil, fmt.Errorf("encoding json response: %w", err)
	}
	return NewResponse(b.status, "application/json", body), nil
}

// BuilderFunc adapts a function to the ResponseBuilder interface
type BuilderFunc func() (Response, error)

// Build implements ResponseBuilder
func (f BuilderFunc) Build() (Response, error) { return f() }

// plainTextFailure is the engine's last-resort rendering: no controller,
// no templates, guaranteed to succeed
func plainTextFailure(cause error) Response {
	routeErr := rterrors.Convert(cause)
	return Text(routeErr.StatusCode(), fmt.Sprintf("Error: %s", routeErr.Message))
}
