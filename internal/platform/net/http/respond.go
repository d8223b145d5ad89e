// Package http provides helpers for writing JSON responses.
//
// Unlike a generic envelope API, success bodies are written exactly as the
// handler returned them: cached classification responses must round-trip
// byte-identical, so nothing is allowed to wrap or re-shape them. Errors are
// shaped as {"error": message} with the status derived from the project error
// code. The request id travels in the X-Request-ID header, never in the body.
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "langid/internal/platform/errors"
	pnet "langid/internal/platform/net"
)

// ErrorBody is the wire shape for all error responses
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError maps a project error onto status + {"error": msg} and writes it
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	setRequestIDHeader(w, r)
	status, wire := perr.HTTP(err)
	JSON(w, status, ErrorBody{Error: wire.Message})
}

// Response is a functional response object for return-style handlers
type Response struct {
	Status int
	Body   any
	// optional headers if a handler wants to add any
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	setRequestIDHeader(w, r)

	// allow header overrides
	if resp.Header != nil {
		for k, vv := range resp.Header {
			for _, v := range vv {
				w.Header().Add(k, v)
			}
		}
	}

	// if Body is an error, derive status from the error and use the error shape
	if err, ok := resp.Body.(error); ok && err != nil {
		status, wire := perr.HTTP(err)
		JSON(w, status, ErrorBody{Error: wire.Message})
		return
	}

	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}

	body := resp.Body
	if body == nil {
		body = map[string]any{}
	}
	JSON(w, status, body)
}

func setRequestIDHeader(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if reqID := pnet.RequestID(r.Context()); reqID != "" {
		w.Header().Set("X-Request-ID", reqID)
	}
}

// OK returns a 200 response with body written as-is
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Status returns a response with an explicit status and body written as-is
func Status(status int, data any) Response { return Response{Status: status, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response that maps the error to status and the error body shape
func Error(err error) Response { return Response{Body: err} }
