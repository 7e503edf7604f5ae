// Package http provides helpers for writing JSON responses
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "noladash/internal/platform/errors"
	pnet "noladash/internal/platform/net"
)

// Envelope is the error response body; success bodies are bare payloads so the
// wire format matches what the dashboard client expects from the real service
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondOK writes the payload bare with a 200
func RespondOK(w stdhttp.ResponseWriter, _ *stdhttp.Request, data any) {
	JSON(w, stdhttp.StatusOK, data)
}

// RespondError maps the error through the platform taxonomy and writes the envelope
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, wire := perr.HTTP(err)
	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		Code:       wire.Code,
		Error:      wire.Message,
		RequestID:  pnet.RequestID(r.Context()),
	})
}
