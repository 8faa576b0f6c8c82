// Package response writes the JSON envelopes returned by every HTTP endpoint.
package response

import (
	"encoding/json"
	"net/http"

	apiErrors "github.com/dtroode/todo-server/internal/api/errors"
)

// Envelope wraps successful responses.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorEnvelope wraps failed responses.
type ErrorEnvelope struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// JSON writes data in a success envelope.
func JSON(w http.ResponseWriter, statusCode int, data any, message string) error {
	if data == nil {
		data = struct{}{}
	}
	return write(w, statusCode, Envelope{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < http.StatusBadRequest,
	})
}

// Error writes err in an error envelope.
func Error(w http.ResponseWriter, err *apiErrors.APIError) error {
	errs := err.Errors
	if errs == nil {
		errs = []string{}
	}
	return write(w, err.StatusCode, ErrorEnvelope{
		StatusCode: err.StatusCode,
		Message:    err.Message,
		Success:    false,
		Errors:     errs,
	})
}

func write(w http.ResponseWriter, statusCode int, body any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(body)
}
