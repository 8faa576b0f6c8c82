package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apiErrors "github.com/dtroode/todo-server/internal/api/errors"
	"github.com/dtroode/todo-server/internal/api/http/response"
	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

// Func is an HTTP handler that reports failures by returning them.
type Func func(w http.ResponseWriter, r *http.Request) error

// Errors converts errors returned by handlers into error envelopes.
type Errors struct {
	logger *logger.Logger
}

func NewErrors(logger *logger.Logger) *Errors {
	return &Errors{logger: logger}
}

// Wrap adapts fn to http.HandlerFunc. Errors that are not APIErrors become
// 500 responses and only their details are logged.
func (e *Errors) Wrap(fn Func) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		apiErr := apiErrors.As(err)
		if apiErr.StatusCode >= http.StatusInternalServerError {
			e.logger.Error("request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"error", err.Error())
		}

		if werr := response.Error(w, apiErr); werr != nil {
			e.logger.Error("failed to write error response",
				"error", werr.Error())
		}
	}
}

// NotFound answers unknown routes.
func (e *Errors) NotFound(w http.ResponseWriter, r *http.Request) {
	_ = response.Error(w, apiErrors.NewErrNotFound("route not found"))
}

// MethodNotAllowed answers known routes called with the wrong method.
func (e *Errors) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	_ = response.Error(w, apiErrors.New(http.StatusMethodNotAllowed, "method not allowed"))
}

// decodeJSON reads exactly one JSON value from the body. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)

	err := dec.Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return bodyError(err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return apiErrors.NewErrBadRequest("invalid request body", "body must contain a single JSON value")
		}
		return bodyError(err)
	}

	return nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apiErrors.New(http.StatusRequestEntityTooLarge, "request body too large")
	}

	return apiErrors.NewErrBadRequest("invalid request body", err.Error())
}

func currentUser(cm model.ContextManager, r *http.Request) (model.PublicUser, error) {
	user, ok := cm.GetUserFromContext(r.Context())
	if !ok {
		return model.PublicUser{}, apiErrors.NewErrMissingAuthorizationToken()
	}
	return user, nil
}
