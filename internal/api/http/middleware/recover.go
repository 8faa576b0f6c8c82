package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	apiErrors "github.com/dtroode/todo-server/internal/api/errors"
	"github.com/dtroode/todo-server/internal/api/http/response"
	"github.com/dtroode/todo-server/internal/logger"
)

// Recover turns handler panics into a 500 envelope.
type Recover struct {
	logger *logger.Logger
}

// NewRecover creates a new Recover middleware.
func NewRecover(logger *logger.Logger) *Recover {
	return &Recover{logger: logger}
}

func (m *Recover) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			m.logger.Error("panic recovered",
				"path", r.URL.Path,
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()))

			_ = response.Error(w, apiErrors.NewErrInternalServerError(fmt.Errorf("panic: %v", rec)))
		}()

		next.ServeHTTP(w, r)
	})
}
