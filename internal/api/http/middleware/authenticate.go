package middleware

import (
	"context"
	"net/http"
	"strings"

	apiErrors "github.com/dtroode/todo-server/internal/api/errors"
	"github.com/dtroode/todo-server/internal/api/http/response"
	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

// AccessTokenCookie is the cookie carrying the access token.
const AccessTokenCookie = "accessToken"

// Authenticator resolves the user owning an access token.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (model.PublicUser, error)
}

// Authenticate validates access tokens and injects the user into the request context.
type Authenticate struct {
	authenticator  Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authenticator Authenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{authenticator: authenticator, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a valid access token with 401.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.authenticator.Authenticate(r.Context(), tokenFromRequest(r))
		if err != nil {
			apiErr := apiErrors.As(err)
			if apiErr.StatusCode >= http.StatusInternalServerError {
				m.logger.Error("failed to authenticate request",
					"path", r.URL.Path,
					"error", err.Error())
			} else {
				m.logger.Debug("request rejected",
					"path", r.URL.Path,
					"error", err.Error())
			}
			_ = response.Error(w, apiErr)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetUserToContext(r.Context(), user)))
	})
}

// tokenFromRequest prefers the cookie and falls back to a bearer Authorization header.
func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if len(header) > len("Bearer ") && strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}

	return ""
}
