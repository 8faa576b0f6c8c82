package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiErrors "github.com/dtroode/todo-server/internal/api/errors"
	httpContext "github.com/dtroode/todo-server/internal/api/http/context"
	"github.com/dtroode/todo-server/internal/model"
	"github.com/dtroode/todo-server/internal/testutil"
)

var testUser = model.PublicUser{ID: uuid.New(), Email: "ann@example.com", FullName: "Ann"}

var testCookies = CookieConfig{Domain: "example.com", AccessTTL: 15 * time.Minute, RefreshTTL: 24 * time.Hour}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []string        `json:"errors"`
}

// newTestMux mounts routes behind a middleware that authenticates as testUser
// unless the request carries the X-Anonymous header.
func newTestMux(register func(chi.Router, *Errors)) http.Handler {
	cm := httpContext.NewManager()
	errs := NewErrors(testutil.MakeNoopLogger())

	mux := chi.NewRouter()
	mux.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Anonymous") == "" {
				r = r.WithContext(cm.SetUserToContext(r.Context(), testUser))
			}
			next.ServeHTTP(w, r)
		})
	})
	register(mux, errs)
	return mux
}

func do(t *testing.T, h http.Handler, method, target, body string, prepare ...func(*http.Request)) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, p := range prepare {
		p(req)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	assert.Equal(t, rec.Code, env.StatusCode)
	assert.Equal(t, rec.Code < http.StatusBadRequest, env.Success)
	return rec, env
}

func TestErrors_Wrap(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "api error", err: apiErrors.NewErrForbidden("nope"), wantStatus: http.StatusForbidden, wantMsg: "nope"},
		{name: "plain error", err: assert.AnError, wantStatus: http.StatusInternalServerError, wantMsg: "internal server error"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewErrors(testutil.MakeNoopLogger()).Wrap(func(w http.ResponseWriter, r *http.Request) error {
				return tt.err
			})

			_, env := do(t, h, http.MethodGet, "/", "")
			assert.Equal(t, tt.wantStatus, env.StatusCode)
			assert.Equal(t, tt.wantMsg, env.Message)
			assert.NotNil(t, env.Errors)
		})
	}
}

func TestErrors_NotFoundAndMethodNotAllowed(t *testing.T) {
	errs := NewErrors(testutil.MakeNoopLogger())

	rec, env := do(t, http.HandlerFunc(errs.NotFound), http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)

	rec, _ = do(t, http.HandlerFunc(errs.MethodNotAllowed), http.MethodPut, "/todos", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, decodeJSON(req, &dst))
	assert.Equal(t, "x", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	require.NoError(t, decodeJSON(req, &dst))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	err := decodeJSON(req, &dst)
	assert.Equal(t, http.StatusBadRequest, apiErrors.As(err).StatusCode)

	rec := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("a", 64)+`"}`))
	req.Body = http.MaxBytesReader(rec, req.Body, 16)
	err = decodeJSON(req, &dst)
	assert.Equal(t, http.StatusRequestEntityTooLarge, apiErrors.As(err).StatusCode)
}

func TestDecodeJSON_TrailingData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "trailing whitespace", body: "{\"todo\":\"x\"}\n  "},
		{name: "trailing garbage", body: `{"todo":"x"} garbage`, wantStatus: http.StatusBadRequest},
		{name: "second object", body: `{"todo":"x"}{"todo":"y"}`, wantStatus: http.StatusBadRequest},
		{name: "stray brace", body: `{"todo":"x"}}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var dst struct {
				Todo string `json:"todo"`
			}
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			err := decodeJSON(req, &dst)

			if tt.wantStatus == 0 {
				require.NoError(t, err)
				assert.Equal(t, "x", dst.Todo)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantStatus, apiErrors.As(err).StatusCode)
		})
	}
}
