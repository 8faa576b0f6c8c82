package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/todo-server/internal/api/http/middleware"
	"github.com/dtroode/todo-server/internal/api/http/response"
	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

// RefreshTokenCookie is the cookie carrying the refresh token.
const RefreshTokenCookie = "refreshToken"

// AuthService is the session controller used by the auth endpoints.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.PublicUser, error)
	Login(ctx context.Context, email, password string) (model.PublicUser, model.TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, params model.UpdateProfileParams) (model.PublicUser, error)
}

// CookieConfig controls the auth cookies.
type CookieConfig struct {
	Domain     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	cookies        CookieConfig
	logger         *logger.Logger
}

func NewAuth(authService AuthService, contextManager model.ContextManager, cookies CookieConfig, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		cookies:        cookies,
		logger:         logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User         model.PublicUser `json:"user"`
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type updateAccountRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
}

func (h *Auth) Signup(w http.ResponseWriter, r *http.Request) error {
	var req model.RegisterParams
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		return err
	}

	return response.JSON(w, http.StatusCreated, user, "User registered successfully.")
}

func (h *Auth) Login(w http.ResponseWriter, r *http.Request) error {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	user, pair, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setTokenCookies(w, pair)

	return response.JSON(w, http.StatusOK, loginResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "User logged in successfully.")
}

func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(r.Context(), user.ID); err != nil {
		return err
	}

	h.clearTokenCookies(w)

	return response.JSON(w, http.StatusOK, struct{}{}, "User logged out.")
}

// Refresh reads the refresh token from its cookie or, failing that, the request body.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) error {
	var token string
	if cookie, err := r.Cookie(RefreshTokenCookie); err == nil {
		token = cookie.Value
	}
	if token == "" {
		var req refreshRequest
		if err := decodeJSON(r, &req); err != nil {
			return err
		}
		token = req.RefreshToken
	}

	pair, err := h.authService.Refresh(r.Context(), token)
	if err != nil {
		return err
	}

	h.setTokenCookies(w, pair)

	return response.JSON(w, http.StatusOK, pair, "Access token refreshed.")
}

func (h *Auth) Me(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		return err
	}

	return response.JSON(w, http.StatusOK, user, "Current user fetched successfully.")
}

func (h *Auth) ChangePassword(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	if err := h.authService.ChangePassword(r.Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	h.clearTokenCookies(w)

	return response.JSON(w, http.StatusOK, struct{}{}, "Password changed successfully.")
}

func (h *Auth) UpdateAccount(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		return err
	}

	var req updateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	updated, err := h.authService.UpdateProfile(r.Context(), user.ID, model.UpdateProfileParams{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}

	return response.JSON(w, http.StatusOK, updated, "Account updated successfully.")
}

func (h *Auth) setTokenCookies(w http.ResponseWriter, pair model.TokenPair) {
	http.SetCookie(w, h.cookie(middleware.AccessTokenCookie, pair.AccessToken, int(h.cookies.AccessTTL.Seconds())))
	http.SetCookie(w, h.cookie(RefreshTokenCookie, pair.RefreshToken, int(h.cookies.RefreshTTL.Seconds())))
}

func (h *Auth) clearTokenCookies(w http.ResponseWriter) {
	http.SetCookie(w, h.cookie(middleware.AccessTokenCookie, "", -1))
	http.SetCookie(w, h.cookie(RefreshTokenCookie, "", -1))
}

func (h *Auth) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookies.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}
