package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vv-omkareshwar/Task-Management-App/internal/domain"
	"github.com/vv-omkareshwar/Task-Management-App/internal/service"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth         *service.AuthService
	cookieMaxAge int
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler. cookieMaxAge is the cookie
// lifetime in seconds and should match the token TTL.
func NewAuthHandler(auth *service.AuthService, cookieMaxAge int, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieMaxAge: cookieMaxAge, cookieSecure: cookieSecure}
}

// HandleSignup creates a new account and issues a session token.
// POST /api/auth/signup
// Request:  {"name":"...","email":"...","password":"..."}
// Response: {"success":true,"authtoken":"..."}
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	_, token, err := h.auth.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrDuplicateEmail):
			writeError(w, http.StatusConflict, "Sorry, a user with this email already exists.")
		default:
			slog.Error("signup user", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error occurred.")
		}
		return
	}

	h.setAuthCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "authtoken": token})
}

// HandleLogin verifies credentials and issues a session token.
// POST /api/auth/login
// Request:  {"email":"...","password":"..."}
// Response: {"success":true,"authtoken":"..."}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "Please try to login with correct credentials.")
		default:
			slog.Error("login user", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error occurred.")
		}
		return
	}

	h.setAuthCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "authtoken": token})
}

// HandleLogout clears the auth cookie. Tokens are not revoked server-side;
// logout is client-side deletion only.
// POST /api/auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	w.WriteHeader(http.StatusNoContent)
}

// HandleUserDetails returns the authenticated user without the password
// hash.
// GET /api/auth/userdetails
func (h *AuthHandler) HandleUserDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	user, err := h.auth.GetUserByID(r.Context(), userID)
	if err != nil {
		slog.Error("get user details", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, toUserDTO(user))
}

// HandleChangePassword overwrites the caller's password. The email must
// match the authenticated account.
// PUT /api/auth/user
// Request:  {"email":"...","newPassword":"..."}
// Response: {"success":true,"message":"..."}
func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req struct {
		Email       string `json:"email"`
		NewPassword string `json:"newPassword"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := h.auth.ChangePassword(r.Context(), userID, req.Email, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, "Not allowed.")
		default:
			slog.Error("change password", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error occurred.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Password changed successfully"})
}

func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   h.cookieMaxAge,
	})
}
