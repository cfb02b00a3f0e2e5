package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/vv-omkareshwar/Task-Management-App/internal/domain"
	"github.com/vv-omkareshwar/Task-Management-App/internal/service"
)

type contextKey string

const userIDContextKey contextKey = "userID"

// UserIDFromContext extracts the authenticated user id from the request
// context. The second return is false when no user is authenticated.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int64)
	return userID, ok
}

// RequireAuth is middleware that protects routes requiring authentication.
// It reads the session token from the auth_token cookie or, failing that,
// the auth-token header, verifies it, and injects the resolved user id into
// the request context. Invalid or missing tokens short-circuit with 401
// before any handler or repository code runs.
func RequireAuth(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "Authentication required.")
				return
			}

			userID, err := auth.VerifyToken(token)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					writeError(w, http.StatusUnauthorized, "Session expired. Please log in again.")
				} else {
					writeError(w, http.StatusUnauthorized, "Invalid session token.")
				}
				return
			}

			ctx := context.WithValue(r.Context(), userIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tokenFromRequest extracts the session token. The HttpOnly cookie is the
// primary transport; the auth-token header is kept for non-browser clients.
func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie("auth_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return r.Header.Get("auth-token")
}

// SecurityHeaders sets baseline security headers on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
