package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

type ctxKey string

const usernameKey ctxKey = "username"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if h.LoginLimiter != nil && !h.LoginLimiter.Allow() {
		slog.WarnContext(r.Context(), "login rate limited", slog.String("remote", r.RemoteAddr))
		writeMessage(w, http.StatusTooManyRequests, "Too many login attempts")
		return
	}

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := h.Auth.Login(r.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "admin logged in", slog.String("username", session.Username))
	writeJSON(w, http.StatusOK, session)
}

// requireSession rejects requests without a valid bearer token. Preflight
// requests pass through untouched.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.AuthDisabled || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeMessage(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}
		username, err := h.Auth.Verify(strings.TrimSpace(token))
		if err != nil {
			slog.DebugContext(r.Context(), "session rejected", slog.Any("error", err))
			writeMessage(w, http.StatusUnauthorized, "Invalid or expired session")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), usernameKey, username)))
	})
}

// Username returns the authenticated admin stored by requireSession.
func Username(ctx context.Context) string {
	name, _ := ctx.Value(usernameKey).(string)
	return name
}
