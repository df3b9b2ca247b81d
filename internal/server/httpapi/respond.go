package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/knowhowcafe/auth/internal/common"
	"github.com/knowhowcafe/auth/internal/server/models"
)

// response is the uniform body shape for every endpoint: a success flag, an
// optional human-readable message, and an optional user payload.
type response struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	User    *userJSON `json:"user,omitempty"`
}

type userJSON struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

func toUserJSON(u *models.User) *userJSON {
	return &userJSON{ID: u.ID, Email: u.Email, Name: u.Name}
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(context.Background(), "error encoding response", "error", err.Error())
	}
}

func (s *HTTPServer) ok(w http.ResponseWriter, message string) {
	s.writeJSON(w, http.StatusOK, response{Success: true, Message: message})
}

func (s *HTTPServer) fail(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, response{Success: false, Message: message})
}

// internalError logs the cause server-side and returns the generic body.
// Clients never see wrapped error details.
func (s *HTTPServer) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
	s.fail(w, http.StatusInternalServerError, "Internal server error")
}

// setSessionCookie mirrors the token TTL on the cookie so both expire
// together.
func (s *HTTPServer) setSessionCookie(w http.ResponseWriter, token string, validity time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.config.CookieSecure,
		MaxAge:   int(validity.Seconds()),
	})
}

func (s *HTTPServer) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.config.CookieSecure,
		MaxAge:   -1,
	})
}
