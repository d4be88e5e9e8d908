package httpadapter

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"svw.info/playsudoku/internal/domain"
)

const sessionCookie = "sudoku_session"

type contextKey struct{}

var sessionKey contextKey

// sessionID returns the session attached to the request context.
func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionKey).(string)
	return id
}

// withSession loads the browser session from its cookie, creating a new
// anonymous session (and setting the cookie) when none exists. The
// session ID is stored on the request context for the handlers.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		var id string
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			if _, err := h.sessions.Session(r.Context(), c.Value); err == nil {
				id = c.Value
				_ = h.sessions.TouchSession(r.Context(), id, now)
			} else if !errors.Is(err, domain.ErrNotFound) {
				http.Error(w, "session lookup failed", http.StatusInternalServerError)
				return
			}
		}
		if id == "" {
			id = uuid.NewString()
			sess := &domain.Session{ID: id, CreatedAt: now, LastSeen: now}
			if err := h.sessions.CreateSession(r.Context(), sess); err != nil {
				http.Error(w, "session create failed", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int((365 * 24 * time.Hour).Seconds()),
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, id)))
	})
}
