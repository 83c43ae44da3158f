package controller

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"outfit-studio/models"
)

const (
	// TabSessionHeader carries the browser tab's session id
	TabSessionHeader = "X-Tab-Session"
	// TabSessionCookie is the session cookie fallback for plain page loads
	TabSessionCookie = "tab_session"
)

type userContextKey struct{}

// ContextWithUser returns a copy of ctx carrying the authenticated user
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext returns the authenticated user, or nil
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey{}).(*models.User)
	return user
}

// tabSessionID returns the tab session id sent by the client, or "" when absent
func tabSessionID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(TabSessionHeader)); id != "" {
		return id
	}
	if cookie, err := r.Cookie(TabSessionCookie); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}

// ensureTabSessionID returns the tab session id, issuing a new one when absent.
// The id is echoed back in both the header and a session cookie.
func ensureTabSessionID(w http.ResponseWriter, r *http.Request) string {
	id := tabSessionID(r)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(TabSessionHeader, id)
	http.SetCookie(w, &http.Cookie{
		Name:     TabSessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
