// internal/handlers/session.go
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/fairway/fairway/internal/auth"
)

// EnsureGuest resolves the request's guest identity. A valid auth_token
// cookie yields the identity embedded in it; otherwise a fresh UUID is
// minted, signed into a new cookie, and returned. Nothing is persisted —
// the identity only follows the browser.
func EnsureGuest(w http.ResponseWriter, r *http.Request) (uuid.UUID, error) {
	cookieHeader := r.Header.Get("Cookie")
	if strings.Contains(cookieHeader, "auth_token=") {
		token := extractCookieToken(cookieHeader, "auth_token")
		if sub, err := auth.AuthenticateJWT(token); err == nil {
			if id, err := uuid.Parse(sub); err == nil {
				return id, nil
			}
		}
		// Invalid or foreign token: fall through and reissue.
	}

	guestID := uuid.New()
	token, err := auth.CreateJWT(guestID.String())
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to mint guest token: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		HttpOnly: true,
		Path:     "/",
	})
	return guestID, nil
}

// extractCookieToken extracts a named cookie value from the Cookie header,
// or returns empty if not found.
func extractCookieToken(cookieHeader, cookieName string) string {
	parts := strings.Split(cookieHeader, cookieName+"=")
	if len(parts) < 2 {
		return ""
	}
	token := parts[1]
	if idx := strings.Index(token, ";"); idx != -1 {
		token = token[:idx]
	}
	return token
}
