package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/suppliers/internal/core"
)

// SessionCookie is the cookie holding an admin session token.
const SessionCookie = "supplier_admin"

// APIKeyActor is the audit actor recorded for X-API-Key requests.
const APIKeyActor = "api-key"

// SessionLookup resolves a session token to the signed-in username.
type SessionLookup interface {
	Lookup(token string) (username string, ok bool)
}

// AdminAuth returns middleware that admits a request carrying either a valid
// X-API-Key header or a live session cookie. The caller's identity is stored
// on the request context for the audit trail.
//
// With no keys configured and a nil session lookup every request is rejected.
func AdminAuth(apiKeys []string, sessions SessionLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey := r.Header.Get("X-API-Key"); apiKey != "" {
				if !isValidAPIKey(apiKey, apiKeys) {
					slog.Warn("auth: invalid API key",
						"path", r.URL.Path,
						"method", r.Method,
						"remote_addr", r.RemoteAddr,
					)
					unauthorized(w)
					return
				}
				ctx := core.ContextWithActor(r.Context(), APIKeyActor)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if sessions != nil {
				if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
					if username, ok := sessions.Lookup(c.Value); ok {
						ctx := core.ContextWithActor(r.Context(), username)
						next.ServeHTTP(w, r.WithContext(ctx))
						return
					}
				}
			}

			slog.Warn("auth: no credentials",
				"path", r.URL.Path,
				"method", r.Method,
				"remote_addr", r.RemoteAddr,
			)
			unauthorized(w)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized","message":"Admin sign-in required","code":"AUTH002"}` + "\n"))
}

// isValidAPIKey checks key against every configured key in constant time.
func isValidAPIKey(key string, validKeys []string) bool {
	valid := 0
	for _, validKey := range validKeys {
		if validKey == "" {
			continue
		}
		valid |= subtle.ConstantTimeCompare([]byte(key), []byte(validKey))
	}
	return valid == 1
}

// CredentialsMatch compares a submitted username and password against the
// configured pair in constant time. An empty configured password never matches.
func CredentialsMatch(username, password, wantUsername, wantPassword string) bool {
	if wantPassword == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(wantUsername))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(wantPassword))
	return userOK&passOK == 1
}
