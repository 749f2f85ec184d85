package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JonMunkholm/suppliers/internal/core"
)

type fakeSessions map[string]string

func (f fakeSessions) Lookup(token string) (string, bool) {
	u, ok := f[token]
	return u, ok
}

func actorHandler(got *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = core.GetActorFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAdminAuth(t *testing.T) {
	sessions := fakeSessions{"tok-1": "admin"}

	tests := []struct {
		name       string
		keys       []string
		sessions   SessionLookup
		apiKey     string
		cookie     string
		wantStatus int
		wantActor  string
	}{
		{name: "valid api key", keys: []string{"k1", "k2"}, apiKey: "k2", wantStatus: http.StatusNoContent, wantActor: APIKeyActor},
		{name: "invalid api key", keys: []string{"k1"}, apiKey: "nope", wantStatus: http.StatusUnauthorized},
		{name: "invalid api key ignores session", keys: []string{"k1"}, sessions: sessions, apiKey: "nope", cookie: "tok-1", wantStatus: http.StatusUnauthorized},
		{name: "valid session", sessions: sessions, cookie: "tok-1", wantStatus: http.StatusNoContent, wantActor: "admin"},
		{name: "unknown session", sessions: sessions, cookie: "tok-2", wantStatus: http.StatusUnauthorized},
		{name: "no credentials", keys: []string{"k1"}, sessions: sessions, wantStatus: http.StatusUnauthorized},
		{name: "nothing configured", apiKey: "", wantStatus: http.StatusUnauthorized},
		{name: "empty configured key never matches", keys: []string{""}, apiKey: " ", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var actor string
			h := AdminAuth(tt.keys, tt.sessions)(actorHandler(&actor))

			req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
			if tt.apiKey != "" {
				req.Header.Set("X-API-Key", tt.apiKey)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if actor != tt.wantActor {
				t.Errorf("actor = %q, want %q", actor, tt.wantActor)
			}
		})
	}
}

func TestCredentialsMatch(t *testing.T) {
	tests := []struct {
		name       string
		user, pass string
		wantU      string
		wantP      string
		want       bool
	}{
		{"match", "admin", "s3cret", "admin", "s3cret", true},
		{"wrong password", "admin", "guess", "admin", "s3cret", false},
		{"wrong user", "root", "s3cret", "admin", "s3cret", false},
		{"password disabled", "admin", "", "admin", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CredentialsMatch(tt.user, tt.pass, tt.wantU, tt.wantP); got != tt.want {
				t.Errorf("CredentialsMatch() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrustedRealIP(t *testing.T) {
	tests := []struct {
		name    string
		trusted []string
		remote  string
		headers map[string]string
		want    string
	}{
		{name: "untrusted keeps remote", trusted: nil, remote: "203.0.113.7:5000", headers: map[string]string{"X-Real-IP": "1.2.3.4"}, want: "203.0.113.7"},
		{name: "trusted cidr uses x-real-ip", trusted: []string{"10.0.0.0/8"}, remote: "10.1.2.3:80", headers: map[string]string{"X-Real-IP": "198.51.100.9"}, want: "198.51.100.9"},
		{name: "trusted bare ip uses first xff hop", trusted: []string{"127.0.0.1"}, remote: "127.0.0.1:9999", headers: map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.1"}, want: "198.51.100.1"},
		{name: "invalid forwarded value ignored", trusted: []string{"127.0.0.1"}, remote: "127.0.0.1:9999", headers: map[string]string{"X-Real-IP": "not-an-ip"}, want: "127.0.0.1"},
		{name: "invalid cidr skipped", trusted: []string{"bogus"}, remote: "127.0.0.1:1", headers: map[string]string{"X-Real-IP": "1.2.3.4"}, want: "127.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := TrustedRealIP(tt.trusted)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.RemoteAddr
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("RemoteAddr = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogger_RecordsStatusAndBytes(t *testing.T) {
	var ww *responseWriter
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww = w.(*responseWriter)
		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("short"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusTeapot || ww.status != http.StatusTeapot {
		t.Errorf("status = %d / %d, want %d", rec.Code, ww.status, http.StatusTeapot)
	}
	if ww.bytes != len("short") {
		t.Errorf("bytes = %d, want %d", ww.bytes, len("short"))
	}
}
