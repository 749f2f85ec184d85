package web

import (
	"testing"
	"time"
)

func TestSessionStore(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newSessionStore(time.Hour)
	s.now = func() time.Time { return now }

	token, expires := s.Create("admin")
	if token == "" || !expires.Equal(now.Add(time.Hour)) {
		t.Fatalf("Create() = %q, %v", token, expires)
	}

	if user, ok := s.Lookup(token); !ok || user != "admin" {
		t.Errorf("Lookup() = %q, %v", user, ok)
	}
	if _, ok := s.Lookup("other"); ok {
		t.Error("Lookup(unknown) succeeded")
	}

	now = now.Add(time.Hour)
	if _, ok := s.Lookup(token); ok {
		t.Error("Lookup() succeeded at expiry")
	}
	if s.Len() != 0 {
		t.Errorf("expired session kept, Len() = %d", s.Len())
	}

	second, _ := s.Create("admin")
	s.Delete(second)
	if _, ok := s.Lookup(second); ok {
		t.Error("Lookup() succeeded after Delete")
	}
}

func TestSessionStore_CreatePrunesExpired(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newSessionStore(time.Minute)
	s.now = func() time.Time { return now }

	s.Create("a")
	s.Create("b")
	now = now.Add(2 * time.Minute)
	s.Create("c")

	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestNewSessionStore_DefaultTTL(t *testing.T) {
	if s := newSessionStore(0); s.ttl != 12*time.Hour {
		t.Errorf("ttl = %v, want 12h", s.ttl)
	}
}
