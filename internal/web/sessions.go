package web

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// sessionStore keeps admin sessions in memory. Sessions do not survive a
// restart; admins sign in again.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]session
	ttl      time.Duration
	now      func() time.Time
}

type session struct {
	username string
	expires  time.Time
}

func newSessionStore(ttl time.Duration) *sessionStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &sessionStore{
		sessions: make(map[string]session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a session for username and returns its token and expiry.
func (s *sessionStore) Create(username string) (string, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)

	token := uuid.NewString()
	expires := now.Add(s.ttl)
	s.sessions[token] = session{username: username, expires: expires}
	return token, expires
}

// Lookup returns the username for a live session.
func (s *sessionStore) Lookup(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return "", false
	}
	if !s.now().Before(sess.expires) {
		delete(s.sessions, token)
		return "", false
	}
	return sess.username, true
}

// Delete ends a session. Unknown tokens are ignored.
func (s *sessionStore) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Len returns the number of sessions held, expired or not.
func (s *sessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *sessionStore) pruneLocked(now time.Time) {
	for token, sess := range s.sessions {
		if !now.Before(sess.expires) {
			delete(s.sessions, token)
		}
	}
}
