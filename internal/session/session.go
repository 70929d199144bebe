// Package session holds per-user conversational state. A session is an
// explicit context object created when a user signs in (or on their
// first authenticated request) and discarded on sign-out; nothing in it
// is shared across users.
package session

import (
	"context"
	"sync"

	"github.com/AlltidSemester1337/chef-web-backend/internal/chefdb"
)

// User is an immutable snapshot of the signed-in user, sourced from the
// identity provider.
type User struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// Session is the mutable state of one user's chat: the transient turn
// history and the answers already curated into favorites. Requests for
// a user run one at a time; the mutex is the confinement boundary for
// the streaming goroutine that appends fragments.
type Session struct {
	User User

	mu               sync.Mutex
	history          []chefdb.ChatTurn
	favoritedAnswers map[string]bool
}

func newSession(user User) *Session {
	return &Session{
		User:             user,
		favoritedAnswers: map[string]bool{},
	}
}

// History returns a copy of the current turn history.
func (s *Session) History() []chefdb.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([]chefdb.ChatTurn, len(s.history))
	copy(history, s.history)
	return history
}

// SetHistory replaces the transient history, e.g. when reloading the
// persisted chat log at session start.
func (s *Session) SetHistory(turns []chefdb.ChatTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = turns
}

// BeginTurn appends a new turn with an empty answer. The answer grows
// fragment by fragment while the model streams.
func (s *Session) BeginTurn(question string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, chefdb.ChatTurn{Question: question})
}

// AppendFragment grows the answer of the latest turn.
func (s *Session) AppendFragment(fragment string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return
	}
	s.history[len(s.history)-1].Answer += fragment
}

// MarkFavorited records that the answer has been curated so the UI can
// reflect the starred state without re-querying the store.
func (s *Session) MarkFavorited(answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favoritedAnswers[answer] = true
}

// Favorited reports whether the answer was curated in this session.
func (s *Session) Favorited(answer string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favoritedAnswers[answer]
}

// UserSource resolves a user snapshot from the identity provider.
type UserSource interface {
	User(ctx context.Context, uid string) (User, error)
}

// Manager tracks live sessions by user ID.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{
		sessions: map[string]*Session{},
	}
}

// Start creates a session for the user, replacing any existing one.
func (m *Manager) Start(user User) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := newSession(user)
	m.sessions[user.UID] = sess
	return sess
}

// Ensure returns the user's session, resolving the user snapshot and
// creating the session when none is live yet.
func (m *Manager) Ensure(ctx context.Context, uid string, users UserSource) (*Session, error) {
	m.mu.Lock()
	if sess, ok := m.sessions[uid]; ok {
		m.mu.Unlock()
		return sess, nil
	}
	m.mu.Unlock()

	user, err := users.User(ctx, uid)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[uid]; ok {
		return sess, nil
	}
	sess := newSession(user)
	m.sessions[uid] = sess
	return sess, nil
}

// End discards the user's session.
func (m *Manager) End(uid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, uid)
}
