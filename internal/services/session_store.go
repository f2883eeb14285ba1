package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"hired/interview-service/internal/models"
)

// SessionStore holds live interview sessions. Implementations must be safe
// for concurrent use; Update runs its mutator under a per-session lock.
type SessionStore interface {
	Create(questions []models.Question, metadata models.SessionMetadata) (string, error)
	Get(id string) (*models.InterviewSession, error)
	Update(id string, mutate func(s *models.InterviewSession) error) (*models.InterviewSession, error)
	Delete(id string)
	EvictIdle(ttl time.Duration) []string
	Len() int
}

type sessionEntry struct {
	mu      sync.Mutex
	session *models.InterviewSession
	removed bool
}

type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	newID    func() string
	now      func() time.Time
}

const maxIDAttempts = 5

func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{
		sessions: make(map[string]*sessionEntry),
		newID:    func() string { return uuid.New().String() },
		now:      time.Now,
	}
}

// Create implements SessionStore.
func (m *memorySessionStore) Create(questions []models.Question, metadata models.SessionMetadata) (string, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := m.newID()
		if _, exists := m.sessions[id]; exists {
			continue
		}

		qs := make([]models.Question, len(questions))
		copy(qs, questions)

		m.sessions[id] = &sessionEntry{
			session: &models.InterviewSession{
				ID:           id,
				Questions:    qs,
				Metadata:     metadata,
				Answers:      make(map[int]models.RecordedAnswer),
				StartedAt:    now,
				LastActivity: now,
			},
		}
		return id, nil
	}

	return "", fmt.Errorf("failed to generate unique session id after %d attempts", maxIDAttempts)
}

// Get implements SessionStore. The returned session is a snapshot.
func (m *memorySessionStore) Get(id string) (*models.InterviewSession, error) {
	entry, ok := m.lookup(id)
	if !ok {
		return nil, ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.removed {
		return nil, ErrSessionNotFound
	}

	entry.session.LastActivity = m.now()
	return entry.session.Clone(), nil
}

// Update implements SessionStore. The mutator sees the live session; if it
// returns an error the session must be left untouched.
func (m *memorySessionStore) Update(id string, mutate func(s *models.InterviewSession) error) (*models.InterviewSession, error) {
	entry, ok := m.lookup(id)
	if !ok {
		return nil, ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.removed {
		return nil, ErrSessionNotFound
	}

	if err := mutate(entry.session); err != nil {
		return nil, err
	}

	entry.session.LastActivity = m.now()
	return entry.session.Clone(), nil
}

// Delete implements SessionStore. Deleting an absent session is a no-op.
func (m *memorySessionStore) Delete(id string) {
	m.mu.Lock()
	entry, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return
	}

	entry.mu.Lock()
	entry.removed = true
	entry.mu.Unlock()
}

// EvictIdle removes sessions whose last activity is older than ttl and
// returns their ids. A non-positive ttl disables eviction.
func (m *memorySessionStore) EvictIdle(ttl time.Duration) []string {
	if ttl <= 0 {
		return nil
	}

	cutoff := m.now().Add(-ttl)

	// Lock order is always store then entry; no path holds an entry lock
	// while waiting on the store lock.
	m.mu.Lock()
	defer m.mu.Unlock()

	var evicted []string
	for id, entry := range m.sessions {
		entry.mu.Lock()
		if entry.session.LastActivity.Before(cutoff) {
			entry.removed = true
			delete(m.sessions, id)
			evicted = append(evicted, id)
		}
		entry.mu.Unlock()
	}

	return evicted
}

// Len implements SessionStore.
func (m *memorySessionStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *memorySessionStore) lookup(id string) (*sessionEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.sessions[id]
	return entry, ok
}
