package memcache

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"wanderai/internal/models/plan_models"
	"wanderai/pkg/utils"
)

type RunState string

const (
	RunIdle    RunState = "idle"
	RunActive  RunState = "running"
	RunDone    RunState = "done"
	RunFailed  RunState = "failed"
	WizardLast          = 3
)

// Session is the whole per-visitor state: the wizard draft plus the run's
// log and itinerary slot. Only the active run writes Log and Itinerary;
// all mutation goes through the store's lock.
type Session struct {
	ID        string
	Step      int
	Draft     plan_models.TripParameters
	Run       RunState
	Log       []plan_models.LogEntry
	Itinerary *plan_models.Itinerary

	expiresAt time.Time
}

type SessionStoreInterface interface {
	Create() *Session

	// Update runs fn with the live session under the store lock.
	// Returns utils.ErrSessionNotFound for a missing or expired id.
	Update(id string, fn func(s *Session) error) error

	// Snapshot returns a copy safe to read outside the lock.
	Snapshot(id string) (Session, error)
}

type SessionStore struct {
	mu   sync.RWMutex
	data map[string]*Session
	ttl  time.Duration
}

func NewSessionStore(ttl time.Duration) SessionStoreInterface {
	return &SessionStore{
		data: make(map[string]*Session),
		ttl:  ttl,
	}
}

func (s *SessionStore) Create() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{
		ID:   uuid.New().String(),
		Step: 1,
		Draft: plan_models.TripParameters{
			Budget:    1000,
			Days:      3,
			Travelers: 1,
		},
		Run:       RunIdle,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.data[sess.ID] = sess

	s.sweepLocked()

	out := *sess
	return &out
}

func (s *SessionStore) Update(id string, fn func(sess *Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.data[id]
	if !ok || time.Now().After(sess.expiresAt) {
		delete(s.data, id)
		return utils.ErrSessionNotFound
	}
	sess.expiresAt = time.Now().Add(s.ttl)
	return fn(sess)
}

func (s *SessionStore) Snapshot(id string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.data[id]
	if !ok || time.Now().After(sess.expiresAt) {
		return Session{}, utils.ErrSessionNotFound
	}

	out := *sess
	out.Log = make([]plan_models.LogEntry, len(sess.Log))
	copy(out.Log, sess.Log)
	out.Draft.Interests = append([]string(nil), sess.Draft.Interests...)
	// Itinerary is never mutated in place, sharing the pointer is fine.
	return out, nil
}

// sweepLocked drops expired sessions. Called with the write lock held.
func (s *SessionStore) sweepLocked() {
	now := time.Now()
	for id, sess := range s.data {
		if now.After(sess.expiresAt) {
			delete(s.data, id)
		}
	}
}
