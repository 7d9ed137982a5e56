package practice

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is one of the seven practice session states. A session always
// moves along the fixed path Idle -> AwaitingPartChoice ->
// QuestionPresented -> AwaitingAnswer -> Scoring -> ReportReady or
// ScoringFailed -> Idle; guards reject every other transition.
type State string

const (
	// StateIdle means no practice turn is in progress.
	StateIdle State = "idle"

	// StateAwaitingPartChoice means the user asked to practice and must
	// pick a part (or random).
	StateAwaitingPartChoice State = "awaiting_part_choice"

	// StateQuestionPresented means a question was selected and shown.
	StateQuestionPresented State = "question_presented"

	// StateAwaitingAnswer means the user indicated readiness and the
	// next text message is taken as their answer.
	StateAwaitingAnswer State = "awaiting_answer"

	// StateScoring means an answer was received and the external
	// scoring call is in flight.
	StateScoring State = "scoring"

	// StateReportReady means the response was persisted and the report
	// is waiting to be delivered.
	StateReportReady State = "report_ready"

	// StateScoringFailed means the external scoring call failed and the
	// failure notice is waiting to be delivered. Nothing was persisted.
	StateScoringFailed State = "scoring_failed"
)

// Session is the in-memory conversational state of one user's practice
// turn. It is private to that user's conversation; the only durable
// side effect of a session is the Response row written while scoring.
type Session struct {
	UserID     uuid.UUID
	State      State
	Part       int // 0 while unchosen, also 0 for "random"
	QuestionID uuid.UUID
	UpdatedAt  time.Time
}

// SessionStore holds the per-user sessions, keyed by user ID.
// Implementations must be safe for concurrent use.
type SessionStore interface {
	// Get returns a copy of the user's session, or false if none exists.
	Get(userID uuid.UUID) (*Session, bool)

	// Put stores the session, replacing any previous one for the user.
	Put(session *Session)

	// Delete discards the user's session. Discarding never aborts an
	// in-flight unit-of-work commit; it only drops conversational state.
	Delete(userID uuid.UUID)
}

// MemorySessionStore is the in-process SessionStore used by both the
// bot and the tests.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]Session
}

// Ensure MemorySessionStore implements SessionStore
var _ SessionStore = (*MemorySessionStore)(nil)

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[uuid.UUID]Session),
	}
}

// Get implements SessionStore.Get.
func (s *MemorySessionStore) Get(userID uuid.UUID) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, false
	}
	// Copy so callers never mutate shared state outside Put.
	copied := session
	return &copied, true
}

// Put implements SessionStore.Put.
func (s *MemorySessionStore) Put(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *session
	stored.UpdatedAt = time.Now().UTC()
	s.sessions[session.UserID] = stored
}

// Delete implements SessionStore.Delete.
func (s *MemorySessionStore) Delete(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
}
