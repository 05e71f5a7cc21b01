// Package session keeps per-login view state. Nothing here is persisted:
// the statement figures are generated when a session starts and are lost
// when it ends.
package session

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/isluportal/internal/pkg/apperrors"
)

// Session is a snapshot of one student's view state
type Session struct {
	ID             string    `json:"id"`
	StudentID      string    `json:"studentId"`
	AmountDue      float64   `json:"amountDue"`
	CurrentBalance float64   `json:"currentBalance"`
	CreatedAt      time.Time `json:"createdAt"`
	RefreshedAt    time.Time `json:"refreshedAt"`
}

// PaymentOutcome describes how a payment was applied to the statement
type PaymentOutcome struct {
	Paid        float64 `json:"paid"`
	Overpayment float64 `json:"overpayment"`
	FullyPaid   bool    `json:"fullyPaid"`
}

// Config bounds the generated statement figures
type Config struct {
	MaxAmountDue float64
	MaxBalance   float64
	// TTL drops sessions older than this when new ones are created; zero keeps them
	TTL time.Duration
	// Rand overrides the random source, for tests
	Rand *rand.Rand
	// Now overrides the clock, for tests
	Now func() time.Time
}

// Manager owns every live session
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	rng      *rand.Rand
	cfg      Config
	now      func() time.Time
}

// NewManager creates a Manager
func NewManager(cfg Config) *Manager {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		sessions: make(map[string]*Session),
		rng:      rng,
		cfg:      cfg,
		now:      now,
	}
}

// Create starts a session for studentID. An empty id gets a fresh UUID.
func (m *Manager) Create(id, studentID string) Session {
	if id == "" {
		id = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.pruneLocked(now)

	s := &Session{ID: id, StudentID: studentID, CreatedAt: now}
	m.generateLocked(s, now)
	m.sessions[id] = s
	return *s
}

// Get returns the session with the given id
func (m *Manager) Get(id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return Session{}, apperrors.ErrSessionNotFound
	}
	return *s, nil
}

// Refresh draws new statement figures for the session
func (m *Manager) Refresh(id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return Session{}, apperrors.ErrSessionNotFound
	}
	m.generateLocked(s, m.now())
	return *s, nil
}

// ApplyPayment reduces the amount due. Anything above the amount due is
// added to the current balance as overpayment.
func (m *Manager) ApplyPayment(id string, amount float64) (Session, PaymentOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return Session{}, PaymentOutcome{}, apperrors.ErrSessionNotFound
	}

	out := PaymentOutcome{Paid: amount}
	if amount >= s.AmountDue {
		out.Overpayment = roundCents(amount - s.AmountDue)
		out.FullyPaid = true
		s.AmountDue = 0
		s.CurrentBalance = roundCents(s.CurrentBalance + out.Overpayment)
	} else {
		s.AmountDue = roundCents(s.AmountDue - amount)
	}
	return *s, out, nil
}

// Revert puts the statement figures of prev back on the session with the
// same id. A session that has ended meanwhile stays ended.
func (m *Manager) Revert(id string, prev Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		s.AmountDue = prev.AmountDue
		s.CurrentBalance = prev.CurrentBalance
	}
}

// Delete ends the session; unknown ids are ignored
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) generateLocked(s *Session, now time.Time) {
	s.AmountDue = roundCents(m.rng.Float64() * m.cfg.MaxAmountDue)
	s.CurrentBalance = roundCents(m.rng.Float64() * m.cfg.MaxBalance)
	s.RefreshedAt = now
}

func (m *Manager) pruneLocked(now time.Time) {
	if m.cfg.TTL <= 0 {
		return
	}
	for id, s := range m.sessions {
		if now.Sub(s.CreatedAt) > m.cfg.TTL {
			delete(m.sessions, id)
		}
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
