package session

import (
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/isluportal/internal/pkg/apperrors"
)

func newManager(now *time.Time) *Manager {
	return NewManager(Config{
		MaxAmountDue: 7000,
		MaxBalance:   24000,
		TTL:          time.Hour,
		Rand:         rand.New(rand.NewPCG(1, 2)),
		Now:          func() time.Time { return *now },
	})
}

func TestCreateWithinBounds(t *testing.T) {
	now := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	m := newManager(&now)

	for i := 0; i < 200; i++ {
		s := m.Create("", "2250001")
		assert.NotEmpty(t, s.ID)
		assert.GreaterOrEqual(t, s.AmountDue, 0.0)
		assert.Less(t, s.AmountDue, 7000.01)
		assert.GreaterOrEqual(t, s.CurrentBalance, 0.0)
		assert.Less(t, s.CurrentBalance, 24000.01)
	}
	assert.Equal(t, 200, m.Len())
}

func TestGetRefreshDelete(t *testing.T) {
	now := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	m := newManager(&now)

	created := m.Create("jti-1", "2250001")
	got, err := m.Get("jti-1")
	require.NoError(t, err)
	assert.Equal(t, created, got)

	now = now.Add(time.Minute)
	refreshed, err := m.Refresh("jti-1")
	require.NoError(t, err)
	assert.Equal(t, now, refreshed.RefreshedAt)
	assert.Equal(t, created.CreatedAt, refreshed.CreatedAt)

	m.Delete("jti-1")
	_, err = m.Get("jti-1")
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	_, err = m.Refresh("jti-1")
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestApplyPayment(t *testing.T) {
	now := time.Now()
	m := newManager(&now)
	m.Create("s", "2250001")

	m.mu.Lock()
	m.sessions["s"].AmountDue = 1000
	m.sessions["s"].CurrentBalance = 50
	m.mu.Unlock()

	s, out, err := m.ApplyPayment("s", 400)
	require.NoError(t, err)
	assert.Equal(t, 600.0, s.AmountDue)
	assert.False(t, out.FullyPaid)
	assert.Equal(t, 0.0, out.Overpayment)

	s, out, err = m.ApplyPayment("s", 750.5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.AmountDue)
	assert.True(t, out.FullyPaid)
	assert.Equal(t, 150.5, out.Overpayment)
	assert.Equal(t, 200.5, s.CurrentBalance)

	_, _, err = m.ApplyPayment("missing", 1)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestRevert(t *testing.T) {
	now := time.Now()
	m := newManager(&now)
	before := m.Create("s", "2250001")

	_, _, err := m.ApplyPayment("s", before.AmountDue+10)
	require.NoError(t, err)
	m.Revert("s", before)

	s, err := m.Get("s")
	require.NoError(t, err)
	assert.Equal(t, before.AmountDue, s.AmountDue)
	assert.Equal(t, before.CurrentBalance, s.CurrentBalance)

	m.Delete("s")
	m.Revert("s", before)
	_, err = m.Get("s")
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestPruneExpired(t *testing.T) {
	now := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	m := newManager(&now)

	m.Create("old", "2250001")
	now = now.Add(2 * time.Hour)
	m.Create("new", "2250002")

	_, err := m.Get("old")
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	assert.Equal(t, 1, m.Len())
}

func TestConcurrentAccess(t *testing.T) {
	now := time.Now()
	m := newManager(&now)
	m.Create("s", "2250001")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = m.Refresh("s")
		}()
		go func() {
			defer wg.Done()
			_, _, _ = m.ApplyPayment("s", 1)
		}()
	}
	wg.Wait()

	_, err := m.Get("s")
	assert.NoError(t, err)
}
