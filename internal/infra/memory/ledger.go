package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"quiz-bot-service/internal/domain"
)

// Ledger keeps the user ledger in process memory. Useful for tests and for
// running the bot without Postgres.
type Ledger struct {
	mu    sync.RWMutex
	users map[int64]*domain.User
	order []int64
	clock func() time.Time
}

func NewLedger() *Ledger {
	return &Ledger{
		users: make(map[int64]*domain.User),
		clock: time.Now,
	}
}

// NewLedgerWithClock allows deterministic timestamps in tests.
func NewLedgerWithClock(now func() time.Time) *Ledger {
	l := NewLedger()
	l.clock = now
	return l
}

// UpsertUser registers the user if absent. An existing row is left
// untouched so balances and stats survive repeated /start.
func (l *Ledger) UpsertUser(_ context.Context, u domain.User) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.users[u.TelegramID]; ok {
		return nil
	}
	stored := u
	stored.Tokens = domain.StartingTokens
	stored.TotalPlayed = 0
	stored.TotalCorrect = 0
	stored.LastPlayed = nil
	stored.CreatedAt = l.clock()
	l.users[u.TelegramID] = &stored
	l.order = append(l.order, u.TelegramID)
	return nil
}

// AdjustOnRound applies one round's outcome to the user's stats. Unknown
// users are a no-op, matching an UPDATE that touches zero rows.
func (l *Ledger) AdjustOnRound(_ context.Context, telegramID int64, correct bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	u, ok := l.users[telegramID]
	if !ok {
		return nil
	}
	now := l.clock()
	u.TotalPlayed++
	if correct {
		u.TotalCorrect++
		u.Tokens += domain.CorrectReward
	}
	u.LastPlayed = &now
	return nil
}

// TopN returns up to n users ordered by tokens descending, ties kept in
// registration order.
func (l *Ledger) TopN(_ context.Context, n int) ([]domain.User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	users := l.snapshotLocked()
	if n < len(users) {
		users = users[:n]
	}
	return users, nil
}

// GetProfile returns the user's ledger row, or a zero-valued user when
// they have never started the bot.
func (l *Ledger) GetProfile(_ context.Context, telegramID int64) (domain.User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if u, ok := l.users[telegramID]; ok {
		return *u, nil
	}
	return domain.User{TelegramID: telegramID}, nil
}

// ListUsers returns every ledger row, tokens descending.
func (l *Ledger) ListUsers(_ context.Context) ([]domain.User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked(), nil
}

func (l *Ledger) snapshotLocked() []domain.User {
	users := make([]domain.User, 0, len(l.order))
	for _, id := range l.order {
		users = append(users, *l.users[id])
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Tokens > users[j].Tokens
	})
	return users
}
