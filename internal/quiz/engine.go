package quiz

import (
	"context"
	"sync"

	"quiz-bot-service/internal/domain"
	"github.com/google/uuid"
)

// RoundsPerRun is the number of questions in one quiz run.
const RoundsPerRun = 5

// Ledger applies the per-round stat write for a user.
type Ledger interface {
	AdjustOnRound(ctx context.Context, telegramID int64, correct bool) error
}

// session tracks one user's in-flight quiz run. keys[i] holds the correct
// option for round i, recorded when the round's question was issued.
// resolving marks a round whose ledger write is in flight, so a concurrent
// duplicate tap cannot resolve the same round twice.
type session struct {
	runID     uuid.UUID
	round     int
	score     int
	keys      []int
	resolving bool
}

// Prompt is a question issued for a specific round.
type Prompt struct {
	Round    int
	Question domain.Question
}

// Outcome is the result of grading one submitted answer.
type Outcome struct {
	Correct  bool
	Finished bool
	Score    int
	Round    int
}

// Engine owns the per-user quiz sessions and drives the round lifecycle.
type Engine struct {
	mu       sync.Mutex
	sessions map[int64]*session
	source   Source
	ledger   Ledger
}

func NewEngine(source Source, ledger Ledger) *Engine {
	return &Engine{
		sessions: make(map[int64]*session),
		source:   source,
		ledger:   ledger,
	}
}

// StartRun begins a fresh run for the user, silently replacing any run
// already in flight. The first round's question is fetched before any
// session state changes, so a source failure leaves the user idle.
func (e *Engine) StartRun(ctx context.Context, telegramID int64) (Prompt, error) {
	q, err := e.source.Next(ctx)
	if err != nil {
		return Prompt{}, err
	}

	e.mu.Lock()
	e.sessions[telegramID] = &session{
		runID: uuid.New(),
		keys:  []int{q.CorrectOption},
	}
	e.mu.Unlock()

	return Prompt{Round: 0, Question: q}, nil
}

// Submit grades an answer for the given round. Stale rounds, out-of-range
// options, missing sessions and rounds already being resolved are inert:
// ok is false and nothing changes. The round is reserved under the lock
// before the ledger write, so concurrent duplicate taps resolve it exactly
// once; if the write fails the reservation is released and the round stays
// open.
func (e *Engine) Submit(ctx context.Context, telegramID int64, round, option int) (Outcome, bool, error) {
	e.mu.Lock()
	s, live := e.sessions[telegramID]
	if !live || round != s.round || s.resolving || round >= len(s.keys) || option < 1 || option > domain.OptionCount {
		e.mu.Unlock()
		return Outcome{}, false, nil
	}
	runID := s.runID
	correct := option == s.keys[round]
	s.resolving = true
	e.mu.Unlock()

	err := e.ledger.AdjustOnRound(ctx, telegramID, correct)

	e.mu.Lock()
	defer e.mu.Unlock()
	s, live = e.sessions[telegramID]
	if !live || s.runID != runID {
		// The run was replaced while the ledger write was in flight.
		return Outcome{}, false, nil
	}
	s.resolving = false
	if err != nil {
		return Outcome{}, false, err
	}

	if correct {
		s.score += domain.CorrectReward
	}
	s.round++

	out := Outcome{Correct: correct, Score: s.score, Round: round}
	if s.round == RoundsPerRun {
		out.Finished = true
		delete(e.sessions, telegramID)
	}
	return out, true, nil
}

// NextQuestion fetches and records the question for the user's current
// round. A source failure aborts the run: the session is deleted and the
// error returned, with the ledger untouched.
func (e *Engine) NextQuestion(ctx context.Context, telegramID int64) (Prompt, error) {
	e.mu.Lock()
	s, live := e.sessions[telegramID]
	if !live {
		e.mu.Unlock()
		return Prompt{}, domain.ErrNoSession
	}
	runID := s.runID
	e.mu.Unlock()

	q, err := e.source.Next(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	s, live = e.sessions[telegramID]
	if !live || s.runID != runID {
		return Prompt{}, domain.ErrNoSession
	}
	if err != nil {
		delete(e.sessions, telegramID)
		return Prompt{}, err
	}

	s.keys = append(s.keys, q.CorrectOption)
	return Prompt{Round: s.round, Question: q}, nil
}

// Active reports whether the user has a run in flight.
func (e *Engine) Active(telegramID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.sessions[telegramID]
	return ok
}
