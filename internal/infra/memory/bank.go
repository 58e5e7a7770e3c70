package memory

import (
	"context"
	"sync"

	"quiz-bot-service/internal/domain"
)

// Bank is an in-memory question bank.
type Bank struct {
	mu        sync.RWMutex
	questions []domain.Question
	nextID    int64
}

func NewBank(seed ...domain.Question) *Bank {
	b := &Bank{nextID: 1}
	for _, q := range seed {
		q.ID = b.nextID
		b.nextID++
		b.questions = append(b.questions, q)
	}
	return b
}

func (b *Bank) ListQuestions(_ context.Context) ([]domain.Question, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]domain.Question, len(b.questions))
	copy(out, b.questions)
	return out, nil
}

func (b *Bank) AddQuestion(_ context.Context, q domain.Question) error {
	if err := q.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	q.ID = b.nextID
	b.nextID++
	b.questions = append(b.questions, q)
	return nil
}
