package quiz

import (
	"context"

	"quiz-bot-service/internal/domain"
)

// Source yields the next question for a quiz round.
type Source interface {
	Next(ctx context.Context) (domain.Question, error)
}

// Bank lists the persisted question pool a BankSource draws from.
type Bank interface {
	ListQuestions(ctx context.Context) ([]domain.Question, error)
}
