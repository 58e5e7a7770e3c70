package postgres

import (
	"context"
	"fmt"

	"quiz-bot-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Bank stores quiz questions in Postgres.
type Bank struct {
	pool *pgxpool.Pool
}

func NewBank(pool *pgxpool.Pool) *Bank {
	return &Bank{pool: pool}
}

func (b *Bank) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	rows, err := b.pool.Query(ctx,
		`SELECT id, question, option1, option2, option3, option4, correct_option
		 FROM quizzes ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Options[0], &q.Options[1],
			&q.Options[2], &q.Options[3], &q.CorrectOption); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (b *Bank) AddQuestion(ctx context.Context, q domain.Question) error {
	if err := q.Validate(); err != nil {
		return err
	}
	_, err := b.pool.Exec(ctx,
		`INSERT INTO quizzes (question, option1, option2, option3, option4, correct_option)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		q.Text, q.Options[0], q.Options[1], q.Options[2], q.Options[3], q.CorrectOption)
	if err != nil {
		return fmt.Errorf("add question: %w", err)
	}
	return nil
}
