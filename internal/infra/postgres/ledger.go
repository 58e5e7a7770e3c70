package postgres

import (
	"context"
	"errors"
	"fmt"

	"quiz-bot-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const userColumns = `telegram_id, username, first_name, tokens, total_played,
	total_correct, last_played, group_id, avatar_url, created_at`

// Ledger stores the user ledger in Postgres.
type Ledger struct {
	pool *pgxpool.Pool
}

func NewLedger(pool *pgxpool.Pool) *Ledger {
	return &Ledger{pool: pool}
}

// UpsertUser inserts the user if absent; existing rows keep their balance
// and stats untouched.
func (l *Ledger) UpsertUser(ctx context.Context, u domain.User) error {
	_, err := l.pool.Exec(ctx,
		`INSERT INTO users (telegram_id, username, first_name)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (telegram_id) DO NOTHING`,
		u.TelegramID, u.Username, u.FirstName)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// AdjustOnRound applies one round's outcome in a single statement so the
// counters and balance move together.
func (l *Ledger) AdjustOnRound(ctx context.Context, telegramID int64, correct bool) error {
	_, err := l.pool.Exec(ctx,
		`UPDATE users SET
			total_played  = total_played + 1,
			total_correct = total_correct + CASE WHEN $2 THEN 1 ELSE 0 END,
			tokens        = tokens + CASE WHEN $2 THEN $3::int ELSE 0 END,
			last_played   = now()
		 WHERE telegram_id = $1`,
		telegramID, correct, domain.CorrectReward)
	if err != nil {
		return fmt.Errorf("adjust on round: %w", err)
	}
	return nil
}

// TopN lists the richest n users, ties broken by insertion order.
func (l *Ledger) TopN(ctx context.Context, n int) ([]domain.User, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY tokens DESC, id ASC LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("top users: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

// GetProfile returns the user's row, or a zero-valued user if they never
// started the bot.
func (l *Ledger) GetProfile(ctx context.Context, telegramID int64) (domain.User, error) {
	var u domain.User
	err := l.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, telegramID).
		Scan(&u.TelegramID, &u.Username, &u.FirstName, &u.Tokens, &u.TotalPlayed,
			&u.TotalCorrect, &u.LastPlayed, &u.GroupID, &u.AvatarURL, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{TelegramID: telegramID}, nil
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get profile: %w", err)
	}
	return u, nil
}

// ListUsers returns every ledger row, tokens descending.
func (l *Ledger) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY tokens DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

func scanUsers(rows pgx.Rows) ([]domain.User, error) {
	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.TelegramID, &u.Username, &u.FirstName, &u.Tokens,
			&u.TotalPlayed, &u.TotalCorrect, &u.LastPlayed, &u.GroupID,
			&u.AvatarURL, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
