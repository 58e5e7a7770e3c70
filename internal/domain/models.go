package domain

import (
	"fmt"
	"strings"
	"time"
)

// StartingTokens is the balance every player begins with.
const StartingTokens = 100

// CorrectReward is the token award for answering a round correctly.
const CorrectReward = 10

// OptionCount is the fixed number of choices per quiz question.
const OptionCount = 4

// User is one row of the player ledger.
type User struct {
	TelegramID   int64      `json:"telegramId"`
	Username     string     `json:"username"`
	FirstName    string     `json:"firstName"`
	Tokens       int        `json:"tokens"`
	TotalPlayed  int        `json:"totalPlayed"`
	TotalCorrect int        `json:"totalCorrect"`
	LastPlayed   *time.Time `json:"lastPlayed,omitempty"`
	GroupID      *int64     `json:"groupId,omitempty"`
	AvatarURL    string     `json:"avatarUrl,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Question is a single multiple-choice quiz item with exactly one correct option.
type Question struct {
	ID            int64               `json:"id"`
	Text          string              `json:"text"`
	Options       [OptionCount]string `json:"options"`
	CorrectOption int                 `json:"correctOption"` // 1-based index into Options
}

// Validate checks that all fields are present and the correct option is in range.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: empty question text", ErrInvalidQuestion)
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: empty option %d", ErrInvalidQuestion, i+1)
		}
	}
	if q.CorrectOption < 1 || q.CorrectOption > OptionCount {
		return fmt.Errorf("%w: correct option %d out of range 1-%d", ErrInvalidQuestion, q.CorrectOption, OptionCount)
	}
	return nil
}
