package quiz

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"quiz-bot-service/internal/domain"
)

// seedQuestion is served when the bank holds no questions yet, so a fresh
// deployment can still run a quiz before anyone authors content.
var seedQuestion = domain.Question{
	Text:          "What is the capital of Iran?",
	Options:       [domain.OptionCount]string{"Tehran", "Isfahan", "Shiraz", "Tabriz"},
	CorrectOption: 1,
}

// BankSource draws a random question from the persisted bank. Next is
// called from concurrent handler goroutines, so the rng is mutex-guarded.
type BankSource struct {
	bank Bank

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewBankSource(bank Bank) *BankSource {
	return &BankSource{
		bank: bank,
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *BankSource) Next(ctx context.Context) (domain.Question, error) {
	questions, err := s.bank.ListQuestions(ctx)
	if err != nil {
		return domain.Question{}, err
	}
	if len(questions) == 0 {
		return seedQuestion, nil
	}
	s.mu.Lock()
	pick := s.rnd.Intn(len(questions))
	s.mu.Unlock()
	return questions[pick], nil
}
