package redis

import (
	"context"
	"testing"
	"time"

	"quiz-bot-service/internal/domain"
	"quiz-bot-service/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestBankCacheCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := &countingBank{BankStore: memory.NewBank(sampleQuestion())}
	cache := NewBankCache(newClient(mr), store, time.Minute)

	questions, err := cache.ListQuestions(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if store.listCalls != 1 {
		t.Fatalf("expected store called once, got %d", store.listCalls)
	}

	// Second call should hit cache, store not incremented.
	_, _ = cache.ListQuestions(context.Background())
	if store.listCalls != 1 {
		t.Fatalf("expected cache hit, store calls=%d", store.listCalls)
	}
}

func TestBankCacheInvalidatesOnAdd(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := &countingBank{BankStore: memory.NewBank(sampleQuestion())}
	cache := NewBankCache(newClient(mr), store, time.Minute)

	if _, err := cache.ListQuestions(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}

	q := sampleQuestion()
	q.Text = "What is the capital of France?"
	q.Options = [domain.OptionCount]string{"Paris", "Lyon", "Nice", "Lille"}
	if err := cache.AddQuestion(context.Background(), q); err != nil {
		t.Fatalf("add: %v", err)
	}

	questions, err := cache.ListQuestions(context.Background())
	if err != nil {
		t.Fatalf("list after add: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected the new question to be visible, got %d questions", len(questions))
	}
	if store.listCalls != 2 {
		t.Fatalf("expected cache drop to hit the store, calls=%d", store.listCalls)
	}
}

type countingBank struct {
	BankStore
	listCalls int
}

func (b *countingBank) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	b.listCalls++
	return b.BankStore.ListQuestions(ctx)
}

func sampleQuestion() domain.Question {
	return domain.Question{
		Text:          "What is 2 + 2?",
		Options:       [domain.OptionCount]string{"3", "4", "5", "6"},
		CorrectOption: 2,
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
