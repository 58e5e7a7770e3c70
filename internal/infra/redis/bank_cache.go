package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"quiz-bot-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const bankKey = "quiz:bank"

// BankStore is the backing question bank the cache sits in front of.
type BankStore interface {
	ListQuestions(ctx context.Context) ([]domain.Question, error)
	AddQuestion(ctx context.Context, q domain.Question) error
}

// BankCache caches the full question bank in Redis as one JSON blob and
// falls back to the store on a miss. Writes go to the store and drop the
// cached blob so the next read sees the new question.
type BankCache struct {
	client *redis.Client
	store  BankStore
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewBankCache(client *redis.Client, store BankStore, ttl time.Duration) *BankCache {
	return &BankCache{
		client: client,
		store:  store,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *BankCache) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	if questions, ok := c.fromCache(ctx); ok {
		return questions, nil
	}

	result, err, _ := c.sf.Do(bankKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if questions, ok := c.fromCache(ctx); ok {
			return questions, nil
		}

		questions, err := c.store.ListQuestions(ctx)
		if err != nil {
			return nil, err
		}

		if raw, err := json.Marshal(questions); err == nil {
			_ = c.client.Set(ctx, bankKey, raw, c.ttlWithJitter()).Err()
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *BankCache) AddQuestion(ctx context.Context, q domain.Question) error {
	if err := c.store.AddQuestion(ctx, q); err != nil {
		return err
	}
	_ = c.client.Del(ctx, bankKey).Err()
	return nil
}

func (c *BankCache) fromCache(ctx context.Context) ([]domain.Question, bool) {
	raw, err := c.client.Get(ctx, bankKey).Bytes()
	if err != nil {
		return nil, false
	}
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, false
	}
	return questions, true
}

func (c *BankCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
