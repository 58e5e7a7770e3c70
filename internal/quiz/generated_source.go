package quiz

import (
	"context"
	"fmt"

	"quiz-bot-service/internal/domain"
	"quiz-bot-service/internal/llm"
)

const generatorSystemPrompt = `You write trivia questions. Reply with exactly five lines:
line 1 is a general-knowledge question, lines 2-5 are four answer options.
Append a single trailing * to the one correct option's line. No numbering,
no extra commentary.`

const generatorUserPrompt = "Write one new multiple-choice trivia question."

// GeneratedSource synthesizes one question per round via a completion client.
// One attempt per round; a bad reply aborts the round rather than retrying.
type GeneratedSource struct {
	client llm.Client
}

func NewGeneratedSource(client llm.Client) *GeneratedSource {
	return &GeneratedSource{client: client}
}

func (s *GeneratedSource) Next(ctx context.Context) (domain.Question, error) {
	reply, err := s.client.Complete(ctx, generatorSystemPrompt, generatorUserPrompt)
	if err != nil {
		return domain.Question{}, fmt.Errorf("generate question: %w", err)
	}
	return DecodeGenerated(reply)
}
