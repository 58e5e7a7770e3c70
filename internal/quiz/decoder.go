package quiz

import (
	"fmt"
	"strings"

	"quiz-bot-service/internal/domain"
)

// correctMarker trails the correct option's line in a generated reply.
const correctMarker = "*"

// DecodeGenerated parses a generated completion into a question.
// Expected shape: first non-empty line is the question text, the next four
// are options, exactly one of which ends with the marker character.
func DecodeGenerated(text string) (domain.Question, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) < domain.OptionCount+1 {
		return domain.Question{}, fmt.Errorf("%w: got %d lines, want at least %d",
			domain.ErrMalformedReply, len(lines), domain.OptionCount+1)
	}

	q := domain.Question{Text: lines[0]}
	marked := 0
	for i := 0; i < domain.OptionCount; i++ {
		opt := lines[i+1]
		if strings.HasSuffix(opt, correctMarker) {
			marked++
			opt = strings.TrimSpace(strings.TrimSuffix(opt, correctMarker))
			q.CorrectOption = i + 1
		}
		q.Options[i] = opt
	}

	switch {
	case marked == 0:
		return domain.Question{}, fmt.Errorf("%w: no option is marked correct", domain.ErrMalformedReply)
	case marked > 1:
		return domain.Question{}, fmt.Errorf("%w: %d options marked correct", domain.ErrAmbiguousReply, marked)
	}

	if err := q.Validate(); err != nil {
		return domain.Question{}, fmt.Errorf("%w: %v", domain.ErrMalformedReply, err)
	}
	return q, nil
}
