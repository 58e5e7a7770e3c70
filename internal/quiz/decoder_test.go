package quiz

import (
	"testing"

	"quiz-bot-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeGeneratedValid(t *testing.T) {
	reply := "Which planet is known as the Red Planet?\nVenus\nMars*\nJupiter\nSaturn"

	q, err := DecodeGenerated(reply)
	require.NoError(t, err)
	assert.Equal(t, "Which planet is known as the Red Planet?", q.Text)
	assert.Equal(t, [domain.OptionCount]string{"Venus", "Mars", "Jupiter", "Saturn"}, q.Options)
	assert.Equal(t, 2, q.CorrectOption)
}

func TestDecodeGeneratedSkipsBlankLines(t *testing.T) {
	reply := "\nWhat is 2 + 2?\n\n  3\n4 *\n5\n6\n\n"

	q, err := DecodeGenerated(reply)
	require.NoError(t, err)
	assert.Equal(t, "What is 2 + 2?", q.Text)
	assert.Equal(t, "4", q.Options[1], "marker and padding must be stripped")
	assert.Equal(t, 2, q.CorrectOption)
}

func TestDecodeGeneratedTooFewLines(t *testing.T) {
	_, err := DecodeGenerated("Question?\nonly*\ntwo\noptions")
	require.ErrorIs(t, err, domain.ErrMalformedReply)
}

func TestDecodeGeneratedNoMarker(t *testing.T) {
	_, err := DecodeGenerated("Question?\na\nb\nc\nd")
	require.ErrorIs(t, err, domain.ErrMalformedReply)
}

func TestDecodeGeneratedMultipleMarkers(t *testing.T) {
	_, err := DecodeGenerated("Question?\na*\nb\nc*\nd")
	require.ErrorIs(t, err, domain.ErrAmbiguousReply)
}

func TestDecodeGeneratedExtraLinesIgnored(t *testing.T) {
	reply := "Question?\na\nb\nc*\nd\nHope you like it!"

	q, err := DecodeGenerated(reply)
	require.NoError(t, err)
	assert.Equal(t, 3, q.CorrectOption)
}
