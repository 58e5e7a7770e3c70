package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

func messageUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: text,
			From: &tgbotapi.User{ID: 42, UserName: "alice", FirstName: "Alice"},
			Chat: &tgbotapi.Chat{ID: 100},
		},
	}
}

func commandUpdate(text string) tgbotapi.Update {
	u := messageUpdate(text)
	u.Message.Entities = []tgbotapi.MessageEntity{
		{Type: "bot_command", Offset: 0, Length: len(text)},
	}
	return u
}

func callbackUpdate(data string) tgbotapi.Update {
	return tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb-1",
			Data: data,
			From: &tgbotapi.User{ID: 42, UserName: "alice", FirstName: "Alice"},
			Message: &tgbotapi.Message{
				MessageID: 7,
				Chat:      &tgbotapi.Chat{ID: 100},
			},
		},
	}
}

func TestClassifyCommands(t *testing.T) {
	assert.Equal(t, KindStart, Classify(commandUpdate("/start")).Kind)
	assert.Equal(t, KindQuiz, Classify(commandUpdate("/quiz")).Kind)
	assert.Equal(t, KindUnknown, Classify(commandUpdate("/help")).Kind)
}

func TestClassifyMenuButtons(t *testing.T) {
	assert.Equal(t, KindQuiz, Classify(messageUpdate(menuQuiz)).Kind)
	assert.Equal(t, KindLeaderboard, Classify(messageUpdate(menuLeaderboard)).Kind)
	assert.Equal(t, KindProfile, Classify(messageUpdate(menuProfile)).Kind)
	assert.Equal(t, KindUnknown, Classify(messageUpdate("hello")).Kind)
}

func TestClassifyFillsIdentity(t *testing.T) {
	cmd := Classify(messageUpdate(menuProfile))
	assert.Equal(t, int64(42), cmd.UserID)
	assert.Equal(t, int64(100), cmd.ChatID)
	assert.Equal(t, "alice", cmd.Username)
	assert.Equal(t, "Alice", cmd.FirstName)
}

func TestClassifyAnswerCallback(t *testing.T) {
	cmd := Classify(callbackUpdate("ans:2:3"))
	assert.Equal(t, KindAnswer, cmd.Kind)
	assert.Equal(t, "cb-1", cmd.CallbackID)
	assert.Equal(t, 7, cmd.MessageID)
	assert.Equal(t, 2, cmd.Round)
	assert.Equal(t, 3, cmd.Option)
}

func TestClassifyMalformedCallbackIsDropped(t *testing.T) {
	for _, data := range []string{"", "garbage", "ans:x:1", "ans:1", "ans:-1:2", "other:1:2"} {
		cmd := Classify(callbackUpdate(data))
		assert.Equal(t, KindAnswer, cmd.Kind, "payload %q", data)
		assert.Equal(t, -1, cmd.Round, "payload %q must be inert", data)
	}
}

func TestAnswerDataRoundTrip(t *testing.T) {
	round, option, ok := parseAnswerData(AnswerData(4, 1))
	assert.True(t, ok)
	assert.Equal(t, 4, round)
	assert.Equal(t, 1, option)
}
