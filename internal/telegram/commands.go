package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Kind enumerates what a Telegram update asks the bot to do.
type Kind int

const (
	KindUnknown Kind = iota
	KindStart
	KindQuiz
	KindLeaderboard
	KindProfile
	KindAnswer
)

// Menu button labels shown on the reply keyboard.
const (
	menuQuiz        = "📝 Start Quiz"
	menuLeaderboard = "🏆 Leaderboard"
	menuProfile     = "💼 My Profile"
)

const answerPrefix = "ans"

// Command is a classified update. For KindAnswer a malformed payload sets
// Round to -1 so the handler acknowledges and drops it.
type Command struct {
	Kind       Kind
	ChatID     int64
	UserID     int64
	Username   string
	FirstName  string
	CallbackID string
	MessageID  int
	Round      int
	Option     int
}

// Classify maps a raw update onto a Command. All string matching against
// update payloads happens here, not in the handlers.
func Classify(update tgbotapi.Update) Command {
	if cb := update.CallbackQuery; cb != nil {
		cmd := Command{
			Kind:       KindAnswer,
			CallbackID: cb.ID,
			Round:      -1,
			Option:     -1,
		}
		if cb.From != nil {
			cmd.UserID = cb.From.ID
			cmd.Username = cb.From.UserName
			cmd.FirstName = cb.From.FirstName
		}
		if cb.Message != nil {
			cmd.ChatID = cb.Message.Chat.ID
			cmd.MessageID = cb.Message.MessageID
		}
		if round, option, ok := parseAnswerData(cb.Data); ok {
			cmd.Round = round
			cmd.Option = option
		}
		return cmd
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return Command{Kind: KindUnknown}
	}

	cmd := Command{
		Kind:      KindUnknown,
		ChatID:    msg.Chat.ID,
		UserID:    msg.From.ID,
		Username:  msg.From.UserName,
		FirstName: msg.From.FirstName,
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			cmd.Kind = KindStart
		case "quiz":
			cmd.Kind = KindQuiz
		}
		return cmd
	}

	switch msg.Text {
	case menuQuiz:
		cmd.Kind = KindQuiz
	case menuLeaderboard:
		cmd.Kind = KindLeaderboard
	case menuProfile:
		cmd.Kind = KindProfile
	}
	return cmd
}

// AnswerData encodes an answer button payload for round and option.
func AnswerData(round, option int) string {
	return fmt.Sprintf("%s:%d:%d", answerPrefix, round, option)
}

func parseAnswerData(data string) (round, option int, ok bool) {
	parts := strings.Split(data, ":")
	if len(parts) != 3 || parts[0] != answerPrefix {
		return 0, 0, false
	}
	round, err := strconv.Atoi(parts[1])
	if err != nil || round < 0 {
		return 0, 0, false
	}
	option, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, false
	}
	return round, option, true
}
