package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"quiz-bot-service/internal/domain"
	"quiz-bot-service/internal/quiz"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Ledger is the user-facing slice of the ledger the bot needs.
type Ledger interface {
	UpsertUser(ctx context.Context, u domain.User) error
	TopN(ctx context.Context, n int) ([]domain.User, error)
	GetProfile(ctx context.Context, telegramID int64) (domain.User, error)
}

const leaderboardSize = 5

// Bot drives the Telegram transport: long polling, classification and
// per-update handler goroutines.
type Bot struct {
	api    *tgbotapi.BotAPI
	engine *quiz.Engine
	ledger Ledger
	log    *slog.Logger
	pacing time.Duration
}

func NewBot(api *tgbotapi.BotAPI, engine *quiz.Engine, ledger Ledger, log *slog.Logger, pacing time.Duration) *Bot {
	return &Bot{
		api:    api,
		engine: engine,
		ledger: ledger,
		log:    log,
		pacing: pacing,
	}
}

// Run polls for updates until ctx is canceled. Each update is handled in
// its own goroutine so one user's pacing delay never blocks another.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	u.AllowedUpdates = []string{"message", "callback_query"}

	updates := b.api.GetUpdatesChan(u)
	b.log.Info("bot polling started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handle(ctx, update)
		}
	}
}

func (b *Bot) handle(ctx context.Context, update tgbotapi.Update) {
	cmd := Classify(update)
	switch cmd.Kind {
	case KindStart:
		b.handleStart(ctx, cmd)
	case KindQuiz:
		b.handleQuiz(ctx, cmd)
	case KindLeaderboard:
		b.handleLeaderboard(ctx, cmd)
	case KindProfile:
		b.handleProfile(ctx, cmd)
	case KindAnswer:
		b.handleAnswer(ctx, cmd)
	}
}

func (b *Bot) handleStart(ctx context.Context, cmd Command) {
	if err := b.upsert(ctx, cmd); err != nil {
		b.log.Error("upsert user", "user", cmd.UserID, "err", err)
	}

	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuQuiz),
			tgbotapi.NewKeyboardButton(menuLeaderboard),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuProfile),
		),
	)

	msg := tgbotapi.NewMessage(cmd.ChatID, fmt.Sprintf("👋 Hi %s!\nWelcome to the quiz bot!", cmd.FirstName))
	msg.ReplyMarkup = keyboard
	b.send(msg)
}

func (b *Bot) handleQuiz(ctx context.Context, cmd Command) {
	if err := b.upsert(ctx, cmd); err != nil {
		b.log.Error("upsert user", "user", cmd.UserID, "err", err)
	}

	prompt, err := b.engine.StartRun(ctx, cmd.UserID)
	if err != nil {
		b.log.Error("start run", "user", cmd.UserID, "err", err)
		b.send(tgbotapi.NewMessage(cmd.ChatID, "⚠️ Could not start the quiz, please try again later."))
		return
	}
	b.sendQuestion(cmd.ChatID, prompt)
}

func (b *Bot) handleLeaderboard(ctx context.Context, cmd Command) {
	top, err := b.ledger.TopN(ctx, leaderboardSize)
	if err != nil {
		b.log.Error("leaderboard", "err", err)
		b.send(tgbotapi.NewMessage(cmd.ChatID, "⚠️ Leaderboard is unavailable right now."))
		return
	}

	text := "🏆 Leaderboard\n"
	for i, u := range top {
		name := u.Username
		if name == "" {
			name = u.FirstName
		}
		text += fmt.Sprintf("%d. %s: %d tokens\n", i+1, name, u.Tokens)
	}
	if len(top) == 0 {
		text += "Nobody has played yet."
	}
	b.send(tgbotapi.NewMessage(cmd.ChatID, text))
}

func (b *Bot) handleProfile(ctx context.Context, cmd Command) {
	profile, err := b.ledger.GetProfile(ctx, cmd.UserID)
	if err != nil {
		b.log.Error("profile", "user", cmd.UserID, "err", err)
		b.send(tgbotapi.NewMessage(cmd.ChatID, "⚠️ Profile is unavailable right now."))
		return
	}

	text := fmt.Sprintf("💼 Your profile\nTokens: %d\nQuestions played: %d\nCorrect answers: %d",
		profile.Tokens, profile.TotalPlayed, profile.TotalCorrect)
	b.send(tgbotapi.NewMessage(cmd.ChatID, text))
}

func (b *Bot) handleAnswer(ctx context.Context, cmd Command) {
	// Always acknowledge the callback so the client stops its spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(cmd.CallbackID, "")); err != nil {
		b.log.Warn("answer callback ack", "err", err)
	}
	if cmd.Round < 0 {
		return
	}

	outcome, ok, err := b.engine.Submit(ctx, cmd.UserID, cmd.Round, cmd.Option)
	if err != nil {
		b.log.Error("submit answer", "user", cmd.UserID, "round", cmd.Round, "err", err)
		b.send(tgbotapi.NewMessage(cmd.ChatID, "⚠️ Could not record your answer, please tap again."))
		return
	}
	if !ok {
		return
	}

	feedback := "❌ Wrong!"
	if outcome.Correct {
		feedback = fmt.Sprintf("✅ Correct! +%d tokens", domain.CorrectReward)
	}
	b.send(tgbotapi.NewEditMessageText(cmd.ChatID, cmd.MessageID, feedback))

	if outcome.Finished {
		b.send(tgbotapi.NewMessage(cmd.ChatID,
			fmt.Sprintf("🏁 Quiz finished! Your score: %d", outcome.Score)))
		return
	}

	select {
	case <-ctx.Done():
		return
	case <-time.After(b.pacing):
	}

	prompt, err := b.engine.NextQuestion(ctx, cmd.UserID)
	if err != nil {
		b.log.Error("next question", "user", cmd.UserID, "err", err)
		b.send(tgbotapi.NewMessage(cmd.ChatID, "⚠️ Could not fetch the next question, the quiz has been stopped."))
		return
	}
	b.sendQuestion(cmd.ChatID, prompt)
}

func (b *Bot) sendQuestion(chatID int64, prompt quiz.Prompt) {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, domain.OptionCount)
	for i, opt := range prompt.Question.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt, AnswerData(prompt.Round, i+1)),
		))
	}

	msg := tgbotapi.NewMessage(chatID,
		fmt.Sprintf("❓ Question %d/%d\n\n%s", prompt.Round+1, quiz.RoundsPerRun, prompt.Question.Text))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.send(msg)
}

func (b *Bot) upsert(ctx context.Context, cmd Command) error {
	return b.ledger.UpsertUser(ctx, domain.User{
		TelegramID: cmd.UserID,
		Username:   cmd.Username,
		FirstName:  cmd.FirstName,
	})
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.log.Warn("send message", "err", err)
	}
}
