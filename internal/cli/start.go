package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz-bot-service/internal/config"
	"quiz-bot-service/internal/domain"
	"quiz-bot-service/internal/infra/memory"
	"quiz-bot-service/internal/infra/postgres"
	redisinfra "quiz-bot-service/internal/infra/redis"
	"quiz-bot-service/internal/lib/slogcolor"
	"quiz-bot-service/internal/llm"
	"quiz-bot-service/internal/quiz"
	"quiz-bot-service/internal/telegram"
	transport "quiz-bot-service/internal/transport/http"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// ledgerStore is the full ledger surface shared by the bot and dashboard.
type ledgerStore interface {
	UpsertUser(ctx context.Context, u domain.User) error
	AdjustOnRound(ctx context.Context, telegramID int64, correct bool) error
	TopN(ctx context.Context, n int) ([]domain.User, error)
	GetProfile(ctx context.Context, telegramID int64) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type bankStore interface {
	ListQuestions(ctx context.Context) ([]domain.Question, error)
	AddQuestion(ctx context.Context, q domain.Question) error
}

// NewStartCmd builds the CLI subcommand to start the bot and dashboard.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz bot and dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(cmd.Context(), *configPath, *port)
		},
	}
}

func runStart(ctx context.Context, configPath, portFlag string) error {
	logger := slog.New(slogcolor.NewHandler(os.Stdout, slog.LevelInfo))

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Dashboard.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var ledger ledgerStore = memory.NewLedger()
	var bank bankStore = memory.NewBank()
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		ledger = postgres.NewLedger(pool)
		bank = postgres.NewBank(pool)
	}

	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		bankTTL := config.TTLDuration(cfg.Quiz.BankTTL, 10*time.Minute)
		bank = redisinfra.NewBankCache(redisClient, bank, bankTTL)
	}

	var source quiz.Source = quiz.NewBankSource(bank)
	if cfg.Quiz.Source == "generated" {
		source = quiz.NewGeneratedSource(llm.NewHTTPClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model))
	}

	engine := quiz.NewEngine(source, ledger)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return err
	}

	pacing := config.TTLDuration(cfg.Quiz.Pacing, 1500*time.Millisecond)
	bot := telegram.NewBot(api, engine, ledger, logger, pacing)

	botCtx, cancelBot := context.WithCancel(ctx)
	defer cancelBot()
	go func() {
		if err := bot.Run(botCtx); err != nil && botCtx.Err() == nil {
			logger.Error("bot stopped", "err", err)
		}
	}()

	dashboard := transport.NewDashboard(ledger, bank, logger)
	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      dashboard.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("starting dashboard", "port", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("failed to start dashboard", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutting down...")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down...")
	}

	cancelBot()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
