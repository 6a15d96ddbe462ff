package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/health-quiz-bot/internal/config"
	"github.com/aliskhannn/health-quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/health-quiz-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/health-quiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/health-quiz-bot/internal/logger"
	"github.com/aliskhannn/health-quiz-bot/internal/metrics"
	"github.com/aliskhannn/health-quiz-bot/internal/quiz"
	"github.com/aliskhannn/health-quiz-bot/internal/repository"
	"github.com/aliskhannn/health-quiz-bot/internal/service"
	"github.com/aliskhannn/health-quiz-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		lg.Fatal("database is not configured", zap.Error(err))
	}

	if cfg.DB.MigrateOnStart {
		if err := postgres.Migrate(dsn); err != nil {
			lg.Fatal("failed to apply migrations", zap.Error(err))
		}
		lg.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		lg.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// Load and check the game catalog.
	gameRepo, err := repository.NewGameRepository(cfg.GamesJSONPath)
	if err != nil {
		lg.Fatal("failed to load games", zap.String("path", cfg.GamesJSONPath), zap.Error(err))
	}
	service.NewContentValidator(lg).Report(gameRepo.GetAll())

	policy, err := quiz.ParseCompletionPolicy(cfg.Quiz.CompletionPolicy)
	if err != nil {
		lg.Fatal("invalid quiz config", zap.Error(err))
	}

	m := metrics.New()
	sessions := storage.NewSessionStorage()

	// Initialize repositories and services.
	userRepo := pgrepo.NewUserRepository(pool)
	resultRepo := pgrepo.NewResultRepository(pool)
	walletRepo := pgrepo.NewWalletRepository(pool)
	transactor := postgres.NewTransactor(pool)

	userService := service.NewUserService(userRepo, lg)
	gameService := service.NewGameService(gameRepo)
	rewardService := service.NewRewardService(transactor, resultRepo, walletRepo, m, lg)
	quizService := service.NewQuizService(gameRepo, rewardService, sessions, m, quiz.Config{
		FeedbackDelay:    cfg.Quiz.FeedbackDelay,
		CelebrationRatio: cfg.Quiz.CelebrationRatio,
		CompletionPolicy: policy,
	}, lg)
	janitor := service.NewSessionJanitor(sessions, m, cfg.Quiz.SessionTTL, cfg.Quiz.JanitorSchedule, lg)

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Запустить бота",
		},
		{
			Command:     "games",
			Description: "Список игр",
		},
		{
			Command:     "play",
			Description: "Начать игру (использование: /play teeth)",
		},
		{
			Command:     "wallet",
			Description: "Мои монетки",
		},
		{
			Command:     "help",
			Description: "Помощь",
		},
	}

	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	bot.Debug = cfg.Env == "local"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	handler := telegram.NewHandler(bot, lg, userService, gameService, quizService, rewardService)
	quizService.SetPresenter(handler)

	go janitor.Start(ctx)

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		metricsServer = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			lg.Info("metrics server started", zap.String("addr", cfg.MetricsAddr))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				lg.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler failed", zap.Error(err))
	}

	lg.Info("shutdown signal received")
	bot.StopReceivingUpdates()

	// Let pending reward writes finish before the pool is closed.
	lg.Info("quizzes disposed", zap.Int("count", sessions.DisposeAll()))
	rewardService.Wait()

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			lg.Warn("metrics server shutdown", zap.Error(err))
		}
	}
}
