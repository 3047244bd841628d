package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"finchbot/configs"
	"finchbot/internal/adapter"
	"finchbot/internal/adapter/telegram"
	"finchbot/internal/database"
	deliveryhttp "finchbot/internal/delivery/http"
	"finchbot/internal/infra"
	"finchbot/internal/logger"
	"finchbot/internal/repository"
	"finchbot/internal/session"
	"finchbot/internal/usecase"
)

// sessionMaxIdle is how long an unfinished risk questionnaire survives
// before the sweeper discards it.
const sessionMaxIdle = 30 * time.Minute

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: .env file not found, using environment variables")
	}

	cfg := configs.Load()

	log := logger.New(logger.Config{
		Level:  cfg.Server.LogLevel,
		Pretty: cfg.Server.Env == "development",
	})

	if cfg.Telegram.Token == "" {
		log.Fatal().Msg("BOT_TOKEN is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := infra.NewDatabase(ctx, cfg.Database.URL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)

	// Collaborators
	sessions := session.NewStore()
	bot := telegram.NewClient(cfg.Telegram.Token, log)
	market := adapter.NewMOEXClient(cfg.Market.BaseURL, log)

	// Dialogue services
	onboarding := usecase.NewOnboardingService(userRepo, bot, log)
	risk := usecase.NewRiskService(userRepo, bot, sessions, log)
	portfolio := usecase.NewPortfolioService(
		userRepo,
		portfolioRepo,
		market,
		bot,
		cfg.Portfolio.AutoRebalance,
		cfg.Portfolio.UpdateFrequency,
		log,
	)
	advisor := usecase.NewAdvisorService(onboarding, risk, portfolio, log)

	// Register the bot command menu; not fatal if Telegram is briefly down.
	if err := bot.SetMyCommands(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to register bot commands")
	}

	// Stale-session sweeper
	sweeper := infra.NewSessionSweeper(sessions, sessionMaxIdle, log)
	if err := sweeper.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start session sweeper")
	}
	defer sweeper.Stop()

	// Operational HTTP API
	e := echo.New()
	e.HideBanner = true
	ops := deliveryhttp.NewOpsHandler(db, userRepo, portfolioRepo)
	deliveryhttp.SetupRoutes(e, ops)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		log.Info().Str("addr", addr).Str("env", cfg.Server.Env).Msg("Ops API starting")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start ops API")
		}
	}()

	// Telegram long-poll loop
	go func() {
		log.Info().Msg("Finch robo-advisor is polling for updates")
		bot.Poll(ctx, advisor.HandleEvent)
	}()

	waitForShutdown(cancel, e, log)
}

func waitForShutdown(cancel context.CancelFunc, e *echo.Echo, log zerolog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")
	cancel() // stops the poll loop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Ops API forced to shut down")
	}

	log.Info().Msg("Server exited gracefully")
}
