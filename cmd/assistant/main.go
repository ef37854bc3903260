package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	slacklib "github.com/slack-go/slack"

	"github.com/sivajik34/aifastcommerce/internal/agent"
	"github.com/sivajik34/aifastcommerce/internal/api/ws"
	"github.com/sivajik34/aifastcommerce/internal/assistant"
	"github.com/sivajik34/aifastcommerce/internal/auth"
	"github.com/sivajik34/aifastcommerce/internal/config"
	"github.com/sivajik34/aifastcommerce/internal/llm"
	"github.com/sivajik34/aifastcommerce/internal/magento"
	"github.com/sivajik34/aifastcommerce/internal/notify"
	"github.com/sivajik34/aifastcommerce/internal/server"
	"github.com/sivajik34/aifastcommerce/internal/store/postgres"
	redisstore "github.com/sivajik34/aifastcommerce/internal/store/redis"
	"github.com/sivajik34/aifastcommerce/internal/tools"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// Initialize structured logging from environment.
	logLevel := os.Getenv("AIFC_LOG_LEVEL")
	level, parseErr := zerolog.ParseLevel(logLevel)
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logFormat := os.Getenv("AIFC_LOG_FORMAT")
	if logFormat == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	ctx := context.Background()

	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Database.MaxConns < 0 || cfg.Database.MaxConns > math.MaxInt32 {
		return fmt.Errorf("database max_conns %d out of int32 range", cfg.Database.MaxConns)
	}

	// Connect to PostgreSQL.
	store, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns)) //nolint:gosec // bounds checked above
	if err != nil {
		return err
	}
	defer store.Close()

	// Connect to Redis.
	pubsub, err := redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return err
	}
	defer pubsub.Close()

	// Create auth service.
	authSvc := auth.NewService(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.AdminUser, cfg.JWT.AdminPassHash)

	// Commerce API client and the tool catalog built on it.
	commerce := magento.NewClient(cfg.Magento)
	toolset := tools.NewSet(commerce)

	// Agent hierarchy and runtime.
	registry := agent.NewRegistry(toolset)
	model := llm.NewOpenAIModel(cfg.LLM)
	runtime := agent.NewGraphRuntime(model, registry, store.Checkpoints(), cfg.LLM.MaxTurns)

	// Operator notification sinks: Redis interrupt feed plus optional Slack.
	var poster notify.SlackPoster
	if cfg.Slack.BotToken != "" {
		poster = slacklib.New(cfg.Slack.BotToken)
		log.Info().Msg("Slack interrupt notifications enabled")
	}
	notifier := notify.New(pubsub, poster, cfg.Slack.ChannelID)

	// Conversation controller and WebSocket hub.
	controller := assistant.NewController(runtime, store.Sessions(), store.Checkpoints(), store.Interrupts(), notifier)
	hub := ws.NewHub(pubsub, controller)

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create HTTP server with all routes wired.
	srv := server.New(ctx, cfg, controller, authSvc, hub)

	// Start server in background goroutine.
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if startErr := srv.Start(ctx); startErr != nil {
			log.Error().Err(startErr).Msg("server error")
		}
	}()

	// Block until shutdown signal.
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}

	log.Info().Msg("stopped")
	return nil
}
