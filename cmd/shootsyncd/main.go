package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/shootsync/shootsync-agent/internal/api"
	"github.com/shootsync/shootsync-agent/internal/classify"
	"github.com/shootsync/shootsync-agent/internal/config"
	"github.com/shootsync/shootsync-agent/internal/db"
	"github.com/shootsync/shootsync-agent/internal/logging"
	"github.com/shootsync/shootsync-agent/internal/recon"
	"github.com/shootsync/shootsync-agent/internal/schedule"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}

func run() error {
	startTime := time.Now()

	// Optional .env next to the binary; real env vars win.
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir(), 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel())
	logger.Info("starting shootsync agent", "version", config.Version, "data_dir", cfg.DataDir())

	database, err := db.New(cfg.DBPath(), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := database.MarkInterruptedRuns(); err != nil {
		logger.Warn("failed to mark interrupted runs", "error", err)
	}

	schedRepo := schedule.NewRepository(database.Conn())
	runRepo := recon.NewRepository(database.Conn())

	agentID, err := ensureAgentID(schedRepo)
	if err != nil {
		return fmt.Errorf("failed to ensure agent ID: %w", err)
	}

	authToken, err := ensureAuthToken(schedRepo)
	if err != nil {
		return fmt.Errorf("failed to ensure auth token: %w", err)
	}

	fmt.Println()
	fmt.Println("╔═══════════════════════════════════════════════════════════╗")
	fmt.Println("║                   SHOOTSYNC AGENT v0.1.0                  ║")
	fmt.Println("╠═══════════════════════════════════════════════════════════╣")
	fmt.Printf("║  API URL:    http://127.0.0.1:%-27d ║\n", cfg.Port())
	fmt.Printf("║  Auth Token: %-45s ║\n", authToken)
	fmt.Printf("║  Agent ID:   %-45s ║\n", agentID[:16]+"...")
	fmt.Println("╚═══════════════════════════════════════════════════════════╝")
	fmt.Println()

	tables := classify.Default()
	if cfg.RulesFile() != "" {
		tables, err = classify.LoadRules(cfg.RulesFile())
		if err != nil {
			return fmt.Errorf("failed to load rules file: %w", err)
		}
		logger.Info("classification rules loaded", "path", logging.SanitizePath(cfg.RulesFile()))
	}

	schedSvc := schedule.NewService(schedRepo, logger)
	runSvc := recon.NewService(runRepo, schedSvc, tables, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := recon.NewRunner(runSvc, runRepo, logger)
	runner.SetPollInterval(cfg.PollInterval())
	go runner.Start(ctx)

	apiServer := api.NewServer(api.ServerConfig{
		Port:         cfg.Port(),
		Schedules:    schedSvc,
		ScheduleRepo: schedRepo,
		Runs:         runSvc,
		Runner:       runner,
		Logger:       logger,
		StartTime:    startTime,
		AgentID:      agentID,
	})

	go func() {
		if err := apiServer.Start(); err != nil {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("received shutdown signal", "signal", sig)

	logger.Info("initiating graceful shutdown")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown HTTP server", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

func ensureAgentID(repo schedule.Repository) (string, error) {
	ctx := context.Background()

	existing, err := repo.GetConfig(ctx, "agent_id")
	if err == nil && existing != "" {
		return existing, nil
	}

	idBytes := make([]byte, 16)
	if _, err := rand.Read(idBytes); err != nil {
		return "", err
	}
	agentID := hex.EncodeToString(idBytes)

	if err := repo.SetConfig(ctx, "agent_id", agentID); err != nil {
		return "", err
	}

	return agentID, nil
}

func ensureAuthToken(repo schedule.Repository) (string, error) {
	ctx := context.Background()

	existing, err := repo.GetConfig(ctx, "auth_token")
	if err == nil && existing != "" {
		return existing, nil
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := hex.EncodeToString(tokenBytes)

	if err := repo.SetConfig(ctx, "auth_token", token); err != nil {
		return "", err
	}

	return token, nil
}
