package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shootsync/shootsync-agent/internal/classify"
	"github.com/shootsync/shootsync-agent/internal/config"
	"github.com/shootsync/shootsync-agent/internal/db"
	"github.com/shootsync/shootsync-agent/internal/logging"
	"github.com/shootsync/shootsync-agent/internal/recon"
	"github.com/shootsync/shootsync-agent/internal/schedule"
)

// commandContext lazily opens the agent database and wires the services
// the subcommands share. Commands operate on the same SQLite file the
// daemon uses.
type commandContext struct {
	dataDirFlag *string
	rulesFlag   *string
	verboseFlag *bool

	database  *db.DB
	schedules *schedule.Service
	runs      *recon.Service
}

func newCommandContext(dataDirFlag, rulesFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{dataDirFlag: dataDirFlag, rulesFlag: rulesFlag, verboseFlag: verboseFlag}
}

func (c *commandContext) ensureServices() error {
	if c.database != nil {
		return nil
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	dataDir := cfg.DataDir()
	if *c.dataDirFlag != "" {
		dataDir = *c.dataDirFlag
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	level := "error"
	if *c.verboseFlag {
		level = cfg.LogLevel()
	}
	logger := logging.NewLogger(level)

	database, err := db.New(filepath.Join(dataDir, config.DBFilename), logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	rulesPath := cfg.RulesFile()
	if *c.rulesFlag != "" {
		rulesPath = *c.rulesFlag
	}
	tables := classify.Default()
	if rulesPath != "" {
		tables, err = classify.LoadRules(rulesPath)
		if err != nil {
			database.Close()
			return fmt.Errorf("failed to load rules file: %w", err)
		}
	}

	c.database = database
	c.schedules = schedule.NewService(schedule.NewRepository(database.Conn()), logger)
	c.runs = recon.NewService(recon.NewRepository(database.Conn()), c.schedules, tables, logger)
	return nil
}

func (c *commandContext) close() {
	if c.database != nil {
		c.database.Close()
		c.database = nil
	}
}
