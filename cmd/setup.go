package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/stockmaster/internal/config"
	"github.com/abhisek/stockmaster/internal/logging"
	"github.com/abhisek/stockmaster/internal/progress"
	"github.com/abhisek/stockmaster/internal/questions"
	"github.com/abhisek/stockmaster/internal/screens"
	"github.com/abhisek/stockmaster/internal/store"
)

// runtime holds everything a command needs once the save slot is open.
type runtime struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *store.Store
	bank    *questions.Bank
	tracker *progress.Tracker
	closers []io.Closer
}

// loadConfig reads the environment and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if paths, _ := cmd.Flags().GetStringSlice("bank"); len(paths) > 0 {
		cfg.BankPaths = paths
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.LogLevel = slog.LevelDebug
	}
	return cfg, nil
}

// loadBank loads the embedded bank plus any configured external files.
func loadBank(cfg *config.Config) (*questions.Bank, error) {
	bank, err := questions.LoadBank(cfg.BankPaths)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	return bank, nil
}

// setup opens the log, the store, the bank and the save slot.
func setup(cmd *cobra.Command) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg}

	logger, closer, err := logging.Open(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; logging disabled\n", err)
		logger = logging.Discard()
	} else {
		rt.closers = append(rt.closers, closer)
	}
	rt.logger = logger.With("command", cmd.Name())

	if rt.bank, err = loadBank(cfg); err != nil {
		rt.Close()
		return nil, err
	}

	if err := store.EnsureDir(cfg.DBPath); err != nil {
		rt.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	rt.store = st
	rt.closers = append(rt.closers, st)

	rt.tracker = progress.NewTracker(st.EventRepo(), st.SnapshotRepo(), rt.logger)
	if _, err := rt.tracker.Load(cmd.Context()); err != nil {
		rt.Close()
		return nil, err
	}

	rt.logger.Debug("runtime ready", "db", cfg.DBPath, "bank_files", len(cfg.BankPaths))
	return rt, nil
}

// ensureProgress creates an unnamed save slot for commands that record
// sessions before the TUI has ever run.
func (rt *runtime) ensureProgress(ctx context.Context) error {
	if rt.tracker.Progress() != nil {
		return nil
	}
	return rt.tracker.Create(ctx, "")
}

func (rt *runtime) env() *screens.Env {
	return &screens.Env{
		Bank:          rt.bank,
		Tracker:       rt.tracker,
		Events:        rt.store.EventRepo(),
		Logger:        rt.logger,
		QuestionCount: rt.cfg.QuestionCount,
		SpeedDuration: rt.cfg.SpeedDuration,
		Seed:          rt.cfg.Seed,
	}
}

// Close releases everything setup opened, newest first.
func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i].Close()
	}
	rt.closers = nil
}
