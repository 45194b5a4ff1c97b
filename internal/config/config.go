// Package config reads runtime settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/stockmaster/internal/store"
)

// Environment variables.
const (
	EnvDB            = "STOCKMASTER_DB"
	EnvBank          = "STOCKMASTER_BANK"
	EnvLog           = "STOCKMASTER_LOG"
	EnvLogLevel      = "STOCKMASTER_LOG_LEVEL"
	EnvQuestionCount = "STOCKMASTER_QUESTION_COUNT"
	EnvSpeedSeconds  = "STOCKMASTER_SPEED_SECONDS"
	EnvSeed          = "STOCKMASTER_SEED"
)

const (
	DefaultQuestionCount = 10
	DefaultSpeedSeconds  = 60
)

// QuestionCounts are the session lengths a learner can pick.
var QuestionCounts = []int{5, 10, 15, 20}

type Config struct {
	DBPath        string
	BankPaths     []string
	LogPath       string
	LogLevel      slog.Level
	QuestionCount int
	SpeedDuration time.Duration

	// Seed makes sampling reproducible when set.
	Seed *uint64
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv. Invalid values are errors naming
// the variable.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		QuestionCount: DefaultQuestionCount,
		SpeedDuration: DefaultSpeedSeconds * time.Second,
		LogLevel:      slog.LevelInfo,
	}

	dataDir, err := store.DataDir()
	if err != nil {
		return nil, err
	}

	cfg.DBPath = getenv(EnvDB)
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(dataDir, "stockmaster.db")
	}
	cfg.LogPath = getenv(EnvLog)
	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(dataDir, "stockmaster.log")
	}
	cfg.BankPaths = splitList(getenv(EnvBank))

	if v := getenv(EnvLogLevel); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("%s=%q: %w", EnvLogLevel, v, err)
		}
	}

	if v := getenv(EnvQuestionCount); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || !slices.Contains(QuestionCounts, n) {
			return nil, fmt.Errorf("%s=%q: must be one of %v", EnvQuestionCount, v, QuestionCounts)
		}
		cfg.QuestionCount = n
	}

	if v := getenv(EnvSpeedSeconds); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%s=%q: must be a positive number of seconds", EnvSpeedSeconds, v)
		}
		cfg.SpeedDuration = time.Duration(n) * time.Second
	}

	if v := getenv(EnvSeed); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s=%q: must be a non-negative integer", EnvSeed, v)
		}
		cfg.Seed = &n
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
