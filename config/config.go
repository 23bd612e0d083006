// Package config reads runtime settings from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	PlayerName string
	LogLevel   slog.Level
	LogFile    string // empty discards logs
	CharDelay  time.Duration
	LineDelay  time.Duration
	Seed       int64 // 0 picks a time-based seed
	WorldDir   string
}

func Load() *Config {
	return &Config{
		PlayerName: getEnv("EMBER_PLAYER_NAME", "Player1"),
		LogLevel:   parseLogLevel(getEnv("EMBER_LOG_LEVEL", "info")),
		LogFile:    getEnv("EMBER_LOG_FILE", ""),
		CharDelay:  parseDuration(getEnv("EMBER_CHAR_DELAY", ""), 18*time.Millisecond),
		LineDelay:  parseDuration(getEnv("EMBER_LINE_DELAY", ""), 250*time.Millisecond),
		Seed:       parseSeed(getEnv("EMBER_SEED", "0")),
		WorldDir:   getEnv("EMBER_WORLD_DIR", ""),
	}
}

// SeedOrNow returns Seed, or a seed derived from the clock when unset.
func (c *Config) SeedOrNow() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// parseDuration accepts Go durations ("40ms") or bare milliseconds ("40").
func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	if ms, err := strconv.Atoi(s); err == nil && ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	if d, err := time.ParseDuration(s); err == nil && d >= 0 {
		return d
	}
	return def
}

func parseSeed(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
