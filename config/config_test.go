package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"EMBER_PLAYER_NAME", "EMBER_LOG_LEVEL", "EMBER_LOG_FILE",
		"EMBER_CHAR_DELAY", "EMBER_LINE_DELAY", "EMBER_SEED", "EMBER_WORLD_DIR",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.PlayerName != "Player1" {
		t.Errorf("PlayerName = %q", cfg.PlayerName)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if cfg.CharDelay != 18*time.Millisecond || cfg.LineDelay != 250*time.Millisecond {
		t.Errorf("delays = %v / %v", cfg.CharDelay, cfg.LineDelay)
	}
	if cfg.Seed != 0 || cfg.LogFile != "" || cfg.WorldDir != "" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("EMBER_PLAYER_NAME", "Watney")
	t.Setenv("EMBER_LOG_LEVEL", "DEBUG")
	t.Setenv("EMBER_LOG_FILE", "/tmp/ember.log")
	t.Setenv("EMBER_CHAR_DELAY", "5ms")
	t.Setenv("EMBER_LINE_DELAY", "100")
	t.Setenv("EMBER_SEED", "42")
	t.Setenv("EMBER_WORLD_DIR", "worlds/alt")

	cfg := Load()
	if cfg.PlayerName != "Watney" || cfg.LogLevel != slog.LevelDebug {
		t.Errorf("name/level = %q / %v", cfg.PlayerName, cfg.LogLevel)
	}
	if cfg.CharDelay != 5*time.Millisecond || cfg.LineDelay != 100*time.Millisecond {
		t.Errorf("delays = %v / %v", cfg.CharDelay, cfg.LineDelay)
	}
	if cfg.Seed != 42 || cfg.SeedOrNow() != 42 {
		t.Errorf("seed = %d", cfg.Seed)
	}
	if cfg.LogFile != "/tmp/ember.log" || cfg.WorldDir != "worlds/alt" {
		t.Errorf("paths = %q / %q", cfg.LogFile, cfg.WorldDir)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"loud":    slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseDuration_Invalid(t *testing.T) {
	def := 7 * time.Millisecond
	for _, in := range []string{"soon", "-5ms", "-3"} {
		if got := parseDuration(in, def); got != def {
			t.Errorf("parseDuration(%q) = %v, want default", in, got)
		}
	}
	if got := parseDuration("0", def); got != 0 {
		t.Errorf("parseDuration(\"0\") = %v, want 0", got)
	}
}

func TestParseSeed_Invalid(t *testing.T) {
	if got := parseSeed("abc"); got != 0 {
		t.Errorf("parseSeed = %d", got)
	}
}

func TestSeedOrNow_TimeBased(t *testing.T) {
	cfg := &Config{}
	if cfg.SeedOrNow() == 0 {
		t.Error("expected a non-zero seed")
	}
}
