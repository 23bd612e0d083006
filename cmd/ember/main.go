// Ember is a relative-direction text adventure set aboard a crashed survey
// ship on Mars.
// Usage: ember [--version] [--plain] [--fast] [--trace] [--script <file>] [--world <dir>]
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/nathoo/ember/cli"
	"github.com/nathoo/ember/config"
	"github.com/nathoo/ember/engine"
	"github.com/nathoo/ember/engine/state"
	"github.com/nathoo/ember/loader"
	"github.com/nathoo/ember/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: ember [--version] [--plain] [--fast] [--trace] [--script <file>] [--world <dir>]"

func main() {
	cfg := config.Load()
	plain := false
	fast := false
	trace := false
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("ember %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--fast":
			fast = true
		case "--trace":
			trace = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		case "--world":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--world requires a directory\n")
				os.Exit(1)
			}
			i++
			cfg.WorldDir = args[i]
		default:
			fmt.Fprintf(os.Stderr, "unknown argument %q\n%s\n", args[i], usage)
			os.Exit(1)
		}
	}
	if fast || scriptFile != "" {
		cfg.CharDelay = 0
		cfg.LineDelay = 0
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	w, err := loadWorld(cfg, log)
	if err != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error loading world: %v\n", err)
		os.Exit(1)
	}

	eng := engine.New(w, cfg.PlayerName)
	seed := cfg.SeedOrNow()
	eng.Rand = engine.NewRNG(seed)
	eng.Log = log
	log.Info("session started", "player", cfg.PlayerName, "seed", seed, "version", version)

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			closeLog()
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := newCLI(eng, cfg, trace)
		c.In = f
		c.EchoInput = true
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		newCLI(eng, cfg, trace).Run()
		return
	}

	opts := tui.Options{CharDelay: cfg.CharDelay, LineDelay: cfg.LineDelay, Trace: trace}
	if err := tui.Run(eng, opts); err != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCLI(eng *engine.Engine, cfg *config.Config, trace bool) *cli.CLI {
	c := cli.New(eng)
	c.CharDelay = cfg.CharDelay
	c.LineDelay = cfg.LineDelay
	c.Trace = trace
	return c
}

// newLogger writes text logs to cfg.LogFile, or discards them when unset so
// the terminal stays clean. Every record carries the session id.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	var out io.Writer = io.Discard
	closeFn := func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}
	h := slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.LogLevel})
	return slog.New(h).With("session", uuid.NewString()), closeFn, nil
}

func loadWorld(cfg *config.Config, log *slog.Logger) (*state.World, error) {
	if cfg.WorldDir != "" {
		return loader.Load(cfg.WorldDir, log)
	}
	return loader.Default(log)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
