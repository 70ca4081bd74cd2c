package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/logging"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/score"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// applyEnv fills every global flag the user did not set from RUNNER_*.
func applyEnv(cmd *cobra.Command, _ []string) error {
	e, err := config.LoadEnv()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("fps") && e.FPS > 0 {
		flagFPS = e.FPS
	}
	if !flags.Changed("seed") && e.Seed != 0 {
		flagSeed = e.Seed
	}
	if !flags.Changed("db") && e.DB != "" {
		flagDBPath = e.DB
	}
	if !flags.Changed("prefs-app") && e.PrefsApp != "" {
		flagPrefsApp = e.PrefsApp
	}
	if !flags.Changed("log-file") && e.LogFile != "" {
		flagLogFile = e.LogFile
	}
	if !flags.Changed("log-level") && e.LogLevel != "" {
		flagLogLevel = e.LogLevel
	}
	if !flags.Changed("config") && e.Config != "" {
		flagConfig = e.Config
	}
	return nil
}

// newLogger builds the command logger. TUI commands default to discarding
// so the alt screen stays clean; headless ones default to stderr.
func newLogger(defaultPath string) (*log.Logger, io.Closer, error) {
	path := flagLogFile
	if path == "" {
		path = defaultPath
	}
	return logging.New(logging.Options{
		Path:   path,
		Level:  flagLogLevel,
		Prefix: "runner",
	})
}

// loadConfig loads the runner config and applies the difficulty preset.
func loadConfig() (config.RunnerConfig, error) {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return cfg, err
	}

	switch preset := config.DifficultyPreset(flagDifficulty); preset {
	case "":
	case config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
		config.ApplyRunnerPreset(&cfg, preset)
	default:
		return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	return cfg, nil
}

// openBest opens the best-score prefs, falling back to memory.
func openBest(logger *log.Logger) score.BestStore {
	prefs, err := storage.OpenPrefs(flagPrefsApp, "run")
	if err != nil {
		logger.Warn("best score will not persist", "error", err)
		return storage.MemoryPrefs("run")
	}
	return prefs
}

// sceneEnv assembles the collaborators handed to every scene.
func sceneEnv(cfg config.RunnerConfig, logger *log.Logger) registry.Env {
	return registry.Env{
		Config: cfg,
		Best:   openBest(logger),
		Logger: logger,
	}
}

// runtimeConfig sizes the screen from the terminal when there is one.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
