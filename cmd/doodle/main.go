// doodle is a vertically scrolling platform jumper for the terminal.
//
// Usage:
//
//	doodle play              - Play a round (the default command)
//	doodle replays           - Browse recorded rounds
//	doodle replay <id>       - Re-simulate a recorded round and verify its score
//	doodle config            - Print the effective configuration
//
// Global flags:
//
//	--config <path>  - Custom config YAML
//	--spawn <preset> - Platform density: sparse, normal, dense
//	--seed <value>   - Set RNG seed for reproducible gameplay
//	--db <path>      - Set replay database path (default: ~/.doodle/replays.db)
//	--log <path>     - Debug log file (default: ~/.doodle/doodle.log)
//	--verbose        - Log simulation debug events
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-doodle/internal/config"
	"github.com/vovakirdan/tui-doodle/internal/games/doodle"
)

var (
	// Global flags
	flagConfig  string
	flagSpawn   string
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "doodle",
	Short: "Doodle - a platform jumper in your terminal",
	Long: `Doodle is a vertically scrolling platform jumper. Tilt left and
right to steer the character onto platforms; every new height scores
points, and dropping to the bottom of the screen ends the round.

Every finished round is recorded and can be replayed exactly.

Available commands:
  play     - Play a round
  replays  - Browse recorded rounds
  replay   - Re-simulate a recorded round
  config   - Print the effective configuration

Examples:
  doodle
  doodle play --spawn dense
  doodle replays
  doodle replay 12 --watch
  doodle config > ~/.doodle/configs/doodle.yaml`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagSpawn, "spawn", "", "Spawn preset: sparse, normal, dense")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.doodle/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.doodle/doodle.log", "Path to log file (empty disables logging)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log simulation debug events")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// openLogger creates the file logger. The terminal belongs to the game,
// so logs never go to stdout or stderr while playing.
func openLogger() (*log.Logger, io.Closer) {
	if flagLogPath == "" {
		return log.New(io.Discard), io.NopCloser(nil)
	}

	path := expandHome(flagLogPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
		return log.New(io.Discard), io.NopCloser(nil)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), io.NopCloser(nil)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "doodle",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, f
}

// loadConfig resolves the config file and applies the spawn preset.
func loadConfig() (config.DoodleConfig, string, error) {
	preset, err := config.ParseSpawnPreset(flagSpawn)
	if err != nil {
		return config.DoodleConfig{}, "", err
	}

	cfg, source, err := config.LoadDoodle(flagConfig)
	if err != nil {
		return cfg, "", err
	}
	if preset != "" {
		config.ApplySpawnPreset(&cfg, preset)
		source += " + " + string(preset)
	}
	return cfg, source, nil
}

// configureGame hands the config and logger to games created through the registry.
func configureGame(cfg config.DoodleConfig, logger *log.Logger) {
	doodle.SetConfig(cfg)
	doodle.SetLogger(logger)
}

// tickRate converts the configured tick period to ticks per second.
func tickRate(cfg config.DoodleConfig) int {
	return max(1000/cfg.Physics.TickMS, 1)
}
