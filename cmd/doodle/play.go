package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-doodle/internal/config"
	"github.com/vovakirdan/tui-doodle/internal/core"
	"github.com/vovakirdan/tui-doodle/internal/games/doodle"
	"github.com/vovakirdan/tui-doodle/internal/platform/tui"
	"github.com/vovakirdan/tui-doodle/internal/registry"
	"github.com/vovakirdan/tui-doodle/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start the game on the title screen.

Controls:
  Left/A     - Tilt left
  Right/D    - Tilt right
  R/Enter    - Start
  P/Esc      - Pause
  U          - Unpause
  Y          - Play again (after game over)
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

The default layout needs an 80x32 terminal. On a smaller one, set
render.lines_per_cell: 1 in the config file (80x17 is then enough).

Spawn presets:
  sparse - Fewer platforms
  normal - Default probabilities
  dense  - A platform on almost every row

Examples:
  doodle play
  doodle play --spawn sparse
  doodle play --seed 42
  doodle play --config ./my-doodle.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

// sizeWarning describes a terminal too small for the playfield and the
// status footer, or returns "" when it fits.
func sizeWarning(cfg config.DoodleConfig, width, height int) string {
	w, h := cfg.PlayfieldSize()
	h += tui.FooterLines
	if width >= w && height >= h {
		return ""
	}
	msg := fmt.Sprintf("terminal is %dx%d, the playfield needs %dx%d", width, height, w, h)
	if cfg.Render.LinesPerCell > 1 {
		msg += "; set render.lines_per_cell: 1 in the config for a shorter layout"
	}
	return msg
}

// keyboardProbe reports whether stdin is an interactive keyboard.
func keyboardProbe() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("stdin is not a terminal: %w", doodle.ErrNoInputDevice)
	}
	return nil
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, source, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closer := openLogger()
	defer closer.Close()
	logger.Info("starting", "config", source, "seed", flagSeed)

	configureGame(cfg, logger)
	doodle.SetInputProbe(keyboardProbe)

	runtime := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}
	if warning := sizeWarning(cfg, runtime.ScreenW, runtime.ScreenH); warning != "" {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
		logger.Warn("terminal too small", "width", runtime.ScreenW, "height", runtime.ScreenH)
	}
	runtime.TickRate = tickRate(cfg)
	runtime.Seed = flagSeed

	game, err := registry.Create(doodle.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open replay storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		logger.Warn("replays disabled", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, runtime, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("game ended with error", "error", runErr)
		closer.Close()
		if errors.Is(runErr, doodle.ErrNoInputDevice) {
			fmt.Fprintln(os.Stderr, "Error: no keyboard attached; run doodle from an interactive terminal.")
		} else {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		}
		os.Exit(1)
	}
	logger.Info("exited")
}
