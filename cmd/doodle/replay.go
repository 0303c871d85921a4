package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-doodle/internal/config"
	"github.com/vovakirdan/tui-doodle/internal/core"
	"github.com/vovakirdan/tui-doodle/internal/games/doodle"
	"github.com/vovakirdan/tui-doodle/internal/platform/tui"
	"github.com/vovakirdan/tui-doodle/internal/registry"
	"github.com/vovakirdan/tui-doodle/internal/replay"
	"github.com/vovakirdan/tui-doodle/internal/storage"
)

var (
	flagWatch    bool
	flagRealtime bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a recorded round",
	Long: `Re-simulate a recorded round from its seed, config and inputs, and
check that it ends with the recorded score.

With --watch the round is played back in the terminal instead.

Examples:
  doodle replay 12
  doodle replay 12 --realtime --verbose
  doodle replay 12 --watch`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Play the round back in the terminal")
	replayCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace the headless re-simulation at the game's tick rate")
}

func runReplay(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid replay id %q\n", args[0])
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	r, err := store.Replay(id)
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading replay: %v\n", err)
		os.Exit(1)
	}
	if r == nil {
		fmt.Fprintf(os.Stderr, "Error: no replay with id %d\n", id)
		fmt.Fprintln(os.Stderr, "Run 'doodle replays' to list recorded rounds.")
		os.Exit(1)
	}

	if flagWatch {
		if err := watchReplay(r); err != nil {
			fmt.Fprintf(os.Stderr, "Error watching replay: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !verifyReplay(r) {
		os.Exit(1)
	}
}

// prepareReplay restores the recorded config and decodes the inputs.
func prepareReplay(r *storage.Replay) (config.DoodleConfig, []core.InputFrame, error) {
	cfg, err := config.Parse([]byte(r.Config))
	if err != nil {
		return cfg, nil, fmt.Errorf("replay %d config: %w", r.ID, err)
	}
	frames, err := replay.Decode(r.Inputs)
	if err != nil {
		return cfg, nil, fmt.Errorf("replay %d inputs: %w", r.ID, err)
	}
	return cfg, frames, nil
}

// verifyReplay re-simulates a round headless and reports whether it
// reproduced the recorded score.
func verifyReplay(r *storage.Replay) bool {
	cfg, frames, err := prepareReplay(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return false
	}

	logger, closer := openLogger()
	defer closer.Close()
	configureGame(cfg, logger)
	doodle.SetInputProbe(nil)

	game, err := registry.Create(r.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		return false
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rate := 0
	if flagRealtime {
		rate = tickRate(cfg)
	}

	runtime := core.RuntimeConfig{TickRate: tickRate(cfg), Seed: r.Seed}
	lastPhase := ""
	res, err := replay.NewPlayer(game, runtime, frames).Run(ctx, rate, func(tick uint64, step core.StepResult) {
		if step.State.Phase != lastPhase {
			logger.Debug("replay phase", "tick", tick, "phase", step.State.Phase, "score", step.State.Score)
			lastPhase = step.State.Phase
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error re-simulating replay %d: %v\n", r.ID, err)
		return false
	}

	fmt.Printf("Replay %d  seed %d  %d ticks\n", r.ID, r.Seed, res.Ticks)
	fmt.Printf("  recorded score: %d\n", r.FinalScore)
	fmt.Printf("  replayed score: %d (%s)\n", res.State.Score, res.State.Phase)

	if res.State.Score != r.FinalScore || !res.State.GameOver {
		fmt.Println("  MISMATCH")
		logger.Warn("replay mismatch", "id", r.ID, "recorded", r.FinalScore, "replayed", res.State.Score)
		return false
	}
	fmt.Println("  verified")
	return true
}

// watchReplay plays a recorded round back in the terminal.
func watchReplay(r *storage.Replay) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("watching needs a terminal: %w", doodle.ErrNoInputDevice)
	}

	cfg, frames, err := prepareReplay(r)
	if err != nil {
		return err
	}

	logger, closer := openLogger()
	defer closer.Close()
	configureGame(cfg, logger)
	doodle.SetInputProbe(nil)

	game, err := registry.Create(r.GameID)
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: tickRate(cfg),
		Seed:     r.Seed,
	}
	logger.Info("watching replay", "id", r.ID, "seed", r.Seed, "ticks", len(frames))
	return tui.RunReplay(game, frames, runtime, logger)
}
