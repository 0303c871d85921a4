package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-doodle/internal/games/doodle"
	"github.com/vovakirdan/tui-doodle/internal/platform/tui"
	"github.com/vovakirdan/tui-doodle/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded rounds",
	Long: `Browse the recorded rounds and pick one to watch.

Without a terminal, or with --plain, the list is printed instead.

Examples:
  doodle replays
  doodle replays --plain --limit 5`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

func init() {
	replaysCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the list instead of opening the browser")
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of replays to print")
}

func runReplays(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		printReplays(store)
		return
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	id, err := tui.RunBrowser(store, doodle.GameID, width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running browser: %v\n", err)
		os.Exit(1)
	}
	if id == 0 {
		return
	}

	r, err := store.Replay(id)
	if err != nil || r == nil {
		fmt.Fprintf(os.Stderr, "Error loading replay %d: %v\n", id, err)
		os.Exit(1)
	}
	if err := watchReplay(r); err != nil {
		fmt.Fprintf(os.Stderr, "Error watching replay: %v\n", err)
		os.Exit(1)
	}
}

func printReplays(store *storage.Store) {
	replays, err := store.RecentReplays(doodle.GameID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
		os.Exit(1)
	}

	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'doodle play' and finish a round to record one!")
		return
	}

	fmt.Printf("  %-6s  %-8s  %-8s  %-20s  %s\n", "ID", "Score", "Ticks", "Seed", "Date")
	fmt.Printf("  %-6s  %-8s  %-8s  %-20s  %s\n", "--", "-----", "-----", "----", "----")
	for _, r := range replays {
		fmt.Printf("  %-6d  %-8d  %-8d  %-20d  %s\n", r.ID, r.FinalScore, r.Ticks, r.Seed, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(doodle.GameID); err == nil {
		fmt.Println()
		fmt.Printf("%d rounds recorded, %d ticks in total, last played %s\n",
			stats.GamesCount, stats.TotalTicks, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}
