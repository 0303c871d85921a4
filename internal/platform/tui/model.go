package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-doodle/internal/core"
	"github.com/vovakirdan/tui-doodle/internal/registry"
	"github.com/vovakirdan/tui-doodle/internal/replay"
	"github.com/vovakirdan/tui-doodle/internal/storage"
)

// FooterLines is the space below the playfield for the status and help lines.
const FooterLines = 2

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// Model is the Bubble Tea model for running the game.
// In live mode it records every round and stores it when the round ends;
// in replay mode it feeds a recording instead of the keyboard.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	recorder   *replay.Recorder
	player     *replay.Player // non-nil when watching a replay
	replayDone bool
	saved      bool // Whether the current round has been stored
	err        error
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
// store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-FooterLines, 1)),
		store:      store,
		logger:     logger,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		recorder:   replay.NewRecorder(cfg.Seed),
	}
	return m
}

// NewReplayModel creates a model that plays back recorded frames.
// cfg.Seed must be the recording's seed.
func NewReplayModel(game registry.Game, frames []core.InputFrame, cfg core.RuntimeConfig, logger *log.Logger) Model {
	m := NewModel(game, nil, cfg, logger)
	m.recorder = nil
	m.player = replay.NewPlayer(game, cfg, frames)
	m.gameState = game.State()
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	if m.player == nil {
		m.game.Reset(m.config)
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if m.player != nil {
			return m.handleReplayTick()
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Actions accumulate in the frame
// until the next tick consumes them.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	var frame core.InputFrame
	if m.keys.MapKeyToFrame(msg, &frame) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.player == nil {
		for _, a := range frame.Actions() {
			m.inputFrame.Set(a)
		}
	}
	return m, nil
}

// handleResize processes window resize events.
// The playfield has a fixed size, so the game keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-FooterLines, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	seed := m.currentSeed()

	m.recorder.Record(m.inputFrame)
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if result.Err != nil {
		m.err = result.Err
		m.logger.Error("session aborted", "error", result.Err)
		m.quitting = true
		return m, tea.Quit
	}

	// Store the round once, on the tick it ends
	if m.gameState.GameOver && !m.saved {
		m.saveReplay()
	}

	// The game restarted itself with a fresh seed: start a new recording
	if s := m.currentSeed(); s != seed {
		m.recorder = replay.NewRecorder(s)
		m.saved = false
		m.logger.Debug("recording new round", "seed", s)
	}

	return m, tickCmd(m.config.TickRate)
}

// handleReplayTick feeds the next recorded frame.
func (m Model) handleReplayTick() (tea.Model, tea.Cmd) {
	result, ok := m.player.Step()
	m.gameState = result.State
	if !ok {
		m.replayDone = true
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

func (m Model) currentSeed() int64 {
	if rg, ok := m.game.(registry.Replayable); ok {
		return rg.Seed()
	}
	return m.config.Seed
}

// saveReplay stores the finished round. Failures are logged and play goes on.
func (m *Model) saveReplay() {
	m.saved = true
	score := m.gameState.Score

	rg, ok := m.game.(registry.Replayable)
	if m.store == nil || !ok {
		return
	}

	cfgYAML, err := rg.ConfigSnapshot()
	if err != nil {
		m.logger.Warn("cannot snapshot config", "error", err)
		return
	}

	id, err := m.store.SaveReplay(storage.Replay{
		GameID:     m.game.ID(),
		Seed:       m.recorder.Seed(),
		Config:     string(cfgYAML),
		Inputs:     m.recorder.Encode(),
		Ticks:      m.recorder.Len(),
		FinalScore: score,
	})
	if err != nil {
		m.logger.Warn("cannot save replay", "error", err)
		return
	}
	m.logger.Info("replay saved", "id", id, "score", score, "ticks", m.recorder.Len())
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".doodle", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// statusLine summarizes the session below the playfield.
func (m Model) statusLine() string {
	parts := []string{
		fmt.Sprintf("SCORE %d", m.gameState.Score),
		m.gameState.Phase,
	}
	if m.player != nil {
		parts = append(parts, "REPLAY")
		if m.replayDone {
			parts = append(parts, "end of recording")
		}
	} else {
		parts = append(parts, fmt.Sprintf("seed %d", m.currentSeed()))
	}
	return strings.Join(parts, "  ·  ")
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.statusLine()))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the Bubble Tea program with the given model.
// It returns the game's abort error, if the session could not continue.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	return runModel(NewModel(game, store, cfg, logger))
}

// RunReplay plays recorded frames in the terminal until the user quits.
func RunReplay(game registry.Game, frames []core.InputFrame, cfg core.RuntimeConfig, logger *log.Logger) error {
	return runModel(NewReplayModel(game, frames, cfg, logger))
}

func runModel(model Model) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(Model); ok {
		return m.Err()
	}
	return nil
}
