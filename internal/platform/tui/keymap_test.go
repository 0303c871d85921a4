package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-doodle/internal/core"
)

func TestKeyMapMapKey(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"a", runes("a"), core.ActionLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"d", runes("d"), core.ActionRight},
		{"r", runes("r"), core.ActionStart},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStart},
		{"p", runes("p"), core.ActionPause},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"u", runes("u"), core.ActionResume},
		{"y", runes("y"), core.ActionRestart},
		{"q", runes("q"), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runes("z"), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.MapKey(tt.msg); got != tt.want {
				t.Errorf("MapKey(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestKeyMapMapKeyToFrame(t *testing.T) {
	keys := DefaultKeyMap()
	frame := core.NewInputFrame()

	if keys.MapKeyToFrame(runes("a"), &frame) {
		t.Error("a reported as quit")
	}
	if keys.MapKeyToFrame(runes("p"), &frame) {
		t.Error("p reported as quit")
	}
	if frame.String() != "Left+Pause" {
		t.Errorf("frame = %s, want Left+Pause", frame)
	}
	if !keys.MapKeyToFrame(runes("q"), &frame) {
		t.Error("q not reported as quit")
	}
}

func TestRenderScreen(t *testing.T) {
	scr := core.NewScreen(6, 2)
	scr.DrawText(0, 0, "██", core.ColorPlatform)
	scr.DrawText(2, 0, "ok", core.ColorText)

	out := RenderScreen(scr)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() produced %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "██") || !strings.Contains(lines[0], "ok") {
		t.Errorf("first line = %q", lines[0])
	}
}
