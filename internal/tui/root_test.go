package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pawsprefs/paws/internal/model"
	"github.com/pawsprefs/paws/internal/session"
)

func testDeck() []model.CatProfile {
	return []model.CatProfile{
		{Image: "https://cataas.com/cat?1", Name: "Whiskers", Color: "Orange", Gender: model.GenderMale},
		{Image: "https://cataas.com/cat?2", Name: "Luna", Color: "Black", Gender: model.GenderFemale},
		{Image: "https://cataas.com/cat?3", Name: "Mochi", Color: "Calico", Gender: model.GenderFemale},
	}
}

// newTestModel builds a sized model whose first generation is still
// outstanding.
func newTestModel(t *testing.T, count int, opts Options) (Model, *session.Controller) {
	t.Helper()
	deck := testDeck()
	gen := session.GeneratorFunc(func(ctx context.Context, n int) ([]model.CatProfile, error) {
		return deck[:n], nil
	})
	ctrl := session.New(gen, count, nil)
	m := NewRootModel(ctrl, opts)
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init() returned nil command")
	}
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, ctrl
}

// dealt delivers the outstanding generation.
func dealt(t *testing.T, m Model, ctrl *session.Controller) Model {
	t.Helper()
	tk := currentTicket(ctrl)
	deck, err := ctrl.Generate(context.Background(), tk)
	return update(t, m, deckLoadedMsg{ticket: tk, deck: deck, err: err})
}

func currentTicket(ctrl *session.Controller) session.Ticket {
	return session.Ticket{Generation: ctrl.Snapshot().Generation, Count: ctrl.Count()}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyboardSwipesToSummary(t *testing.T) {
	m, ctrl := newTestModel(t, 3, Options{DragThreshold: 8})
	m = dealt(t, m, ctrl)

	if ctrl.Phase() != model.PhaseActive {
		t.Fatalf("phase = %v, want active", ctrl.Phase())
	}
	view := m.View()
	if !strings.Contains(view, "Whiskers") || !strings.Contains(view, "1 / 3") {
		t.Errorf("card view missing name or progress:\n%s", view)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, runeKey("h"))
	m = update(t, m, runeKey("l"))

	if ctrl.Phase() != model.PhaseFinished {
		t.Fatalf("phase = %v, want finished", ctrl.Phase())
	}
	sum, err := ctrl.Summary()
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if sum.LikedCount != 2 || sum.Liked[0].Name != "Whiskers" || sum.Liked[1].Name != "Mochi" {
		t.Errorf("summary = %+v, want Whiskers and Mochi", sum)
	}

	view = m.View()
	if !strings.Contains(view, "You liked 2 cats!") {
		t.Errorf("summary view missing liked count:\n%s", view)
	}
	if !strings.Contains(view, "Mochi") {
		t.Errorf("gallery missing liked cat:\n%s", view)
	}
	if !strings.Contains(view, "Try Again") {
		t.Errorf("summary view missing retry button:\n%s", view)
	}
}

func TestExitSlideAppliesOnLastFrame(t *testing.T) {
	m, ctrl := newTestModel(t, 3, Options{DragThreshold: 8, ExitDelay: 50 * time.Millisecond})
	m = dealt(t, m, ctrl)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected a frame command after swipe")
	}
	if ctrl.Cursor() != 0 {
		t.Fatalf("cursor = %d before slide ended, want 0", ctrl.Cursor())
	}
	if !strings.Contains(m.View(), "LIKE") {
		t.Error("sliding card should carry the LIKE badge")
	}

	// A second swipe while sliding is ignored.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})

	// Frames from an older slide are ignored.
	m = update(t, m, exitFrameMsg{seq: 99})

	for i := 0; i < exitFrames-1; i++ {
		m = update(t, m, exitFrameMsg{seq: 1})
	}
	if ctrl.Cursor() != 0 {
		t.Fatalf("cursor = %d before last frame, want 0", ctrl.Cursor())
	}
	m = update(t, m, exitFrameMsg{seq: 1})

	if ctrl.Cursor() != 1 {
		t.Fatalf("cursor = %d after last frame, want 1", ctrl.Cursor())
	}
	if got := ctrl.Snapshot().LikedCount; got != 1 {
		t.Errorf("liked = %d, want 1", got)
	}
	if strings.Contains(m.View(), "LIKE") {
		t.Error("next card should not carry a badge")
	}
}

func TestMouseDrag(t *testing.T) {
	m, ctrl := newTestModel(t, 3, Options{DragThreshold: 8})
	m = dealt(t, m, ctrl)

	drag := func(m Model, from, to int) Model {
		m = update(t, m, tea.MouseMsg{X: from, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		m = update(t, m, tea.MouseMsg{X: (from + to) / 2, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
		return update(t, m, tea.MouseMsg{X: to, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	}

	m = drag(m, 40, 45)
	if ctrl.Cursor() != 0 {
		t.Fatalf("short drag moved cursor to %d", ctrl.Cursor())
	}

	m = drag(m, 40, 30)
	if ctrl.Cursor() != 1 || ctrl.Snapshot().LikedCount != 0 {
		t.Fatalf("left drag: cursor=%d liked=%d, want 1 and 0", ctrl.Cursor(), ctrl.Snapshot().LikedCount)
	}

	m = drag(m, 40, 52)
	if ctrl.Cursor() != 2 || ctrl.Snapshot().LikedCount != 1 {
		t.Fatalf("right drag: cursor=%d liked=%d, want 2 and 1", ctrl.Cursor(), ctrl.Snapshot().LikedCount)
	}

	// Release without a press does nothing.
	m = update(t, m, tea.MouseMsg{X: 90, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if ctrl.Cursor() != 2 {
		t.Errorf("stray release moved cursor to %d", ctrl.Cursor())
	}
}

func TestDragShowsBadgePastThreshold(t *testing.T) {
	m, ctrl := newTestModel(t, 3, Options{DragThreshold: 8})
	m = dealt(t, m, ctrl)

	m = update(t, m, tea.MouseMsg{X: 40, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 43, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if v := m.View(); strings.Contains(v, "NOPE") || strings.Contains(v, "LIKE") {
		t.Error("badge shown before threshold")
	}
	m = update(t, m, tea.MouseMsg{X: 30, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if !strings.Contains(m.View(), "NOPE") {
		t.Error("NOPE badge missing past threshold")
	}
}

func TestLoadingFailureAndRetry(t *testing.T) {
	m, ctrl := newTestModel(t, 3, Options{})

	first := currentTicket(ctrl)
	m = update(t, m, deckLoadedMsg{ticket: first, err: errors.New("cat service down")})

	if ctrl.Phase() != model.PhaseLoading || ctrl.Err() == nil {
		t.Fatalf("phase=%v err=%v, want loading with error", ctrl.Phase(), ctrl.Err())
	}
	view := m.View()
	if !strings.Contains(view, "cat service down") || !strings.Contains(view, "Press r to try again") {
		t.Errorf("error view missing message or hint:\n%s", view)
	}

	m = update(t, m, runeKey("r"))
	second := currentTicket(ctrl)
	if second.Generation == first.Generation {
		t.Fatal("retry did not start a new generation")
	}
	if ctrl.Err() != nil {
		t.Errorf("error not cleared on retry: %v", ctrl.Err())
	}

	// A late result for the failed generation is dropped.
	m = update(t, m, deckLoadedMsg{ticket: first, deck: testDeck()})
	if ctrl.Phase() != model.PhaseLoading {
		t.Fatalf("stale result changed phase to %v", ctrl.Phase())
	}

	m = dealt(t, m, ctrl)
	if ctrl.Phase() != model.PhaseActive {
		t.Fatalf("phase = %v, want active", ctrl.Phase())
	}
	if !strings.Contains(m.View(), "Whiskers") {
		t.Error("card not shown after retry")
	}
}

func TestRestartFromSummary(t *testing.T) {
	m, ctrl := newTestModel(t, 2, Options{})
	m = dealt(t, m, ctrl)
	m = update(t, m, runeKey("l"))
	m = update(t, m, runeKey("l"))
	if ctrl.Phase() != model.PhaseFinished {
		t.Fatalf("phase = %v, want finished", ctrl.Phase())
	}
	before := ctrl.Snapshot().Generation

	m = update(t, m, runeKey("r"))
	state := ctrl.Snapshot()
	if state.Phase != model.PhaseLoading || state.Generation != before+1 || state.LikedCount != 0 {
		t.Fatalf("after restart: %+v", state)
	}
	if !strings.Contains(m.View(), "Loading cats") {
		t.Error("loading view not shown after restart")
	}

	m = dealt(t, m, ctrl)
	if ctrl.Phase() != model.PhaseActive || ctrl.Cursor() != 0 {
		t.Fatalf("phase=%v cursor=%d, want active at 0", ctrl.Phase(), ctrl.Cursor())
	}
}

func TestEmptyDeckGoesStraightToSummary(t *testing.T) {
	m, ctrl := newTestModel(t, 0, Options{})
	m = dealt(t, m, ctrl)

	if ctrl.Phase() != model.PhaseFinished {
		t.Fatalf("phase = %v, want finished", ctrl.Phase())
	}
	if !strings.Contains(m.View(), "You liked 0 cats!") {
		t.Errorf("summary view missing zero count:\n%s", m.View())
	}
}

func TestSwipesIgnoredOutsideActive(t *testing.T) {
	m, ctrl := newTestModel(t, 3, Options{})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, tea.MouseMsg{X: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 60, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if ctrl.Phase() != model.PhaseLoading || ctrl.Cursor() != 0 {
		t.Fatalf("phase=%v cursor=%d, want loading at 0", ctrl.Phase(), ctrl.Cursor())
	}

	// r does nothing while a load is still in flight.
	gen := ctrl.Snapshot().Generation
	m = update(t, m, runeKey("r"))
	if ctrl.Snapshot().Generation != gen {
		t.Error("restart accepted during a healthy load")
	}
	_ = m
}

func TestHelpOverlay(t *testing.T) {
	m, ctrl := newTestModel(t, 3, Options{})
	m = dealt(t, m, ctrl)

	m = update(t, m, runeKey("?"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("help overlay not shown")
	}

	m = update(t, m, runeKey("l"))
	if ctrl.Cursor() != 0 {
		t.Error("swipe applied behind the help overlay")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("esc did not close help")
	}
}

func TestDebugToggle(t *testing.T) {
	m, ctrl := newTestModel(t, 3, Options{})
	m = dealt(t, m, ctrl)

	if strings.Contains(m.View(), "DEBUG") {
		t.Fatal("debug panel shown by default")
	}
	m = update(t, m, runeKey("d"))
	view := m.View()
	if !strings.Contains(view, "DEBUG") || !strings.Contains(view, "[dealt]") {
		t.Errorf("debug panel missing or empty:\n%s", view)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, 3, Options{})

	_, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
