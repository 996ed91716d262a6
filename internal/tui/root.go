package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/pawsprefs/paws/internal/model"
	"github.com/pawsprefs/paws/internal/session"
)

const (
	cardWidth = 44

	// exitFrames is how many steps the card takes to slide off screen
	exitFrames = 5

	// exitStep is the horizontal distance covered per exit frame
	exitStep = 6

	// debugHeight is the height of the debug panel when visible
	debugHeight = 8
)

// ViewMode represents the current view
type ViewMode int

const (
	ViewModeDeck ViewMode = iota // Loading, card or summary, depending on phase
	ViewModeHelp                 // Help overlay
)

// Options configures the terminal shell
type Options struct {
	DragThreshold int           // cells a drag must cover to count as a swipe
	ExitDelay     time.Duration // total duration of the exit slide
	Debug         bool          // start with the debug panel open
	Logger        *slog.Logger
}

// Messages
type deckLoadedMsg struct {
	ticket session.Ticket
	deck   []model.CatProfile
	err    error
}

type spinnerTickMsg struct{}

// exitFrameMsg advances the exit slide identified by seq
type exitFrameMsg struct {
	seq int
}

// Spinner animation frames
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var catArt = strings.Join([]string{
	` /\_/\ `,
	`( o.o )`,
	` > ^ < `,
}, "\n")

// Model is the root Bubble Tea model
type Model struct {
	// Terminal dimensions
	width  int
	height int
	ready  bool

	viewMode ViewMode

	ctrl   *session.Controller
	opts   Options
	logger *slog.Logger

	keys    KeyMap
	help    help.Model
	gallery viewport.Model
	debug   DebugPanel

	// Loading spinner
	spinning     bool
	spinnerIndex int

	// Gesture and exit staging. While exitDir is set the card is sliding
	// off screen and further gestures are ignored.
	drag      dragState
	exitDir   model.Decision
	exitFrame int
	exitSeq   int
}

// NewRootModel creates a new root model around ctrl
func NewRootModel(ctrl *session.Controller, opts Options) Model {
	if opts.DragThreshold < 1 {
		opts.DragThreshold = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return Model{
		viewMode: ViewModeDeck,
		ctrl:     ctrl,
		opts:     opts,
		logger:   logger,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		gallery:  viewport.New(cardWidth, 10),
		debug:    NewDebugPanel(opts.Debug),
		spinning: true,
	}
}

// Init deals the first deck. The spinner is already marked running by
// NewRootModel since changes made here do not survive.
func (m Model) Init() tea.Cmd {
	t := m.ctrl.Begin()
	m.logger.Info("session started", "generation", t.Generation, "count", t.Count)
	return tea.Batch(loadDeckCmd(m.ctrl, t), spinnerTickCmd())
}

// startSession begins a new generation and dispatches it. It serves Try
// Again and retry after a failure.
func (m *Model) startSession() tea.Cmd {
	t := m.ctrl.Begin()
	m.resetGesture()
	m.debug.AddEvent("start", fmt.Sprintf("generation=%d count=%d", t.Generation, t.Count))
	m.logger.Info("session started", "generation", t.Generation, "count", t.Count)

	cmds := []tea.Cmd{loadDeckCmd(m.ctrl, t)}
	if !m.spinning {
		m.spinning = true
		cmds = append(cmds, spinnerTickCmd())
	}
	return tea.Batch(cmds...)
}

// loadDeckCmd runs generation off the event loop and reports back with the
// ticket it was started for.
func loadDeckCmd(ctrl *session.Controller, t session.Ticket) tea.Cmd {
	return func() tea.Msg {
		deck, err := ctrl.Generate(context.Background(), t)
		return deckLoadedMsg{ticket: t, deck: deck, err: err}
	}
}

// spinnerTickCmd returns a fast tick command for spinner animation
func spinnerTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

func exitFrameCmd(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return exitFrameMsg{seq: seq}
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width

		galleryHeight := m.height - 14
		if m.debug.IsEnabled() {
			galleryHeight -= debugHeight
		}
		if galleryHeight < 3 {
			galleryHeight = 3
		}
		m.gallery.Width = min(m.width-4, 72)
		m.gallery.Height = galleryHeight
		if m.ctrl.Phase() == model.PhaseFinished {
			m.gallery.SetContent(m.renderGallery())
		}
		return m, nil

	case deckLoadedMsg:
		return m.handleDeckLoaded(msg)

	case spinnerTickMsg:
		if m.ctrl.Phase() != model.PhaseLoading || m.ctrl.Err() != nil {
			m.spinning = false
			return m, nil
		}
		m.spinnerIndex = (m.spinnerIndex + 1) % len(spinnerFrames)
		return m, spinnerTickCmd()

	case exitFrameMsg:
		if msg.seq != m.exitSeq || !m.exitDir.Valid() {
			return m, nil
		}
		m.exitFrame++
		if m.exitFrame < exitFrames {
			return m, exitFrameCmd(m.exitSeq, m.frameDelay())
		}
		m.finishExit()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

func (m Model) handleDeckLoaded(msg deckLoadedMsg) (tea.Model, tea.Cmd) {
	err := m.ctrl.Complete(msg.ticket, msg.deck, msg.err)
	switch {
	case errors.Is(err, session.ErrStaleGeneration):
		m.debug.AddEvent("stale", fmt.Sprintf("dropped generation=%d", msg.ticket.Generation))
		m.logger.Debug("stale deck dropped", "generation", msg.ticket.Generation)
	case err != nil:
		m.debug.AddEvent("error", err.Error())
		m.logger.Warn("deck generation failed", "error", err)
	default:
		m.debug.AddEvent("dealt", fmt.Sprintf("generation=%d cards=%d", msg.ticket.Generation, len(msg.deck)))
		if m.ctrl.Phase() == model.PhaseFinished {
			m.gallery.SetContent(m.renderGallery())
			m.gallery.GotoTop()
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Interrupt), key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.viewMode == ViewModeHelp {
			m.viewMode = ViewModeDeck
		} else {
			m.viewMode = ViewModeHelp
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.viewMode = ViewModeDeck
		return m, nil

	case key.Matches(msg, m.keys.Debug):
		m.debug.Toggle()
		return m, nil
	}

	if m.viewMode == ViewModeHelp {
		return m, nil
	}

	switch m.ctrl.Phase() {
	case model.PhaseActive:
		switch {
		case key.Matches(msg, m.keys.Like):
			return m, m.beginExit(model.DecisionLike)
		case key.Matches(msg, m.keys.Skip):
			return m, m.beginExit(model.DecisionSkip)
		}

	case model.PhaseFinished:
		switch {
		case key.Matches(msg, m.keys.Restart):
			return m, m.startSession()
		case key.Matches(msg, m.keys.Up):
			m.gallery.LineUp(1)
		case key.Matches(msg, m.keys.Down):
			m.gallery.LineDown(1)
		}

	case model.PhaseLoading:
		if m.ctrl.Err() != nil && key.Matches(msg, m.keys.Restart) {
			return m, m.startSession()
		}
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.ctrl.Phase() == model.PhaseFinished {
		var cmd tea.Cmd
		m.gallery, cmd = m.gallery.Update(msg)
		return m, cmd
	}
	if m.ctrl.Phase() != model.PhaseActive || m.exitDir.Valid() || m.viewMode != ViewModeDeck {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.drag.press(msg.X)
		}
	case tea.MouseActionMotion:
		m.drag.move(msg.X)
	case tea.MouseActionRelease:
		if !m.drag.active {
			return m, nil
		}
		dx := m.drag.release(msg.X)
		d := ResolveGesture(dx, m.opts.DragThreshold)
		m.debug.AddEvent("drag", fmt.Sprintf("dx=%d -> %s", dx, d))
		if d.Valid() {
			return m, m.beginExit(d)
		}
	}
	return m, nil
}

// beginExit starts the exit slide for d. The decision reaches the controller
// only when the slide ends.
func (m *Model) beginExit(d model.Decision) tea.Cmd {
	if m.exitDir.Valid() {
		return nil
	}
	m.drag = dragState{}
	m.exitDir = d
	m.exitFrame = 0
	m.exitSeq++

	if m.opts.ExitDelay <= 0 {
		m.finishExit()
		return nil
	}
	return exitFrameCmd(m.exitSeq, m.frameDelay())
}

func (m *Model) finishExit() {
	d := m.exitDir
	m.resetGesture()

	if err := m.ctrl.Apply(d); err != nil {
		m.debug.AddEvent("rejected", fmt.Sprintf("%s: %v", d, err))
		m.logger.Warn("decision rejected", "decision", d, "error", err)
		return
	}
	m.debug.AddEvent("decision", fmt.Sprintf("%s cursor=%d", d, m.ctrl.Cursor()))

	if m.ctrl.Phase() == model.PhaseFinished {
		sum, _ := m.ctrl.Summary()
		m.logger.Info("deck finished", "liked", sum.LikedCount)
		m.gallery.SetContent(m.renderGallery())
		m.gallery.GotoTop()
	}
}

func (m *Model) resetGesture() {
	m.drag = dragState{}
	m.exitDir = model.DecisionNone
	m.exitFrame = 0
}

func (m Model) frameDelay() time.Duration {
	return m.opts.ExitDelay / exitFrames
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.viewMode == ViewModeHelp {
		return m.helpView()
	}

	var body string
	state := m.ctrl.Snapshot()
	switch state.Phase {
	case model.PhaseActive:
		body = m.cardView(state)
	case model.PhaseFinished:
		body = m.summaryView(state)
	default:
		body = m.loadingView(state)
	}

	sections := []string{m.renderHeader(), body, m.renderStatusBar()}
	if m.debug.IsEnabled() {
		sections = append(sections, m.debug.Render(m.width, debugHeight))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title and intro line
func (m Model) renderHeader() string {
	title := TitleStyle.Render("Paws & Preferences 🐾")
	intro := IntroStyle.Render("Swipe through adorable cats and discover your favorites!")
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title+"\n"+intro) + "\n"
}

// loadingView renders the spinner, or the failure and retry hint
func (m Model) loadingView(state session.State) string {
	var content string
	if state.Error != "" {
		content = ErrorStyle.Render("Couldn't deal a deck: "+truncate(state.Error, m.width-8)) +
			"\n\n" + DimStyle.Render("Press r to try again")
	} else {
		content = SpinnerStyle.Render(spinnerFrames[m.spinnerIndex]) + " Loading cats..."
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, "\n"+content+"\n")
}

// cardView renders the current card, shifted by the drag or exit slide
func (m Model) cardView(state session.State) string {
	cat := *state.Current

	style := CardStyle
	offset := m.drag.dx
	badge := m.badgeFor(ResolveGesture(m.drag.dx, m.opts.DragThreshold))
	if m.drag.active {
		style = CardDragStyle
	}
	if m.exitDir.Valid() {
		offset = (m.exitFrame + 1) * exitStep
		if m.exitDir == model.DecisionSkip {
			offset = -offset
		}
		badge = m.badgeFor(m.exitDir)
	}

	gender := "♂ " + string(cat.Gender)
	if cat.Gender == model.GenderFemale {
		gender = "♀ " + string(cat.Gender)
	}

	lines := []string{
		CatArtStyle.Render(catArt),
		"",
		CatNameStyle.Render(cat.Name),
		CatDetailStyle.Render(cat.Color + " · " + gender),
		"",
		ImageRefStyle.Render(truncate(cat.Image, cardWidth-8)),
		"",
		ProgressStyle.Render(fmt.Sprintf("%d / %d", state.Cursor+1, state.DeckSize)),
	}
	if badge != "" {
		lines = append([]string{badge}, lines...)
	}
	card := style.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))

	pad := (m.width-lipgloss.Width(card))/2 + offset
	if pad < 0 {
		pad = 0
	}
	instructions := InstructionStyle.Render("👈 Swipe left to skip | 👉 Swipe right to like!")

	return lipgloss.NewStyle().PaddingLeft(pad).Render(card) + "\n" +
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, instructions)
}

func (m Model) badgeFor(d model.Decision) string {
	switch d {
	case model.DecisionLike:
		return LikeBadgeStyle.Render("LIKE 🐾")
	case model.DecisionSkip:
		return NopeBadgeStyle.Render("NOPE 🙀")
	}
	return ""
}

// summaryView renders the liked gallery and the Try Again button
func (m Model) summaryView(state session.State) string {
	title := LikedTitleStyle.Render(fmt.Sprintf("You liked %d cats! 🐱💖", state.LikedCount))
	gallery := GalleryStyle.Render(m.gallery.View())
	retry := RetryButtonStyle.Render("Try Again (r)")

	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, title, "", gallery, "", retry))
}

// renderGallery lists the liked cats for the gallery viewport
func (m Model) renderGallery() string {
	sum, err := m.ctrl.Summary()
	if err != nil || sum.LikedCount == 0 {
		return DimStyle.Render("No cats caught your eye this time.")
	}

	var b strings.Builder
	for i, cat := range sum.Liked {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s\n", CatNameStyle.Render(fmt.Sprintf("%2d. %s", i+1, cat.Name)),
			CatDetailStyle.Render("· "+cat.Color+" · "+string(cat.Gender)))
		b.WriteString("    " + ImageRefStyle.Render(truncate(cat.Image, m.gallery.Width-6)))
	}
	return b.String()
}

// renderStatusBar renders the context sensitive key hints
func (m Model) renderStatusBar() string {
	keys := m.keys
	phase := m.ctrl.Phase()
	keys.Skip.SetEnabled(phase == model.PhaseActive)
	keys.Like.SetEnabled(phase == model.PhaseActive)
	keys.Up.SetEnabled(phase == model.PhaseFinished)
	keys.Down.SetEnabled(phase == model.PhaseFinished)
	keys.Restart.SetEnabled(phase == model.PhaseFinished || m.ctrl.Err() != nil)

	return "\n" + StatusBarStyle.Render(m.help.View(keys))
}

// helpView renders the help overlay
func (m Model) helpView() string {
	title := HelpTitleStyle.Render("Keyboard Shortcuts")

	var rows []string
	for _, group := range m.keys.FullHelp() {
		for _, b := range group {
			h := b.Help()
			rows = append(rows, HelpKeyStyle.Render(fmt.Sprintf("%-8s", h.Key))+HelpDescStyle.Render(h.Desc))
		}
	}
	rows = append(rows, "", HelpDescStyle.Render("Drag a card with the mouse to swipe it."))

	content := title + "\n\n" + strings.Join(rows, "\n") + "\n\n" + HelpDescStyle.Render("Press ? or Esc to close")

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		HelpStyle.Render(content),
	)
}

// Helper functions

// truncate limits s to max terminal cells, ending in an ellipsis when cut.
func truncate(s string, max int) string {
	if max < 2 {
		return s
	}
	return ansi.Truncate(s, max, "…")
}
