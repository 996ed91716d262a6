package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DebugPanel shows recent session events
type DebugPanel struct {
	enabled bool     // Whether the panel is visible
	lines   []string // Recent event lines
	buffer  int      // Max lines to keep
	now     func() time.Time
}

// NewDebugPanel creates a new debug panel
func NewDebugPanel(enabled bool) DebugPanel {
	return DebugPanel{
		enabled: enabled,
		buffer:  100,
		now:     time.Now,
	}
}

// IsEnabled returns whether the panel is visible
func (d *DebugPanel) IsEnabled() bool {
	return d.enabled
}

// Toggle flips visibility. Events are recorded either way.
func (d *DebugPanel) Toggle() {
	d.enabled = !d.enabled
}

// AddEvent records an event with a timestamp
func (d *DebugPanel) AddEvent(eventType string, details string) {
	line := d.now().Format("15:04:05.000") + " [" + eventType + "]"
	if details != "" {
		line += " " + details
	}
	d.lines = append(d.lines, line)
	if len(d.lines) > d.buffer {
		d.lines = d.lines[len(d.lines)-d.buffer:]
	}
}

// Lines returns the recorded lines
func (d *DebugPanel) Lines() []string {
	return d.lines
}

// Render renders the panel
func (d *DebugPanel) Render(width, height int) string {
	if !d.enabled {
		return ""
	}

	title := lipgloss.NewStyle().
		Foreground(ColorYellow).
		Bold(true).
		Render("DEBUG")

	contentHeight := height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}

	startIdx := 0
	if len(d.lines) > contentHeight {
		startIdx = len(d.lines) - contentHeight
	}
	maxLen := width - 4
	if maxLen < 10 {
		maxLen = 10
	}

	var lines []string
	for _, line := range d.lines[startIdx:] {
		lines = append(lines, truncate(line, maxLen))
	}
	for len(lines) < contentHeight {
		lines = append(lines, "")
	}

	return lipgloss.NewStyle().
		Width(width-2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorYellow).
		Padding(0, 1).
		Render(title + "\n" + strings.Join(lines, "\n"))
}
