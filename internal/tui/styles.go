package tui

import "github.com/charmbracelet/lipgloss"

// One Dark Pro color palette
var (
	ColorFgPrimary = lipgloss.Color("#ABB2BF")
	ColorFgMuted   = lipgloss.Color("#636B78")
	ColorFgComment = lipgloss.Color("#5C6370")

	ColorRed     = lipgloss.Color("#E06C75")
	ColorGreen   = lipgloss.Color("#98C379")
	ColorYellow  = lipgloss.Color("#E5C07B")
	ColorBlue    = lipgloss.Color("#61AFEF")
	ColorMagenta = lipgloss.Color("#C678DD")
	ColorCyan    = lipgloss.Color("#56B6C2")
	ColorOrange  = lipgloss.Color("#D19A66")

	ColorBorder = lipgloss.Color("#3F4451")
)

// Component styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	IntroStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			Italic(true)

	// Card styles
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 3).
			Width(cardWidth)

	CardDragStyle = CardStyle.
			BorderForeground(ColorYellow)

	CatArtStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	CatNameStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	CatDetailStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	ImageRefStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment).
			Underline(true)

	ProgressStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	InstructionStyle = lipgloss.NewStyle().
				Foreground(ColorFgMuted)

	// Swipe badges
	LikeBadgeStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Border(lipgloss.ThickBorder()).
			BorderForeground(ColorGreen).
			Bold(true).
			Padding(0, 1)

	NopeBadgeStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Border(lipgloss.ThickBorder()).
			BorderForeground(ColorRed).
			Bold(true).
			Padding(0, 1)

	// Summary styles
	LikedTitleStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	GalleryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	RetryButtonStyle = lipgloss.NewStyle().
				Foreground(ColorCyan).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorCyan).
				Padding(0, 2)

	// Help overlay styles
	HelpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	HelpTitleStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1).
			PaddingRight(1)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)
)
