package theme

import "github.com/charmbracelet/lipgloss"

// Header styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	TaglineStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// Panel styles
var (
	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorSecondary).
				Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)
)

// Timeline styles
var (
	MarkStyle = lipgloss.NewStyle().
			Foreground(ColorMark).
			Bold(true)

	PlayheadStyle = lipgloss.NewStyle().
			Foreground(ColorPlayhead).
			Bold(true)

	RangeStyle = lipgloss.NewStyle().
			Foreground(ColorRange)

	TrackStyle = lipgloss.NewStyle().
			Foreground(ColorTrack)

	DialStyle = lipgloss.NewStyle().
			Foreground(ColorDial)
)

// Review verdict styles
var (
	ApprovedStyle = lipgloss.NewStyle().Foreground(ColorApproved)
	FlaggedStyle  = lipgloss.NewStyle().Foreground(ColorFlagged)
	PendingStyle  = lipgloss.NewStyle().Foreground(ColorPending)
	RejectedStyle = lipgloss.NewStyle().Foreground(ColorRejected)
)

// Help screen styles
var (
	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	HelpGroupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHelpGroup).
			MarginTop(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true).
			Width(22)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0)
)

// Keymap editor styles
var (
	CaptureStyle = lipgloss.NewStyle().
			Foreground(ColorCapture).
			Bold(true)

	EditorBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	EditorRowSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight).
				Background(ColorSelected).
				Bold(true)

	EditorRowStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(ColorCapture)

	MatchStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Underline(true)

	OverrideStyle = lipgloss.NewStyle().
			Foreground(ColorMark)
)

// Error style
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorError).
	Bold(true)
