package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles, focused panel
)

// Review verdict colors
const (
	ColorApproved Color = "2"   // Green
	ColorFlagged  Color = "214" // Orange
	ColorPending  Color = "245" // Light gray
	ColorRejected Color = "1"   // Red
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
	ColorVersion   Color = "240" // Dark gray
)

// Timeline colors
const (
	ColorMark     Color = "226" // Yellow - in/out marks
	ColorPlayhead Color = "205" // Pink
	ColorRange    Color = "62"  // Blue - marked range
	ColorTrack    Color = "238" // Dark gray
)

// Accent colors
const (
	ColorCapture   Color = "226" // Yellow - key capture prompt
	ColorDial      Color = "141" // Purple
	ColorHelpGroup Color = "141" // Purple
	ColorSelected  Color = "237" // Selected row background
)
