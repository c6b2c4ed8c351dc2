package tui

import "github.com/charmbracelet/lipgloss"

// Color palette matching the fatih/color output of the CLI side
var (
	ColorGreen  = lipgloss.AdaptiveColor{Light: "#00AF00", Dark: "#00D700"}
	ColorCyan   = lipgloss.AdaptiveColor{Light: "#00AFAF", Dark: "#00D7D7"}
	ColorWhite  = lipgloss.AdaptiveColor{Light: "#262626", Dark: "#FFFFFF"}
	ColorGray   = lipgloss.AdaptiveColor{Light: "#767676", Dark: "#808080"}
	ColorYellow = lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"}
)

var (
	// StyleNormal is the base style for regular text
	StyleNormal = lipgloss.NewStyle().Foreground(ColorWhite)

	// StyleHighlight is for the selected change
	StyleHighlight = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	// StyleLocal marks the local side of a field comparison
	StyleLocal = lipgloss.NewStyle().Foreground(ColorGreen)

	// StyleRemote marks the remote side of a field comparison
	StyleRemote = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleHelp is for help text and hints
	StyleHelp = lipgloss.NewStyle().Foreground(ColorGray)

	// StyleHeader is for section headers
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)
)
