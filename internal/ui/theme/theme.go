package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette
var (
	Primary   = lipgloss.Color("#6366F1") // indigo
	Secondary = lipgloss.Color("#0EA5E9") // sky
	Accent    = lipgloss.Color("#F59E0B") // amber
	Success   = lipgloss.Color("#10B981") // emerald
	Error     = lipgloss.Color("#EF4444") // red
	Text      = lipgloss.Color("#F1F5F9")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#475569")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	// Disabled is for controls that cannot take focus, like the
	// parentheses toggle with a single operation.
	Disabled = lipgloss.NewStyle().
			Foreground(Border)
)

// Buttons
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Foreground(TextDim).
			Padding(0, 2)
)

// Worksheet results and the status line under the form.
var (
	Problem = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	// ProblemIndex right-aligns "12." so problems line up.
	ProblemIndex = lipgloss.NewStyle().
			Foreground(TextDim).
			Width(5).
			Align(lipgloss.Right)

	ErrorBox = lipgloss.NewStyle().
			Foreground(Error).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Error).
			Padding(0, 1)

	Notice = lipgloss.NewStyle().
		Foreground(Success)
)
