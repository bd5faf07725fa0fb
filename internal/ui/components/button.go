package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathsheet/internal/ui/theme"
)

// Button is a styled button. A disabled button ignores presses and is
// drawn dimmed.
type Button struct {
	Label    string
	Focused  bool
	Disabled bool
}

// NewButton creates a new button.
func NewButton(label string) Button {
	return Button{Label: label}
}

// Pressable reports whether enter on the button should act.
func (b Button) Pressable() bool {
	return !b.Disabled
}

// View renders the button.
func (b Button) View() string {
	label := " " + b.Label + " "
	switch {
	case b.Disabled:
		return theme.ButtonInactive.Foreground(theme.TextDim).Render(label)
	case b.Focused:
		return theme.ButtonActive.Render("▸" + label)
	default:
		return theme.ButtonInactive.Foreground(theme.Text).Render(label)
	}
}

// Width returns the rendered width, for centering.
func (b Button) Width() int {
	return lipgloss.Width(b.View())
}
