package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathsheet/internal/ui/theme"
)

// Checkbox is a labelled on/off toggle.
type Checkbox struct {
	Label    string
	Checked  bool
	Focused  bool
	Disabled bool
}

// Toggle flips the checkbox unless it is disabled.
func (c *Checkbox) Toggle() {
	if c.Disabled {
		return
	}
	c.Checked = !c.Checked
}

// View renders "[x] label".
func (c Checkbox) View() string {
	box := "[ ]"
	if c.Checked {
		box = "[x]"
	}

	style := lipgloss.NewStyle().Foreground(theme.Text)
	switch {
	case c.Disabled:
		style = style.Foreground(theme.Border)
	case c.Focused:
		style = style.Foreground(theme.Primary).Bold(true)
	case c.Checked:
		style = style.Foreground(theme.Secondary)
	}

	prefix := "  "
	if c.Focused {
		prefix = "▸ "
	}
	return style.Render(prefix + box + " " + c.Label)
}
