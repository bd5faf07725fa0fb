package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathsheet/internal/ui/theme"
)

// Choice is a horizontal single-choice selector moved with ←/→.
type Choice struct {
	Label    string
	Options  []string
	Selected int
	Focused  bool
}

// NewChoice creates a selector with the given option preselected.
func NewChoice(label string, options []string, selected int) Choice {
	if selected < 0 || selected >= len(options) {
		selected = 0
	}
	return Choice{Label: label, Options: options, Selected: selected}
}

// Update handles ←/→ (and h/l) while focused.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if !c.Focused {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "left", "h":
		c.Move(-1)
	case "right", "l":
		c.Move(1)
	}
	return c, nil
}

// Move shifts the selection by delta, stopping at either end.
func (c *Choice) Move(delta int) {
	c.Selected = min(max(c.Selected+delta, 0), len(c.Options)-1)
}

// View renders "label  ‹ a | b ›" with the selection highlighted.
func (c Choice) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(18)
	if c.Focused {
		labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
	}

	parts := make([]string, len(c.Options))
	for i, opt := range c.Options {
		if i == c.Selected {
			parts[i] = theme.Selected.Render("‹" + opt + "›")
		} else {
			parts[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render(" " + opt + " ")
		}
	}
	return labelStyle.Render(c.Label) + strings.Join(parts, " ")
}
