package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathsheet/internal/ui/theme"
)

// MenuItem is one row of a Menu.
type MenuItem struct {
	Label  string
	Detail string
}

// Menu is a vertical, scrolling selection list.
type Menu struct {
	Items    []MenuItem
	Selected int
	Height   int // visible rows; 0 shows everything
	offset   int
}

// NewMenu creates a menu with the first item selected.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update handles up/down (and k/j) navigation. Selection is reported via
// Selected; the caller decides what enter does.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Items)-1 {
			m.Selected++
		}
	case "home", "g":
		m.Selected = 0
	case "end", "G":
		m.Selected = max(len(m.Items)-1, 0)
	}
	m.scroll()
	return m, nil
}

func (m *Menu) scroll() {
	if m.Height <= 0 {
		m.offset = 0
		return
	}
	if m.Selected < m.offset {
		m.offset = m.Selected
	}
	if m.Selected >= m.offset+m.Height {
		m.offset = m.Selected - m.Height + 1
	}
}

// View renders the visible rows.
func (m Menu) View() string {
	end := len(m.Items)
	if m.Height > 0 && m.offset+m.Height < end {
		end = m.offset + m.Height
	}

	var b strings.Builder
	for i := m.offset; i < end; i++ {
		item := m.Items[i]
		detail := ""
		if item.Detail != "" {
			detail = "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(item.Detail)
		}
		if i == m.Selected {
			b.WriteString(theme.Selected.Render("  ▸ "+item.Label) + detail + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("    "+item.Label) + detail + "\n")
		}
	}
	return b.String()
}
