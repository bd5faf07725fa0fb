package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathsheet/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and an invalid marker.
type TextInput struct {
	Model       textinput.Model
	Label       string
	NumericOnly bool
	invalid     bool
}

// NewTextInput creates a blurred, labelled text input.
func NewTextInput(label, value string, numericOnly bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Prompt = ""
	ti.SetValue(value)
	if charLimit > 0 {
		ti.CharLimit = charLimit
		ti.SetWidth(charLimit + 1)
	}
	return TextInput{
		Model:       ti,
		Label:       label,
		NumericOnly: numericOnly,
	}
}

// Focus focuses the input and returns the cursor blink command.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages. With NumericOnly, typed text other than digits
// is dropped.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.NumericOnly {
		if kmsg, ok := msg.(tea.KeyMsg); ok && !digitsOnly(kmsg.Key().Text) {
			return t, nil
		}
	}

	before := t.Model.Value()
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	if t.Model.Value() != before {
		t.invalid = false
	}
	return t, cmd
}

// View renders "label  [value]".
func (t TextInput) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(18)
	if t.Focused() {
		labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
	}
	view := labelStyle.Render(t.Label) + t.Model.View()
	if t.invalid {
		view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
	t.invalid = false
}

// NumericValue returns the input value as an integer.
func (t TextInput) NumericValue() (int, error) {
	return strconv.Atoi(t.Model.Value())
}

// MarkInvalid flags the field until its value changes.
func (t *TextInput) MarkInvalid() {
	t.invalid = true
}

// Invalid reports whether the field is flagged.
func (t TextInput) Invalid() bool {
	return t.invalid
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
