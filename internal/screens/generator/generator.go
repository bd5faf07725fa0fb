package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mathsheet/internal/export"
	"github.com/abhisek/mathsheet/internal/problemgen"
	"github.com/abhisek/mathsheet/internal/router"
	"github.com/abhisek/mathsheet/internal/screen"
	"github.com/abhisek/mathsheet/internal/screens/history"
	"github.com/abhisek/mathsheet/internal/session"
	"github.com/abhisek/mathsheet/internal/store"
	"github.com/abhisek/mathsheet/internal/ui/components"
	"github.com/abhisek/mathsheet/internal/ui/layout"
	"github.com/abhisek/mathsheet/internal/ui/theme"
	"github.com/abhisek/mathsheet/internal/worksheet"
)

// formWidth is the column width of the form beside the results.
const formWidth = 44

type field int

const (
	fieldMin field = iota
	fieldMax
	fieldCount
	fieldAdd
	fieldSubtract
	fieldMultiply
	fieldDivide
	fieldNumOps
	fieldParens
	fieldGenerate
	numFields
)

func (f field) isInput() bool { return f <= fieldCount }
func (f field) isOperation() bool {
	return f >= fieldAdd && f <= fieldDivide
}

// Deps are the collaborators the generator screen needs.
type Deps struct {
	Service   *worksheet.Service
	Logger    *zap.Logger
	Locale    session.Locale
	OutputDir string
	Form      problemgen.FormInput
	Policy    session.Policy
}

// GeneratorScreen is the worksheet form with its results preview.
type GeneratorScreen struct {
	deps    Deps
	text    labels
	ctrl    *session.Controller
	inputs  [3]components.TextInput
	ops     [4]components.Checkbox
	numOps  components.Choice
	parens  components.Checkbox
	button  components.Button
	spinner spinner.Model
	focus   field
	notice  string
	saved   *store.Worksheet
}

var _ screen.Screen = (*GeneratorScreen)(nil)
var _ screen.KeyHintProvider = (*GeneratorScreen)(nil)

// New creates the generator screen with the form prefilled from
// deps.Form.
func New(deps Deps) *GeneratorScreen {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	text := labelsFor(deps.Locale)

	s := &GeneratorScreen{
		deps:   deps,
		text:   text,
		ctrl:   session.New(deps.Policy),
		button: components.NewButton(text.generate),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
	s.inputs[0] = components.NewTextInput(text.min, "", true, 6)
	s.inputs[1] = components.NewTextInput(text.max, "", true, 6)
	s.inputs[2] = components.NewTextInput(text.count, "", true, 4)
	opLabels := []string{text.add, text.subtract, text.multiply, text.divide}
	for i := range problemgen.AllOperations {
		s.ops[i] = components.Checkbox{Label: opLabels[i]}
	}
	s.numOps = components.NewChoice(text.numOps, []string{"1", "2"}, 0)
	s.parens = components.Checkbox{Label: text.parens}

	s.setForm(deps.Form)
	return s
}

func (s *GeneratorScreen) Init() tea.Cmd {
	return s.setFocus(fieldMin)
}

func (s *GeneratorScreen) Title() string {
	return s.text.title
}

func (s *GeneratorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: s.text.hintNext},
		{Key: "Space", Description: s.text.hintToggle},
		{Key: "Enter", Description: s.text.hintRun},
		{Key: "Ctrl+S", Description: s.text.hintExport},
		{Key: "Ctrl+R", Description: s.text.hintHistory},
		{Key: "Esc", Description: s.text.hintQuit},
	}
}

// Controller exposes the presentation state.
func (s *GeneratorScreen) Controller() *session.Controller {
	return s.ctrl
}

func (s *GeneratorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		return s, s.handleGenerated(msg)

	case savedMsg:
		if msg.Err != nil {
			s.deps.Logger.Warn("worksheet not saved", zap.Error(msg.Err))
			return s, nil
		}
		s.saved = msg.Worksheet
		return s, nil

	case exportedMsg:
		if msg.Err != nil {
			s.deps.Logger.Error("export worksheet", zap.Error(msg.Err))
			s.notice = fmt.Sprintf(s.text.exportFail, msg.Err)
		} else {
			s.deps.Logger.Info("worksheet exported", zap.String("path", msg.Path))
			s.notice = fmt.Sprintf(s.text.exported, msg.Path)
		}
		return s, nil

	case history.LoadWorksheetMsg:
		cfg, err := worksheet.ConfigFromParams(msg.Worksheet.Params)
		if err != nil {
			s.deps.Logger.Warn("reuse worksheet settings", zap.String("id", msg.Worksheet.ID), zap.Error(err))
			return s, nil
		}
		s.setForm(problemgen.FormFromConfig(cfg))
		s.notice = fmt.Sprintf(s.text.loaded, msg.Worksheet.Sequence)
		return s, s.setFocus(fieldMin)

	case spinner.TickMsg:
		if !s.ctrl.Loading() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}

	if s.focus.isInput() {
		var cmd tea.Cmd
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *GeneratorScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		return s.setFocus(s.step(1))
	case "shift+tab", "up":
		return s.setFocus(s.step(-1))
	case "enter":
		return s.submit()
	case "ctrl+s":
		return s.exportCmd()
	case "ctrl+r":
		return s.openHistory()
	case "space":
		switch {
		case s.focus.isOperation():
			s.ops[s.focus-fieldAdd].Toggle()
			return nil
		case s.focus == fieldParens:
			s.parens.Toggle()
			return nil
		}
	case "left", "right":
		if s.focus == fieldNumOps {
			if msg.String() == "left" {
				s.numOps.Move(-1)
			} else {
				s.numOps.Move(1)
			}
			s.syncParens()
			return nil
		}
	}

	if s.focus.isInput() {
		var cmd tea.Cmd
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
		return cmd
	}
	return nil
}

// step returns the next focusable field in direction dir, skipping the
// parentheses toggle while it is disabled.
func (s *GeneratorScreen) step(dir int) field {
	f := s.focus
	for range numFields {
		f = (f + field(dir) + numFields) % numFields
		if f == fieldParens && s.parens.Disabled {
			continue
		}
		return f
	}
	return s.focus
}

func (s *GeneratorScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
	for i := range s.ops {
		s.ops[i].Focused = f == fieldAdd+field(i)
	}
	s.numOps.Focused = f == fieldNumOps
	s.parens.Focused = f == fieldParens
	s.button.Focused = f == fieldGenerate

	if f.isInput() {
		return s.inputs[f].Focus()
	}
	return nil
}

func (s *GeneratorScreen) syncParens() {
	s.parens.Disabled = s.numOps.Selected != 1
}

func (s *GeneratorScreen) setForm(in problemgen.FormInput) {
	s.inputs[0].SetValue(in.Min)
	s.inputs[1].SetValue(in.Max)
	s.inputs[2].SetValue(in.Count)
	for i, op := range problemgen.AllOperations {
		s.ops[i].Checked = in.Operations.Has(op)
	}
	s.numOps.Selected = 0
	if in.NumOperations == 2 {
		s.numOps.Selected = 1
	}
	s.parens.Checked = in.UseParentheses
	s.syncParens()
}

// form reads the current widget values.
func (s *GeneratorScreen) form() problemgen.FormInput {
	var ops problemgen.Operations
	for i, op := range problemgen.AllOperations {
		ops = ops.Set(op, s.ops[i].Checked)
	}
	return problemgen.FormInput{
		Min:            s.inputs[0].Value(),
		Max:            s.inputs[1].Value(),
		Count:          s.inputs[2].Value(),
		Operations:     ops,
		UseParentheses: s.parens.Checked && !s.parens.Disabled,
		NumOperations:  s.numOps.Selected + 1,
	}
}

func (s *GeneratorScreen) submit() tea.Cmd {
	if s.ctrl.Loading() {
		return nil
	}
	s.notice = ""

	cfg, err := problemgen.ParseConfig(s.form())
	if err != nil {
		s.deps.Logger.Debug("form rejected", zap.String("kind", problemgen.KindOf(err).String()), zap.Error(err))
		s.ctrl.Reject(err)
		s.markInvalid(err)
		return nil
	}

	ticket := s.ctrl.Begin(cfg)
	s.button.Disabled = true
	s.deps.Logger.Info("generating worksheet",
		zap.Uint64("ticket", ticket.Seq),
		zap.Int("min", cfg.Min),
		zap.Int("max", cfg.Max),
		zap.Int("count", cfg.Count),
		zap.Strings("operations", cfg.Operations.Keys()),
		zap.Int("num_operations", cfg.NumOperations),
	)
	return tea.Batch(s.spinner.Tick, s.generateCmd(ticket))
}

func (s *GeneratorScreen) generateCmd(t session.Ticket) tea.Cmd {
	svc := s.deps.Service
	return func() tea.Msg {
		problems, err := svc.Generate(context.Background(), t.Config)
		return generatedMsg{Ticket: t, Problems: problems, Err: err}
	}
}

func (s *GeneratorScreen) handleGenerated(msg generatedMsg) tea.Cmd {
	applied := s.ctrl.Resolve(msg.Ticket, msg.Problems, msg.Err)
	s.button.Disabled = s.ctrl.Loading()
	if !applied {
		s.deps.Logger.Debug("discarded stale result", zap.Uint64("ticket", msg.Ticket.Seq))
		return nil
	}
	if msg.Err != nil {
		return nil
	}

	s.saved = nil
	svc := s.deps.Service
	cfg := msg.Ticket.Config
	problems := s.ctrl.Problems()
	return func() tea.Msg {
		ws, err := svc.Save(context.Background(), cfg, problems)
		return savedMsg{Worksheet: ws, Err: err}
	}
}

func (s *GeneratorScreen) markInvalid(err error) {
	var invalid *problemgen.InvalidNumberError
	var negative *problemgen.NegativeOrZeroError
	var fieldName string
	switch {
	case errors.As(err, &invalid):
		fieldName = invalid.Field
	case errors.As(err, &negative):
		fieldName = negative.Field
	}

	switch {
	case fieldName == problemgen.FieldMin:
		s.inputs[0].MarkInvalid()
	case fieldName == problemgen.FieldMax:
		s.inputs[1].MarkInvalid()
	case fieldName == problemgen.FieldCount:
		s.inputs[2].MarkInvalid()
	case problemgen.KindOf(err) == problemgen.KindRangeOrder:
		s.inputs[0].MarkInvalid()
		s.inputs[1].MarkInvalid()
	case problemgen.KindOf(err) == problemgen.KindCountLimit:
		s.inputs[2].MarkInvalid()
	}
}

func (s *GeneratorScreen) exportCmd() tea.Cmd {
	problems := s.ctrl.Problems()
	if len(problems) == 0 {
		s.notice = s.text.nothingYet
		return nil
	}
	dir := s.deps.OutputDir
	opts := export.Options{Locale: string(s.deps.Locale)}
	return func() tea.Msg {
		path, err := export.Save(dir, problems, opts)
		return exportedMsg{Path: path, Err: err}
	}
}

func (s *GeneratorScreen) openHistory() tea.Cmd {
	h := history.New(history.Deps{
		Service:   s.deps.Service,
		Locale:    s.deps.Locale,
		OutputDir: s.deps.OutputDir,
		Logger:    s.deps.Logger,
	})
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: h}
	}
}

func (s *GeneratorScreen) View(width, height int) string {
	form := lipgloss.NewStyle().Width(formWidth).Render(s.viewForm())
	status := s.viewStatus()
	statusHeight := lipgloss.Height(status)

	top := form
	if problems := s.ctrl.Problems(); len(problems) > 0 {
		results := s.viewResults(problems, width-formWidth-6, height-statusHeight-3)
		top = lipgloss.JoinHorizontal(lipgloss.Top, form, "  ", results)
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(top + "\n\n" + status)
}

func (s *GeneratorScreen) viewForm() string {
	lines := []string{
		s.inputs[0].View(),
		s.inputs[1].View(),
		s.inputs[2].View(),
		"",
	}
	for _, c := range s.ops {
		lines = append(lines, c.View())
	}
	lines = append(lines, "", s.numOps.View(), s.parens.View(), "", s.button.View())
	return strings.Join(lines, "\n")
}

// viewStatus renders the single message slot.
func (s *GeneratorScreen) viewStatus() string {
	switch {
	case s.ctrl.Loading():
		return s.spinner.View() + " " + theme.Hint.Render(s.text.generating)
	case s.ctrl.Phase() == session.PhaseFailed:
		return theme.ErrorBox.Render(s.ctrl.Message(s.deps.Locale))
	case s.notice != "":
		return theme.Notice.Render(s.notice)
	}
	return ""
}

func (s *GeneratorScreen) viewResults(problems []string, width, height int) string {
	colWidth := max(width/2, 16)
	rows := export.Pair(problems)

	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf(s.text.results, len(problems))))
	b.WriteString("\n\n")
	for i, row := range rows {
		if height > 2 && i >= height-2 {
			b.WriteString(theme.Hint.Render(fmt.Sprintf(s.text.more, len(rows)-i)))
			break
		}
		line := renderCell(row.Left, colWidth)
		if row.Right != nil {
			line += renderCell(*row.Right, colWidth)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func renderCell(c export.Cell, width int) string {
	return lipgloss.NewStyle().Width(width).Render(
		theme.ProblemIndex.Render(fmt.Sprintf("%d.", c.Index)) + " " +
			theme.Problem.Render(c.Text) + theme.Hint.Render(export.AnswerBlank),
	)
}
