package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mathsheet/internal/export"
	"github.com/abhisek/mathsheet/internal/router"
	"github.com/abhisek/mathsheet/internal/screen"
	"github.com/abhisek/mathsheet/internal/session"
	"github.com/abhisek/mathsheet/internal/store"
	"github.com/abhisek/mathsheet/internal/ui/components"
	"github.com/abhisek/mathsheet/internal/ui/layout"
	"github.com/abhisek/mathsheet/internal/ui/theme"
	"github.com/abhisek/mathsheet/internal/worksheet"
)

// listLimit caps how many saved worksheets the screen loads.
const listLimit = 100

// LoadWorksheetMsg is returned to the previous screen when the user picks
// a worksheet to reuse.
type LoadWorksheetMsg struct {
	Worksheet store.Worksheet
}

type historyLoadedMsg struct {
	Worksheets []store.Worksheet
	Err        error
}

type exportedMsg struct {
	Path string
	Err  error
}

// Deps are the collaborators the history screen needs.
type Deps struct {
	Service   *worksheet.Service
	Locale    session.Locale
	OutputDir string
	Logger    *zap.Logger
}

// HistoryScreen lists saved worksheets and exports them.
type HistoryScreen struct {
	deps       Deps
	text       labels
	worksheets []store.Worksheet
	menu       components.Menu
	loaded     bool
	errMsg     string
	notice     string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(deps Deps) *HistoryScreen {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &HistoryScreen{
		deps: deps,
		text: labelsFor(deps.Locale),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	svc := s.deps.Service
	return func() tea.Msg {
		list, err := svc.List(context.Background(), listLimit)
		return historyLoadedMsg{Worksheets: list, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return s.text.title
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: s.text.hintNavigate},
		{Key: "Enter", Description: s.text.hintExport},
		{Key: "L", Description: s.text.hintLoad},
		{Key: "Esc", Description: s.text.hintBack},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.deps.Logger.Error("load worksheet history", zap.Error(msg.Err))
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.worksheets = msg.Worksheets
		s.menu = components.NewMenu(s.menuItems())
		return s, nil

	case exportedMsg:
		if msg.Err != nil {
			s.deps.Logger.Error("export worksheet", zap.Error(msg.Err))
			s.notice = fmt.Sprintf(s.text.exportFailed, msg.Err)
		} else {
			s.deps.Logger.Info("worksheet exported", zap.String("path", msg.Path))
			s.notice = fmt.Sprintf(s.text.exported, msg.Path)
		}
		return s, nil

	case tea.KeyMsg:
		ws, ok := s.selected()
		switch msg.String() {
		case "enter":
			if !ok {
				return s, nil
			}
			return s, s.exportCmd(ws)
		case "l":
			if !ok {
				return s, nil
			}
			return s, func() tea.Msg {
				return router.PopScreenMsg{Result: LoadWorksheetMsg{Worksheet: ws}}
			}
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *HistoryScreen) selected() (store.Worksheet, bool) {
	if len(s.worksheets) == 0 {
		return store.Worksheet{}, false
	}
	return s.worksheets[s.menu.Selected], true
}

func (s *HistoryScreen) exportCmd(ws store.Worksheet) tea.Cmd {
	dir := s.deps.OutputDir
	opts := export.Options{Locale: string(s.deps.Locale)}
	problems := append([]string(nil), ws.Problems...)
	return func() tea.Msg {
		path, err := export.Save(dir, problems, opts)
		return exportedMsg{Path: path, Err: err}
	}
}

func (s *HistoryScreen) menuItems() []components.MenuItem {
	items := make([]components.MenuItem, len(s.worksheets))
	for i, ws := range s.worksheets {
		items[i] = components.MenuItem{
			Label:  fmt.Sprintf("#%-4d %s", ws.Sequence, ws.CreatedAt.Local().Format("2006-01-02 15:04")),
			Detail: describe(ws.Params, len(ws.Problems), s.text),
		}
	}
	return items
}

func describe(p store.WorksheetParams, n int, text labels) string {
	ops := strings.Join(p.Operations, "/")
	return fmt.Sprintf(text.summary, n, p.Min, p.Max, ops, p.NumOperations)
}

func (s *HistoryScreen) View(width, height int) string {
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	if s.errMsg != "" {
		return center(lipgloss.NewStyle().Foreground(theme.Error),
			fmt.Sprintf("\n\n%s: %s", s.text.errorPrefix, s.errMsg))
	}
	if !s.loaded {
		return center(lipgloss.NewStyle().Foreground(theme.TextDim), "\n\n"+s.text.loading)
	}
	if len(s.worksheets) == 0 {
		return center(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true), "\n\n"+s.text.empty)
	}

	listHeight := max(height/2-1, 3)
	s.menu.Height = listHeight

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.menu.View())
	b.WriteString("\n")

	if ws, ok := s.selected(); ok {
		previewRows := height - listHeight - 4
		b.WriteString(renderPreview(ws.Problems, width, previewRows, s.text))
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Notice.Render(s.notice)))
	}
	return b.String()
}

func renderPreview(problems []string, width, rows int, text labels) string {
	pairs := export.Pair(problems)
	colWidth := max((width-8)/2, 20)

	var b strings.Builder
	for i, row := range pairs {
		if rows > 0 && i >= rows {
			b.WriteString(theme.Hint.Render(fmt.Sprintf("    "+text.more, len(pairs)-i)))
			b.WriteString("\n")
			break
		}
		line := cell(row.Left, colWidth)
		if row.Right != nil {
			line += cell(*row.Right, colWidth)
		}
		b.WriteString("    " + line + "\n")
	}
	return b.String()
}

func cell(c export.Cell, width int) string {
	return lipgloss.NewStyle().Width(width).Render(
		theme.ProblemIndex.Render(fmt.Sprintf("%d.", c.Index)) + " " + theme.Problem.Render(c.Text),
	)
}
