package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathsheet/internal/router"
	"github.com/abhisek/mathsheet/internal/screen"
	"github.com/abhisek/mathsheet/internal/ui/layout"
)

type stubScreen struct{ title string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "body of " + s.title }
func (s *stubScreen) Title() string                           { return s.title }
func (s *stubScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "F1", Description: "Stub"}}
}

func esc() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEscape} }

func TestEscQuitsAtRoot(t *testing.T) {
	m := New(&stubScreen{title: "root"}, "mock")

	_, cmd := m.Update(esc())
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected esc at the root to quit")
	}
}

func TestEscPopsPushedScreen(t *testing.T) {
	m := New(&stubScreen{title: "root"}, "mock")
	m.Update(router.PushScreenMsg{Screen: &stubScreen{title: "child"}})

	_, cmd := m.Update(esc())
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected esc on a pushed screen to pop")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := New(&stubScreen{title: "root"}, "mock")
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected ctrl+c to quit")
	}
}

func TestViewFrame(t *testing.T) {
	updated, _ := New(&stubScreen{title: "Worksheet"}, "gemini-2.5-flash").
		Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	content := updated.(AppModel).render()
	for _, want := range []string{"Mathsheet", "Worksheet", "gemini-2.5-flash", "body of Worksheet", "Stub"} {
		if !strings.Contains(content, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestViewTooSmall(t *testing.T) {
	updated, _ := New(&stubScreen{title: "root"}, "").
		Update(tea.WindowSizeMsg{Width: 40, Height: 10})

	if !strings.Contains(updated.(AppModel).render(), "Terminal too small!") {
		t.Error("expected the minimum size message")
	}
}
