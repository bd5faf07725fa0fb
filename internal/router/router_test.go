package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathsheet/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

type resultMsg struct{ value string }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(PushScreenMsg{Screen: s2})

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)
	r.Push(&stubScreen{title: "second"})

	r.Update(PopScreenMsg{})

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
	if len(s1.got) != 0 {
		t.Errorf("expected no messages forwarded on a bare pop, got %v", s1.got)
	}
}

func TestPopDeliversResult(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)
	r.Push(&stubScreen{title: "second"})

	r.Update(PopScreenMsg{Result: resultMsg{value: "picked"}})

	if len(s1.got) != 1 {
		t.Fatalf("expected 1 forwarded message, got %d", len(s1.got))
	}
	if got, ok := s1.got[0].(resultMsg); !ok || got.value != "picked" {
		t.Errorf("expected resultMsg{picked}, got %#v", s1.got[0])
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Update(PopScreenMsg{Result: resultMsg{value: "lost"}})

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
	if len(s1.got) != 0 {
		t.Errorf("expected result to be dropped at the bottom, got %v", s1.got)
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	s2 := &stubScreen{title: "second"}
	r := New(s1)
	r.Push(s2)

	r.Update(resultMsg{value: "x"})

	if len(s2.got) != 1 || len(s1.got) != 0 {
		t.Errorf("expected only the active screen to receive the message, got first=%d second=%d", len(s1.got), len(s2.got))
	}
	if r.View(10, 10) != "second" {
		t.Errorf("expected view of active screen, got %q", r.View(10, 10))
	}
}
