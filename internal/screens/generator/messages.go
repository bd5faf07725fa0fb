package generator

import (
	"github.com/abhisek/mathsheet/internal/session"
	"github.com/abhisek/mathsheet/internal/store"
)

// generatedMsg carries the outcome of one generation request.
type generatedMsg struct {
	Ticket   session.Ticket
	Problems []string
	Err      error
}

// savedMsg reports that a generated worksheet was recorded.
type savedMsg struct {
	Worksheet *store.Worksheet
	Err       error
}

// exportedMsg reports the result of a DOCX export.
type exportedMsg struct {
	Path string
	Err  error
}
