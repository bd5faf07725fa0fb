package problemgen

import (
	"errors"
	"testing"

	"github.com/abhisek/mathsheet/internal/llm"
)

func TestParseProblems_RoundTrip(t *testing.T) {
	got, err := ParseProblems([]byte(`["a = ", "b = "]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "a = " || got[1] != "b = " {
		t.Errorf("got %q", got)
	}
}

func TestParseProblems_KeepsItemsVerbatim(t *testing.T) {
	got, err := ParseProblems([]byte("\n  [\"  7 + 2 =   \", \"(3 * 4) - 1 = \"]  \n"))
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != "  7 + 2 =   " {
		t.Errorf("item was modified: %q", got[0])
	}
}

func TestParseProblems_EmptyArray(t *testing.T) {
	got, err := ParseProblems([]byte(`[]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %d items", len(got))
	}
}

func TestParseProblems_Rejects(t *testing.T) {
	for _, raw := range []string{`{}`, `[1,2]`, ``, `   `, `not json`, `["ok = ", 3]`, `"5 + 3 = "`, `null`} {
		_, err := ParseProblems([]byte(raw))
		var target *MalformedResponseError
		if !errors.As(err, &target) {
			t.Errorf("%q: expected MalformedResponseError, got %v", raw, err)
			continue
		}
		if string(target.Raw) != raw {
			t.Errorf("%q: Raw = %q", raw, target.Raw)
		}
	}
}

func TestParseProblems_EmptyWrapsSentinel(t *testing.T) {
	_, err := ParseProblems(nil)
	if !errors.Is(err, llm.ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse in chain, got %v", err)
	}
}

func TestParseProblems_SchemaErrorInChain(t *testing.T) {
	_, err := ParseProblems([]byte(`[1,2]`))
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Errorf("expected llm.ErrInvalidResponse in chain, got %v", err)
	}
}

func TestParseProblems_CodeFence(t *testing.T) {
	tests := []string{
		"```json\n[\"1 + 1 = \"]\n```",
		"```\n[\"1 + 1 = \"]\n```",
		"```json [\"1 + 1 = \"] ```",
	}
	for _, raw := range tests {
		got, err := ParseProblems([]byte(raw))
		if err != nil {
			t.Errorf("%q: %v", raw, err)
			continue
		}
		if len(got) != 1 || got[0] != "1 + 1 = " {
			t.Errorf("%q: got %q", raw, got)
		}
	}
}
