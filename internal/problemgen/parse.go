package problemgen

import (
	"bytes"
	"fmt"

	"github.com/abhisek/mathsheet/internal/llm"
)

// ParseProblems decodes a model response into the ordered problem list.
// The response must be a JSON array of strings; items are returned
// verbatim.
func ParseProblems(raw []byte) ([]string, error) {
	body := stripCodeFence(bytes.TrimSpace(raw))
	if len(body) == 0 {
		return nil, &MalformedResponseError{Raw: raw, Err: llm.ErrEmptyResponse}
	}

	parsed, err := llm.ValidateJSON(ProblemListSchema, body)
	if err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}

	items, ok := parsed.([]any)
	if !ok {
		return nil, &MalformedResponseError{Raw: raw, Err: fmt.Errorf("expected a JSON array, got %T", parsed)}
	}
	problems := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, &MalformedResponseError{Raw: raw, Err: fmt.Errorf("item %d: expected a string, got %T", i, item)}
		}
		problems[i] = s
	}
	return problems, nil
}

// stripCodeFence removes a surrounding ```json ... ``` block.
func stripCodeFence(b []byte) []byte {
	if !bytes.HasPrefix(b, []byte("```")) {
		return b
	}
	b = b[3:]
	if nl := bytes.IndexByte(b, '\n'); nl >= 0 {
		// Drop the language tag line.
		b = b[nl+1:]
	} else {
		b = bytes.TrimPrefix(b, []byte("json"))
	}
	b = bytes.TrimSpace(b)
	b = bytes.TrimSuffix(b, []byte("```"))
	return bytes.TrimSpace(b)
}
