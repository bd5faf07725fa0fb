package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/mathsheet/internal/store"
)

// recordingRepo is an in-memory store.EventRepo.
type recordingRepo struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, data)
	return nil
}

func (r *recordingRepo) QueryLLMEvents(context.Context, store.QueryOpts) ([]store.LLMRequestEvent, error) {
	return nil, nil
}

func (r *recordingRepo) GetLLMEvent(context.Context, int) (*store.LLMRequestEvent, error) {
	return nil, store.ErrNotFound
}

func (r *recordingRepo) LLMUsageByPurpose(context.Context) ([]store.LLMUsage, error) {
	return nil, nil
}

func (r *recordingRepo) LLMUsageByModel(context.Context) ([]store.LLMUsage, error) {
	return nil, nil
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Content: []byte(`["3 + 4 = "]`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 4},
	})
	p := WithLogging(mock, "mock", repo, nil)

	ctx := WithPurpose(context.Background(), PurposeWorksheet)
	_, err := p.Generate(ctx, Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "make one problem"}},
		Schema:   &Schema{Name: "problem-list", Definition: map[string]any{"type": "array"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if !e.Success || e.Purpose != "worksheet" || e.Provider != "mock" {
		t.Fatalf("unexpected event %+v", e)
	}
	if e.InputTokens != 12 || e.OutputTokens != 4 {
		t.Fatalf("unexpected token counts %d/%d", e.InputTokens, e.OutputTokens)
	}
	if !strings.Contains(e.RequestBody, "[schema: problem-list]") || !strings.Contains(e.RequestBody, "make one problem") {
		t.Fatalf("request body missing parts:\n%s", e.RequestBody)
	}
	if e.ResponseBody != `["3 + 4 = "]` {
		t.Fatalf("response body = %q", e.ResponseBody)
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	repo := &recordingRepo{}
	core, logs := observer.New(zap.DebugLevel)
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("boom")}})
	p := WithLogging(mock, "mock", repo, zap.New(core))

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(repo.events) != 1 || repo.events[0].Success || repo.events[0].ErrorMessage == "" {
		t.Fatalf("unexpected events %+v", repo.events)
	}
	if logs.FilterMessage("llm request failed").Len() != 1 {
		t.Fatalf("expected a warning log, got %v", logs.All())
	}
}

func TestLoggingProvider_EventFailureDoesNotFailRequest(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	core, logs := observer.New(zap.WarnLevel)
	p := WithLogging(NewMockProvider(MockText(`[]`)), "mock", repo, zap.New(core))

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logs.FilterMessage("failed to record LLM request event").Len() != 1 {
		t.Fatalf("expected event failure to be logged, got %v", logs.All())
	}
}
