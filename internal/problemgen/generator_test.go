package problemgen

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/mathsheet/internal/llm"
)

func testConfig() Config {
	return Config{Min: 1, Max: 20, Count: 4, Operations: Operations{Add: true}, NumOperations: 1}
}

func TestGenerate_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(`["1 + 2 = ", "3 + 4 = ", "5 + 6 = ", "7 + 8 = "]`))
	gen := New(mock, DefaultOptions())

	got, err := gen.Generate(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 || got[3] != "7 + 8 = " {
		t.Errorf("got %q", got)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestGenerate_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(`[]`))
	opts := DefaultOptions()
	opts.Temperature = 0.5
	gen := New(mock, opts)

	if _, err := gen.Generate(context.Background(), testConfig()); err != nil {
		t.Fatal(err)
	}
	req, ok := mock.LastCall()
	if !ok {
		t.Fatal("no call recorded")
	}
	if req.System != systemPrompt {
		t.Error("system prompt not sent")
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != llm.RoleUser {
		t.Fatalf("expected a single user message, got %+v", req.Messages)
	}
	if !strings.Contains(req.Messages[0].Content, "between 1 and 20 inclusive") {
		t.Error("user message does not carry the constraints")
	}
	if req.Schema != ProblemListSchema {
		t.Error("schema not attached")
	}
	if req.Temperature != 0.5 {
		t.Errorf("temperature = %v", req.Temperature)
	}
	if req.MaxTokens != 1024+32*4 {
		t.Errorf("max tokens = %d", req.MaxTokens)
	}
}

func TestGenerate_TokenBudgetCapped(t *testing.T) {
	gen := New(llm.NewMockProvider(), Options{MaxTokens: 2000})
	if got := gen.tokenBudget(200); got != 2000 {
		t.Errorf("budget = %d, want 2000", got)
	}
	if got := gen.tokenBudget(10); got != 1344 {
		t.Errorf("budget = %d, want 1344", got)
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{RetryAfter: time.Second}})
	gen := New(mock, DefaultOptions())

	_, err := gen.Generate(context.Background(), testConfig())
	var failed *GenerationFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected GenerationFailedError, got %v", err)
	}
	var rl *llm.ErrRateLimit
	if !errors.As(err, &rl) {
		t.Error("provider error should stay in the chain")
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected exactly 1 call, got %d", mock.CallCount())
	}
}

func TestGenerate_EmptyContent(t *testing.T) {
	gen := New(llm.NewMockProvider(llm.MockText("")), DefaultOptions())
	_, err := gen.Generate(context.Background(), testConfig())
	if KindOf(err) != KindGenerationFailed {
		t.Fatalf("expected GenerationFailed, got %v", err)
	}
	if !errors.Is(err, llm.ErrEmptyResponse) {
		t.Error("expected ErrEmptyResponse in chain")
	}
}

func TestGenerate_MaxTokens(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: []byte(`["1 + 2 = ", "3 +`), StopReason: "max_tokens"})
	gen := New(mock, DefaultOptions())
	_, err := gen.Generate(context.Background(), testConfig())
	var trunc *llm.ErrMaxTokensExceeded
	if !errors.As(err, &trunc) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %v", err)
	}
	if KindOf(err) != KindGenerationFailed {
		t.Errorf("kind = %v", KindOf(err))
	}
}

func TestGenerate_Malformed(t *testing.T) {
	for _, raw := range []string{`{}`, `[1,2]`, `"nope"`} {
		gen := New(llm.NewMockProvider(llm.MockText(raw)), DefaultOptions())
		_, err := gen.Generate(context.Background(), testConfig())
		var malformed *MalformedResponseError
		if !errors.As(err, &malformed) {
			t.Errorf("%s: expected MalformedResponseError, got %v", raw, err)
		}
	}
}

func TestGenerate_TrustsArithmeticByDefault(t *testing.T) {
	// 3 - 9 breaks the rules but nothing checks it without validators.
	gen := New(llm.NewMockProvider(llm.MockText(`["3 - 9 = "]`)), DefaultOptions())
	got, err := gen.Generate(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != "3 - 9 = " {
		t.Errorf("got %q", got)
	}
}

func TestGenerate_StrictRejects(t *testing.T) {
	opts := DefaultOptions()
	opts.Validators = StrictValidators()
	gen := New(llm.NewMockProvider(llm.MockText(`["1 + 2 = ", "30 + 1 = "]`)), opts)

	_, err := gen.Generate(context.Background(), testConfig())
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	var cerr *ConstraintError
	if !errors.As(err, &cerr) {
		t.Fatal("expected ConstraintError in chain")
	}
	if cerr.Index != 1 || cerr.Validator != "arithmetic" {
		t.Errorf("got %+v", cerr)
	}
}

func TestGenerate_Timeout(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: []byte(`[]`), Delay: time.Second})
	opts := DefaultOptions()
	opts.Timeout = 10 * time.Millisecond
	gen := New(mock, opts)

	_, err := gen.Generate(context.Background(), testConfig())
	if KindOf(err) != KindGenerationFailed {
		t.Fatalf("expected GenerationFailed, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline in chain, got %v", err)
	}
}

type purposeProvider struct {
	llm.Provider
	purpose string
}

func (p *purposeProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	p.purpose = llm.PurposeFrom(ctx)
	return p.Provider.Generate(ctx, req)
}

func TestGenerate_Purpose(t *testing.T) {
	p := &purposeProvider{Provider: llm.NewMockProvider(llm.MockText(`[]`), llm.MockText(`[]`))}
	gen := New(p, DefaultOptions())

	if _, err := gen.Generate(context.Background(), testConfig()); err != nil {
		t.Fatal(err)
	}
	if p.purpose != llm.PurposeWorksheet {
		t.Errorf("purpose = %q, want %q", p.purpose, llm.PurposeWorksheet)
	}

	ctx := llm.WithPurpose(context.Background(), llm.PurposeBatch)
	if _, err := gen.Generate(ctx, testConfig()); err != nil {
		t.Fatal(err)
	}
	if p.purpose != llm.PurposeBatch {
		t.Errorf("caller purpose overwritten: %q", p.purpose)
	}
}

func TestGenerate_ModelID(t *testing.T) {
	gen := New(llm.NewMockProvider(), DefaultOptions())
	if gen.ModelID() != "mock" {
		t.Errorf("got %q", gen.ModelID())
	}
}
