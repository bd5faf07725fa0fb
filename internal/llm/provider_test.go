package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`["1 + 1 = "]`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockText(`["2 + 2 = "]`),
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `["1 + 1 = "]` {
		t.Fatalf("unexpected content %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `["2 + 2 = "]` {
		t.Fatalf("unexpected content %s", resp2.Content)
	}

	last, ok := mock.LastCall()
	if !ok || last.Messages[0].Content != "second" {
		t.Fatalf("LastCall = %+v, %v", last, ok)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{}},
	)

	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestMockProvider_DelayHonorsContext(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`[]`), Delay: time.Minute})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := mock.Generate(ctx, Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, PurposeWorksheet)
	if p := PurposeFrom(ctx); p != "worksheet" {
		t.Fatalf("expected 'worksheet', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g-test"}}, false},
		{"openrouter with key", Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "or-test"}}, false},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("MATHSHEET_LLM_PROVIDER", "openai")
	t.Setenv("MATHSHEET_OPENAI_API_KEY", "sk-env")
	t.Setenv("MATHSHEET_OPENAI_MODEL", "gpt-4o")
	t.Setenv("MATHSHEET_LLM_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" {
		t.Fatalf("provider = %q", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-env" || cfg.Model() != "gpt-4o" {
		t.Fatalf("openai config = %+v", cfg.OpenAI)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("timeout = %s", cfg.Timeout)
	}
	if !cfg.HasKey() {
		t.Fatal("expected HasKey to be true")
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENAI_API_KEY", "sk-oai")
	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected a provider")
	}
	if cfg.Provider != ProviderOpenAI {
		t.Fatalf("provider = %q, want openai (higher priority than anthropic)", cfg.Provider)
	}
}

func TestConfig_SetModel(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Model() != "gemini-flash" {
		t.Fatalf("default model = %q", cfg.Model())
	}
	cfg.SetModel("gemini-pro")
	if cfg.Gemini.Model != "gemini-pro" {
		t.Fatalf("gemini model = %q", cfg.Gemini.Model)
	}
}
