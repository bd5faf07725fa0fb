package problemgen

import (
	"context"

	"github.com/abhisek/mathsheet/internal/llm"
)

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	opts     Options
}

// New creates a new LLMGenerator with the given provider and options.
func New(provider llm.Provider, opts Options) *LLMGenerator {
	return &LLMGenerator{provider: provider, opts: opts}
}

// ModelID returns the model the provider is configured to use.
func (g *LLMGenerator) ModelID() string {
	return g.provider.ModelID()
}

// Generate sends exactly one request. Transport failures, empty and
// truncated responses are reported as *GenerationFailedError; responses
// that are not a list of strings, or that fail a validator, as
// *MalformedResponseError.
func (g *LLMGenerator) Generate(ctx context.Context, cfg Config) ([]string, error) {
	if llm.PurposeFrom(ctx) == "unknown" {
		ctx = llm.WithPurpose(ctx, llm.PurposeWorksheet)
	}
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	prompt := BuildPrompt(cfg, PromptOptions{GradeLevel: g.opts.GradeLevel})
	req := llm.Request{
		System: prompt.System,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt.User},
		},
		Schema:      prompt.Schema,
		MaxTokens:   g.tokenBudget(cfg.Count),
		Temperature: g.opts.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, &GenerationFailedError{Err: err}
	}
	if resp.StopReason == "max_tokens" {
		return nil, &GenerationFailedError{Err: &llm.ErrMaxTokensExceeded{Content: resp.Content}}
	}
	if len(resp.Content) == 0 {
		return nil, &GenerationFailedError{Err: llm.ErrEmptyResponse}
	}

	problems, err := ParseProblems(resp.Content)
	if err != nil {
		return nil, err
	}
	if cerr := runValidators(g.opts.Validators, problems, cfg); cerr != nil {
		return nil, &MalformedResponseError{Raw: resp.Content, Err: cerr}
	}
	return problems, nil
}

// tokenBudget scales the response budget with the problem count, capped
// at Options.MaxTokens. Thinking models spend part of it before answering.
func (g *LLMGenerator) tokenBudget(count int) int {
	budget := 1024 + 32*count
	if g.opts.MaxTokens > 0 && budget > g.opts.MaxTokens {
		budget = g.opts.MaxTokens
	}
	return budget
}
