package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/mathsheet/internal/llm"
	"github.com/abhisek/mathsheet/internal/problemgen"
	"github.com/abhisek/mathsheet/internal/store"
	"github.com/abhisek/mathsheet/internal/worksheet"
)

// newService wires provider, generator and repository from settings.
func newService(ctx context.Context, st *store.Store, opts problemgen.Options) (*worksheet.Service, error) {
	llmCfg := settings.LLMConfig()
	if err := llmCfg.Validate(); err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}

	var events store.EventRepo
	var worksheets store.WorksheetRepo
	if st != nil {
		events = st.EventRepo()
		worksheets = st.WorksheetRepo()
	}

	provider, err := llm.NewProvider(ctx, llmCfg, events, logger)
	if err != nil {
		return nil, err
	}
	gen := problemgen.New(provider, opts)
	return worksheet.NewService(gen, worksheets, gen.ModelID(), logger), nil
}
