package worksheet

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathsheet/internal/problemgen"
	"github.com/abhisek/mathsheet/internal/store"
)

// ParamsFromConfig converts a generator config into its stored form.
func ParamsFromConfig(cfg problemgen.Config) store.WorksheetParams {
	return store.WorksheetParams{
		Min:            cfg.Min,
		Max:            cfg.Max,
		Count:          cfg.Count,
		Operations:     cfg.Operations.Keys(),
		NumOperations:  cfg.NumOperations,
		UseParentheses: cfg.UseParentheses,
	}
}

// ConfigFromParams converts stored params back into a generator config.
func ConfigFromParams(p store.WorksheetParams) (problemgen.Config, error) {
	ops, unknown := problemgen.OperationsFromKeys(p.Operations)
	if len(unknown) > 0 {
		return problemgen.Config{}, fmt.Errorf("unknown operations: %s", strings.Join(unknown, ", "))
	}
	numOps := p.NumOperations
	if numOps != 2 {
		numOps = 1
	}
	return problemgen.Config{
		Min:            p.Min,
		Max:            p.Max,
		Count:          p.Count,
		Operations:     ops,
		UseParentheses: p.UseParentheses,
		NumOperations:  numOps,
	}, nil
}
