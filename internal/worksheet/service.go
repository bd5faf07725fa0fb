// Package worksheet ties generation to persistence. The TUI, the HTTP
// server and the CLI all create worksheets through a Service.
package worksheet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/mathsheet/internal/problemgen"
	"github.com/abhisek/mathsheet/internal/store"
)

// MaxParallel bounds concurrent generation calls for multi-copy runs.
const MaxParallel = 3

// Service generates worksheets and records them.
type Service struct {
	gen    problemgen.Generator
	repo   store.WorksheetRepo
	model  string
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a Service. repo may be nil, in which case nothing is
// persisted.
func NewService(gen problemgen.Generator, repo store.WorksheetRepo, model string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		gen:    gen,
		repo:   repo,
		model:  model,
		logger: logger,
		now:    time.Now,
	}
}

// Model returns the model ID recorded with saved worksheets.
func (s *Service) Model() string {
	return s.model
}

// Generate runs one generation call for cfg without saving.
func (s *Service) Generate(ctx context.Context, cfg problemgen.Config) ([]string, error) {
	start := s.now()
	problems, err := s.gen.Generate(ctx, cfg)
	if err != nil {
		s.logger.Warn("worksheet generation failed",
			zap.Int("count", cfg.Count),
			zap.String("kind", problemgen.KindOf(err).String()),
			zap.Error(err),
		)
		return nil, err
	}
	s.logger.Info("worksheet generated",
		zap.Int("count", len(problems)),
		zap.Strings("operations", cfg.Operations.Keys()),
		zap.Int("num_operations", cfg.NumOperations),
		zap.Duration("elapsed", s.now().Sub(start)),
	)
	return problems, nil
}

// Save records problems generated from cfg under a fresh ID.
func (s *Service) Save(ctx context.Context, cfg problemgen.Config, problems []string) (*store.Worksheet, error) {
	ws := &store.Worksheet{
		ID:        uuid.NewString(),
		CreatedAt: s.now(),
		Params:    ParamsFromConfig(cfg),
		Problems:  append([]string(nil), problems...),
		Model:     s.model,
	}
	if s.repo == nil {
		return ws, nil
	}
	if err := s.repo.SaveWorksheet(ctx, ws); err != nil {
		return ws, fmt.Errorf("save worksheet: %w", err)
	}
	s.logger.Debug("worksheet saved", zap.String("id", ws.ID), zap.Int64("sequence", ws.Sequence))
	return ws, nil
}

// Create generates and saves one worksheet. When saving fails the
// generated worksheet is still returned alongside the error.
func (s *Service) Create(ctx context.Context, cfg problemgen.Config) (*store.Worksheet, error) {
	problems, err := s.Generate(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return s.Save(ctx, cfg, problems)
}

// CreateCopies runs n independent Create calls, at most MaxParallel at a
// time. Results keep their slot order. The first failure cancels the
// remaining calls.
func (s *Service) CreateCopies(ctx context.Context, cfg problemgen.Config, n int) ([]*store.Worksheet, error) {
	if n < 1 {
		n = 1
	}
	out := make([]*store.Worksheet, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxParallel)
	for i := range n {
		g.Go(func() error {
			ws, err := s.Create(gctx, cfg)
			if err != nil {
				return fmt.Errorf("copy %d: %w", i+1, err)
			}
			out[i] = ws
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a saved worksheet.
func (s *Service) Get(ctx context.Context, id string) (*store.Worksheet, error) {
	if s.repo == nil {
		return nil, store.ErrNotFound
	}
	return s.repo.GetWorksheet(ctx, id)
}

// List returns saved worksheets newest first.
func (s *Service) List(ctx context.Context, limit int) ([]store.Worksheet, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.ListWorksheets(ctx, store.QueryOpts{Limit: limit})
}
