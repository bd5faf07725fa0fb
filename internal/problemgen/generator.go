package problemgen

import "context"

// Generator produces worksheet problems.
type Generator interface {
	// Generate makes a single attempt at a worksheet for cfg and returns
	// the problems in the order the model produced them.
	Generate(ctx context.Context, cfg Config) ([]string, error)
}
