package filter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/plexroulette/roulette"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the chunk size below which evaluation stays sequential
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator evaluates filters over large libraries in chunks
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   500,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate returns the items matching the filter, in input order
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter CompiledFilter, items []roulette.Item) ([]roulette.Item, error) {
	if len(items) == 0 {
		return []roulette.Item{}, nil
	}

	if len(items) < e.batchSize {
		return evaluateSequential(filter, items), nil
	}

	chunkSize := max(len(items)/e.workerCount, e.batchSize)
	chunks := make([][]roulette.Item, (len(items)+chunkSize-1)/chunkSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, len(items))

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chunks[i] = evaluateSequential(filter, items[start:end])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var matches []roulette.Item
	for _, chunk := range chunks {
		matches = append(matches, chunk...)
	}
	if matches == nil {
		matches = []roulette.Item{}
	}

	return matches, nil
}

func evaluateSequential(filter CompiledFilter, items []roulette.Item) []roulette.Item {
	matches := make([]roulette.Item, 0, len(items)/4)
	for _, item := range items {
		if filter.Evaluate(item) {
			matches = append(matches, item)
		}
	}
	return matches
}
