package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Completion is delivered once a background request finishes.
type Completion struct {
	Result *Result
	Err    error
}

// Worker runs requests off the caller's goroutine so an interactive caller
// stays responsive while a conversion runs.
type Worker struct {
	gen *Generator
}

// NewWorker returns a Worker backed by gen.
func NewWorker(gen *Generator) *Worker {
	return &Worker{gen: gen}
}

// Start launches req and returns a channel that receives exactly one
// Completion and is then closed.
func (w *Worker) Start(ctx context.Context, req Request) <-chan Completion {
	done := make(chan Completion, 1)
	go func() {
		defer close(done)
		res, err := w.gen.Generate(ctx, req)
		done <- Completion{Result: res, Err: err}
	}()
	return done
}

// GenerateBatch runs reqs with the given converter; see Generator.GenerateBatch.
func GenerateBatch(ctx context.Context, reqs []Request, conv PDFConverter, parallelism int) []Completion {
	return (&Generator{Converter: conv}).GenerateBatch(ctx, reqs, parallelism)
}

// GenerateBatch runs independent requests with at most parallelism in flight.
// Rendering proceeds in parallel while PDF conversions still queue on the
// converter's gate. Completions are returned in request order; one failure
// does not stop the others.
func (g *Generator) GenerateBatch(ctx context.Context, reqs []Request, parallelism int) []Completion {
	if parallelism <= 0 {
		parallelism = 1
	}
	out := make([]Completion, len(reqs))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(parallelism)
	for i := range reqs {
		i := i
		eg.Go(func() error {
			res, err := g.Generate(egCtx, reqs[i])
			out[i] = Completion{Result: res, Err: err}
			return nil
		})
	}
	_ = eg.Wait()
	return out
}
