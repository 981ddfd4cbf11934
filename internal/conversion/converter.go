package conversion

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/semaphore"
)

// processGate serializes conversions across every Converter in the process.
// Office suites and Word automation do not tolerate concurrent runs.
var processGate = semaphore.NewWeighted(1)

// Converter runs strategies strictly in order, one at a time.
type Converter struct {
	Strategies []Strategy
	Logger     *slog.Logger
	// Gate bounds concurrent conversions; nil uses the process-wide gate.
	Gate *semaphore.Weighted
}

// New returns a Converter for the given chain.
func New(strategies []Strategy, logger *slog.Logger) *Converter {
	return &Converter{Strategies: strategies, Logger: logger}
}

// NewDefault returns a Converter using DefaultStrategies(opts).
func NewDefault(opts Options, logger *slog.Logger) *Converter {
	return New(DefaultStrategies(opts), logger)
}

func (c *Converter) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c *Converter) gate() *semaphore.Weighted {
	if c.Gate == nil {
		return processGate
	}
	return c.Gate
}

// Convert produces the PDF next to docxPath. Success requires both a nil
// strategy error and the PDF existing afterwards. When every strategy fails
// the returned error is a *ConversionError listing each attempt. A cancelled
// ctx stops the chain and its error is returned as is.
func (c *Converter) Convert(ctx context.Context, docxPath string) (*Result, error) {
	if _, err := os.Stat(docxPath); err != nil {
		return nil, fmt.Errorf("docx not found: %w", err)
	}

	gate := c.gate()
	if err := gate.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer gate.Release(1)

	pdfPath := PDFPath(docxPath)
	log := c.logger().With("path", docxPath)

	attempts := make([]Attempt, 0, len(c.Strategies))
	for _, s := range c.Strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if cond, ok := s.(Conditional); ok && !cond.ShouldAttempt(attempts) {
			log.Debug("conversion strategy skipped", "strategy", s.Name())
			attempts = append(attempts, Attempt{Strategy: s.Name(), Skipped: true})
			continue
		}

		removeStale(pdfPath)
		start := time.Now()
		err := s.Convert(ctx, docxPath, pdfPath)
		if err == nil {
			if _, statErr := os.Stat(pdfPath); statErr != nil {
				err = fmt.Errorf("%w: %s", ErrOutputMissing, pdfPath)
			}
		}
		attempt := Attempt{Strategy: s.Name(), Err: err, Duration: time.Since(start)}
		attempts = append(attempts, attempt)

		if err == nil {
			log.Info("PDF conversion succeeded", "strategy", s.Name(), "duration", attempt.Duration)
			return &Result{PDFPath: pdfPath, Strategy: s.Name(), Attempts: attempts}, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			removeStale(pdfPath)
			return nil, ctxErr
		}
		log.Warn("PDF conversion strategy failed", "strategy", s.Name(), "error", err, "duration", attempt.Duration)
	}

	removeStale(pdfPath)
	return nil, &ConversionError{Attempts: attempts}
}

// removeStale deletes a PDF left over from an earlier or failed attempt so
// that only a fresh file can count as success.
func removeStale(pdfPath string) {
	_ = os.Remove(pdfPath)
}
