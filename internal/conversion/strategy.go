package conversion

import (
	"context"
	"path/filepath"
	"strings"
	"time"
)

// Strategy is one way of producing a PDF from a .docx file. Convert must
// write the PDF to pdfPath; the converter verifies the file itself.
type Strategy interface {
	Name() string
	Convert(ctx context.Context, docxPath, pdfPath string) error
}

// Conditional is implemented by strategies that only make sense after a
// particular earlier outcome.
type Conditional interface {
	ShouldAttempt(history []Attempt) bool
}

// Attempt records one strategy's turn.
type Attempt struct {
	Strategy string
	Err      error
	Skipped  bool
	Duration time.Duration
}

// Succeeded reports whether this attempt produced the PDF.
func (a Attempt) Succeeded() bool {
	return !a.Skipped && a.Err == nil
}

// Outcome is a short human-readable description of the attempt.
func (a Attempt) Outcome() string {
	switch {
	case a.Skipped:
		return "skipped"
	case a.Err != nil:
		return "failed: " + a.Err.Error()
	default:
		return "ok"
	}
}

// Result describes a successful conversion.
type Result struct {
	PDFPath  string
	Strategy string
	Attempts []Attempt
}

// PDFPath returns the PDF path that sits next to docxPath with the same stem.
func PDFPath(docxPath string) string {
	return strings.TrimSuffix(docxPath, filepath.Ext(docxPath)) + ".pdf"
}

// Default per-strategy time bounds.
const (
	DefaultTimeout        = 60 * time.Second
	DefaultBrowserTimeout = 90 * time.Second
)

// Options selects and tunes the default strategy chain.
type Options struct {
	SofficeCommand string
	SofficePaths   []string
	Timeout        time.Duration
	BrowserTimeout time.Duration
	UseBrowser     bool
	ChromePath     string
	DisableLibrary bool
}

// DefaultStrategies returns the chain in order: word, soffice, soffice-paths,
// browser (when enabled), library (unless disabled).
func DefaultStrategies(opts Options) []Strategy {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.BrowserTimeout <= 0 {
		opts.BrowserTimeout = DefaultBrowserTimeout
	}
	if opts.SofficeCommand == "" {
		opts.SofficeCommand = DefaultSofficeCommand
	}

	paths := append([]string{}, opts.SofficePaths...)
	paths = append(paths, DefaultSofficePaths...)

	strategies := []Strategy{
		NewWordStrategy(opts.Timeout),
		&SofficeStrategy{Command: opts.SofficeCommand, Timeout: opts.Timeout},
		&SofficePathsStrategy{Paths: paths, Timeout: opts.Timeout},
	}
	if opts.UseBrowser {
		strategies = append(strategies, &BrowserStrategy{ChromePath: opts.ChromePath, Timeout: opts.BrowserTimeout})
	}
	if !opts.DisableLibrary {
		strategies = append(strategies, &LibraryStrategy{})
	}
	return strategies
}
