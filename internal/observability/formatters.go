// Package observability provides logging setup and formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/resume-docgen/internal/document"
	"github.com/jonathan/resume-docgen/internal/pipeline"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResult outputs the files a generation produced and how the PDF was made.
func (p *Printer) PrintResult(res *pipeline.Result) {
	if res == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Request:  %s\n", res.RequestID))
	if res.DocxPath != "" {
		sb.WriteString(fmt.Sprintf("DOCX:     %s\n", res.DocxPath))
	}
	if res.PDFPath != "" {
		sb.WriteString(fmt.Sprintf("PDF:      %s\n", res.PDFPath))
		sb.WriteString(fmt.Sprintf("Strategy: %s\n", res.Strategy))
	}
	sb.WriteString(fmt.Sprintf("Duration: %s\n", res.Duration.Round(time.Millisecond)))

	if len(res.Attempts) > 0 {
		sb.WriteString("\nConversion attempts:\n")
		for _, a := range res.Attempts {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", a.Strategy, a.Outcome()))
		}
	}

	if len(res.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, w := range res.Warnings {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", w))
		}
	}

	p.printBox("GENERATED "+res.Filename, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDocumentOutline outputs the section headings and block counts of a rendered document.
func (p *Printer) PrintDocumentOutline(doc *document.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	if doc.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", doc.Title))
	}
	sb.WriteString(fmt.Sprintf("Blocks:   %d (%d bullets, %d links)\n\n",
		len(doc.Blocks), doc.CountKind(document.Bullet), doc.CountKind(document.HyperlinkLine)))

	headings := doc.Headings()
	if len(headings) == 0 {
		sb.WriteString("No sections\n")
	}
	count := min(len(headings), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", headings[i]))
	}
	if len(headings) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(headings)-maxItemsToShow))
	}

	p.printBox("DOCUMENT OUTLINE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFailures outputs per-request errors from a batch run.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFailures(failures map[string]error) {
	if len(failures) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ ALL REQUESTS SUCCEEDED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Failed %d requests:\n\n", len(failures)))
	for name, err := range failures {
		msg := err.Error()
		if len(msg) > 45 {
			msg = msg[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ %s\n  %s\n", name, msg))
	}

	p.printBox("FAILED REQUESTS", strings.TrimSuffix(sb.String(), "\n"))
}
