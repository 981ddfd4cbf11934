// Package pipeline runs one resume generation request end to end: parse,
// render, write the .docx, and convert to PDF when the format asks for it.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-docgen/internal/conversion"
	"github.com/jonathan/resume-docgen/internal/docx"
	"github.com/jonathan/resume-docgen/internal/parsing"
	"github.com/jonathan/resume-docgen/internal/rendering"
	"github.com/jonathan/resume-docgen/internal/types"
)

// Step names reported through ProgressCallback.
const (
	StepParse   = "parse"
	StepRender  = "render"
	StepWrite   = "write_docx"
	StepConvert = "convert_pdf"
	StepCleanup = "cleanup"
)

// ProgressEvent represents a progress update during generation
type ProgressEvent struct {
	Step      string `json:"step"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ProgressCallback is called when generation progress occurs
type ProgressCallback func(event ProgressEvent)

// PDFConverter turns a .docx on disk into a PDF next to it.
type PDFConverter interface {
	Convert(ctx context.Context, docxPath string) (*conversion.Result, error)
}

// Request holds everything one generation needs.
type Request struct {
	RecordJSON []byte
	OutputDir  string
	// Filename is the output stem; a .docx or .pdf extension is ignored.
	Filename     string
	NamePrefix   string
	Style        types.StyleOptions
	KeywordsPath string
	// Keywords, when non-nil, is used instead of reading KeywordsPath.
	Keywords   []string
	RequestID  string
	OnProgress ProgressCallback
}

// Result describes the files a successful request produced.
type Result struct {
	RequestID string
	Filename  string
	DocxPath  string
	PDFPath   string
	Strategy  string
	Attempts  []conversion.Attempt
	Warnings  []string
	Duration  time.Duration
}

// Generator runs requests against one converter.
type Generator struct {
	Converter PDFConverter
	Logger    *slog.Logger
}

// Generate runs req with the given converter and the default logger.
func Generate(ctx context.Context, req Request, conv PDFConverter) (*Result, error) {
	return (&Generator{Converter: conv}).Generate(ctx, req)
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

func (g *Generator) converter() PDFConverter {
	if g.Converter == nil {
		return conversion.NewDefault(conversion.Options{}, g.logger())
	}
	return g.Converter
}

func emit(req *Request, step, message string) {
	if req.OnProgress != nil {
		req.OnProgress(ProgressEvent{Step: step, Message: message, RequestID: req.RequestID})
	}
}

// Generate renders the record once and writes the .docx. For the pdf format
// the .docx is an intermediate that is always removed; a conversion failure
// fails the request. For the both format a conversion failure is only a
// warning and the .docx is kept.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	log := g.logger().With("request_id", req.RequestID)

	emit(&req, StepParse, "parsing resume record")
	record, err := parsing.ParseResume(req.RecordJSON)
	if err != nil {
		return nil, err
	}

	style := req.Style.WithDefaults()
	if err := style.Validate(); err != nil {
		return nil, &parsing.ValidationError{Message: "invalid style options", Cause: err}
	}

	result := &Result{RequestID: req.RequestID}
	result.Filename = ResolveFilename(req.Filename, req.NamePrefix, record.Title, DefaultFilename(req.NamePrefix))

	keywords := parsing.CleanKeywords(req.Keywords)
	if req.Keywords == nil {
		var warn error
		keywords, warn = parsing.LoadBoldKeywords(req.KeywordsPath)
		if warn != nil {
			log.Warn("bold keywords unavailable, continuing without highlighting", "path", req.KeywordsPath, "error", warn)
			result.Warnings = append(result.Warnings, warn.Error())
		}
	}

	outDir := req.OutputDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, &IOError{Op: "create output directory", Path: outDir, Cause: err}
	}

	emit(&req, StepRender, "rendering document")
	doc, err := rendering.Render(record, style, keywords)
	if err != nil {
		return nil, err
	}

	result.DocxPath = filepath.Join(outDir, result.Filename+".docx")
	emit(&req, StepWrite, result.DocxPath)
	if err := docx.WriteFile(result.DocxPath, doc); err != nil {
		return nil, &IOError{Op: "write", Path: result.DocxPath, Cause: err}
	}
	log.Info("document written", "path", result.DocxPath, "blocks", len(doc.Blocks))

	if !style.Format.NeedsPDF() {
		result.Duration = time.Since(start)
		return result, nil
	}

	emit(&req, StepConvert, "converting to PDF")
	conv, convErr := g.converter().Convert(ctx, result.DocxPath)
	if convErr == nil {
		result.PDFPath = conv.PDFPath
		result.Strategy = conv.Strategy
		result.Attempts = conv.Attempts
	} else {
		var ce *conversion.ConversionError
		if errors.As(convErr, &ce) {
			result.Attempts = ce.Attempts
		}
	}

	switch {
	case style.Format == types.FormatPDF:
		emit(&req, StepCleanup, "removing intermediate document")
		if err := os.Remove(result.DocxPath); err != nil && !os.IsNotExist(err) {
			if convErr != nil {
				return nil, convErr
			}
			return nil, &IOError{Op: "remove intermediate", Path: result.DocxPath, Cause: err}
		}
		if convErr != nil {
			log.Error("PDF conversion failed", "error", convErr)
			return nil, convErr
		}
		result.DocxPath = ""

	case convErr != nil:
		if ctx.Err() != nil {
			return nil, convErr
		}
		log.Warn("PDF conversion failed, keeping document only", "error", convErr)
		result.Warnings = append(result.Warnings, fmt.Sprintf("PDF not produced: %v", convErr))
	}

	result.Duration = time.Since(start)
	log.Info("generation finished", "docx", result.DocxPath, "pdf", result.PDFPath, "strategy", result.Strategy, "duration", result.Duration)
	return result, nil
}
