package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-docgen/internal/config"
	"github.com/jonathan/resume-docgen/internal/conversion"
	"github.com/jonathan/resume-docgen/internal/observability"
	"github.com/jonathan/resume-docgen/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render a resume JSON record to .docx and/or PDF",
	Long: `Renders the resume record into a Word document and, depending on --format, converts it to PDF.

With --format pdf the intermediate .docx is always removed and a failed conversion is an error.
With --format both a failed conversion is reported as a warning and the .docx is kept.`,
	RunE: runGenerate,
}

var (
	generateJSON         string
	generateOutDir       string
	generateFilename     string
	generateNamePrefix   string
	generateFormat       string
	generateFont         string
	generateFontSize     int
	generateBoldKeywords string
	generateUseBrowser   bool
	generateChromePath   string
)

func init() {
	generateCmd.Flags().StringVarP(&generateJSON, "json", "j", "", "Path to resume JSON file, or - for stdin (required)")
	generateCmd.Flags().StringVarP(&generateOutDir, "out-dir", "o", "", "Output directory (default \"output\")")
	generateCmd.Flags().StringVarP(&generateFilename, "filename", "f", "", "Output file stem; replaced by the title-based name when it does not match")
	generateCmd.Flags().StringVar(&generateNamePrefix, "name-prefix", "", "First component of derived filenames (default \"Resume\")")
	generateCmd.Flags().StringVar(&generateFormat, "format", "", "Output format: docx, pdf or both (default \"both\")")
	generateCmd.Flags().StringVar(&generateFont, "font", "", "Font family (default \"Calibri\")")
	generateCmd.Flags().IntVar(&generateFontSize, "font-size", 0, "Body font size in points (default 11)")
	generateCmd.Flags().StringVarP(&generateBoldKeywords, "bold-keywords", "b", "", "Path to JSON file with a \"skills\" array of keywords to bold")
	generateCmd.Flags().BoolVar(&generateUseBrowser, "use-browser", false, "Try headless Chrome before the built-in PDF layout")
	generateCmd.Flags().StringVar(&generateChromePath, "chrome-path", "", "Chrome executable for --use-browser")

	if err := generateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	flags := config.Config{
		OutputDir:        generateOutDir,
		Filename:         generateFilename,
		NamePrefix:       generateNamePrefix,
		Format:           generateFormat,
		FontName:         generateFont,
		FontSize:         generateFontSize,
		BoldKeywordsPath: generateBoldKeywords,
		UseBrowser:       generateUseBrowser,
		ChromePath:       generateChromePath,
		Verbose:          verbose,
	}
	cfg, err := resolveConfig(configPath, flags)
	if err != nil {
		return err
	}

	raw, err := readInput(generateJSON, cmd.InOrStdin())
	if err != nil {
		return err
	}

	return generate(cmd.Context(), cfg, raw, cmd.OutOrStdout())
}

// generate runs one request with the converter chain described by cfg.
func generate(ctx context.Context, cfg config.Config, raw []byte, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	style, err := cfg.Style()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	gen := &pipeline.Generator{
		Converter: conversion.NewDefault(cfg.ConversionOptions(), logger),
		Logger:    logger,
	}

	req := pipeline.Request{
		RecordJSON:   raw,
		OutputDir:    cfg.OutputDir,
		Filename:     cfg.Filename,
		NamePrefix:   cfg.NamePrefix,
		Style:        style,
		KeywordsPath: cfg.BoldKeywordsPath,
	}
	if cfg.Verbose {
		req.OnProgress = func(ev pipeline.ProgressEvent) {
			_, _ = fmt.Fprintf(os.Stderr, "[%s] %s\n", ev.Step, ev.Message)
		}
	}

	res, err := gen.Generate(ctx, req)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(out).PrintResult(res)
		return nil
	}
	printPaths(out, res)
	return nil
}

func printPaths(out io.Writer, res *pipeline.Result) {
	if res.DocxPath != "" {
		_, _ = fmt.Fprintf(out, "DOCX: %s\n", res.DocxPath)
	}
	if res.PDFPath != "" {
		_, _ = fmt.Fprintf(out, "PDF: %s (%s)\n", res.PDFPath, res.Strategy)
	}
	for _, w := range res.Warnings {
		_, _ = fmt.Fprintf(out, "Warning: %s\n", w)
	}
}
