package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-docgen/internal/config"
	"github.com/jonathan/resume-docgen/internal/conversion"
	"github.com/jonathan/resume-docgen/internal/observability"
	"github.com/jonathan/resume-docgen/internal/parsing"
	"github.com/jonathan/resume-docgen/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch <record.json>...",
	Short: "Render many resume records concurrently",
	Long: `Renders each record file into the output directory. Rendering runs in parallel;
PDF conversions are serialized because office suites cannot run side by side.
Each record's filename is derived from its title.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

var (
	batchOutDir      string
	batchFormat      string
	batchParallelism int
)

func init() {
	batchCmd.Flags().StringVarP(&batchOutDir, "out-dir", "o", "", "Output directory (default \"output\")")
	batchCmd.Flags().StringVar(&batchFormat, "format", "", "Output format: docx, pdf or both (default \"both\")")
	batchCmd.Flags().IntVarP(&batchParallelism, "parallelism", "p", 0, "Records rendered at once (default 4)")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(configPath, config.Config{
		OutputDir:        batchOutDir,
		Format:           batchFormat,
		BatchParallelism: batchParallelism,
		Verbose:          verbose,
	})
	if err != nil {
		return err
	}
	return runBatchFiles(cmd.Context(), cfg, args, cmd.OutOrStdout())
}

// runBatchFiles generates every file and reports failures together.
func runBatchFiles(ctx context.Context, cfg config.Config, paths []string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	style, err := cfg.Style()
	if err != nil {
		return err
	}

	failures := make(map[string]error)
	reqs := make([]pipeline.Request, 0, len(paths))
	names := make([]string, 0, len(paths))
	stems := make(map[string]string)
	for _, path := range paths {
		raw, err := readInput(path, nil)
		if err != nil {
			failures[path] = err
			continue
		}
		// Records sharing a title would overwrite each other's files.
		stem := pipeline.ResolveFilename("", cfg.NamePrefix, parsing.PeekTitle(raw), pipeline.DefaultFilename(cfg.NamePrefix))
		if first, ok := stems[stem]; ok {
			failures[path] = fmt.Errorf("output name %s already used by %s", stem, first)
			continue
		}
		stems[stem] = path
		reqs = append(reqs, pipeline.Request{
			RecordJSON:   raw,
			OutputDir:    cfg.OutputDir,
			NamePrefix:   cfg.NamePrefix,
			Style:        style,
			KeywordsPath: cfg.BoldKeywordsPath,
		})
		names = append(names, path)
	}

	logger := newLogger(cfg)
	gen := &pipeline.Generator{
		Converter: conversion.NewDefault(cfg.ConversionOptions(), logger),
		Logger:    logger,
	}

	for i, c := range gen.GenerateBatch(ctx, reqs, cfg.BatchParallelism) {
		if c.Err != nil {
			failures[names[i]] = c.Err
			continue
		}
		_, _ = fmt.Fprintf(out, "%s:\n", names[i])
		printPaths(out, c.Result)
	}

	if cfg.Verbose || len(failures) > 0 {
		observability.NewPrinter(out).PrintFailures(failures)
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d of %d records failed", len(failures), len(paths))
	}
	return nil
}
