package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-docgen/internal/config"
	"github.com/jonathan/resume-docgen/internal/conversion"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.docx>",
	Short: "Convert an existing .docx to PDF",
	Long:  "Runs only the PDF converter chain against a .docx file and writes the PDF next to it.",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

var (
	convertUseBrowser bool
	convertNoLibrary  bool
	convertTimeout    string
)

func init() {
	convertCmd.Flags().BoolVar(&convertUseBrowser, "use-browser", false, "Try headless Chrome before the built-in PDF layout")
	convertCmd.Flags().BoolVar(&convertNoLibrary, "no-library", false, "Fail instead of using the built-in PDF layout")
	convertCmd.Flags().StringVar(&convertTimeout, "timeout", "", "Per-strategy timeout, e.g. 90s (default 1m0s)")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(configPath, config.Config{
		UseBrowser:             convertUseBrowser,
		DisableLibraryFallback: convertNoLibrary,
		ConversionTimeout:      convertTimeout,
		Verbose:                verbose,
	})
	if err != nil {
		return err
	}
	return convertFile(cmd.Context(), cfg, args[0], cmd.OutOrStdout())
}

// convertFile prints the PDF path and one line per attempted strategy.
func convertFile(ctx context.Context, cfg config.Config, docxPath string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !strings.EqualFold(filepath.Ext(docxPath), ".docx") {
		return fmt.Errorf("expected a .docx file, got %s", docxPath)
	}

	conv := conversion.NewDefault(cfg.ConversionOptions(), newLogger(cfg))
	res, err := conv.Convert(ctx, docxPath)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "PDF: %s\n", res.PDFPath)
	for _, a := range res.Attempts {
		_, _ = fmt.Fprintf(out, "  %s: %s (%s)\n", a.Strategy, a.Outcome(), a.Duration.Round(time.Millisecond))
	}
	return nil
}
