// Package main provides the resume_docgen CLI: render resume JSON into a
// .docx document and, best effort, a PDF.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "resume_docgen",
	Short: "Resume document generator",
	Long: `resume_docgen renders a structured resume JSON record into a formatted Word document
with keyword highlighting, and converts it to PDF using the first available converter
(Microsoft Word, LibreOffice, headless Chrome, or the built-in layout engine).

Settings come from flags, then --config, then RESUME_DOCGEN_* environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
