package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-docgen/internal/parsing"
	"github.com/jonathan/resume-docgen/internal/pipeline"
)

var filenameCmd = &cobra.Command{
	Use:   "filename",
	Short: "Print the output filename for a resume title",
	Long: `Prints the output file stem the generator would use: "<prefix>_<title>" with punctuation removed
and whitespace collapsed to underscores. A --filename that already starts with that stem is kept.`,
	RunE: runFilename,
}

var (
	filenameJSON     string
	filenameTitle    string
	filenamePrefix   string
	filenameSupplied string
)

func init() {
	filenameCmd.Flags().StringVarP(&filenameJSON, "json", "j", "", "Path to resume JSON file whose title is used")
	filenameCmd.Flags().StringVarP(&filenameTitle, "title", "t", "", "Title to derive from (overrides --json)")
	filenameCmd.Flags().StringVar(&filenamePrefix, "name-prefix", pipeline.DefaultNamePrefix, "First component of the filename")
	filenameCmd.Flags().StringVarP(&filenameSupplied, "filename", "f", "", "Candidate filename to check")

	rootCmd.AddCommand(filenameCmd)
}

func runFilename(cmd *cobra.Command, _ []string) error {
	title := filenameTitle
	if title == "" && filenameJSON != "" {
		raw, err := os.ReadFile(filenameJSON)
		if err != nil {
			return fmt.Errorf("failed to read resume file %s: %w", filenameJSON, err)
		}
		title = parsing.PeekTitle(raw)
	}

	name := pipeline.ResolveFilename(filenameSupplied, filenamePrefix, title, pipeline.DefaultFilename(filenamePrefix))
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
	return nil
}
