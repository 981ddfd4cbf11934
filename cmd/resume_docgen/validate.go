package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-docgen/internal/observability"
	"github.com/jonathan/resume-docgen/internal/parsing"
	"github.com/jonathan/resume-docgen/internal/rendering"
	"github.com/jonathan/resume-docgen/internal/schemas"
	"github.com/jonathan/resume-docgen/internal/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a resume JSON record against the schema",
	Long: `Validates a resume record and, with --verbose, prints the outline of the document it would render.
With --schema the record must also satisfy the given JSON Schema file, for house rules
such as a required title or contact email.`,
	RunE:  runValidate,
}

var (
	validateJSON   string
	validateSchema string
)

func init() {
	validateCmd.Flags().StringVarP(&validateJSON, "json", "j", "", "Path to resume JSON file, or - for stdin (required)")
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Additional JSON Schema file the record must satisfy")

	if err := validateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	raw, err := readInput(validateJSON, cmd.InOrStdin())
	if err != nil {
		return err
	}
	return validateRecord(raw, validateSchema, verbose, cmd.OutOrStdout())
}

// validateRecord prints every schema violation, or a success line. A non-empty
// schemaPath adds the rules of that schema file.
func validateRecord(raw []byte, schemaPath string, showOutline bool, out io.Writer) error {
	record, err := parsing.ParseResume(raw)
	if err != nil {
		return reportProblems(out, err)
	}
	if schemaPath != "" {
		if err := schemas.ValidateAgainstSchemaFile(schemaPath, raw); err != nil {
			return reportProblems(out, err)
		}
	}

	_, _ = fmt.Fprintf(out, "Validation passed: %s\n", record.Name)
	if !showOutline {
		return nil
	}

	doc, err := rendering.Render(record, types.DefaultStyle(), nil)
	if err != nil {
		return err
	}
	observability.NewPrinter(out).PrintDocumentOutline(doc)
	return nil
}

func reportProblems(out io.Writer, err error) error {
	var schemaErr *schemas.ValidationError
	if !errors.As(err, &schemaErr) {
		return err
	}
	_, _ = fmt.Fprintf(out, "Validation found %d problem(s):\n", len(schemaErr.Errors))
	for _, fe := range schemaErr.Errors {
		_, _ = fmt.Fprintf(out, "  • %s: %s\n", fe.Field, fe.Message)
	}
	return fmt.Errorf("validation found %d problem(s)", len(schemaErr.Errors))
}
