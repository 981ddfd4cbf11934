package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// OutputFormat selects which files a generation request produces.
type OutputFormat string

const (
	// FormatDocx produces only the word-processor document.
	FormatDocx OutputFormat = "docx"
	// FormatPDF produces only the PDF; the intermediate document is removed.
	FormatPDF OutputFormat = "pdf"
	// FormatBoth produces the document and, best effort, the PDF.
	FormatBoth OutputFormat = "both"
)

// NeedsPDF reports whether the converter must run for this format.
func (f OutputFormat) NeedsPDF() bool {
	return f == FormatPDF || f == FormatBoth
}

// ParseOutputFormat accepts the short names and the labels used by the desktop form.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "both", "both (docx + pdf)", "docx+pdf":
		return FormatBoth, nil
	case "docx", "docx only", "document":
		return FormatDocx, nil
	case "pdf", "pdf only":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected docx, pdf or both)", s)
	}
}

// FontFamilies lists the font families offered for rendering.
var FontFamilies = []string{
	"Calibri", "Arial", "Times New Roman", "Georgia",
	"Verdana", "Tahoma", "Trebuchet MS", "Comic Sans MS",
}

const (
	DefaultFontName = "Calibri"
	DefaultFontSize = 11
)

// StyleOptions controls the visual template.
type StyleOptions struct {
	FontName string       `json:"font_name" validate:"required,oneof='Calibri' 'Arial' 'Times New Roman' 'Georgia' 'Verdana' 'Tahoma' 'Trebuchet MS' 'Comic Sans MS'"`
	FontSize int          `json:"font_size" validate:"required,min=6,max=32"`
	Format   OutputFormat `json:"format" validate:"required,oneof=docx pdf both"`
}

// DefaultStyle returns Calibri 11pt with both outputs.
func DefaultStyle() StyleOptions {
	return StyleOptions{
		FontName: DefaultFontName,
		FontSize: DefaultFontSize,
		Format:   FormatBoth,
	}
}

// WithDefaults fills zero fields from DefaultStyle.
func (s StyleOptions) WithDefaults() StyleOptions {
	d := DefaultStyle()
	if s.FontName == "" {
		s.FontName = d.FontName
	}
	if s.FontSize == 0 {
		s.FontSize = d.FontSize
	}
	if s.Format == "" {
		s.Format = d.Format
	}
	return s
}

// Validate validates the StyleOptions using the validator.
func (s *StyleOptions) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}
