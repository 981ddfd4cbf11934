package conversion

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lvillar/gofpdf"

	"github.com/jonathan/resume-docgen/internal/document"
	"github.com/jonathan/resume-docgen/internal/docx"
)

const (
	pointsPerInch   = 72
	lineSpacing     = 1.2
	headingRuleLine = 0.75
	bulletGlyph     = "• "
)

// pdfEpoch is stamped as the creation date so output is reproducible.
var pdfEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// LibraryStrategy lays the document out in-process with gofpdf core fonts.
// It needs no external program and is the last resort of the default chain.
type LibraryStrategy struct{}

func (s *LibraryStrategy) Name() string { return "library" }

func (s *LibraryStrategy) Convert(ctx context.Context, docxPath, pdfPath string) error {
	doc, err := docx.ReadFile(docxPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	pdf := layoutPDF(doc)
	if err := pdf.OutputFileAndClose(pdfPath); err != nil {
		_ = os.Remove(pdfPath)
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// pdfFamily maps a word-processor font to the closest core PDF font.
func pdfFamily(font string) string {
	switch strings.ToLower(strings.TrimSpace(font)) {
	case "times new roman", "georgia", "times", "cambria", "garamond":
		return "Times"
	case "courier new", "courier", "consolas":
		return "Courier"
	default:
		return "Helvetica"
	}
}

// layout carries the page geometry for one PDF.
type layout struct {
	pdf         *gofpdf.Fpdf
	tr          func(string) string
	left, right float64
	pageWidth   float64
}

func layoutPDF(doc *document.Document) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetCompression(false)
	pdf.SetCreationDate(pdfEpoch)
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Author, true)

	page := doc.Page
	pdf.SetMargins(page.MarginLeft*pointsPerInch, page.MarginTop*pointsPerInch, page.MarginRight*pointsPerInch)
	pdf.SetAutoPageBreak(true, page.MarginBottom*pointsPerInch)
	pdf.AddPage()

	width, _ := pdf.GetPageSize()
	l := &layout{
		pdf:       pdf,
		tr:        pdf.UnicodeTranslatorFromDescriptor(""),
		left:      page.MarginLeft * pointsPerInch,
		right:     page.MarginRight * pointsPerInch,
		pageWidth: width,
	}
	for _, b := range doc.Blocks {
		l.block(b)
	}
	return pdf
}

func (l *layout) setRunFont(r document.Run) {
	style := ""
	if r.Bold {
		style += "B"
	}
	if r.Link != "" {
		style += "U"
	}
	size := r.Size
	if size <= 0 {
		size = 11
	}
	l.pdf.SetFont(pdfFamily(r.Font), style, size)

	red, green, blue := hexColor(r.Color)
	l.pdf.SetTextColor(red, green, blue)
}

func (l *layout) lineHeight(b document.Block) float64 {
	maxSize := 0.0
	for _, r := range b.Runs {
		if r.Size > maxSize {
			maxSize = r.Size
		}
	}
	if maxSize == 0 {
		maxSize = 11
	}
	return maxSize * lineSpacing
}

func (l *layout) width(runs []document.Run) float64 {
	total := 0.0
	for _, r := range runs {
		l.setRunFont(r)
		total += l.pdf.GetStringWidth(l.tr(r.Text))
	}
	return total
}

func (l *layout) block(b document.Block) {
	pdf := l.pdf
	h := l.lineHeight(b)
	contentWidth := l.pageWidth - l.left - l.right

	indent := b.Indent * pointsPerInch
	if indent > 0 {
		pdf.SetLeftMargin(l.left + indent)
	}
	pdf.SetX(l.left + indent)

	if b.Kind == document.Bullet && len(b.Runs) > 0 {
		l.setRunFont(document.Run{Font: b.Runs[0].Font, Size: b.Runs[0].Size})
		pdf.Write(h, l.tr(bulletGlyph))
	}

	if b.Align == document.AlignCenter {
		if w := l.width(b.Runs); w < contentWidth {
			pdf.SetX(l.left + (contentWidth-w)/2)
		}
	}

	for _, r := range b.Runs {
		if r.Tab && b.TabStop > 0 {
			l.setRunFont(r)
			target := l.left + b.TabStop*pointsPerInch - pdf.GetStringWidth(l.tr(r.Text))
			if limit := l.pageWidth - l.right - pdf.GetStringWidth(l.tr(r.Text)); target > limit {
				target = limit
			}
			if target > pdf.GetX() {
				pdf.SetX(target)
			}
		}
		l.setRunFont(r)
		if r.Link != "" {
			pdf.WriteLinkString(h, l.tr(r.Text), r.Link)
		} else {
			pdf.Write(h, l.tr(r.Text))
		}
	}

	pdf.SetLeftMargin(l.left)
	pdf.Ln(h)

	if b.BottomBorder {
		y := pdf.GetY()
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(headingRuleLine)
		pdf.Line(l.left, y, l.pageWidth-l.right, y)
	}
	if b.SpaceAfter > 0 {
		pdf.Ln(b.SpaceAfter)
	}
}

// hexColor parses "RRGGBB"; anything else is black.
func hexColor(s string) (int, int, int) {
	if len(s) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)
}
