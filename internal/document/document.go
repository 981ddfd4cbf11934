// Package document defines the in-memory rendered document: an ordered list
// of paragraph-level blocks, each made of explicitly styled runs.
package document

import "strings"

// BlockKind is the paragraph-level role of a block.
type BlockKind string

const (
	Heading       BlockKind = "heading"
	Paragraph     BlockKind = "paragraph"
	Bullet        BlockKind = "bullet"
	HyperlinkLine BlockKind = "hyperlink_line"
)

// Align is a paragraph alignment.
type Align string

const (
	AlignLeft    Align = "left"
	AlignCenter  Align = "center"
	AlignJustify Align = "justify"
)

// Colors used by the fixed template.
const (
	ColorBlack = "000000"
	ColorLink  = "0000FF"
)

// PageSetup holds page margins in inches.
type PageSetup struct {
	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64
}

// DefaultPageSetup returns the narrow margins of the resume template.
func DefaultPageSetup() PageSetup {
	return PageSetup{MarginLeft: 0.5, MarginRight: 0.5, MarginTop: 0.4, MarginBottom: 0.4}
}

// Run is a span of text with one formatting decision. Font and Size are
// always set explicitly.
type Run struct {
	Text  string
	Bold  bool
	Font  string
	Size  float64 // points
	Color string  // hex RGB, empty for default
	Link  string  // hyperlink target, empty for none
	// Tab marks a run preceded by a tab to the block's right tab stop.
	Tab bool
}

// Block is a paragraph-level element.
type Block struct {
	Kind         BlockKind
	Align        Align
	Runs         []Run
	SpaceAfter   float64 // points
	Indent       float64 // inches
	TabStop      float64 // inches, right-aligned; 0 for none
	BottomBorder bool
}

// Text concatenates the block's run texts.
func (b Block) Text() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Links returns the runs that carry a hyperlink.
func (b Block) Links() []Run {
	var out []Run
	for _, r := range b.Runs {
		if r.Link != "" {
			out = append(out, r)
		}
	}
	return out
}

// Document is the rendered resume.
type Document struct {
	Title  string
	Author string
	Page   PageSetup
	Blocks []Block
}

// New returns an empty document with the default page setup.
func New() *Document {
	return &Document{Page: DefaultPageSetup()}
}

// Add appends a block.
func (d *Document) Add(b Block) {
	d.Blocks = append(d.Blocks, b)
}

// CountKind returns how many blocks have the given kind.
func (d *Document) CountKind(kind BlockKind) int {
	n := 0
	for _, b := range d.Blocks {
		if b.Kind == kind {
			n++
		}
	}
	return n
}

// Headings returns the text of every heading block in order.
func (d *Document) Headings() []string {
	var out []string
	for _, b := range d.Blocks {
		if b.Kind == Heading {
			out = append(out, b.Text())
		}
	}
	return out
}
