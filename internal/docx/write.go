package docx

import (
	"archive/zip"
	"bytes"
	"embed"
	"fmt"
	"io"
	"math"
	"os"
	"text/template"
	"time"

	"github.com/jonathan/resume-docgen/internal/document"
)

//go:embed templates/*.xml
var templateFS embed.FS

var templates = template.Must(
	template.New("docx").
		Funcs(template.FuncMap{"xml": EscapeXML}).
		ParseFS(templateFS, "templates/*.xml"),
)

// Letter paper in twentieths of a point.
const (
	pageWidthTwips  = 12240
	pageHeightTwips = 15840
	twipsPerInch    = 1440
	twipsPerPoint   = 20
	bulletHanging   = 180
	firstLinkRelID  = 3
	defaultFontName = "Calibri"
	defaultFontSize = 11
)

// zipModTime is stamped on every part so identical documents produce identical bytes.
var zipModTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// part is one file of the package, in write order.
type part struct {
	name     string
	template string
}

var parts = []part{
	{"[Content_Types].xml", "content_types.xml"},
	{"_rels/.rels", "package_rels.xml"},
	{"docProps/core.xml", "core.xml"},
	{"word/_rels/document.xml.rels", "document_rels.xml"},
	{"word/styles.xml", "styles.xml"},
	{"word/numbering.xml", "numbering.xml"},
	{"word/document.xml", "document.xml"},
}

type runView struct {
	Text       string
	Bold       bool
	Font       string
	HalfPoints int
	Color      string
	Underline  bool
	Tab        bool
}

type itemView struct {
	RelID string
	Run   runView
}

type paragraphView struct {
	Style      string
	Bullet     bool
	Border     bool
	TabStop    int
	SpaceAfter int
	Indent     int
	Hanging    int
	Align      string
	Items      []itemView
}

type linkView struct {
	ID     string
	Target string
}

type pageView struct {
	Width, Height            int
	Top, Right, Bottom, Left int
}

type packageView struct {
	Title      string
	Author     string
	Font       string
	HalfPoints int
	Page       pageView
	Paragraphs []paragraphView
	Links      []linkView
}

// Write serializes doc as a .docx package to w.
func Write(w io.Writer, doc *document.Document) error {
	if doc == nil {
		return &PackageError{Message: "no document to write"}
	}
	view := buildView(doc)

	zw := zip.NewWriter(w)
	for _, p := range parts {
		var buf bytes.Buffer
		if err := templates.ExecuteTemplate(&buf, p.template, view); err != nil {
			return &PackageError{Message: fmt.Sprintf("failed to render %s", p.name), Cause: err}
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: zipModTime,
		})
		if err != nil {
			return &PackageError{Message: fmt.Sprintf("failed to add %s", p.name), Cause: err}
		}
		if _, err := fw.Write(buf.Bytes()); err != nil {
			return &PackageError{Message: fmt.Sprintf("failed to write %s", p.name), Cause: err}
		}
	}
	if err := zw.Close(); err != nil {
		return &PackageError{Message: "failed to finalize package", Cause: err}
	}
	return nil
}

// WriteFile writes doc to path through a temporary sibling file, so a failed
// write never leaves a partial package at path.
func WriteFile(path string, doc *document.Document) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return &PackageError{Message: "failed to create output file", Cause: err}
	}

	if err := Write(f, doc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return &PackageError{Message: "failed to close output file", Cause: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &PackageError{Message: "failed to move output file into place", Cause: err}
	}
	return nil
}

func buildView(doc *document.Document) packageView {
	view := packageView{
		Title:      doc.Title,
		Author:     doc.Author,
		Font:       defaultFontName,
		HalfPoints: defaultFontSize * 2,
		Page: pageView{
			Width:  pageWidthTwips,
			Height: pageHeightTwips,
			Top:    inchesToTwips(doc.Page.MarginTop),
			Right:  inchesToTwips(doc.Page.MarginRight),
			Bottom: inchesToTwips(doc.Page.MarginBottom),
			Left:   inchesToTwips(doc.Page.MarginLeft),
		},
	}

	if first, ok := firstRun(doc); ok {
		view.Font = first.Font
		view.HalfPoints = halfPoints(first.Size)
	}

	for _, b := range doc.Blocks {
		p := paragraphView{
			Border:     b.BottomBorder,
			TabStop:    inchesToTwips(b.TabStop),
			SpaceAfter: int(math.Round(b.SpaceAfter * twipsPerPoint)),
			Align:      jcValue(b.Align),
		}
		switch b.Kind {
		case document.Heading:
			p.Style = "Heading1"
		case document.Bullet:
			p.Style = "ListBullet"
			p.Bullet = true
		}
		if b.Indent > 0 {
			p.Indent = inchesToTwips(b.Indent)
			if p.Bullet {
				p.Hanging = bulletHanging
			}
		}

		for _, r := range b.Runs {
			item := itemView{Run: runView{
				Text:       r.Text,
				Bold:       r.Bold,
				Font:       r.Font,
				HalfPoints: halfPoints(r.Size),
				Color:      r.Color,
				Tab:        r.Tab,
			}}
			if item.Run.Font == "" {
				item.Run.Font = view.Font
			}
			if r.Link != "" {
				item.RelID = fmt.Sprintf("rId%d", firstLinkRelID+len(view.Links))
				item.Run.Underline = true
				view.Links = append(view.Links, linkView{ID: item.RelID, Target: r.Link})
			}
			p.Items = append(p.Items, item)
		}
		view.Paragraphs = append(view.Paragraphs, p)
	}
	return view
}

func firstRun(doc *document.Document) (document.Run, bool) {
	for _, b := range doc.Blocks {
		for _, r := range b.Runs {
			if r.Font != "" && r.Size > 0 {
				return r, true
			}
		}
	}
	return document.Run{}, false
}

func jcValue(a document.Align) string {
	switch a {
	case document.AlignCenter:
		return "center"
	case document.AlignJustify:
		return "both"
	default:
		return "left"
	}
}

func inchesToTwips(in float64) int {
	return int(math.Round(in * twipsPerInch))
}

func halfPoints(pt float64) int {
	if pt <= 0 {
		pt = defaultFontSize
	}
	return int(math.Round(pt * 2))
}
