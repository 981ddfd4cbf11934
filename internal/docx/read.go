package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/resume-docgen/internal/document"
)

type relationships struct {
	Items []struct {
		ID         string `xml:"Id,attr"`
		Target     string `xml:"Target,attr"`
		TargetMode string `xml:"TargetMode,attr"`
	} `xml:"Relationship"`
}

type coreProperties struct {
	Title   string `xml:"title"`
	Creator string `xml:"creator"`
}

// ReadFile opens a .docx file and parses it with Read.
func ReadFile(path string) (*document.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &PackageError{Message: "failed to open package", Cause: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &PackageError{Message: "failed to stat package", Cause: err}
	}
	return Read(f, info.Size())
}

// Read parses a word-processing package back into a document. Paragraph kinds
// come from paragraph styles and numbering, run formatting from run
// properties, and hyperlink targets from the document relationships.
func Read(r io.ReaderAt, size int64) (*document.Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &PackageError{Message: "not a zip package", Cause: err}
	}

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	body, ok := files["word/document.xml"]
	if !ok {
		return nil, &PackageError{Message: "no word/document.xml found in package"}
	}

	links := make(map[string]string)
	if f, ok := files["word/_rels/document.xml.rels"]; ok {
		var rels relationships
		if err := decodePart(f, &rels); err != nil {
			return nil, err
		}
		for _, rel := range rels.Items {
			links[rel.ID] = rel.Target
		}
	}

	doc := document.New()
	if f, ok := files["docProps/core.xml"]; ok {
		var core coreProperties
		if err := decodePart(f, &core); err != nil {
			return nil, err
		}
		doc.Title = core.Title
		doc.Author = core.Creator
	}

	rc, err := body.Open()
	if err != nil {
		return nil, &PackageError{Message: "failed to open word/document.xml", Cause: err}
	}
	defer rc.Close()

	if err := parseBody(xml.NewDecoder(rc), doc, links); err != nil {
		return nil, &PackageError{Message: "failed to parse word/document.xml", Cause: err}
	}
	return doc, nil
}

func decodePart(f *zip.File, v any) error {
	rc, err := f.Open()
	if err != nil {
		return &PackageError{Message: fmt.Sprintf("failed to open %s", f.Name), Cause: err}
	}
	defer rc.Close()
	if err := xml.NewDecoder(rc).Decode(v); err != nil {
		return &PackageError{Message: fmt.Sprintf("failed to parse %s", f.Name), Cause: err}
	}
	return nil
}

// bodyParser walks document.xml tokens. Elements are matched by local name so
// that prefixes chosen by other producers do not matter.
type bodyParser struct {
	doc   *document.Document
	links map[string]string

	block    *document.Block
	run      *document.Run
	inPPr    bool
	inText   bool
	link     string
	runProps bool
}

func parseBody(dec *xml.Decoder, doc *document.Document, links map[string]string) error {
	p := &bodyParser{doc: doc, links: links}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			p.start(t)
		case xml.EndElement:
			p.end(t)
		case xml.CharData:
			if p.inText && p.run != nil {
				p.run.Text += string(t)
			}
		}
	}
}

func (p *bodyParser) start(el xml.StartElement) {
	switch el.Name.Local {
	case "p":
		p.block = &document.Block{Kind: document.Paragraph, Align: document.AlignLeft}
	case "pPr":
		p.inPPr = true
	case "pStyle":
		if p.block != nil {
			style := strings.ToLower(attr(el, "val"))
			switch {
			case strings.HasPrefix(style, "heading"), style == "title":
				p.block.Kind = document.Heading
			case strings.Contains(style, "list"):
				p.block.Kind = document.Bullet
			}
		}
	case "numPr":
		if p.block != nil && p.inPPr && p.block.Kind != document.Heading {
			p.block.Kind = document.Bullet
		}
	case "bottom":
		if p.block != nil && p.inPPr {
			p.block.BottomBorder = attr(el, "val") != "nil" && attr(el, "val") != "none"
		}
	case "tab":
		switch {
		case p.run != nil:
			p.run.Tab = true
		case p.block != nil && p.inPPr:
			p.block.TabStop = twipsToInches(attr(el, "pos"))
		}
	case "spacing":
		if p.block != nil && p.inPPr && !p.runProps {
			if v, err := strconv.ParseFloat(attr(el, "after"), 64); err == nil {
				p.block.SpaceAfter = v / twipsPerPoint
			}
		}
	case "ind":
		if p.block != nil && p.inPPr {
			p.block.Indent = twipsToInches(attr(el, "left"))
		}
	case "jc":
		if p.block != nil && p.inPPr {
			switch attr(el, "val") {
			case "center":
				p.block.Align = document.AlignCenter
			case "both", "distribute":
				p.block.Align = document.AlignJustify
			default:
				p.block.Align = document.AlignLeft
			}
		}
	case "hyperlink":
		p.link = p.links[attr(el, "id")]
	case "r":
		if p.block != nil {
			p.run = &document.Run{Link: p.link}
		}
	case "rPr":
		p.runProps = true
	case "rFonts":
		if p.run != nil {
			p.run.Font = attr(el, "ascii")
		}
	case "b":
		if p.run != nil {
			v := attr(el, "val")
			p.run.Bold = v == "" || v == "1" || v == "true" || v == "on"
		}
	case "color":
		if p.run != nil {
			p.run.Color = attr(el, "val")
		}
	case "sz":
		if p.run != nil {
			if v, err := strconv.ParseFloat(attr(el, "val"), 64); err == nil {
				p.run.Size = v / 2
			}
		}
	case "t":
		p.inText = true
	case "pgMar":
		p.doc.Page = document.PageSetup{
			MarginLeft:   twipsToInches(attr(el, "left")),
			MarginRight:  twipsToInches(attr(el, "right")),
			MarginTop:    twipsToInches(attr(el, "top")),
			MarginBottom: twipsToInches(attr(el, "bottom")),
		}
	}
}

func (p *bodyParser) end(el xml.EndElement) {
	switch el.Name.Local {
	case "pPr":
		p.inPPr = false
	case "rPr":
		p.runProps = false
	case "t":
		p.inText = false
	case "hyperlink":
		p.link = ""
	case "r":
		if p.block != nil && p.run != nil && (p.run.Text != "" || p.run.Tab) {
			p.block.Runs = append(p.block.Runs, *p.run)
		}
		p.run = nil
	case "p":
		if p.block == nil {
			return
		}
		if p.block.Kind == document.Paragraph && len(p.block.Links()) > 0 {
			p.block.Kind = document.HyperlinkLine
		}
		p.doc.Add(*p.block)
		p.block = nil
	}
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func twipsToInches(v string) float64 {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return n / twipsPerInch
}
