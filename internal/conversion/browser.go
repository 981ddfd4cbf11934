package conversion

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/resume-docgen/internal/document"
	"github.com/jonathan/resume-docgen/internal/docx"
)

// chromeCandidates are executable names probed on PATH when no Chrome path is configured.
var chromeCandidates = []string{
	"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "chrome", "headless-shell",
}

// Letter paper in inches.
const (
	letterWidthIn  = 8.5
	letterHeightIn = 11
)

// BrowserStrategy reads the .docx back, lays it out as HTML and prints it to
// PDF with headless Chrome.
type BrowserStrategy struct {
	ChromePath string
	Timeout    time.Duration
}

func (s *BrowserStrategy) Name() string { return "browser" }

func (s *BrowserStrategy) Convert(ctx context.Context, docxPath, pdfPath string) error {
	chrome, err := s.locateChrome()
	if err != nil {
		return err
	}

	doc, err := docx.ReadFile(docxPath)
	if err != nil {
		return err
	}

	html, err := RenderHTML(doc)
	if err != nil {
		return err
	}

	tmpDir, err := os.MkdirTemp("", "resume-docgen-html-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, html, 0o644); err != nil {
		return err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.ExecPath(chrome),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate(fileURL(htmlPath)),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPaperWidth(letterWidthIn).
				WithPaperHeight(letterHeightIn).
				WithMarginTop(doc.Page.MarginTop).
				WithMarginBottom(doc.Page.MarginBottom).
				WithMarginLeft(doc.Page.MarginLeft).
				WithMarginRight(doc.Page.MarginRight).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if browserCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("%w: browser print exceeded %s", ErrTimeout, timeout)
		}
		return fmt.Errorf("browser print failed: %w", err)
	}

	return os.WriteFile(pdfPath, pdf, 0o644)
}

func (s *BrowserStrategy) locateChrome() (string, error) {
	configured := s.ChromePath
	if configured == "" {
		configured = os.Getenv("CHROME_PATH")
	}
	if configured != "" {
		if _, err := os.Stat(configured); err != nil {
			return "", fmt.Errorf("%w: chrome not found at %s", ErrUnavailable, configured)
		}
		return configured, nil
	}
	for _, name := range chromeCandidates {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: no Chrome or Chromium executable found", ErrUnavailable)
}

var htmlTemplate = template.Must(template.New("resume").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; }
p { margin: 0; line-height: 1.15; }
p.heading { border-bottom: 0.75pt solid #000; padding-bottom: 1pt; }
p.bullet { text-indent: -0.125in; }
p.bullet::before { content: "\2022\00a0"; }
p.tabbed { display: flex; justify-content: space-between; }
a { color: #0000FF; text-decoration: underline; }
</style>
</head>
<body>
{{- range .Blocks}}
<p class="{{.Class}}" style="text-align: {{.Align}}; margin-bottom: {{.SpaceAfter}}pt; margin-left: {{.Indent}}in;">
{{- if .Tabbed}}<span>{{template "runs" .Runs}}</span><span>{{template "runs" .TabRuns}}</span>{{else}}{{template "runs" .Runs}}{{end -}}
</p>
{{- end}}
</body>
</html>
{{- define "runs"}}{{range .}}
{{- if .Link}}<a href="{{.Link}}" style="{{template "runstyle" .}}">{{.Text}}</a>
{{- else}}<span style="{{template "runstyle" .}}">{{.Text}}</span>{{end}}
{{- end}}{{end}}
{{- define "runstyle"}}font-family: '{{.Font}}'; font-size: {{.Size}}pt;{{if .Bold}} font-weight: bold;{{end}}{{if .Color}} color: #{{.Color}};{{end}}{{end}}`))

type htmlRun struct {
	Text  string
	Font  string
	Size  float64
	Bold  bool
	Color string
	Link  any
}

type htmlBlock struct {
	Class      string
	Align      string
	SpaceAfter float64
	Indent     float64
	Tabbed     bool
	Runs       []htmlRun
	TabRuns    []htmlRun
}

// RenderHTML lays a document out as a standalone HTML page for printing.
func RenderHTML(doc *document.Document) ([]byte, error) {
	view := struct {
		Title  string
		Blocks []htmlBlock
	}{Title: doc.Title}

	for _, b := range doc.Blocks {
		hb := htmlBlock{
			Class:      strings.ReplaceAll(string(b.Kind), "_", "-"),
			Align:      string(b.Align),
			SpaceAfter: b.SpaceAfter,
			Indent:     b.Indent,
		}
		for _, r := range b.Runs {
			hr := htmlRun{Text: r.Text, Font: r.Font, Size: r.Size, Bold: r.Bold, Color: r.Color}
			if r.Link != "" {
				hr.Link = safeLink(r.Link)
			}
			if r.Tab {
				hb.Tabbed = true
			}
			if hb.Tabbed {
				hb.TabRuns = append(hb.TabRuns, hr)
			} else {
				hb.Runs = append(hb.Runs, hr)
			}
		}
		if hb.Tabbed {
			hb.Class += " tabbed"
		}
		view.Blocks = append(view.Blocks, hb)
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render HTML: %w", err)
	}
	return buf.Bytes(), nil
}

// safeLink trusts the link schemes the resume header produces and leaves
// anything else to html/template's URL filtering.
func safeLink(link string) any {
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto", "tel":
		return template.URL(link)
	}
	return link
}
