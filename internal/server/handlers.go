package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-docgen/internal/pipeline"
	"github.com/jonathan/resume-docgen/internal/server/middleware"
	"github.com/jonathan/resume-docgen/internal/types"
)

// Content types of generated files.
const (
	ContentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypePDF  = "application/pdf"
	ContentTypeZip  = "application/zip"
)

// Response headers describing the conversion outcome.
const (
	HeaderConversionWarning  = "X-Conversion-Warning"
	HeaderConversionStrategy = "X-Conversion-Strategy"
)

// GenerateOptions mirrors the style and filename choices of the CLI.
type GenerateOptions struct {
	Format     string `json:"format,omitempty"`
	FontName   string `json:"font_name,omitempty"`
	FontSize   int    `json:"font_size,omitempty"`
	Filename   string `json:"filename,omitempty"`
	NamePrefix string `json:"name_prefix,omitempty"`
	// BoldKeywords replaces the server's keyword file when present, even if empty.
	BoldKeywords []string `json:"bold_keywords,omitempty"`
}

// GenerateRequest is the body of POST /resumes.
type GenerateRequest struct {
	Resume  json.RawMessage `json:"resume"`
	Options GenerateOptions `json:"options"`
}

// GeneratedFile is one output returned by the streaming endpoint.
type GeneratedFile struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// FilenameRequest is the body of POST /filename.
type FilenameRequest struct {
	Title      string `json:"title"`
	NamePrefix string `json:"name_prefix,omitempty"`
	Filename   string `json:"filename,omitempty"`
}

// decodeGenerateRequest reads the body and builds a pipeline request rooted in outDir.
func (s *Server) decodeGenerateRequest(w http.ResponseWriter, r *http.Request, outDir string) (pipeline.Request, error) {
	var body GenerateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return pipeline.Request{}, err
		}
		return pipeline.Request{}, &ErrValidation{Field: "body", Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if len(bytes.TrimSpace(body.Resume)) == 0 || string(bytes.TrimSpace(body.Resume)) == "null" {
		return pipeline.Request{}, &ErrValidation{Field: "resume", Message: "is required"}
	}

	opts := body.Options
	formatName := opts.Format
	if formatName == "" {
		formatName = s.defaults.Format
	}
	format, err := types.ParseOutputFormat(formatName)
	if err != nil {
		return pipeline.Request{}, &ErrValidation{Field: "options.format", Message: err.Error()}
	}

	style := types.StyleOptions{FontName: opts.FontName, FontSize: opts.FontSize, Format: format}
	if style.FontName == "" {
		style.FontName = s.defaults.FontName
	}
	if style.FontSize == 0 {
		style.FontSize = s.defaults.FontSize
	}

	prefix := opts.NamePrefix
	if prefix == "" {
		prefix = s.defaults.NamePrefix
	}

	req := pipeline.Request{
		RecordJSON: body.Resume,
		OutputDir:  outDir,
		Filename:   opts.Filename,
		NamePrefix: prefix,
		Style:      style,
		RequestID:  middleware.GetRequestID(r.Context()),
	}
	if opts.BoldKeywords != nil {
		req.Keywords = opts.BoldKeywords
	} else {
		req.KeywordsPath = s.defaults.BoldKeywordsPath
	}
	return req, nil
}

// handleGenerate renders a resume and returns the requested file. The
// both format returns a zip of the two files, or only the .docx with a
// warning header when the PDF could not be produced.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	outDir, err := os.MkdirTemp("", "resume-docgen-*")
	if err != nil {
		s.errorResponse(w, r, &pipeline.IOError{Op: "create temp directory", Path: os.TempDir(), Cause: err})
		return
	}
	defer os.RemoveAll(outDir)

	req, err := s.decodeGenerateRequest(w, r, outDir)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	res, err := s.generator.Generate(r.Context(), req)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	if res.Strategy != "" {
		w.Header().Set(HeaderConversionStrategy, res.Strategy)
	}
	if req.Style.Format == types.FormatBoth && res.PDFPath == "" {
		w.Header().Set(HeaderConversionWarning, headerSafe(conversionWarning(res)))
	}

	files, err := collectFiles(res)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	if len(files) == 1 {
		writeAttachment(w, files[0].Name, files[0].ContentType, files[0].Data)
		return
	}

	var buf bytes.Buffer
	if err := writeZip(&buf, files); err != nil {
		s.errorResponse(w, r, &pipeline.IOError{Op: "bundle", Path: res.Filename + ".zip", Cause: err})
		return
	}
	writeAttachment(w, res.Filename+".zip", ContentTypeZip, buf.Bytes())
}

// handleGenerateStream reports progress as server-sent events and delivers
// the generated files in the final "complete" event.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	outDir, err := os.MkdirTemp("", "resume-docgen-*")
	if err != nil {
		s.errorResponse(w, r, &pipeline.IOError{Op: "create temp directory", Path: os.TempDir(), Cause: err})
		return
	}
	defer os.RemoveAll(outDir)

	req, err := s.decodeGenerateRequest(w, r, outDir)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	progress := make(chan pipeline.ProgressEvent, 16)
	req.OnProgress = func(ev pipeline.ProgressEvent) {
		select {
		case progress <- ev:
		default:
		}
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	done := pipeline.NewWorker(s.generator).Start(ctx, req)

	for {
		select {
		case ev := <-progress:
			if err := sse.WriteEvent("progress", ev); err != nil {
				return
			}
		case c := <-done:
			// Drain events emitted just before completion.
			for len(progress) > 0 {
				sse.WriteEvent("progress", <-progress) //nolint:errcheck
			}
			if c.Err != nil {
				sse.WriteError(c.Err.Error(), HTTPStatus(c.Err))
				return
			}
			files, err := collectFiles(c.Result)
			if err != nil {
				sse.WriteError(err.Error(), HTTPStatus(err))
				return
			}
			sse.WriteComplete(c.Result, files)
			return
		case <-r.Context().Done():
			cancel()
			<-done
			return
		}
	}
}

// handleFilename derives the output stem for a title.
func (s *Server) handleFilename(w http.ResponseWriter, r *http.Request) {
	var body FilenameRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&body); err != nil {
		s.errorResponse(w, r, &ErrValidation{Field: "body", Message: fmt.Sprintf("invalid JSON: %v", err)})
		return
	}
	prefix := body.NamePrefix
	if prefix == "" {
		prefix = s.defaults.NamePrefix
	}
	name := pipeline.ResolveFilename(body.Filename, prefix, body.Title, pipeline.DefaultFilename(prefix))
	s.jsonResponse(w, http.StatusOK, map[string]string{"filename": name})
}

// handleFonts lists the font families accepted in options.font_name.
func (s *Server) handleFonts(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"fonts":   types.FontFamilies,
		"default": s.defaults.FontName,
	})
}

func collectFiles(res *pipeline.Result) ([]GeneratedFile, error) {
	var files []GeneratedFile
	add := func(path, contentType string) error {
		if path == "" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return &pipeline.IOError{Op: "read", Path: path, Cause: err}
		}
		files = append(files, GeneratedFile{Name: filepath.Base(path), ContentType: contentType, Data: data})
		return nil
	}
	if err := add(res.DocxPath, ContentTypeDocx); err != nil {
		return nil, err
	}
	if err := add(res.PDFPath, ContentTypePDF); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, &pipeline.IOError{Op: "read", Path: res.Filename, Cause: os.ErrNotExist}
	}
	return files, nil
}

func writeZip(w io.Writer, files []GeneratedFile) error {
	zw := zip.NewWriter(w)
	for _, f := range files {
		fw, err := zw.Create(f.Name)
		if err != nil {
			return err
		}
		if _, err := fw.Write(f.Data); err != nil {
			return err
		}
	}
	return zw.Close()
}

//nolint:errcheck // client disconnects are not recoverable
func writeAttachment(w http.ResponseWriter, name, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func conversionWarning(res *pipeline.Result) string {
	for _, warn := range res.Warnings {
		if strings.HasPrefix(warn, "PDF not produced") {
			return warn
		}
	}
	return "PDF not produced"
}

// maxHeaderBytes caps the length of a warning header value.
const maxHeaderBytes = 512

// headerSafe flattens a message onto one printable line of valid UTF-8.
func headerSafe(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, s)
	if len(s) > maxHeaderBytes {
		cut := maxHeaderBytes - len("...")
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return s
}
