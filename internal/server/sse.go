package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-docgen/internal/conversion"
	"github.com/jonathan/resume-docgen/internal/pipeline"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event carrying the status a plain request would have received.
func (s *SSEWriter) WriteError(message string, status int) {
	s.WriteEvent("error", map[string]any{"error": message, "status": status}) //nolint:errcheck
}

// attemptView is the wire form of a conversion attempt.
type attemptView struct {
	Strategy string `json:"strategy"`
	Outcome  string `json:"outcome"`
}

// CompleteEvent is the payload of the final "complete" event.
type CompleteEvent struct {
	RequestID string          `json:"request_id"`
	Filename  string          `json:"filename"`
	Strategy  string          `json:"strategy,omitempty"`
	Attempts  []attemptView   `json:"attempts,omitempty"`
	Warnings  []string        `json:"warnings,omitempty"`
	Files     []GeneratedFile `json:"files"`
}

// WriteComplete sends a completion event with the generated files inlined.
func (s *SSEWriter) WriteComplete(res *pipeline.Result, files []GeneratedFile) {
	s.WriteEvent("complete", CompleteEvent{ //nolint:errcheck
		RequestID: res.RequestID,
		Filename:  res.Filename,
		Strategy:  res.Strategy,
		Attempts:  attemptViews(res.Attempts),
		Warnings:  res.Warnings,
		Files:     files,
	})
}

func attemptViews(attempts []conversion.Attempt) []attemptView {
	out := make([]attemptView, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, attemptView{Strategy: a.Strategy, Outcome: a.Outcome()})
	}
	return out
}
