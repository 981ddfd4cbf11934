package conversion

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// wdFormatPDF is Word's SaveAs file format code for PDF.
const wdFormatPDF = 17

// WordStrategy drives Microsoft Word through COM automation. It only runs on
// Windows, where Word is reached through PowerShell.
type WordStrategy struct {
	Timeout time.Duration
	goos    string
}

// NewWordStrategy returns a WordStrategy for the current OS.
func NewWordStrategy(timeout time.Duration) *WordStrategy {
	return &WordStrategy{Timeout: timeout, goos: runtime.GOOS}
}

func (s *WordStrategy) Name() string { return "word" }

func (s *WordStrategy) Convert(ctx context.Context, docxPath, pdfPath string) error {
	if s.goos != "windows" {
		return fmt.Errorf("%w: Word automation requires Windows", ErrUnavailable)
	}

	shell, err := exec.LookPath("powershell")
	if err != nil {
		return fmt.Errorf("%w: powershell", ErrExecutableNotFound)
	}

	docxAbs, pdfAbs, err := absPaths(docxPath, pdfPath)
	if err != nil {
		return err
	}

	return runCommand(ctx, s.Timeout, shell, "-NoProfile", "-NonInteractive", "-Command", wordScript(docxAbs, pdfAbs))
}

// wordScript opens the document read-only, saves it as PDF and always quits Word.
func wordScript(docxPath, pdfPath string) string {
	return fmt.Sprintf(`$ErrorActionPreference = 'Stop'
$word = New-Object -ComObject Word.Application
$word.Visible = $false
$word.DisplayAlerts = 0
try {
  $doc = $word.Documents.Open(%s, $false, $true)
  try {
    $doc.SaveAs([ref] %s, [ref] %d)
  } finally {
    $doc.Close([ref] 0)
  }
} finally {
  $word.Quit()
  [void][System.Runtime.InteropServices.Marshal]::ReleaseComObject($word)
}`, psQuote(docxPath), psQuote(pdfPath), wdFormatPDF)
}

// psQuote makes a PowerShell single-quoted string literal.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
