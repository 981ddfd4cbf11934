package conversion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultSofficeCommand is looked up on PATH by SofficeStrategy.
const DefaultSofficeCommand = "soffice"

// DefaultSofficePaths are the well-known install locations tried when the
// command is not on PATH.
var DefaultSofficePaths = []string{
	`C:\Program Files\LibreOffice\program\soffice.exe`,
	`C:\Program Files (x86)\LibreOffice\program\soffice.exe`,
	"/usr/bin/libreoffice",
	"/usr/bin/soffice",
	"/Applications/LibreOffice.app/Contents/MacOS/soffice",
	"/usr/lib/libreoffice/program/soffice",
	"/opt/libreoffice/program/soffice",
	"/snap/bin/libreoffice",
}

// SofficeStrategy runs a headless LibreOffice found on PATH.
type SofficeStrategy struct {
	Command string
	Timeout time.Duration
}

func (s *SofficeStrategy) Name() string { return "soffice" }

func (s *SofficeStrategy) Convert(ctx context.Context, docxPath, pdfPath string) error {
	command := s.Command
	if command == "" {
		command = DefaultSofficeCommand
	}
	binary, err := exec.LookPath(command)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrExecutableNotFound, command)
	}
	return convertWithSoffice(ctx, binary, s.Timeout, docxPath, pdfPath)
}

// SofficePathsStrategy runs LibreOffice from the first existing fixed
// location. It is only attempted when the PATH lookup found nothing.
type SofficePathsStrategy struct {
	Paths   []string
	Timeout time.Duration
}

func (s *SofficePathsStrategy) Name() string { return "soffice-paths" }

// ShouldAttempt is true when the soffice strategy failed because the
// executable was missing, or was never part of the chain.
func (s *SofficePathsStrategy) ShouldAttempt(history []Attempt) bool {
	for _, a := range history {
		if a.Strategy == "soffice" && !a.Skipped {
			return errors.Is(a.Err, ErrExecutableNotFound)
		}
	}
	return true
}

func (s *SofficePathsStrategy) Convert(ctx context.Context, docxPath, pdfPath string) error {
	binary := firstExisting(s.Paths)
	if binary == "" {
		return fmt.Errorf("%w: no LibreOffice installation at known locations", ErrUnavailable)
	}
	return convertWithSoffice(ctx, binary, s.Timeout, docxPath, pdfPath)
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// convertWithSoffice runs "soffice --headless --convert-to pdf" with a
// throwaway user profile so a running office instance cannot swallow the job.
func convertWithSoffice(ctx context.Context, binary string, timeout time.Duration, docxPath, pdfPath string) error {
	docxAbs, pdfAbs, err := absPaths(docxPath, pdfPath)
	if err != nil {
		return err
	}

	profile, err := os.MkdirTemp("", "resume-docgen-soffice-*")
	if err != nil {
		return fmt.Errorf("failed to create office profile directory: %w", err)
	}
	defer os.RemoveAll(profile)

	outDir := filepath.Dir(pdfAbs)
	err = runCommand(ctx, timeout, binary,
		"-env:UserInstallation="+fileURL(profile),
		"--headless",
		"--convert-to", "pdf",
		"--outdir", outDir,
		docxAbs,
	)
	if err != nil {
		return err
	}

	// soffice names the output after the input stem.
	produced := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(docxAbs), filepath.Ext(docxAbs))+".pdf")
	if produced != pdfAbs {
		if err := os.Rename(produced, pdfAbs); err != nil {
			return fmt.Errorf("failed to move converted PDF: %w", err)
		}
	}
	return nil
}

func fileURL(path string) string {
	slashed := filepath.ToSlash(path)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	return "file://" + slashed
}
