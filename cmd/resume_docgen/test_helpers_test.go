package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-docgen/internal/config"
)

const testRecord = `{
  "name": "Jane Doe",
  "title": "Data Engineer",
  "contact": {"email": "jane@example.com", "linkedin": "https://linkedin.com/in/jane"},
  "professional_summary": ["Built Python pipelines on AWS"],
  "technical_skills": {"Languages": ["Python", "Go"]},
  "experience": [{"role": "Engineer", "company": "Acme", "duration": "2020 - Present", "responsibilities": ["Tuned Python jobs"]}],
  "education": {"degree": "BSc", "field": "CS", "institution": "MIT", "year": "2015"},
  "certifications": ["AWS Certified Developer"]
}`

// getBinaryPath returns the path to the resume_docgen binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "resume_docgen"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/resume_docgen ./cmd/resume_docgen'", binaryPath)
	}

	return binaryPath
}

func writeRecord(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// testConfig resolves defaults with office lookups pointed at nothing.
func testConfig(t *testing.T, overrides config.Config) config.Config {
	t.Helper()
	if overrides.SofficeCommand == "" {
		overrides.SofficeCommand = "resume-docgen-no-such-office"
	}
	cfg, err := resolveConfig("", overrides)
	require.NoError(t, err)
	return cfg
}
