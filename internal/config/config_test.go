package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-docgen/internal/types"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"output_dir": "out",
		"format": "PDF Only",
		"font_name": "Georgia",
		"font_size": 12,
		"soffice_paths": ["/opt/office/soffice"],
		"conversion_timeout": "30s",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "PDF Only", cfg.Format)
	assert.Equal(t, "Georgia", cfg.FontName)
	assert.Equal(t, 12, cfg.FontSize)
	assert.Equal(t, []string{"/opt/office/soffice"}, cfg.SofficePaths)
	assert.True(t, cfg.Verbose)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_UnknownFont(t *testing.T) {
	cfg := &Config{FontName: "Papyrus"}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "FontName")
}

func TestValidate_FontSizeRange(t *testing.T) {
	cfg := &Config{FontSize: 40}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "FontSize")
}

func TestValidate_Format(t *testing.T) {
	cfg := &Config{Format: "rtf"}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "format")
}

func TestValidate_Timeout(t *testing.T) {
	cfg := &Config{ConversionTimeout: "soon"}
	assert.ErrorContains(t, cfg.Validate(), "conversion_timeout")

	cfg = &Config{ConversionTimeout: "-5s"}
	assert.ErrorContains(t, cfg.Validate(), "must be positive")
}

func TestValidate_MissingKeywordsFile(t *testing.T) {
	cfg := &Config{BoldKeywordsPath: filepath.Join(t.TempDir(), "missing.json")}
	assert.ErrorContains(t, cfg.Validate(), "bold keywords file not found")
}

func TestValidate_ValidConfig(t *testing.T) {
	defaults := Defaults()
	assert.NoError(t, defaults.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{
		OutputDir: "custom",
		FontSize:  10,
	}

	merged := partial.MergeWithDefaults(Defaults())

	// Custom values should be preserved
	assert.Equal(t, "custom", merged.OutputDir)
	assert.Equal(t, 10, merged.FontSize)

	// Default values should fill in empty fields
	assert.Equal(t, "Resume", merged.NamePrefix)
	assert.Equal(t, "both", merged.Format)
	assert.Equal(t, "Calibri", merged.FontName)
	assert.Equal(t, "soffice", merged.SofficeCommand)
	assert.Equal(t, "1m0s", merged.ConversionTimeout)
	assert.Equal(t, 8080, merged.Port)
}

func TestMergeWithDefaults_Bools(t *testing.T) {
	cfg := Config{}
	merged := cfg.MergeWithDefaults(Config{UseBrowser: true})
	assert.True(t, merged.UseBrowser)
	assert.False(t, merged.DisableLibraryFallback)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("RESUME_DOCGEN_OUTPUT_DIR", "/tmp/resumes")
	t.Setenv("RESUME_DOCGEN_FONT_SIZE", "12")
	t.Setenv("RESUME_DOCGEN_USE_BROWSER", "true")
	t.Setenv("RESUME_DOCGEN_SOFFICE_PATHS", "/a/soffice"+string(os.PathListSeparator)+"/b/soffice")
	t.Setenv("RESUME_DOCGEN_PORT", "not-a-number")

	cfg := FromEnv()
	assert.Equal(t, "/tmp/resumes", cfg.OutputDir)
	assert.Equal(t, 12, cfg.FontSize)
	assert.True(t, cfg.UseBrowser)
	assert.Equal(t, []string{"/a/soffice", "/b/soffice"}, cfg.SofficePaths)
	assert.Zero(t, cfg.Port)
}

func TestStyle(t *testing.T) {
	cfg := Config{Format: "DOCX Only", FontName: "Arial"}
	style, err := cfg.Style()
	require.NoError(t, err)
	assert.Equal(t, types.StyleOptions{FontName: "Arial", FontSize: 11, Format: types.FormatDocx}, style)

	cfg = Config{Format: "odt"}
	_, err = cfg.Style()
	assert.Error(t, err)
}

func TestConversionOptions(t *testing.T) {
	cfg := Config{
		SofficeCommand:         "lowriter",
		ConversionTimeout:      "45s",
		UseBrowser:             true,
		DisableLibraryFallback: true,
	}
	opts := cfg.ConversionOptions()
	assert.Equal(t, "lowriter", opts.SofficeCommand)
	assert.Equal(t, 45*time.Second, opts.Timeout)
	assert.True(t, opts.UseBrowser)
	assert.True(t, opts.DisableLibrary)
}
