// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-docgen/internal/conversion"
	"github.com/jonathan/resume-docgen/internal/types"
)

// EnvPrefix prefixes every environment variable read by FromEnv.
const EnvPrefix = "RESUME_DOCGEN_"

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Output
	OutputDir  string `json:"output_dir,omitempty"`  // Directory receiving generated files
	Filename   string `json:"filename,omitempty"`    // Output stem, derived from the title when it does not match
	NamePrefix string `json:"name_prefix,omitempty"` // First component of derived filenames

	// Style
	Format           string `json:"format,omitempty"` // docx, pdf or both
	FontName         string `json:"font_name,omitempty" validate:"omitempty,oneof='Calibri' 'Arial' 'Times New Roman' 'Georgia' 'Verdana' 'Tahoma' 'Trebuchet MS' 'Comic Sans MS'"`
	FontSize         int    `json:"font_size,omitempty" validate:"omitempty,min=6,max=32"`
	BoldKeywordsPath string `json:"bold_keywords_path,omitempty"` // JSON file with a "skills" array

	// Conversion
	SofficeCommand         string   `json:"soffice_command,omitempty"`    // Office command looked up on PATH
	SofficePaths           []string `json:"soffice_paths,omitempty"`      // Extra install locations tried first
	ConversionTimeout      string   `json:"conversion_timeout,omitempty"` // Go duration, e.g. "60s"
	UseBrowser             bool     `json:"use_browser,omitempty"`        // Enable the headless Chrome strategy
	ChromePath             string   `json:"chrome_path,omitempty"`
	DisableLibraryFallback bool     `json:"disable_library_fallback,omitempty"`

	// Behavior
	Verbose          bool `json:"verbose,omitempty"` // Print detailed debug information
	Port             int  `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	BatchParallelism int  `json:"batch_parallelism,omitempty" validate:"omitempty,min=1,max=64"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		OutputDir:         "output",
		NamePrefix:        "Resume",
		Format:            string(types.FormatBoth),
		FontName:          types.DefaultFontName,
		FontSize:          types.DefaultFontSize,
		SofficeCommand:    conversion.DefaultSofficeCommand,
		ConversionTimeout: conversion.DefaultTimeout.String(),
		Port:              8080,
		BatchParallelism:  4,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads RESUME_DOCGEN_* variables. Unset variables leave fields empty.
func FromEnv() Config {
	get := func(key string) string {
		return strings.TrimSpace(os.Getenv(EnvPrefix + key))
	}
	atoi := func(key string) int {
		n, _ := strconv.Atoi(get(key))
		return n
	}
	flag := func(key string) bool {
		b, _ := strconv.ParseBool(get(key))
		return b
	}

	cfg := Config{
		OutputDir:              get("OUTPUT_DIR"),
		Filename:               get("FILENAME"),
		NamePrefix:             get("NAME_PREFIX"),
		Format:                 get("FORMAT"),
		FontName:               get("FONT_NAME"),
		FontSize:               atoi("FONT_SIZE"),
		BoldKeywordsPath:       get("BOLD_KEYWORDS"),
		SofficeCommand:         get("SOFFICE_COMMAND"),
		ConversionTimeout:      get("CONVERSION_TIMEOUT"),
		UseBrowser:             flag("USE_BROWSER"),
		ChromePath:             get("CHROME_PATH"),
		DisableLibraryFallback: flag("DISABLE_LIBRARY_FALLBACK"),
		Verbose:                flag("VERBOSE"),
		Port:                   atoi("PORT"),
		BatchParallelism:       atoi("BATCH_PARALLELISM"),
	}
	if paths := get("SOFFICE_PATHS"); paths != "" {
		cfg.SofficePaths = filepath.SplitList(paths)
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Format != "" {
		if _, err := types.ParseOutputFormat(c.Format); err != nil {
			return fmt.Errorf("config error: 'format': %w", err)
		}
	}

	if c.ConversionTimeout != "" {
		d, err := time.ParseDuration(c.ConversionTimeout)
		if err != nil {
			return fmt.Errorf("config error: 'conversion_timeout' is not a duration: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'conversion_timeout' must be positive")
		}
	}

	// Validate file paths exist (if specified)
	if c.BoldKeywordsPath != "" {
		if _, err := os.Stat(c.BoldKeywordsPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: bold keywords file not found: %s", c.BoldKeywordsPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file and environment values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&result.OutputDir, defaults.OutputDir)
	fill(&result.Filename, defaults.Filename)
	fill(&result.NamePrefix, defaults.NamePrefix)
	fill(&result.Format, defaults.Format)
	fill(&result.FontName, defaults.FontName)
	fill(&result.BoldKeywordsPath, defaults.BoldKeywordsPath)
	fill(&result.SofficeCommand, defaults.SofficeCommand)
	fill(&result.ConversionTimeout, defaults.ConversionTimeout)
	fill(&result.ChromePath, defaults.ChromePath)

	if len(result.SofficePaths) == 0 {
		result.SofficePaths = defaults.SofficePaths
	}

	// Int fields: use default if zero
	if result.FontSize == 0 {
		result.FontSize = defaults.FontSize
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.BatchParallelism == 0 {
		result.BatchParallelism = defaults.BatchParallelism
	}

	// Bool fields: unset and false look the same, so a true in either source wins
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.DisableLibraryFallback = result.DisableLibraryFallback || defaults.DisableLibraryFallback
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// Style returns the rendering options described by the configuration.
func (c *Config) Style() (types.StyleOptions, error) {
	format, err := types.ParseOutputFormat(c.Format)
	if err != nil {
		return types.StyleOptions{}, err
	}
	style := types.StyleOptions{FontName: c.FontName, FontSize: c.FontSize, Format: format}.WithDefaults()
	if err := style.Validate(); err != nil {
		return types.StyleOptions{}, err
	}
	return style, nil
}

// ConversionOptions returns the converter chain settings.
func (c *Config) ConversionOptions() conversion.Options {
	opts := conversion.Options{
		SofficeCommand: c.SofficeCommand,
		SofficePaths:   c.SofficePaths,
		UseBrowser:     c.UseBrowser,
		ChromePath:     c.ChromePath,
		DisableLibrary: c.DisableLibraryFallback,
	}
	if d, err := time.ParseDuration(c.ConversionTimeout); err == nil && d > 0 {
		opts.Timeout = d
	}
	return opts
}
