// Package config loads and validates the YAML configuration of the report
// renderer. Values from the file are decoded over DefaultConfig, so a file
// only needs the keys it changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-report2pdf/internal/dateutil"
	"github.com/alnah/go-report2pdf/internal/fileutil"
	"github.com/alnah/go-report2pdf/internal/layout"
	"github.com/alnah/go-report2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrOutOfRange      = errors.New("value out of range")
	ErrInvalidValue    = errors.New("invalid value")
)

// AppName names the directory searched under the user config dir.
const AppName = "go-report2pdf"

// Field length limits for multi-tenant safety.
const (
	MaxTitleLength        = 200 // Report title
	MaxDateLength         = 60  // "auto:extenso" or "19 de outubro de 2026"
	MaxLabelLength        = 100 // Signature label
	MaxCaptionLength      = 100 // Signature caption
	MaxHeaderTextLength   = 200 // Running header override
	MaxFooterFormatLength = 60  // "Page {page} of {total}"
	MaxAddrLength         = 100 // host:port
	MaxPathLength         = 4096
)

// Numeric limits.
const (
	DefaultMaxPages     = 500
	MaxMaxPages         = 10000
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 1 << 20
	MinMaxBodyBytes     = 1 << 10
	MaxMaxBodyBytes     = 32 << 20
	DefaultTimeout      = 30
	MaxTimeout          = 600
)

// Config holds all configuration for report generation.
type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Document  DocumentConfig  `yaml:"document"`
	Page      PageConfig      `yaml:"page"`
	Fonts     FontsConfig     `yaml:"fonts"`
	Header    HeaderConfig    `yaml:"header"`
	Footer    FooterConfig    `yaml:"footer"`
	Signature SignatureConfig `yaml:"signature"`
	Table     TableConfig     `yaml:"table"`
	Limits    LimitsConfig    `yaml:"limits"`
	Server    ServerConfig    `yaml:"server"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the source, or cwd for stdin
}

// DocumentConfig defines the title block.
type DocumentConfig struct {
	Title  string `yaml:"title"`  // Empty = derived from the input file name
	Date   string `yaml:"date"`   // Literal text or "auto", "auto:FORMAT", "auto:preset"
	Locale string `yaml:"locale"` // Month names for auto dates: en, pt, es, fr
}

// PageConfig defines page geometry.
type PageConfig struct {
	Margin float64 `yaml:"margin"` // millimetres, all sides
}

// FontsConfig defines typography.
type FontsConfig struct {
	Family   string  `yaml:"family"`   // helvetica, times, courier
	BodySize float64 `yaml:"bodySize"` // points
}

// HeaderConfig defines the running header.
type HeaderConfig struct {
	Enabled bool   `yaml:"enabled"`
	Text    string `yaml:"text"` // Empty = document title
}

// FooterConfig defines the page footer.
type FooterConfig struct {
	Format string `yaml:"format"` // {page} and {total} are substituted
}

// SignatureConfig defines the closing signature block.
type SignatureConfig struct {
	Label   string `yaml:"label"`
	Caption string `yaml:"caption"`
}

// TableConfig defines table rendering options.
type TableConfig struct {
	RepeatHeader bool `yaml:"repeatHeader"` // Repeat the header row after a page break
}

// LimitsConfig bounds a single render.
type LimitsConfig struct {
	MaxPages int  `yaml:"maxPages"`
	Verify   bool `yaml:"verify"` // Re-read the output with pdfcpu
}

// ServerConfig defines the HTTP service.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	MaxBodyBytes   int64  `yaml:"maxBodyBytes"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Document: DocumentConfig{Locale: dateutil.DefaultLocale},
		Page:     PageConfig{Margin: layout.DefaultStyle().Margin},
		Fonts: FontsConfig{
			Family:   layout.Families[0],
			BodySize: layout.DefaultStyle().BodySize,
		},
		Header:    HeaderConfig{Enabled: true},
		Footer:    FooterConfig{Format: layout.DefaultFooterFormat},
		Signature: SignatureConfig{Label: layout.DefaultSignatureLabel, Caption: layout.DefaultSignatureCaption},
		Table:     TableConfig{RepeatHeader: true},
		Limits:    LimitsConfig{MaxPages: DefaultMaxPages},
		Server: ServerConfig{
			Addr:           DefaultAddr,
			MaxBodyBytes:   DefaultMaxBodyBytes,
			TimeoutSeconds: DefaultTimeout,
		},
	}
}

// Validate checks field lengths and ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., API adapters, library users).
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.date", c.Document.Date, MaxDateLength},
		{"header.text", c.Header.Text, MaxHeaderTextLength},
		{"footer.format", c.Footer.Format, MaxFooterFormatLength},
		{"signature.label", c.Signature.Label, MaxLabelLength},
		{"signature.caption", c.Signature.Caption, MaxCaptionLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if err := dateutil.ValidateLocale(c.Document.Locale); err != nil {
		return fmt.Errorf("%w: document.locale: %w", ErrInvalidValue, err)
	}
	if err := layout.ValidateFamily(c.Fonts.Family); err != nil {
		return fmt.Errorf("%w: fonts.family: %w", ErrInvalidValue, err)
	}
	if c.Footer.Format != "" {
		if err := layout.ValidateFooterFormat(c.Footer.Format); err != nil {
			return fmt.Errorf("%w: footer.format: %w", ErrInvalidValue, err)
		}
	}

	if err := validateRange("page.margin", c.Page.Margin, layout.MinMargin, layout.MaxMargin); err != nil {
		return err
	}
	if err := validateRange("fonts.bodySize", c.Fonts.BodySize, layout.MinBodySize, layout.MaxBodySize); err != nil {
		return err
	}
	if err := validateRange("limits.maxPages", float64(c.Limits.MaxPages), 1, MaxMaxPages); err != nil {
		return err
	}
	if err := validateRange("server.maxBodyBytes", float64(c.Server.MaxBodyBytes), MinMaxBodyBytes, MaxMaxBodyBytes); err != nil {
		return err
	}
	if err := validateRange("server.timeoutSeconds", float64(c.Server.TimeoutSeconds), 1, MaxTimeout); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateRange checks that value lies in [lo, hi].
func validateRange(fieldName string, value, lo, hi float64) error {
	if value < lo || value > hi {
		return fmt.Errorf("%w: %s = %g (must be between %g and %g)", ErrOutOfRange, fieldName, value, lo, hi)
	}
	return nil
}

// YAML encodes the configuration, for display of the effective settings.
func (c *Config) YAML() ([]byte, error) {
	return yamlutil.Marshal(c)
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.ReadFileStrict(configPath, cfg); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the locations tried for a config name, in order:
// the current directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
