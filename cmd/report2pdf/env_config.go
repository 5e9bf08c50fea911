package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-report2pdf/internal/config"
)

// envPrefix namespaces the environment variables read by the CLI.
const envPrefix = "REPORT2PDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // REPORT2PDF_CONFIG: config file name or path
	OutputDir  string // REPORT2PDF_OUTPUT_DIR: default output directory
	Date       string // REPORT2PDF_DATE: date line
	Locale     string // REPORT2PDF_LOCALE: month names for auto dates
	Font       string // REPORT2PDF_FONT: font family
	Addr       string // REPORT2PDF_ADDR: server listen address
	MaxPages   int    // REPORT2PDF_MAX_PAGES: page cap per document
	Workers    int    // REPORT2PDF_WORKERS: parallel workers
}

// knownEnvVars lists valid REPORT2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"REPORT2PDF_CONFIG":     true,
	"REPORT2PDF_OUTPUT_DIR": true,
	"REPORT2PDF_DATE":       true,
	"REPORT2PDF_LOCALE":     true,
	"REPORT2PDF_FONT":       true,
	"REPORT2PDF_ADDR":       true,
	"REPORT2PDF_MAX_PAGES":  true,
	"REPORT2PDF_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed or non-positive numbers are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("REPORT2PDF_CONFIG"),
		OutputDir:  getenv("REPORT2PDF_OUTPUT_DIR"),
		Date:       getenv("REPORT2PDF_DATE"),
		Locale:     getenv("REPORT2PDF_LOCALE"),
		Font:       getenv("REPORT2PDF_FONT"),
		Addr:       getenv("REPORT2PDF_ADDR"),
	}
	if n, err := strconv.Atoi(getenv("REPORT2PDF_MAX_PAGES")); err == nil && n > 0 {
		cfg.MaxPages = n
	}
	if n, err := strconv.Atoi(getenv("REPORT2PDF_WORKERS")); err == nil && n > 0 {
		cfg.Workers = n
	}
	return cfg
}

// warnUnknownEnvVars prints warnings for unrecognized REPORT2PDF_* variables.
// Helps catch typos like REPORT2PDF_FONTS instead of REPORT2PDF_FONT.
func warnUnknownEnvVars(env *Environment) {
	if env.Environ == nil {
		return
	}
	for _, kv := range env.Environ() {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(env.Stderr, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment values over the config file.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by the merge functions).
func applyEnvConfig(ec *envConfig, cfg *config.Config) {
	if ec.OutputDir != "" {
		cfg.Output.DefaultDir = ec.OutputDir
	}
	if ec.Date != "" {
		cfg.Document.Date = ec.Date
	}
	if ec.Locale != "" {
		cfg.Document.Locale = ec.Locale
	}
	if ec.Font != "" {
		cfg.Fonts.Family = ec.Font
	}
	if ec.Addr != "" {
		cfg.Server.Addr = ec.Addr
	}
	if ec.MaxPages > 0 {
		cfg.Limits.MaxPages = ec.MaxPages
	}
}

// loadConfig builds the effective configuration: defaults or the named
// file, then environment overrides. The flag value wins over
// REPORT2PDF_CONFIG. Validation is left to the caller, after flags merge.
func loadConfig(name string, env *Environment) (*config.Config, *envConfig, error) {
	ec := loadEnvConfig(env.getenv)
	if name == "" {
		name = ec.ConfigPath
	}

	var cfg *config.Config
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, nil, &configLoadError{name: name, err: err}
		}
		cfg = loaded
	} else {
		cfg = env.defaultConfig()
	}

	applyEnvConfig(ec, cfg)
	return cfg, ec, nil
}
