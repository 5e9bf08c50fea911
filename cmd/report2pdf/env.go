package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-report2pdf/internal/config"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Getenv reads REPORT2PDF_* overrides.
	Getenv func(string) string
	// Environ lists the process environment for typo detection.
	Environ func() []string
	Config  *config.Config
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		Config:  config.DefaultConfig(),
	}
}

// getenv reads an environment variable, treating a nil Getenv as empty.
func (e *Environment) getenv(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return e.Getenv(key)
}

// defaultConfig returns a copy of the base configuration so commands can
// merge flags without mutating the shared value.
func (e *Environment) defaultConfig() *config.Config {
	if e.Config == nil {
		return config.DefaultConfig()
	}
	cfg := *e.Config
	return &cfg
}
