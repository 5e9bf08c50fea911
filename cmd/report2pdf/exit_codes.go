package main

import (
	"errors"
	"os"

	report2pdf "github.com/alnah/go-report2pdf"
	"github.com/alnah/go-report2pdf/internal/config"
	"github.com/alnah/go-report2pdf/internal/dateutil"
	"github.com/alnah/go-report2pdf/internal/fileutil"
)

// Exit codes for the report2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful render
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, write failure
	ExitLayout  = 4 // Content could not be paginated
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Layout errors (exit 4)
	if errors.Is(err, report2pdf.ErrLayoutOverflow) {
		return ExitLayout
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, report2pdf.ErrWritePDF) ||
		errors.Is(err, fileutil.ErrNotDir) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrOutOfRange) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, dateutil.ErrUnknownLocale) ||
		errors.Is(err, report2pdf.ErrEmptyTitle) ||
		errors.Is(err, report2pdf.ErrEmptyContent) ||
		errors.Is(err, report2pdf.ErrInvalidMargin) ||
		errors.Is(err, report2pdf.ErrInvalidFontSize) ||
		errors.Is(err, report2pdf.ErrInvalidFontFamily) ||
		errors.Is(err, report2pdf.ErrInvalidFooterFormat) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) {
		return ExitUsage
	}

	return ExitGeneral
}
