package report2pdf

import (
	"errors"

	"github.com/alnah/go-report2pdf/internal/layout"
)

// Sentinel errors for library operations.
var (
	ErrEmptyContent  = errors.New("report content cannot be empty")
	ErrEmptyTitle    = errors.New("report title cannot be empty")
	ErrPDFGeneration = errors.New("PDF generation failed")
	ErrWritePDF      = errors.New("writing PDF failed")
	ErrVerification  = errors.New("PDF verification failed")

	// ErrLayoutOverflow reports content that cannot be paginated: a single
	// line or table row taller than a page, or more pages than allowed.
	ErrLayoutOverflow = layout.ErrOverflow

	// Page settings validation errors.
	ErrInvalidMargin     = errors.New("invalid margin")
	ErrInvalidFontSize   = errors.New("invalid font size")
	ErrInvalidFontFamily = layout.ErrFontFamily

	// Footer validation errors.
	ErrInvalidFooterFormat = layout.ErrFooterFormat
)
