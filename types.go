package report2pdf

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/alnah/go-report2pdf/internal/layout"
)

// Margin bounds in millimetres.
const (
	MinMargin     = layout.MinMargin
	MaxMargin     = layout.MaxMargin
	DefaultMargin = 20.0
)

// Body font size bounds in points.
const (
	MinFontSize     = layout.MinBodySize
	MaxFontSize     = layout.MaxBodySize
	DefaultFontSize = 10.0
)

// DefaultMaxPages caps a single document unless WithMaxPages says otherwise.
const DefaultMaxPages = 500

// Default texts of the closing block and footer.
const (
	DefaultSignatureLabel   = layout.DefaultSignatureLabel
	DefaultSignatureCaption = layout.DefaultSignatureCaption
	DefaultFooterFormat     = layout.DefaultFooterFormat
)

// FontFamilies lists the accepted values of PageSettings.FontFamily.
func FontFamilies() []string {
	return append([]string(nil), layout.Families...)
}

// PageSettings configures page geometry and typography. Pages are always
// A4 portrait.
type PageSettings struct {
	Margin     float64 // millimetres, applied to all sides (0 = default)
	FontFamily string  // "helvetica", "times", "courier" (empty = helvetica)
	FontSize   float64 // body size in points (0 = default)
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if p.Margin != 0 && (p.Margin < MinMargin || p.Margin > MaxMargin) {
		return fmt.Errorf("%w: %.1fmm (must be between %.0f and %.0f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	if p.FontSize != 0 && (p.FontSize < MinFontSize || p.FontSize > MaxFontSize) {
		return fmt.Errorf("%w: %.1fpt (must be between %.0f and %.0f)", ErrInvalidFontSize, p.FontSize, MinFontSize, MaxFontSize)
	}
	if p.FontFamily != "" {
		if err := layout.ValidateFamily(p.FontFamily); err != nil {
			return err
		}
	}
	return nil
}

// Header configures the running header printed at the top of every page.
type Header struct {
	Disabled bool
	Text     string // empty = document title
}

// Footer configures the page footer.
type Footer struct {
	// Format is expanded per page; {page} and {total} are substituted.
	// Empty means DefaultFooterFormat.
	Format string
}

// Validate checks that footer settings are valid.
// Returns nil if f is nil (nil means default footer).
func (f *Footer) Validate() error {
	if f == nil || f.Format == "" {
		return nil
	}
	if err := layout.ValidateFooterFormat(f.Format); err != nil {
		return fmt.Errorf("%w: %q", err, f.Format)
	}
	return nil
}

// Signature configures the closing signature block.
type Signature struct {
	Label   string // empty = DefaultSignatureLabel
	Caption string // empty = DefaultSignatureCaption
}

// TableSettings configures table rendering.
type TableSettings struct {
	// NoHeaderRepeat keeps the header row on the first page only when a
	// table spills onto the next page.
	NoHeaderRepeat bool
}

// Input contains rendering parameters.
type Input struct {
	Title    string // Report title (required), shown on page 1 and in the running header
	Content  string // Report body: plain text, pseudo-Markdown or HTML (required)
	FileName string // Output file name (optional, defaults to the title)
	Date     string // Line under the title (optional, already resolved)

	Page      *PageSettings  // nil = defaults
	Header    *Header        // nil = title as running header
	Footer    *Footer        // nil = "Page {page} of {total}"
	Signature *Signature     // nil = default label and caption
	Table     *TableSettings // nil = defaults
}

// Placement records where one element of the document was drawn.
type Placement struct {
	Kind    string // "title", "blank", "heading", "list-item", "paragraph", "table", "signature"
	Text    string
	Page    int // page the element starts on
	EndPage int // page the element ends on
	Top     float64
	Bottom  float64
	Lines   int // wrapped lines, text elements only
	Rows    int // table rows including the header
}

// Result contains the output of a render.
type Result struct {
	PDF        []byte
	FileName   string // Safe file name, including the .pdf extension
	Pages      int
	Lines      int // Input lines after text preparation
	Placements []Placement
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for render diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithClock sets the clock used for the PDF creation date. A fixed clock
// makes output byte-for-byte reproducible.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// WithMaxPages caps the page count of a document. Renders that need more
// pages fail with ErrLayoutOverflow.
// Panics if n <= 0 (programmer error, similar to time.NewTicker).
func WithMaxPages(n int) Option {
	if n <= 0 {
		panic("report2pdf: WithMaxPages requires a positive page count")
	}
	return func(r *Renderer) {
		r.maxPages = n
	}
}

// WithVerification re-reads every produced PDF with pdfcpu and checks its
// page count and footers before returning it.
func WithVerification(enabled bool) Option {
	return func(r *Renderer) {
		r.verify = enabled
	}
}
