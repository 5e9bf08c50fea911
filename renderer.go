package report2pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/alnah/go-report2pdf/internal/classify"
	"github.com/alnah/go-report2pdf/internal/layout"
	"github.com/alnah/go-report2pdf/internal/pdfcheck"
	"github.com/alnah/go-report2pdf/internal/textprep"
)

// Creator is written to the PDF metadata of every document.
const Creator = "go-report2pdf"

// ctxCheckInterval is how many lines are laid out between context checks.
const ctxCheckInterval = 64

// Renderer lays out reports and produces PDF documents.
// A Renderer holds no per-document state and is safe for concurrent use.
type Renderer struct {
	logger   *slog.Logger
	now      func() time.Time
	maxPages int
	verify   bool
}

// NewRenderer creates a Renderer with the given options.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render classifies every line of in.Content, lays the blocks out on A4
// pages and returns the finished PDF. No bytes are returned on error.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (r *Renderer) Render(ctx context.Context, in Input) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("%w: internal error: %v", ErrPDFGeneration, rec)
		}
	}()

	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	lines := textprep.Lines(in.Content)
	if len(lines) == 0 {
		return nil, ErrEmptyContent
	}

	st := r.style(in)
	family := ""
	if in.Page != nil {
		family = in.Page.FontFamily
	}
	pdf := layout.NewPDF(st, layout.PDFOptions{
		Family:  family,
		Title:   in.Title,
		Creator: Creator,
		Created: r.now(),
	})
	eng := layout.New(pdf, st)

	if err := eng.Title(in.Title, in.Date); err != nil {
		return nil, wrapLayout("placing title", err)
	}
	for i, line := range lines {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if err := eng.Add(prepare(classify.Classify(line))); err != nil {
			return nil, wrapLayout(fmt.Sprintf("line %d", i+1), err)
		}
	}

	closing := closingFor(in)
	if err := eng.Finish(closing); err != nil {
		return nil, wrapLayout("finishing document", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPDFGeneration, err)
	}

	pages := eng.Pages()
	if r.verify {
		footer := func(n, total int) string {
			return layout.FooterText(closing.FooterFormat, n, total)
		}
		if err := pdfcheck.Verify(buf.Bytes(), pages, footer); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrVerification, err)
		}
	}

	res := &Result{
		PDF:        buf.Bytes(),
		FileName:   OutputFileName(in),
		Pages:      pages,
		Lines:      len(lines),
		Placements: toPlacements(eng.Placements()),
	}
	r.logger.Debug("rendered report",
		"title", in.Title,
		"lines", res.Lines,
		"blocks", len(res.Placements),
		"pages", res.Pages,
		"bytes", len(res.PDF),
		"elapsed", time.Since(start),
	)
	return res, nil
}

// validateInput checks required fields and optional settings.
func validateInput(in Input) error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(in.Content) == "" {
		return ErrEmptyContent
	}
	if err := in.Page.Validate(); err != nil {
		return fmt.Errorf("page settings: %w", err)
	}
	if err := in.Footer.Validate(); err != nil {
		return fmt.Errorf("footer: %w", err)
	}
	return nil
}

// style derives the layout geometry from the page settings. A custom body
// size scales every font size and the table row height with it.
func (r *Renderer) style(in Input) layout.Style {
	st := layout.DefaultStyle()
	st.MaxPages = r.maxPages
	if p := in.Page; p != nil {
		if p.Margin != 0 {
			st.Margin = p.Margin
		}
		if p.FontSize != 0 && p.FontSize != st.BodySize {
			scaleFonts(&st, p.FontSize/st.BodySize)
		}
	}
	if in.Table != nil && in.Table.NoHeaderRepeat {
		st.RepeatTableHeader = false
	}
	return st
}

func scaleFonts(st *layout.Style, k float64) {
	st.BodySize *= k
	st.TitleSize *= k
	st.SectionSize *= k
	st.AllCapsSize *= k
	for i := range st.MarkdownSizes {
		st.MarkdownSizes[i] *= k
	}
	st.TableSize *= k
	st.RowHeight *= k
}

func closingFor(in Input) layout.Closing {
	cl := layout.Closing{
		SignatureLabel:   DefaultSignatureLabel,
		SignatureCaption: DefaultSignatureCaption,
		FooterFormat:     DefaultFooterFormat,
		RunningHeader:    in.Title,
	}
	if s := in.Signature; s != nil {
		if s.Label != "" {
			cl.SignatureLabel = s.Label
		}
		if s.Caption != "" {
			cl.SignatureCaption = s.Caption
		}
	}
	if in.Footer != nil && in.Footer.Format != "" {
		cl.FooterFormat = in.Footer.Format
	}
	if h := in.Header; h != nil {
		switch {
		case h.Disabled:
			cl.RunningHeader = ""
		case h.Text != "":
			cl.RunningHeader = h.Text
		}
	}
	return cl
}

// numberPrefix matches the numeral of a section heading or numbered item.
// It is kept out of inline parsing, which would read it as a list marker.
var numberPrefix = regexp.MustCompile(`^\d+(?:\.\d+)?[.)]?\s+`)

// prepare flattens inline Markdown in the visible text of b.
func prepare(b classify.Block) classify.Block {
	switch b.Kind {
	case classify.TableRow:
		cells := make([]string, len(b.Cells))
		for i, c := range b.Cells {
			cells[i] = textprep.PlainInline(c)
		}
		b.Cells = cells
	case classify.Heading, classify.ListItem, classify.Paragraph:
		prefix := ""
		if b.Heading == classify.HeadingSection || b.List == classify.ListNumbered {
			prefix = numberPrefix.FindString(b.Text)
		}
		b.Text = prefix + textprep.PlainInline(b.Text[len(prefix):])
	}
	return b
}

// wrapLayout adds context to an engine error. Overflow keeps its sentinel;
// anything else is a PDF generation failure.
func wrapLayout(where string, err error) error {
	if errors.Is(err, ErrLayoutOverflow) {
		return fmt.Errorf("%s: %w", where, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrPDFGeneration, where, err)
}

func toPlacements(in []layout.Placement) []Placement {
	out := make([]Placement, len(in))
	for i, p := range in {
		out[i] = Placement{
			Kind:    p.Element.String(),
			Text:    p.Text,
			Page:    p.Page,
			EndPage: p.EndPage,
			Top:     p.Top,
			Bottom:  p.Bottom,
			Lines:   p.Lines,
			Rows:    p.Rows,
		}
	}
	return out
}
