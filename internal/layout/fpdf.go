package layout

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// ErrFontFamily is returned for a family that is not a built-in PDF font.
var ErrFontFamily = errors.New("unsupported font family")

// Families lists the built-in font families usable for report text.
var Families = []string{"helvetica", "times", "courier"}

// ValidateFamily reports whether family is a built-in font family.
func ValidateFamily(family string) error {
	for _, f := range Families {
		if strings.EqualFold(f, family) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (valid: %s)", ErrFontFamily, family, strings.Join(Families, ", "))
}

// PDFOptions configures a PDF canvas.
type PDFOptions struct {
	Family  string
	Title   string
	Creator string
	// Created is written as the document creation date. A fixed value makes
	// the output byte-for-byte reproducible.
	Created time.Time
}

// PDF is a Canvas backed by go-pdf/fpdf using the built-in fonts. Text is
// translated to Windows-1252 before it is measured or drawn.
type PDF struct {
	doc    *fpdf.Fpdf
	family string
	tr     func(string) string
}

// NewPDF returns an empty A4 portrait document measured in millimetres.
func NewPDF(st Style, opts PDFOptions) *PDF {
	family := strings.ToLower(opts.Family)
	if family == "" {
		family = "helvetica"
	}

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: st.PageWidth, Ht: st.PageHeight},
	})
	doc.SetMargins(st.Margin, st.Margin, st.Margin)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCatalogSort(true)
	if !opts.Created.IsZero() {
		doc.SetCreationDate(opts.Created)
	}
	if opts.Title != "" {
		doc.SetTitle(opts.Title, true)
	}
	if opts.Creator != "" {
		doc.SetCreator(opts.Creator, true)
	}
	doc.SetFont(family, Regular, st.BodySize)

	return &PDF{
		doc:    doc,
		family: family,
		tr:     doc.UnicodeTranslatorFromDescriptor(""),
	}
}

func (p *PDF) AddPage()       { p.doc.AddPage() }
func (p *PDF) PageCount() int { return p.doc.PageCount() }

// SetPage makes page n current again. fpdf skips a font selection equal to
// the current one, so the size is reset to force the next SetFont to be
// written into the revisited page.
func (p *PDF) SetPage(n int) {
	p.doc.SetPage(n)
	p.doc.SetFontSize(0)
}

func (p *PDF) SetFont(style string, size float64) {
	p.doc.SetFont(p.family, style, size)
}

func (p *PDF) SetTextColor(c Color) {
	p.doc.SetTextColor(c.R, c.G, c.B)
}

func (p *PDF) StringWidth(s string) float64 {
	return p.doc.GetStringWidth(p.tr(s))
}

func (p *PDF) Text(x, y float64, s string) {
	p.doc.Text(x, y, p.tr(s))
}

func (p *PDF) FillRect(x, y, w, h float64, c Color) {
	p.doc.SetFillColor(c.R, c.G, c.B)
	p.doc.Rect(x, y, w, h, "F")
}

func (p *PDF) Line(x1, y1, x2, y2, width float64, c Color) {
	p.doc.SetLineWidth(width)
	p.doc.SetDrawColor(c.R, c.G, c.B)
	p.doc.Line(x1, y1, x2, y2)
}

func (p *PDF) Err() error { return p.doc.Error() }

// Output writes the finished document to w. The canvas cannot be drawn on
// afterwards.
func (p *PDF) Output(w io.Writer) error {
	if err := p.doc.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}
