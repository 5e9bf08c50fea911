package layout

import (
	"errors"
	"strconv"
	"strings"
)

// Default closing texts.
const (
	DefaultSignatureLabel   = "Responsible Party"
	DefaultSignatureCaption = "(signature and seal)"
	DefaultFooterFormat     = "Page {page} of {total}"
)

// ErrFooterFormat is returned for a footer format that does not reference
// the page number.
var ErrFooterFormat = errors.New("footer format must contain {page}")

// Closing configures the finishing pass.
type Closing struct {
	SignatureLabel   string
	SignatureCaption string
	// FooterFormat is expanded per page; {page} and {total} are substituted.
	FooterFormat string
	// RunningHeader is drawn at the top of every page; empty disables it.
	RunningHeader string
}

// FooterText expands format for page n of total.
func FooterText(format string, n, total int) string {
	return strings.NewReplacer(
		"{page}", strconv.Itoa(n),
		"{total}", strconv.Itoa(total),
	).Replace(format)
}

// ValidateFooterFormat reports whether format can number pages.
func ValidateFooterFormat(format string) error {
	if !strings.Contains(format, "{page}") {
		return ErrFooterFormat
	}
	return nil
}

// Finish completes the document: it flushes any open table, appends the
// signature block after the last content and then stamps every page with the
// running header and the page footer. The engine accepts no blocks afterwards.
func (e *Engine) Finish(cl Closing) error {
	if e.err != nil {
		return e.err
	}
	if err := e.closeTable(); err != nil {
		return err
	}
	if err := e.signature(cl); err != nil {
		return err
	}
	e.stamp(cl)
	if err := e.c.Err(); err != nil {
		return e.fail(err)
	}
	e.fail(errFinished)
	return nil
}

// errFinished is returned by every call made after a successful Finish.
var errFinished = errors.New("layout: document already finished")

func (e *Engine) signature(cl Closing) error {
	label := cl.SignatureLabel
	if label == "" {
		label = DefaultSignatureLabel
	}
	caption := cl.SignatureCaption
	if caption == "" {
		caption = DefaultSignatureCaption
	}

	labelH := e.st.LineHeight(e.st.BodySize)
	captionH := e.st.LineHeight(e.st.CaptionSize)
	need := max(e.st.SignatureReserve, e.st.SignatureGap+e.st.SignatureSpace+labelH+captionH)
	if e.page == 0 || !e.fits(need) {
		if err := e.newPage(); err != nil {
			return err
		}
	}

	top := e.y
	left, right := e.st.Margin, e.st.Margin+e.st.ContentWidth()
	e.y += e.st.SignatureGap / 2
	e.c.Line(left, e.y, right, e.y, 0.3, RuleColor)
	e.y += e.st.SignatureGap/2 + e.st.SignatureSpace

	mid := e.st.Margin + e.st.ContentWidth()/2
	e.c.Line(mid-e.st.SignatureWidth/2, e.y, mid+e.st.SignatureWidth/2, e.y, 0.3, Black)
	e.y += 1

	e.c.SetTextColor(Black)
	e.c.SetFont(Bold, e.st.BodySize)
	e.centered(label, e.st.BodySize)
	e.y += labelH

	e.c.SetTextColor(MutedColor)
	e.c.SetFont(Regular, e.st.CaptionSize)
	e.centered(caption, e.st.CaptionSize)
	e.y += captionH

	e.record(Placement{Element: ElementSignature, Text: label, Page: e.page, Top: top})
	return nil
}

// stamp revisits every page once the total is known. Nothing else is drawn
// after it.
func (e *Engine) stamp(cl Closing) {
	format := cl.FooterFormat
	if format == "" {
		format = DefaultFooterFormat
	}
	total := e.c.PageCount()
	left, width := e.st.Margin, e.st.ContentWidth()
	footerY := e.st.PageHeight - e.st.Margin - 1

	for n := 1; n <= total; n++ {
		e.c.SetPage(n)
		e.c.SetTextColor(MutedColor)
		e.c.SetFont(Regular, e.st.RunningSize)

		if cl.RunningHeader != "" {
			header := fitCell(e.c, cl.RunningHeader, 0, width)
			e.c.Text(left, e.st.Margin+e.st.RunningSize*ptToMM, header)
			ruleY := e.st.Margin + e.st.HeaderReserve - 2
			e.c.Line(left, ruleY, left+width, ruleY, 0.2, RuleColor)
		}

		footer := FooterText(format, n, total)
		e.c.Text(left+(width-e.c.StringWidth(footer))/2, footerY, footer)
	}
	e.c.SetPage(total)
}
