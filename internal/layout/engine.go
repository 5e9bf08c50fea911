package layout

import (
	"errors"
	"fmt"

	"github.com/alnah/go-report2pdf/internal/classify"
)

// ErrOverflow is returned when content cannot be placed: a single line or
// table row taller than a fresh page, or a document longer than the page cap.
var ErrOverflow = errors.New("layout overflow")

// epsilon absorbs floating-point drift in fit checks.
const epsilon = 1e-6

// Engine lays blocks out on a Canvas. It is not safe for concurrent use;
// create one per document.
type Engine struct {
	c  Canvas
	st Style

	page int     // current page, 0 before the first page exists
	y    float64 // cursor on the current page

	table         *table
	pendingBlanks int

	placements []Placement
	err        error
}

// New returns an engine drawing on c with style st. No page is created until
// something is placed.
func New(c Canvas, st Style) *Engine {
	return &Engine{c: c, st: st}
}

// Pages returns the number of pages created so far.
func (e *Engine) Pages() int {
	return e.c.PageCount()
}

// Placements returns the trace of everything placed so far, in order.
func (e *Engine) Placements() []Placement {
	out := make([]Placement, len(e.placements))
	copy(out, e.placements)
	return out
}

// Cursor returns the current page and vertical position.
func (e *Engine) Cursor() (page int, y float64) {
	return e.page, e.y
}

// Title draws the document title, centered, followed by an optional subtitle
// line such as the report date. It must be called before any block is added.
func (e *Engine) Title(title, subtitle string) error {
	if e.err != nil {
		return e.err
	}
	if e.page != 0 || len(e.placements) != 0 {
		return e.fail(errors.New("title must be placed first"))
	}
	if err := e.newPage(); err != nil {
		return err
	}

	top := e.y
	e.c.SetTextColor(Black)
	e.c.SetFont(Bold, e.st.TitleSize)
	lh := e.st.LineHeight(e.st.TitleSize)
	lines := wrap(e.c, title, e.st.ContentWidth())
	for _, line := range lines {
		if err := e.guardLine(lh); err != nil {
			return err
		}
		e.centered(line, e.st.TitleSize)
		e.y += lh
	}

	if subtitle != "" {
		e.c.SetTextColor(MutedColor)
		e.c.SetFont(Regular, e.st.BodySize)
		lh := e.st.LineHeight(e.st.BodySize)
		if err := e.guardLine(lh); err != nil {
			return err
		}
		e.centered(subtitle, e.st.BodySize)
		e.y += lh
	}

	if e.fits(e.st.BlockSpacing * 2) {
		e.y += e.st.BlockSpacing
		e.c.Line(e.st.Margin, e.y, e.st.Margin+e.st.ContentWidth(), e.y, 0.3, RuleColor)
		e.y += e.st.BlockSpacing
	}
	e.bodyFont()
	e.record(Placement{Element: ElementTitle, Text: title, Page: 1, Top: top, Lines: len(lines)})
	return nil
}

// Add places one classified block. Table rows are buffered until the table
// closes; separators and dividers produce no output.
func (e *Engine) Add(b classify.Block) error {
	if e.err != nil {
		return e.err
	}

	switch b.Kind {
	case classify.TableSeparator:
		return nil
	case classify.TableRow:
		if e.table == nil {
			e.table = &table{}
		}
		e.pendingBlanks = 0
		e.table.add(b.Cells)
		return nil
	case classify.Blank:
		if e.table != nil {
			e.pendingBlanks++
			return nil
		}
		return e.blank()
	}

	if err := e.closeTable(); err != nil {
		return err
	}

	switch b.Kind {
	case classify.Divider:
		return nil
	case classify.Heading:
		return e.heading(b)
	case classify.ListItem:
		return e.listItem(b)
	default:
		return e.paragraph(b.Text)
	}
}

// closeTable flushes the open table, if any, then emits the blank lines that
// were deferred while it was open.
func (e *Engine) closeTable() error {
	if e.table == nil {
		return nil
	}
	t := e.table
	e.table = nil
	if err := e.drawTable(t); err != nil {
		return err
	}
	for ; e.pendingBlanks > 0; e.pendingBlanks-- {
		if err := e.blank(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) blank() error {
	if err := e.ensure(e.st.BlankSpacing); err != nil {
		return err
	}
	top := e.y
	e.y += e.st.BlankSpacing
	e.record(Placement{Element: ElementBlank, Page: e.page, Top: top})
	return nil
}

func (e *Engine) paragraph(text string) error {
	e.c.SetTextColor(TextColor)
	e.c.SetFont(Regular, e.st.BodySize)
	return e.flow(textBlock{
		element: ElementParagraph,
		text:    text,
		x:       e.st.Margin,
		size:    e.st.BodySize,
		after:   e.st.BlockSpacing,
	})
}

func (e *Engine) listItem(b classify.Block) error {
	e.c.SetTextColor(TextColor)
	e.c.SetFont(Regular, e.st.BodySize)
	tb := textBlock{
		element: ElementListItem,
		text:    b.Text,
		x:       e.st.Margin,
		size:    e.st.BodySize,
		after:   e.st.BlockSpacing,
	}
	if b.List == classify.ListBullet {
		tb.x += e.st.BulletIndent
		tb.glyph = "•"
	}
	return e.flow(tb)
}

func (e *Engine) heading(b classify.Block) error {
	size := e.st.AllCapsSize
	switch b.Heading {
	case classify.HeadingSection:
		size = e.st.SectionSize
	case classify.HeadingMarkdown:
		if b.Level >= 1 && b.Level <= len(e.st.MarkdownSizes) {
			size = e.st.MarkdownSizes[b.Level-1]
		}
	}

	e.c.SetTextColor(Black)
	e.c.SetFont(Bold, size)
	tb := textBlock{
		element: ElementHeading,
		text:    b.Text,
		x:       e.st.Margin,
		size:    size,
		before:  e.st.HeadingGap,
		after:   e.st.HeadingSpacing,
	}
	if b.Heading == classify.HeadingSection {
		tb.x += e.st.MarkerWidth + e.st.MarkerGap
		tb.marker = true
	}
	err := e.flow(tb)
	e.bodyFont()
	return err
}

// textBlock describes a wrapped text element. The caller sets the font
// before flow measures it.
type textBlock struct {
	element Element
	text    string
	x       float64
	size    float64
	before  float64 // gap above, skipped at the top of a page
	after   float64
	glyph   string // drawn left of the first line, bullets only
	marker  bool   // accent bar left of the text, section headings only
}

// flow places a text block. A block that fits on a fresh page is never split:
// if it does not fit the space left, a new page is started first. Taller
// blocks are placed line by line.
func (e *Engine) flow(tb textBlock) error {
	width := e.st.Margin + e.st.ContentWidth() - tb.x
	lines := wrap(e.c, tb.text, width)
	lh := e.st.LineHeight(tb.size)
	body := float64(len(lines)) * lh

	if e.page == 0 {
		if err := e.newPage(); err != nil {
			return err
		}
	}
	gap := tb.before
	if e.atTop() {
		gap = 0
	}

	if body+tb.after <= e.st.Usable()+epsilon && !e.fits(gap+body+tb.after) {
		if err := e.newPage(); err != nil {
			return err
		}
		gap = 0
	}
	e.y += gap

	top, startPage := e.y, e.page
	for i, line := range lines {
		if err := e.guardLine(lh); err != nil {
			return err
		}
		if tb.marker {
			e.c.FillRect(e.st.Margin, e.y, e.st.MarkerWidth, lh, AccentFill)
		}
		baseline := e.st.baseline(e.y, tb.size)
		if i == 0 && tb.glyph != "" {
			e.c.Text(e.st.Margin+e.st.BulletIndent/3, baseline, tb.glyph)
		}
		e.c.Text(tb.x, baseline, line)
		e.y += lh
	}
	e.advance(tb.after)

	e.record(Placement{
		Element: tb.element,
		Text:    tb.text,
		Page:    startPage,
		EndPage: e.page,
		Top:     top,
		Bottom:  e.y,
		Lines:   len(lines),
	})
	return nil
}

// guardLine makes room for one line of height h, breaking the page if needed.
// A line that cannot fit even on a fresh page is an overflow.
func (e *Engine) guardLine(h float64) error {
	if h > e.st.Usable()+epsilon {
		return e.fail(fmt.Errorf("%w: line of %.1fmm exceeds the %.1fmm page body", ErrOverflow, h, e.st.Usable()))
	}
	return e.ensure(h)
}

// ensure starts the first page if none exists and breaks the page when h
// does not fit below the cursor.
func (e *Engine) ensure(h float64) error {
	if e.page == 0 || !e.fits(h) {
		return e.newPage()
	}
	return nil
}

// advance moves the cursor down by d without crossing the bottom limit.
func (e *Engine) advance(d float64) {
	e.y += d
	if e.y > e.st.Bottom() {
		e.y = e.st.Bottom()
	}
}

func (e *Engine) fits(h float64) bool {
	return e.y+h <= e.st.Bottom()+epsilon
}

func (e *Engine) atTop() bool {
	return e.y <= e.st.Top()+epsilon
}

func (e *Engine) newPage() error {
	if e.st.MaxPages > 0 && e.c.PageCount() >= e.st.MaxPages {
		return e.fail(fmt.Errorf("%w: more than %d pages", ErrOverflow, e.st.MaxPages))
	}
	e.c.AddPage()
	e.page = e.c.PageCount()
	e.y = e.st.Top()
	if err := e.c.Err(); err != nil {
		return e.fail(err)
	}
	return nil
}

func (e *Engine) bodyFont() {
	e.c.SetTextColor(TextColor)
	e.c.SetFont(Regular, e.st.BodySize)
}

func (e *Engine) centered(s string, size float64) {
	x := e.st.Margin + (e.st.ContentWidth()-e.c.StringWidth(s))/2
	e.c.Text(x, e.st.baseline(e.y, size), s)
}

func (e *Engine) record(p Placement) {
	if p.EndPage == 0 {
		p.EndPage = p.Page
	}
	if p.Bottom == 0 {
		p.Bottom = e.y
	}
	e.placements = append(e.placements, p)
}

// fail makes err sticky: every later call returns it.
func (e *Engine) fail(err error) error {
	if e.err == nil {
		e.err = err
	}
	return e.err
}
