package layout

import "fmt"

// table accumulates consecutive rows. The first row is the header.
type table struct {
	rows [][]string
}

func (t *table) add(cells []string) {
	row := make([]string, len(cells))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

func (t *table) columns() int {
	n := 0
	for _, r := range t.rows {
		n = max(n, len(r))
	}
	return n
}

// drawTable renders t as a unit. A table that fits one page starts on a new
// page when it does not fit the space left; a taller table starts in place
// when its first two rows fit. Rows are then guarded one by one, repeating
// the header row after each break.
func (e *Engine) drawTable(t *table) error {
	if len(t.rows) == 0 {
		return nil
	}
	rh := e.st.RowHeight
	if rh > e.st.Usable()+epsilon {
		return e.fail(fmt.Errorf("%w: table row of %.1fmm exceeds the %.1fmm page body", ErrOverflow, rh, e.st.Usable()))
	}

	if e.page == 0 {
		if err := e.newPage(); err != nil {
			return err
		}
	}
	need := float64(len(t.rows))*rh + e.st.TableSpacing
	if need > e.st.Usable()+epsilon {
		need = float64(min(len(t.rows), 2)) * rh
	}
	if !e.fits(need) && !e.atTop() {
		if err := e.newPage(); err != nil {
			return err
		}
	}

	colW := e.st.ContentWidth() / float64(t.columns())
	repeat := e.st.RepeatTableHeader && 2*rh <= e.st.Usable()+epsilon
	top, startPage := e.y, e.page

	for i, row := range t.rows {
		if !e.fits(rh) {
			if err := e.newPage(); err != nil {
				return err
			}
			if i > 0 && repeat {
				e.drawRow(t.rows[0], 0, colW)
			}
		}
		e.drawRow(row, i, colW)
	}
	e.advance(e.st.TableSpacing)
	e.bodyFont()

	e.record(Placement{
		Element: ElementTable,
		Text:    fmt.Sprintf("%d×%d", len(t.rows), t.columns()),
		Page:    startPage,
		EndPage: e.page,
		Top:     top,
		Bottom:  e.y,
		Rows:    len(t.rows),
	})
	return nil
}

// drawRow draws row index i at the cursor. Row 0 is the header; data rows
// with an even 1-based index get the zebra fill.
func (e *Engine) drawRow(row []string, i int, colW float64) {
	rh := e.st.RowHeight
	x0, w := e.st.Margin, e.st.ContentWidth()

	switch {
	case i == 0:
		e.c.FillRect(x0, e.y, w, rh, HeaderFill)
		e.c.SetTextColor(Black)
		e.c.SetFont(Bold, e.st.TableSize)
	case i%2 == 0:
		e.c.FillRect(x0, e.y, w, rh, ZebraFill)
		fallthrough
	default:
		e.c.SetTextColor(TextColor)
		e.c.SetFont(Regular, e.st.TableSize)
	}

	pad := e.st.CellPadding
	baseline := e.y + rh/2 + e.st.TableSize*ptToMM*0.35
	for j, cell := range row {
		if cell == "" {
			continue
		}
		s := fitCell(e.c, cell, e.st.CellMaxChars, colW-2*pad)
		e.c.Text(x0+float64(j)*colW+pad, baseline, s)
	}
	e.c.Line(x0, e.y+rh, x0+w, e.y+rh, 0.2, RuleColor)
	e.y += rh
}
