package layout

// Font styles accepted by Canvas.SetFont.
const (
	Regular = ""
	Bold    = "B"
	Italic  = "I"
)

// Canvas is the drawing surface an Engine lays pages out on. Pages are
// numbered from 1; drawing calls apply to the current page.
type Canvas interface {
	AddPage()
	PageCount() int
	SetPage(n int)
	SetFont(style string, size float64)
	SetTextColor(c Color)
	// StringWidth measures s in millimetres at the current font.
	StringWidth(s string) float64
	// Text draws s with its baseline at y.
	Text(x, y float64, s string)
	FillRect(x, y, w, h float64, c Color)
	Line(x1, y1, x2, y2, width float64, c Color)
	// Err returns the first error the canvas ran into, if any.
	Err() error
}
