package layout

// ptToMM converts a font size in points to millimetres.
const ptToMM = 25.4 / 72

// A4 portrait, in millimetres.
const (
	A4Width  = 210.0
	A4Height = 297.0
)

// Accepted ranges for user-adjustable geometry.
const (
	MinMargin   = 10.0
	MaxMargin   = 40.0
	MinBodySize = 8.0
	MaxBodySize = 14.0
)

// Color is an RGB triple with components in [0, 255].
type Color struct {
	R, G, B int
}

// Palette.
var (
	Black      = Color{0, 0, 0}
	TextColor  = Color{33, 33, 33}
	MutedColor = Color{110, 110, 110}
	RuleColor  = Color{190, 190, 190}
	HeaderFill = Color{225, 230, 236}
	ZebraFill  = Color{244, 246, 248}
	AccentFill = Color{31, 78, 121}
)

// Style holds the page geometry and typographic constants of a document.
type Style struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64

	// HeaderReserve is kept free below the top margin for the running header;
	// FooterReserve is kept free above the bottom margin for the page number.
	HeaderReserve float64
	FooterReserve float64

	BodySize   float64
	LineFactor float64

	TitleSize     float64
	SectionSize   float64
	AllCapsSize   float64
	MarkdownSizes [3]float64
	CaptionSize   float64
	RunningSize   float64

	BlockSpacing   float64
	BlankSpacing   float64
	HeadingGap     float64
	HeadingSpacing float64

	BulletIndent float64
	MarkerWidth  float64
	MarkerGap    float64

	TableSize         float64
	RowHeight         float64
	TableSpacing      float64
	CellPadding       float64
	CellMaxChars      int
	RepeatTableHeader bool

	SignatureReserve float64
	SignatureGap     float64
	SignatureSpace   float64
	SignatureWidth   float64

	// MaxPages caps the document length; 0 disables the cap.
	MaxPages int
}

// DefaultStyle returns the A4 portrait geometry used for reports.
func DefaultStyle() Style {
	return Style{
		PageWidth:  A4Width,
		PageHeight: A4Height,
		Margin:     20,

		HeaderReserve: 6,
		FooterReserve: 8,

		BodySize:   10,
		LineFactor: 1.4,

		TitleSize:     16,
		SectionSize:   13,
		AllCapsSize:   12,
		MarkdownSizes: [3]float64{14, 13, 12},
		CaptionSize:   8,
		RunningSize:   8,

		BlockSpacing:   2,
		BlankSpacing:   3,
		HeadingGap:     2,
		HeadingSpacing: 1.5,

		BulletIndent: 6,
		MarkerWidth:  1.2,
		MarkerGap:    2.5,

		TableSize:         9,
		RowHeight:         7,
		TableSpacing:      4,
		CellPadding:       2,
		CellMaxChars:      45,
		RepeatTableHeader: true,

		SignatureReserve: 40,
		SignatureGap:     6,
		SignatureSpace:   16,
		SignatureWidth:   70,

		MaxPages: 500,
	}
}

// ContentWidth is the horizontal space between the side margins.
func (s Style) ContentWidth() float64 {
	return s.PageWidth - 2*s.Margin
}

// Top is the y of the first content line on every page.
func (s Style) Top() float64 {
	return s.Margin + s.HeaderReserve
}

// Bottom is the lowest y content may reach.
func (s Style) Bottom() float64 {
	return s.PageHeight - s.Margin - s.FooterReserve
}

// Usable is the vertical space available to content on a fresh page.
func (s Style) Usable() float64 {
	return s.Bottom() - s.Top()
}

// LineHeight returns the advance of one wrapped line at size points.
func (s Style) LineHeight(size float64) float64 {
	return size * ptToMM * s.LineFactor
}

// baseline returns the text baseline for a line box starting at top.
func (s Style) baseline(top, size float64) float64 {
	return top + s.LineHeight(size)*0.72
}
