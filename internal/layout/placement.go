package layout

// Element identifies what a Placement records.
type Element int

const (
	ElementTitle Element = iota
	ElementBlank
	ElementHeading
	ElementListItem
	ElementParagraph
	ElementTable
	ElementSignature
)

func (e Element) String() string {
	switch e {
	case ElementTitle:
		return "title"
	case ElementBlank:
		return "blank"
	case ElementHeading:
		return "heading"
	case ElementListItem:
		return "list-item"
	case ElementParagraph:
		return "paragraph"
	case ElementTable:
		return "table"
	case ElementSignature:
		return "signature"
	default:
		return "unknown"
	}
}

// Placement records where one element ended up. Top is measured on Page and
// Bottom on EndPage; the two differ only for elements that flowed across a
// page break.
type Placement struct {
	Element Element
	Text    string
	Page    int
	EndPage int
	Top     float64
	Bottom  float64
	Lines   int // wrapped lines, text elements only
	Rows    int // rows including the header, tables only
}
