// Package classify tags physical report lines with a block kind.
//
// Rules are evaluated top to bottom and the first match wins, so the order of
// the checks in Classify is part of the contract.
package classify

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind identifies the block a line was classified as.
type Kind int

const (
	Blank Kind = iota
	Divider
	TableSeparator
	TableRow
	Heading
	ListItem
	Paragraph
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Divider:
		return "divider"
	case TableSeparator:
		return "table-separator"
	case TableRow:
		return "table-row"
	case Heading:
		return "heading"
	case ListItem:
		return "list-item"
	case Paragraph:
		return "paragraph"
	default:
		return "unknown"
	}
}

// HeadingKind distinguishes how a heading was recognized.
type HeadingKind int

const (
	HeadingNone HeadingKind = iota
	HeadingSection
	HeadingAllCaps
	HeadingMarkdown
)

func (h HeadingKind) String() string {
	switch h {
	case HeadingSection:
		return "section"
	case HeadingAllCaps:
		return "all-caps"
	case HeadingMarkdown:
		return "markdown"
	default:
		return "none"
	}
}

// ListKind distinguishes bullet items from numbered items.
type ListKind int

const (
	ListNone ListKind = iota
	ListBullet
	ListNumbered
)

func (l ListKind) String() string {
	switch l {
	case ListBullet:
		return "bullet"
	case ListNumbered:
		return "numbered"
	default:
		return "none"
	}
}

// Block is one classified line.
type Block struct {
	Kind    Kind
	Text    string   // display text (markers stripped where the rule says so)
	Cells   []string // TableRow only
	Heading HeadingKind
	Level   int // markdown heading level (1-3), 0 otherwise
	List    ListKind
}

// Dropped reports whether the block produces no output of its own.
func (b Block) Dropped() bool {
	return b.Kind == Divider || b.Kind == TableSeparator
}

// Classification limits.
const (
	MaxSectionHeadingLength = 100
	MinAllCapsLength        = 4
	MaxAllCapsLength        = 80
)

var (
	dividerPattern   = regexp.MustCompile(`^(?:-{3,}|\*{3,}|={3,})$`)
	separatorPattern = regexp.MustCompile(`^\|[\s|:-]*-[\s|:-]*$`)
	sectionPattern   = regexp.MustCompile(`^\d+(?:\.\d+)?\.?\s`)
	markdownPattern  = regexp.MustCompile(`^(#{1,3})\s+`)
	bulletPattern    = regexp.MustCompile(`^[-•]\s+`)
	numberedPattern  = regexp.MustCompile(`^\d+\)\s`)
)

// Classify returns the block for one physical line. Surrounding whitespace is
// trimmed before any rule is applied.
func Classify(line string) Block {
	line = strings.TrimSpace(line)

	if dividerPattern.MatchString(line) {
		return Block{Kind: Divider, Text: line}
	}
	if separatorPattern.MatchString(line) {
		return Block{Kind: TableSeparator, Text: line}
	}
	if cells, ok := tableCells(line); ok {
		return Block{Kind: TableRow, Text: line, Cells: cells}
	}
	if line == "" {
		return Block{Kind: Blank}
	}
	n := utf8.RuneCountInString(line)
	if n < MaxSectionHeadingLength && sectionPattern.MatchString(line) {
		return Block{Kind: Heading, Heading: HeadingSection, Text: line}
	}
	if n >= MinAllCapsLength && n < MaxAllCapsLength && isAllCaps(line) {
		return Block{Kind: Heading, Heading: HeadingAllCaps, Text: stripHashes(line)}
	}
	if m := markdownPattern.FindStringSubmatch(line); m != nil {
		return Block{
			Kind:    Heading,
			Heading: HeadingMarkdown,
			Level:   len(m[1]),
			Text:    strings.TrimSpace(line[len(m[0]):]),
		}
	}
	if loc := bulletPattern.FindStringIndex(line); loc != nil {
		return Block{Kind: ListItem, List: ListBullet, Text: line[loc[1]:]}
	}
	if numberedPattern.MatchString(line) {
		return Block{Kind: ListItem, List: ListNumbered, Text: line}
	}
	return Block{Kind: Paragraph, Text: line}
}

// tableCells splits a pipe-delimited row. The row must start and end with a
// pipe and carry at least two non-empty cells.
func tableCells(line string) ([]string, bool) {
	if len(line) < 2 || line[0] != '|' || line[len(line)-1] != '|' {
		return nil, false
	}
	parts := strings.Split(line[1:len(line)-1], "|")
	cells := make([]string, len(parts))
	filled := 0
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
		if cells[i] != "" {
			filled++
		}
	}
	if filled < 2 {
		return nil, false
	}
	return cells, true
}

// isAllCaps reports whether line has at least one letter, no lowercase
// letters, and does not start with a digit.
func isAllCaps(line string) bool {
	first, _ := utf8.DecodeRuneInString(line)
	if unicode.IsDigit(first) {
		return false
	}
	letters := 0
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters > 0 && strings.ToUpper(line) == line
}

// stripHashes removes a leading markdown marker from an all-caps heading such
// as "## RESUMO", which rule 5 claims before rule 6 can.
func stripHashes(line string) string {
	if m := markdownPattern.FindString(line); m != "" {
		return strings.TrimSpace(line[len(m):])
	}
	return line
}
