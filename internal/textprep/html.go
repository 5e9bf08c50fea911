package textprep

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tagPattern detects content that carries at least one real tag. Plain text
// with stray angle brackets ("pressure < 120") is left untouched.
var tagPattern = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9]*(?:\s[^<>]*)?/?>`)

// LooksLikeHTML reports whether s contains markup that StripTags should remove.
func LooksLikeHTML(s string) bool {
	return tagPattern.MatchString(s)
}

// blockTags start or end a physical line when stripped.
var blockTags = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Br: true, atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Figcaption: true, atom.Figure: true, atom.Footer: true, atom.H1: true,
	atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true, atom.Ol: true,
	atom.P: true, atom.Pre: true, atom.Section: true, atom.Table: true, atom.Ul: true,
}

// sectionTags group rows; they end the open row but add no line of their own.
var sectionTags = map[atom.Atom]bool{
	atom.Thead: true, atom.Tbody: true, atom.Tfoot: true, atom.Caption: true,
}

// skippedTags have content that never reaches the document.
var skippedTags = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Noscript: true, atom.Head: true, atom.Title: true,
}

// gluedTags are text-level formatting that sits inside a word ("<b>un</b>able")
// and so adds no separator. Every other tag boundary separates words.
var gluedTags = map[atom.Atom]bool{
	atom.A: true, atom.Abbr: true, atom.B: true, atom.Code: true, atom.Em: true,
	atom.I: true, atom.Mark: true, atom.S: true, atom.Small: true, atom.Strong: true,
	atom.Sub: true, atom.Sup: true, atom.U: true,
}

// cellPipe replaces "|" inside HTML cells so it cannot split the row.
const cellPipe = "¦"

// stripper accumulates the text of one StripTags call.
type stripper struct {
	b     strings.Builder
	sep   bool     // a word boundary is pending
	row   []string // cells of the open <tr>
	cell  *strings.Builder
	inRow bool
}

// StripTags removes markup from s. Block-level tags become line breaks,
// table rows become "| a | b |" lines, formatting tags disappear and other
// tag boundaries separate words. Entities are decoded. Input without tags
// is returned unchanged.
func StripTags(s string) string {
	if !LooksLikeHTML(s) {
		return s
	}

	st := &stripper{}
	st.b.Grow(len(s))
	z := html.NewTokenizer(strings.NewReader(s))
	skipDepth := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way the stream is done.
			st.closeRow()
			return st.b.String()
		case html.TextToken:
			if skipDepth == 0 {
				st.text(string(z.Text()))
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if skippedTags[a] && tt == html.StartTagToken {
				skipDepth++
				continue
			}
			st.open(a)
		case html.EndTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if skippedTags[a] {
				if skipDepth > 0 {
					skipDepth--
				}
				continue
			}
			st.close(a)
		}
	}
}

func (st *stripper) open(a atom.Atom) {
	switch {
	case a == atom.Tr:
		st.closeRow()
		st.inRow = true
	case sectionTags[a]:
		st.closeRow()
	case a == atom.Td || a == atom.Th:
		if st.inRow {
			st.cell = &strings.Builder{}
			st.row = append(st.row, "")
			return
		}
		st.sep = true
	case blockTags[a]:
		st.closeRow()
		st.b.WriteByte('\n')
	case !gluedTags[a]:
		st.sep = true
	}
}

func (st *stripper) close(a atom.Atom) {
	switch {
	case a == atom.Tr || sectionTags[a]:
		st.closeRow()
	case a == atom.Td || a == atom.Th:
		if st.inRow {
			st.cell = nil
			return
		}
		st.sep = true
	case blockTags[a]:
		st.closeRow()
		st.b.WriteByte('\n')
	case !gluedTags[a]:
		st.sep = true
	}
}

func (st *stripper) text(t string) {
	if st.inRow {
		if st.cell == nil {
			if strings.TrimSpace(t) == "" {
				return
			}
			st.cell = &strings.Builder{}
			st.row = append(st.row, "")
		}
		st.cell.WriteString(t)
		st.row[len(st.row)-1] = st.cell.String()
		return
	}

	// Indentation between block tags.
	if strings.TrimSpace(t) == "" && (st.b.Len() == 0 || strings.HasSuffix(st.b.String(), "\n")) {
		return
	}
	if st.sep {
		first, _ := utf8.DecodeRuneInString(t)
		last, _ := utf8.DecodeLastRuneInString(st.b.String())
		if st.b.Len() > 0 && !unicode.IsSpace(last) && !unicode.IsSpace(first) && !unicode.IsPunct(first) {
			st.b.WriteByte(' ')
		}
	}
	st.sep = false
	st.b.WriteString(t)
}

// closeRow writes the open row on a line of its own. A row with fewer than
// two non-empty cells is written as plain text.
func (st *stripper) closeRow() {
	if !st.inRow {
		return
	}
	cells := make([]string, len(st.row))
	filled := 0
	for i, c := range st.row {
		c = strings.Join(strings.Fields(c), " ")
		cells[i] = strings.ReplaceAll(c, "|", cellPipe)
		if cells[i] != "" {
			filled++
		}
	}
	st.row, st.cell, st.inRow = nil, nil, false
	if filled == 0 {
		return
	}

	if st.b.Len() > 0 && !strings.HasSuffix(st.b.String(), "\n") {
		st.b.WriteByte('\n')
	}
	if filled < 2 {
		st.b.WriteString(strings.Join(strings.Fields(strings.Join(cells, " ")), " "))
	} else {
		st.b.WriteString("| " + strings.Join(cells, " | ") + " |")
	}
	st.b.WriteByte('\n')
	st.sep = false
}
