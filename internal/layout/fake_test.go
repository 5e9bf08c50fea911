package layout

import (
	"strings"
	"unicode/utf8"
)

// op is one recorded drawing call.
type op struct {
	kind string // "text", "fill", "line"
	page int
	x, y float64
	s    string
	size float64
	bold bool
}

// fakeCanvas records drawing calls. Every rune is half an em wide.
type fakeCanvas struct {
	pages   int
	current int
	size    float64
	style   string
	ops     []op
	err     error
}

func newFakeCanvas() *fakeCanvas { return &fakeCanvas{size: 10} }

func (f *fakeCanvas) AddPage() {
	f.pages++
	f.current = f.pages
}

func (f *fakeCanvas) PageCount() int { return f.pages }
func (f *fakeCanvas) SetPage(n int)  { f.current = n }

func (f *fakeCanvas) SetFont(style string, size float64) {
	f.style, f.size = style, size
}

func (f *fakeCanvas) SetTextColor(Color) {}

func (f *fakeCanvas) StringWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * f.size * ptToMM / 2
}

func (f *fakeCanvas) Text(x, y float64, s string) {
	f.ops = append(f.ops, op{kind: "text", page: f.current, x: x, y: y, s: s, size: f.size, bold: f.style == Bold})
}

func (f *fakeCanvas) FillRect(x, y, w, h float64, _ Color) {
	f.ops = append(f.ops, op{kind: "fill", page: f.current, x: x, y: y})
}

func (f *fakeCanvas) Line(x1, y1, _, _, _ float64, _ Color) {
	f.ops = append(f.ops, op{kind: "line", page: f.current, x: x1, y: y1})
}

func (f *fakeCanvas) Err() error { return f.err }

// texts returns the strings drawn on page n, in drawing order.
func (f *fakeCanvas) texts(n int) []string {
	var out []string
	for _, o := range f.ops {
		if o.kind == "text" && o.page == n {
			out = append(out, o.s)
		}
	}
	return out
}

// allText joins everything drawn, across pages.
func (f *fakeCanvas) allText() string {
	var b strings.Builder
	for _, o := range f.ops {
		if o.kind == "text" {
			b.WriteString(o.s)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (f *fakeCanvas) count(kind string, page int) int {
	n := 0
	for _, o := range f.ops {
		if o.kind == kind && o.page == page {
			n++
		}
	}
	return n
}
