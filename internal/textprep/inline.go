package textprep

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// inlineMarkers are the characters that may open inline Markdown.
const inlineMarkers = "*_`[!<"

var markdown = goldmark.New()

// PlainInline flattens inline Markdown in s (emphasis, code spans, links,
// images) to its visible text. When the parser reads s as anything other than
// a single paragraph (a list marker, a quote, a heading), s is returned as is
// so no content is lost.
func PlainInline(s string) string {
	if !strings.ContainsAny(s, inlineMarkers) {
		return s
	}
	src := []byte(s)
	doc := markdown.Parser().Parse(text.NewReader(src))
	para, ok := doc.FirstChild().(*ast.Paragraph)
	if !ok || para.NextSibling() != nil {
		return s
	}

	var b strings.Builder
	collectInline(para, src, &b)
	out := strings.TrimSpace(b.String())
	if out == "" {
		return s
	}
	return out
}

func collectInline(n ast.Node, src []byte, b *strings.Builder) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		case *ast.AutoLink:
			b.Write(v.Label(src))
		case *ast.RawHTML:
			for i := 0; i < v.Segments.Len(); i++ {
				seg := v.Segments.At(i)
				b.Write(seg.Value(src))
			}
		default:
			collectInline(c, src, b)
		}
	}
}
