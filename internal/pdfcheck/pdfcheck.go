// Package pdfcheck re-reads produced PDF bytes with pdfcpu to confirm they
// parse, validate and carry the expected pages.
package pdfcheck

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/encoding/charmap"
)

// Sentinel errors.
var (
	ErrInvalidPDF = errors.New("invalid pdf")
	ErrPageCount  = errors.New("page count mismatch")
	ErrMissing    = errors.New("expected text missing")
)

var disableConfigDir sync.Once

// Document is a parsed and validated PDF.
type Document struct {
	ctx *model.Context
}

// Open parses and validates data.
func Open(data []byte) (*Document, error) {
	// pdfcpu otherwise creates a config directory under the user's home.
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	return &Document{ctx: ctx}, nil
}

// Pages returns the number of pages.
func (d *Document) Pages() int {
	return d.ctx.PageCount
}

// Content returns the decoded content stream of page n (1-based).
func (d *Document) Content(n int) (string, error) {
	r, err := pdfcpu.ExtractPageContent(d.ctx, n)
	if err != nil {
		return "", fmt.Errorf("page %d: %w", n, err)
	}
	if r == nil {
		return "", nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("page %d: %w", n, err)
	}
	return string(data), nil
}

// ShowsText reports whether page n draws s as one string operand. Text is
// matched in the Windows-1252 encoding used for the built-in fonts.
func (d *Document) ShowsText(n int, s string) (bool, error) {
	content, err := d.Content(n)
	if err != nil {
		return false, err
	}
	return strings.Contains(content, "("+escape(Encode(s))+")"), nil
}

// Encode converts s to Windows-1252 the way the writer does: runes outside
// the code page become '.'.
func Encode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < utf8.RuneSelf {
			b.WriteByte(byte(r))
			continue
		}
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			c = '.'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Verify parses data and checks it has exactly pages pages, each showing
// its footer as produced by footer(n, pages).
func Verify(data []byte, pages int, footer func(n, total int) string) error {
	doc, err := Open(data)
	if err != nil {
		return err
	}
	if doc.Pages() != pages {
		return fmt.Errorf("%w: document has %d, layout produced %d", ErrPageCount, doc.Pages(), pages)
	}
	if footer == nil {
		return nil
	}
	for n := 1; n <= pages; n++ {
		want := footer(n, pages)
		ok, err := doc.ShowsText(n, want)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: page %d lacks footer %q", ErrMissing, n, want)
		}
	}
	return nil
}

var stringEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`, "\r", `\r`)

// escape applies PDF literal string escaping.
func escape(s string) string {
	return stringEscaper.Replace(s)
}
