package pdfcheck_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-report2pdf/internal/classify"
	"github.com/alnah/go-report2pdf/internal/layout"
	"github.com/alnah/go-report2pdf/internal/pdfcheck"
)

// buildPDF lays out paragraphs paragraphs of filler text and returns the
// finished document with its page count.
func buildPDF(t *testing.T, paragraphs int) ([]byte, int) {
	t.Helper()

	st := layout.DefaultStyle()
	canvas := layout.NewPDF(st, layout.PDFOptions{Created: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)})
	e := layout.New(canvas, st)
	if err := e.Title("Relatório (final)", ""); err != nil {
		t.Fatalf("Title: %v", err)
	}
	text := strings.TrimSpace(strings.Repeat("exame normal ", 60))
	for range paragraphs {
		if err := e.Add(classify.Classify(text)); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if err := e.Finish(layout.Closing{}); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	var buf bytes.Buffer
	if err := canvas.Output(&buf); err != nil {
		t.Fatalf("Output: %v", err)
	}
	return buf.Bytes(), e.Pages()
}

func footer(n, total int) string {
	return layout.FooterText(layout.DefaultFooterFormat, n, total)
}

func TestVerify(t *testing.T) {
	t.Parallel()

	data, pages := buildPDF(t, 40)
	if pages < 2 {
		t.Fatalf("pages = %d, want a multi-page document", pages)
	}
	if err := pdfcheck.Verify(data, pages, footer); err != nil {
		t.Errorf("Verify() = %v", err)
	}
}

func TestVerify_PageCountMismatch(t *testing.T) {
	t.Parallel()

	data, pages := buildPDF(t, 1)
	err := pdfcheck.Verify(data, pages+1, nil)
	if !errors.Is(err, pdfcheck.ErrPageCount) {
		t.Errorf("Verify() = %v, want ErrPageCount", err)
	}
}

func TestVerify_WrongFooter(t *testing.T) {
	t.Parallel()

	data, pages := buildPDF(t, 1)
	wrong := func(n, total int) string { return "Folha 1" }
	err := pdfcheck.Verify(data, pages, wrong)
	if !errors.Is(err, pdfcheck.ErrMissing) {
		t.Errorf("Verify() = %v, want ErrMissing", err)
	}
}

func TestOpen_Invalid(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("not a pdf"), []byte("%PDF-1.3\ngarbage")} {
		if _, err := pdfcheck.Open(data); !errors.Is(err, pdfcheck.ErrInvalidPDF) {
			t.Errorf("Open(%q) = %v, want ErrInvalidPDF", data, err)
		}
	}
}

func TestDocument_ShowsText(t *testing.T) {
	t.Parallel()

	data, _ := buildPDF(t, 1)
	doc, err := pdfcheck.Open(data)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	tests := []struct {
		text string
		want bool
	}{
		{text: "Relatório (final)", want: true},
		{text: "Page 1 of 1", want: true},
		{text: "Responsible Party", want: true},
		{text: "absent text", want: false},
	}
	for _, tt := range tests {
		got, err := doc.ShowsText(1, tt.text)
		if err != nil {
			t.Fatalf("ShowsText(%q): %v", tt.text, err)
		}
		if got != tt.want {
			t.Errorf("ShowsText(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "Page 1 of 2", want: "Page 1 of 2"},
		{in: "Página", want: "P\xe1gina"},
		{in: "€ 10", want: "\x80 10"},
		{in: "1 → 2", want: "1 . 2"},
		{in: "日本", want: ".."},
	}
	for _, tt := range tests {
		if got := pdfcheck.Encode(tt.in); got != tt.want {
			t.Errorf("Encode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
