package layout

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func renderPDF(t *testing.T, lines []string, created time.Time) (*bytes.Buffer, int) {
	t.Helper()

	st := DefaultStyle()
	p := NewPDF(st, PDFOptions{Title: "Relatório", Creator: "report2pdf", Created: created})
	e := New(p, st)
	if err := e.Title("Relatório Médico", "19 de outubro de 2026"); err != nil {
		t.Fatalf("Title: %v", err)
	}
	feed(t, e, lines...)
	if err := e.Finish(Closing{RunningHeader: "Relatório Médico"}); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		t.Fatalf("Output: %v", err)
	}
	return &buf, e.Pages()
}

func TestPDF_Output(t *testing.T) {
	t.Parallel()

	lines := []string{
		"1. INTRODUÇÃO",
		"Paciente avaliado em consulta de rotina – sem intercorrências.",
		"| Exame | Resultado |",
		"| --- | --- |",
		"| Glicemia | 92 mg/dL |",
		"- Hidratação adequada",
		"CONCLUSÃO",
		strings.TrimSpace(strings.Repeat("texto ", 900)),
	}
	buf, pages := renderPDF(t, lines, time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC))

	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", buf.Bytes()[:min(8, buf.Len())])
	}
	if pages < 2 {
		t.Errorf("pages = %d, want at least 2", pages)
	}
}

func TestPDF_Reproducible(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	lines := []string{"RESUMO EXECUTIVO", "Texto do relatório.", "| a | b |", "| 1 | 2 |"}

	first, _ := renderPDF(t, lines, created)
	second, _ := renderPDF(t, lines, created)
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("identical input with a fixed creation date produced different bytes")
	}
}

func TestPDF_StringWidthTranslates(t *testing.T) {
	t.Parallel()

	p := NewPDF(DefaultStyle(), PDFOptions{})
	// "é" is one byte in Windows-1252 and measures like a plain letter.
	plain, accented := p.StringWidth("e"), p.StringWidth("é")
	if accented <= 0 || accented > plain*1.5 {
		t.Errorf("StringWidth(é) = %.3f, want close to StringWidth(e) = %.3f", accented, plain)
	}
}

func TestValidateFamily(t *testing.T) {
	t.Parallel()

	for _, f := range []string{"helvetica", "Times", "COURIER"} {
		if err := ValidateFamily(f); err != nil {
			t.Errorf("ValidateFamily(%q) = %v, want nil", f, err)
		}
	}
	for _, f := range []string{"", "arial", "symbol"} {
		if err := ValidateFamily(f); !errors.Is(err, ErrFontFamily) {
			t.Errorf("ValidateFamily(%q) = %v, want ErrFontFamily", f, err)
		}
	}
}
