package report2pdf

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestSafeFileName - File Name Folding
// ---------------------------------------------------------------------------

func TestSafeFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "accents folded", input: "Relatório de Avaliação", want: "Relatorio_de_Avaliacao"},
		{name: "cedilla and tilde", input: "ção", want: "cao"},
		{name: "whitespace runs collapse", input: "multi   space\tname", want: "multi_space_name"},
		{name: "surrounding whitespace trimmed", input: "  name  ", want: "name"},
		{name: "path separators dropped", input: "a/b\\c", want: "abc"},
		{name: "reserved characters dropped", input: `file:name?<x>*"|`, want: "filenamex"},
		{name: "control characters dropped", input: "a\x00b\x1fc", want: "abc"},
		{name: "dots trimmed", input: "..hidden..", want: "hidden"},
		{name: "empty", input: "", want: DefaultFileName},
		{name: "only separators", input: " / \\ ", want: DefaultFileName},
		{name: "dashes kept inside", input: "report-2024", want: "report-2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SafeFileName(tt.input); got != tt.want {
				t.Errorf("SafeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSafeFileName_Length(t *testing.T) {
	t.Parallel()

	got := SafeFileName(strings.Repeat("é", 150))
	if n := len([]rune(got)); n != MaxFileNameLength {
		t.Errorf("len = %d runes, want %d", n, MaxFileNameLength)
	}
}

func TestOutputFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Input
		want string
	}{
		{name: "title fallback", in: Input{Title: "Exam Report"}, want: "Exam_Report.pdf"},
		{name: "file name wins", in: Input{Title: "Exam Report", FileName: "custom"}, want: "custom.pdf"},
		{name: "pdf extension not doubled", in: Input{Title: "T", FileName: "out.PDF"}, want: "out.pdf"},
		{name: "blank file name uses title", in: Input{Title: "T", FileName: "  "}, want: "T.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := OutputFileName(tt.in); got != tt.want {
				t.Errorf("OutputFileName() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteResult - Atomic Save
// ---------------------------------------------------------------------------

func TestWriteResult(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "out")
	res := &Result{PDF: []byte("%PDF-1.3 test"), FileName: "report.pdf"}

	path, err := WriteResult(dir, res)
	if err != nil {
		t.Fatalf("WriteResult() unexpected error: %v", err)
	}
	if path != filepath.Join(dir, "report.pdf") {
		t.Errorf("path = %q, want %q", path, filepath.Join(dir, "report.pdf"))
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(got) != string(res.PDF) {
		t.Errorf("content = %q, want %q", got, res.PDF)
	}
}

func TestWriteResult_StaysInDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, err := WriteResult(dir, &Result{PDF: []byte("%PDF"), FileName: "../escape.pdf"})
	if err != nil {
		t.Fatalf("WriteResult() unexpected error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("path %q escapes %q", path, dir)
	}
}

func TestWriteResult_Errors(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		dir  string
		res  *Result
	}{
		{name: "nil result", dir: t.TempDir(), res: nil},
		{name: "empty document", dir: t.TempDir(), res: &Result{FileName: "a.pdf"}},
		{name: "dir is a file", dir: file, res: &Result{PDF: []byte("%PDF"), FileName: "a.pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := WriteResult(tt.dir, tt.res); !errors.Is(err, ErrWritePDF) {
				t.Errorf("WriteResult() error = %v, want ErrWritePDF", err)
			}
		})
	}
}
