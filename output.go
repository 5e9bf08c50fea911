package report2pdf

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/alnah/go-report2pdf/internal/fileutil"
)

// File naming defaults.
const (
	DefaultFileName    = "report"
	MaxFileNameLength  = 100
	pdfExtension       = ".pdf"
	outputPermissions  = 0o644
	reservedFileChars  = `<>:"/\|?*`
)

// SafeFileName folds name into a portable file name without extension:
// diacritics are removed, whitespace becomes "_", path separators, control
// characters and characters reserved on Windows are dropped. The result is
// at most MaxFileNameLength runes; an empty result becomes DefaultFileName.
func SafeFileName(name string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		name,
	)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	b.Grow(len(folded))
	underscore := false
	for _, r := range folded {
		switch {
		case unicode.IsSpace(r):
			if !underscore && b.Len() > 0 {
				b.WriteByte('_')
				underscore = true
			}
		case unicode.IsControl(r), strings.ContainsRune(reservedFileChars, r), r == utf8.RuneError:
		default:
			b.WriteRune(r)
			underscore = false
		}
	}

	out := strings.Trim(b.String(), "._-")
	if utf8.RuneCountInString(out) > MaxFileNameLength {
		out = strings.TrimRight(string([]rune(out)[:MaxFileNameLength]), "._-")
	}
	if out == "" {
		return DefaultFileName
	}
	return out
}

// OutputFileName returns the file name a rendered report is saved under:
// Input.FileName when set, the title otherwise, folded by SafeFileName and
// suffixed with ".pdf".
func OutputFileName(in Input) string {
	name := in.FileName
	if strings.TrimSpace(name) == "" {
		name = in.Title
	}
	if fileutil.HasExtension(name, pdfExtension) {
		name = name[:len(name)-len(pdfExtension)]
	}
	return SafeFileName(name) + pdfExtension
}

// WriteResult saves res.PDF as res.FileName inside dir, creating dir if
// needed. The file is replaced atomically; readers never see a partial
// document. Returns the path written.
func WriteResult(dir string, res *Result) (string, error) {
	if res == nil || len(res.PDF) == 0 {
		return "", fmt.Errorf("%w: empty document", ErrWritePDF)
	}
	if dir == "" {
		dir = "."
	}
	if err := fileutil.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWritePDF, err)
	}
	name := res.FileName
	if name == "" {
		name = DefaultFileName + pdfExtension
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := fileutil.WriteFileAtomic(path, res.PDF, outputPermissions); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWritePDF, err)
	}
	return path, nil
}
