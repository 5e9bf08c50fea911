// Package dateutil resolves the date line printed under a report title.
//
// Values are either literal text, passed through unchanged, or "auto"
// forms resolved against a clock: "auto", "auto:FORMAT" or "auto:preset".
// Month names follow the report locale.
package dateutil

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Sentinel errors.
var (
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrUnknownLocale     = errors.New("unknown locale")
)

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when "auto" is specified without a format.
const DefaultDateFormat = "YYYY-MM-DD"

// DefaultLocale keeps Go's English month names.
const DefaultLocale = "en"

// dateTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"extenso":  "D [de] MMMM [de] YYYY",
}

// monthNames holds full month names per locale, January first.
var monthNames = map[string][12]string{
	"pt": {"janeiro", "fevereiro", "março", "abril", "maio", "junho",
		"julho", "agosto", "setembro", "outubro", "novembro", "dezembro"},
	"es": {"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
	"fr": {"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre"},
}

// Locales returns the supported locale codes, sorted.
func Locales() []string {
	out := []string{DefaultLocale}
	for code := range monthNames {
		out = append(out, code)
	}
	slices.Sort(out)
	return out
}

// ValidateLocale reports whether locale is supported. Empty means default.
func ValidateLocale(locale string) error {
	if locale == "" || locale == DefaultLocale {
		return nil
	}
	if _, ok := monthNames[strings.ToLower(locale)]; !ok {
		return fmt.Errorf("%w: %q (valid: %s)", ErrUnknownLocale, locale, strings.Join(Locales(), ", "))
	}
	return nil
}

// ParseDateFormat converts a user-friendly format string to Go's time format.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D
// Use brackets to escape literal text: [de] preserves "de" literally.
// Any non-token characters outside brackets are preserved as literals.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var result strings.Builder
	result.Grow(len(format) + 10)

	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			result.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		n := 0
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				result.WriteString(t.goFmt)
				n = len(t.token)
				break
			}
		}
		if n == 0 {
			result.WriteByte(format[i])
			n = 1
		}
		i += n
	}

	return result.String(), nil
}

// Format formats t with a user-friendly format and localizes month names.
func Format(t time.Time, format, locale string) (string, error) {
	goFmt, err := ParseDateFormat(format)
	if err != nil {
		return "", err
	}
	if err := ValidateLocale(locale); err != nil {
		return "", err
	}
	return localize(t, t.Format(goFmt), strings.ToLower(locale)), nil
}

// localize swaps the English name of t's month for the locale's. Only the
// month of t can appear in the formatted string, so nothing else is touched.
func localize(t time.Time, s, locale string) string {
	names, ok := monthNames[locale]
	if !ok {
		return s
	}
	full := names[t.Month()-1]
	s = strings.ReplaceAll(s, t.Month().String(), full)
	short := t.Month().String()[:3]
	return strings.ReplaceAll(s, short, string([]rune(full)[:3]))
}

// ResolveDate handles "auto" and "auto:FORMAT" syntax for date values.
//   - "auto" → date of t in YYYY-MM-DD format
//   - "auto:FORMAT" → date of t in a custom format (e.g. "auto:DD/MM/YYYY")
//   - "auto:preset" → date of t using a named preset (iso, european, us, long, extenso)
//   - any other value → returned unchanged
func ResolveDate(value string, t time.Time, locale string) (string, error) {
	lower := strings.ToLower(value)

	if !strings.HasPrefix(lower, "auto") {
		return value, nil
	}
	if lower == "auto" {
		return Format(t, DefaultDateFormat, locale)
	}
	if !strings.HasPrefix(lower, "auto:") {
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	}

	// Keep the original case: tokens are uppercase.
	format := value[len("auto:"):]
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
	}
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}
	return Format(t, format, locale)
}
