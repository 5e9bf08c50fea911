package main

import (
	"errors"

	report2pdf "github.com/alnah/go-report2pdf"
	"github.com/alnah/go-report2pdf/internal/config"
	"github.com/alnah/go-report2pdf/internal/dateutil"
	"github.com/alnah/go-report2pdf/internal/fileutil"
	"github.com/alnah/go-report2pdf/internal/hints"
)

// hintFor returns an actionable hint for err, or "" when none applies.
func hintFor(err error) string {
	var (
		listenErr *listenError
		loadErr   *configLoadError
	)
	switch {
	case errors.As(err, &loadErr) && errors.Is(err, config.ErrConfigNotFound):
		if fileutil.IsFilePath(loadErr.name) {
			return hints.ForConfigNotFound(nil)
		}
		return hints.ForConfigNotFound(config.SearchPaths(loadErr.name))
	case errors.Is(err, report2pdf.ErrLayoutOverflow):
		return hints.ForLayoutOverflow(maxPagesFrom(err))
	case errors.Is(err, report2pdf.ErrInvalidFontFamily):
		return hints.ForFontFamily(report2pdf.FontFamilies())
	case errors.Is(err, dateutil.ErrInvalidDateFormat):
		return hints.ForDateFormat()
	case errors.Is(err, report2pdf.ErrWritePDF):
		return hints.ForOutputDirectory()
	case errors.As(err, &listenErr):
		return hints.ForListen(listenErr.addr)
	}
	return ""
}

// configLoadError records which config name failed to load.
type configLoadError struct {
	name string
	err  error
}

func (e *configLoadError) Error() string { return "loading config: " + e.err.Error() }
func (e *configLoadError) Unwrap() error { return e.err }

// listenError reports a server that could not bind its address.
type listenError struct {
	addr string
	err  error
}

func (e *listenError) Error() string { return "listening on " + e.addr + ": " + e.err.Error() }
func (e *listenError) Unwrap() error { return e.err }

// pageCapError carries the page cap in effect when a render overflowed.
type pageCapError struct {
	maxPages int
	err      error
}

func (e *pageCapError) Error() string { return e.err.Error() }
func (e *pageCapError) Unwrap() error { return e.err }

// withPageCap annotates layout overflows with the cap in effect.
func withPageCap(err error, maxPages int) error {
	if err == nil || !errors.Is(err, report2pdf.ErrLayoutOverflow) {
		return err
	}
	return &pageCapError{maxPages: maxPages, err: err}
}

func maxPagesFrom(err error) int {
	var pc *pageCapError
	if errors.As(err, &pc) {
		return pc.maxPages
	}
	return 0
}
