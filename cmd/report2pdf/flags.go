package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-report2pdf/internal/config"
)

// ErrUsage wraps flag parsing failures.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds title block flags.
type documentFlags struct {
	title  string
	date   string
	locale string
}

// layoutFlags holds page, header, footer and signature flags.
type layoutFlags struct {
	margin         float64
	fontFamily     string
	fontSize       float64
	headerText     string
	noHeader       bool
	footerFormat   string
	sigLabel       string
	sigCaption     string
	noHeaderRepeat bool
}

// limitFlags holds render limit flags.
type limitFlags struct {
	maxPages int
	verify   bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common   commonFlags
	output   string
	workers  int
	document documentFlags
	layout   layoutFlags
	limits   limitFlags
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common       commonFlags
	addr         string
	maxBodyBytes int64
	timeout      int
	document     documentFlags
	layout       layoutFlags
	limits       limitFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing and diagnostics")
}

// addDocumentFlags adds title block flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "report title (\"\" = from file name)")
	fs.StringVar(&f.date, "date", "", "date line (\"auto\" = today)")
	fs.StringVar(&f.locale, "locale", "", "month names for auto dates: en, pt, es, fr")
}

// addLayoutFlags adds page, header, footer and signature flags to a FlagSet.
func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.Float64Var(&f.margin, "margin", 0, "page margin in mm (10-40)")
	fs.StringVar(&f.fontFamily, "font", "", "font family: helvetica, times, courier")
	fs.Float64Var(&f.fontSize, "font-size", 0, "body font size in points (8-14)")
	fs.StringVar(&f.headerText, "header-text", "", "running header text (\"\" = title)")
	fs.BoolVar(&f.noHeader, "no-header", false, "disable the running header")
	fs.StringVar(&f.footerFormat, "footer", "", "footer format, e.g. \"Page {page} of {total}\"")
	fs.StringVar(&f.sigLabel, "sig-label", "", "signature label")
	fs.StringVar(&f.sigCaption, "sig-caption", "", "signature caption")
	fs.BoolVar(&f.noHeaderRepeat, "no-header-repeat", false, "do not repeat table headers after a page break")
}

// addLimitFlags adds render limit flags to a FlagSet.
func addLimitFlags(fs *flag.FlagSet, f *limitFlags) {
	fs.IntVar(&f.maxPages, "max-pages", 0, "maximum pages per document")
	fs.BoolVar(&f.verify, "verify", false, "re-read each PDF and check pages and footers")
}

// newRenderFlagSet registers every render flag on a new FlagSet bound to f.
// Shell completion reads the same set.
func newRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output directory (\"-\" = stdout)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addLayoutFlags(fs, &f.layout)
	addLimitFlags(fs, &f.limits)
	return fs
}

// newServeFlagSet registers every serve flag on a new FlagSet bound to f.
func newServeFlagSet(f *serveFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address, e.g. :8080")
	fs.Int64Var(&f.maxBodyBytes, "max-body", 0, "maximum request body in bytes")
	fs.IntVarP(&f.timeout, "timeout", "t", 0, "per-request timeout in seconds")

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addLayoutFlags(fs, &f.layout)
	addLimitFlags(fs, &f.limits)
	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newRenderFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printRenderUsage(stderr) }

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, error) {
	f := &serveFlags{}
	fs := newServeFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printServeUsage(stderr) }

	if err := parse(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	return f, nil
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string, stderr io.Writer) (*commonFlags, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &commonFlags{}
	addCommonFlags(fs, f)
	fs.Usage = func() { printConfigUsage(stderr) }

	if err := parse(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}

// parse runs fs.Parse and marks failures as usage errors.
// flag.ErrHelp is returned unchanged so callers can exit cleanly.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return nil
}

// mergeDocumentFlags applies title block flags to cfg (CLI wins).
func mergeDocumentFlags(f *documentFlags, cfg *config.Config) {
	if f.title != "" {
		cfg.Document.Title = f.title
	}
	if f.date != "" {
		cfg.Document.Date = f.date
	}
	if f.locale != "" {
		cfg.Document.Locale = f.locale
	}
}

// mergeLayoutFlags applies layout flags to cfg (CLI wins).
func mergeLayoutFlags(f *layoutFlags, cfg *config.Config) {
	if f.margin != 0 {
		cfg.Page.Margin = f.margin
	}
	if f.fontFamily != "" {
		cfg.Fonts.Family = f.fontFamily
	}
	if f.fontSize != 0 {
		cfg.Fonts.BodySize = f.fontSize
	}
	if f.headerText != "" {
		cfg.Header.Text = f.headerText
	}
	if f.noHeader {
		cfg.Header.Enabled = false
	}
	if f.footerFormat != "" {
		cfg.Footer.Format = f.footerFormat
	}
	if f.sigLabel != "" {
		cfg.Signature.Label = f.sigLabel
	}
	if f.sigCaption != "" {
		cfg.Signature.Caption = f.sigCaption
	}
	if f.noHeaderRepeat {
		cfg.Table.RepeatHeader = false
	}
}

// mergeLimitFlags applies limit flags to cfg (CLI wins).
func mergeLimitFlags(f *limitFlags, cfg *config.Config) {
	if f.maxPages != 0 {
		cfg.Limits.MaxPages = f.maxPages
	}
	if f.verify {
		cfg.Limits.Verify = true
	}
}
