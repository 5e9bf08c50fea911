package main

import (
	"fmt"
	"log/slog"
	"time"

	report2pdf "github.com/alnah/go-report2pdf"
	"github.com/alnah/go-report2pdf/internal/config"
	"github.com/alnah/go-report2pdf/internal/dateutil"
)

// renderSettings holds the per-document settings shared by every render of
// one command invocation. Title and content vary per document.
type renderSettings struct {
	title     string // config title; empty = derived per document
	date      string // unresolved; "auto" is resolved per document
	locale    string
	page      *report2pdf.PageSettings
	header    *report2pdf.Header
	footer    *report2pdf.Footer
	signature *report2pdf.Signature
	table     *report2pdf.TableSettings
}

// buildSettings maps the effective configuration to library settings.
func buildSettings(cfg *config.Config) *renderSettings {
	return &renderSettings{
		title:  cfg.Document.Title,
		date:   cfg.Document.Date,
		locale: cfg.Document.Locale,
		page: &report2pdf.PageSettings{
			Margin:     cfg.Page.Margin,
			FontFamily: cfg.Fonts.Family,
			FontSize:   cfg.Fonts.BodySize,
		},
		header: &report2pdf.Header{
			Disabled: !cfg.Header.Enabled,
			Text:     cfg.Header.Text,
		},
		footer: &report2pdf.Footer{Format: cfg.Footer.Format},
		signature: &report2pdf.Signature{
			Label:   cfg.Signature.Label,
			Caption: cfg.Signature.Caption,
		},
		table: &report2pdf.TableSettings{NoHeaderRepeat: !cfg.Table.RepeatHeader},
	}
}

// input builds the render input for one document. "auto" dates are
// resolved against now.
func (s *renderSettings) input(title, content, fileName string, now time.Time) (report2pdf.Input, error) {
	date, err := dateutil.ResolveDate(s.date, now, s.locale)
	if err != nil {
		return report2pdf.Input{}, fmt.Errorf("invalid date format: %w", err)
	}
	return report2pdf.Input{
		Title:     title,
		Content:   content,
		FileName:  fileName,
		Date:      date,
		Page:      s.page,
		Header:    s.header,
		Footer:    s.footer,
		Signature: s.signature,
		Table:     s.table,
	}, nil
}

// newRenderer creates the renderer for the effective configuration.
func newRenderer(cfg *config.Config, logger *slog.Logger, now func() time.Time) *report2pdf.Renderer {
	return report2pdf.NewRenderer(
		report2pdf.WithLogger(logger),
		report2pdf.WithClock(now),
		report2pdf.WithMaxPages(cfg.Limits.MaxPages),
		report2pdf.WithVerification(cfg.Limits.Verify),
	)
}
