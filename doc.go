// Package report2pdf renders loosely formatted report text into paginated
// A4 PDF documents.
//
// # Quick Start
//
// Create a renderer, render a report, and save it:
//
//	r := report2pdf.NewRenderer()
//
//	result, err := r.Render(ctx, report2pdf.Input{
//	    Title:   "Relatório de Avaliação",
//	    Content: "1. INTRODUCTION\nThe patient was seen today.\n\n| Exam | Result |\n| --- | --- |\n| CBC | normal |",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	path, err := report2pdf.WriteResult("out", result)
//
// The result carries the PDF bytes, the page count and one Placement per
// rendered element (page, vertical extent, wrapped lines) for inspection.
//
// # Rendering Pipeline
//
// Content goes through these stages, strictly in sequence:
//
//  1. Text preparation: HTML tags stripped to line breaks, line endings normalized
//  2. Line classification: blank, divider, table separator, table row,
//     heading, bullet or numbered item, paragraph (first matching rule wins)
//  3. Table accumulation: consecutive rows are buffered and drawn as one table
//  4. Page flow: measured word wrap, page breaks before blocks that do not fit
//  5. Finishing: signature block after the last content, then the running
//     header and "Page i of N" footer stamped on every page
//
// Dividers and table separators produce no output. A paragraph is never split
// across pages unless it is taller than a whole page. Content that cannot be
// paginated (a single line taller than a page, or more pages than allowed)
// fails with ErrLayoutOverflow.
//
// # Configuration
//
// Use functional options to customize the renderer:
//
//	r := report2pdf.NewRenderer(
//	    report2pdf.WithLogger(slog.Default()),
//	    report2pdf.WithMaxPages(50),
//	    report2pdf.WithVerification(true),
//	)
//
// Per-document settings are passed via Input:
//
//	result, err := r.Render(ctx, report2pdf.Input{
//	    Title:     "Report",
//	    Content:   content,
//	    Date:      "15 March 2024",
//	    Page:      &report2pdf.PageSettings{Margin: 25, FontFamily: "times"},
//	    Header:    &report2pdf.Header{Text: "Clinic XYZ"},
//	    Footer:    &report2pdf.Footer{Format: "{page}/{total}"},
//	    Signature: &report2pdf.Signature{Label: "Dr. Silva"},
//	})
//
// # Fonts
//
// Documents use the PDF core fonts (Helvetica, Times, Courier), so no font
// files are embedded. Text is encoded as Windows-1252; characters outside
// that code page are replaced.
//
// # Reproducible Output
//
// WithClock fixes the creation date written to the document. With a fixed
// clock, rendering the same Input twice yields identical bytes.
package report2pdf
