// Package layout flows classified blocks onto fixed-size pages.
//
// An Engine owns one document for the duration of a render. Blocks are fed
// in input order with Add; table rows are buffered until the table closes and
// are then drawn as a unit. Finish flushes any open table, appends the
// signature block and, once the page count is known, stamps every page with
// its running header and "Page i of N" footer.
//
// Drawing goes through the Canvas interface. PDF is the go-pdf/fpdf backed
// implementation; tests substitute a recording canvas.
//
// Coordinates are in millimetres with the origin at the top-left corner of
// the page; font sizes are in points.
package layout
