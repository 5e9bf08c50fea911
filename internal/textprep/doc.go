// Package textprep turns raw report content into physical lines ready for
// classification.
//
// Content arrives either as plain text or as HTML-ish markup. Markup is
// reduced to text with block-level tags mapped to line breaks, and inline
// Markdown decorations are flattened to the words they wrap.
package textprep
