package classify

import (
	"reflect"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		line    string
		kind    Kind
		heading HeadingKind
		list    ListKind
		text    string
	}{
		{name: "section heading", line: "1. INTRODUCTION", kind: Heading, heading: HeadingSection, text: "1. INTRODUCTION"},
		{name: "subsection heading", line: "2.1 Scope of work", kind: Heading, heading: HeadingSection, text: "2.1 Scope of work"},
		{name: "subsection with trailing dot", line: "3.4. Findings", kind: Heading, heading: HeadingSection, text: "3.4. Findings"},
		{name: "all caps heading", line: "RESUMO EXECUTIVO", kind: Heading, heading: HeadingAllCaps, text: "RESUMO EXECUTIVO"},
		{name: "all caps with accents", line: "CONCLUSÃO", kind: Heading, heading: HeadingAllCaps, text: "CONCLUSÃO"},
		{name: "markdown h2", line: "## Findings", kind: Heading, heading: HeadingMarkdown, text: "Findings"},
		{name: "markdown h1", line: "# Title", kind: Heading, heading: HeadingMarkdown, text: "Title"},
		{name: "bullet dash", line: "- item", kind: ListItem, list: ListBullet, text: "item"},
		{name: "bullet glyph", line: "• second item", kind: ListItem, list: ListBullet, text: "second item"},
		{name: "numbered item keeps numeral", line: "1) first", kind: ListItem, list: ListNumbered, text: "1) first"},
		{name: "paragraph", line: "The patient was seen today.", kind: Paragraph, text: "The patient was seen today."},
		{name: "surrounding whitespace trimmed", line: "   plain text  ", kind: Paragraph, text: "plain text"},
		{name: "blank", line: "", kind: Blank},
		{name: "whitespace only is blank", line: " \t ", kind: Blank},
		{name: "dash divider", line: "---", kind: Divider, text: "---"},
		{name: "star divider", line: "*****", kind: Divider, text: "*****"},
		{name: "equals divider", line: "===", kind: Divider, text: "==="},
		{name: "table separator", line: "| --- | --- |", kind: TableSeparator, text: "| --- | --- |"},
		{name: "aligned table separator", line: "|:---|---:|", kind: TableSeparator, text: "|:---|---:|"},
		{name: "four hashes is a paragraph", line: "#### deep", kind: Paragraph, text: "#### deep"},
		{name: "star bullet is a paragraph", line: "* item", kind: Paragraph, text: "* item"},
		{name: "hash without space is a paragraph", line: "#tag here", kind: Paragraph, text: "#tag here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Classify(tt.line)
			if got.Kind != tt.kind {
				t.Fatalf("Classify(%q).Kind = %v, want %v", tt.line, got.Kind, tt.kind)
			}
			if got.Heading != tt.heading {
				t.Errorf("Classify(%q).Heading = %v, want %v", tt.line, got.Heading, tt.heading)
			}
			if got.List != tt.list {
				t.Errorf("Classify(%q).List = %v, want %v", tt.line, got.List, tt.list)
			}
			if got.Text != tt.text {
				t.Errorf("Classify(%q).Text = %q, want %q", tt.line, got.Text, tt.text)
			}
		})
	}
}

func TestClassify_RuleOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		line    string
		kind    Kind
		heading HeadingKind
		list    ListKind
	}{
		// Rule 4 wins over rule 5 for a numbered all-caps line.
		{name: "numbered all caps is a section", line: "2. METHODS", kind: Heading, heading: HeadingSection},
		// Rule 5 excludes lines starting with a digit.
		{name: "digit first all caps is not all caps", line: "3D SCAN RESULTS", kind: Paragraph},
		// Rule 5 wins over rule 6.
		{name: "hashed all caps is all caps", line: "## RESUMO", kind: Heading, heading: HeadingAllCaps},
		// Rule 5 wins over rule 7.
		{name: "upper bullet is all caps", line: "- NOTE", kind: Heading, heading: HeadingAllCaps},
		// "1." is a section heading, not a numbered item.
		{name: "dot numbering is a section", line: "1. take medication", kind: Heading, heading: HeadingSection},
		{name: "all caps too short", line: "ABC", kind: Paragraph},
		{name: "symbols only are not all caps", line: "!!!!", kind: Paragraph},
		{name: "long numbered line is not a section", line: "1. " + strings.Repeat("a", 100), kind: Paragraph},
		{name: "long all caps is not a heading", line: strings.Repeat("A", 80), kind: Paragraph},
		{name: "single cell row is not a table", line: "| only |", kind: Paragraph},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Classify(tt.line)
			if got.Kind != tt.kind || got.Heading != tt.heading || got.List != tt.list {
				t.Errorf("Classify(%q) = {%v %v %v}, want {%v %v %v}",
					tt.line, got.Kind, got.Heading, got.List, tt.kind, tt.heading, tt.list)
			}
		})
	}
}

func TestClassify_TableRow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		line  string
		cells []string
	}{
		{name: "two cells", line: "| A | B |", cells: []string{"A", "B"}},
		{name: "no padding", line: "|x|y|z|", cells: []string{"x", "y", "z"}},
		{name: "empty inner cell kept", line: "| A |  | C |", cells: []string{"A", "", "C"}},
		{name: "separator lookalike with text", line: "| -- | ok |", cells: []string{"--", "ok"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Classify(tt.line)
			if got.Kind != TableRow {
				t.Fatalf("Classify(%q).Kind = %v, want table-row", tt.line, got.Kind)
			}
			if !reflect.DeepEqual(got.Cells, tt.cells) {
				t.Errorf("Cells = %q, want %q", got.Cells, tt.cells)
			}
		})
	}
}

func TestClassify_MarkdownLevel(t *testing.T) {
	t.Parallel()

	for level, line := range []string{"# One", "## Two", "### Three"} {
		got := Classify(line)
		if got.Level != level+1 {
			t.Errorf("Classify(%q).Level = %d, want %d", line, got.Level, level+1)
		}
	}
}

func TestBlock_Dropped(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"---", "| --- | --- |"} {
		if !Classify(line).Dropped() {
			t.Errorf("Classify(%q).Dropped() = false, want true", line)
		}
	}
	for _, line := range []string{"", "text", "| a | b |"} {
		if Classify(line).Dropped() {
			t.Errorf("Classify(%q).Dropped() = true, want false", line)
		}
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	tests := map[Kind]string{
		Blank:          "blank",
		Divider:        "divider",
		TableSeparator: "table-separator",
		TableRow:       "table-row",
		Heading:        "heading",
		ListItem:       "list-item",
		Paragraph:      "paragraph",
		Kind(99):       "unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
