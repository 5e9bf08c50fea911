package textprep

import "strings"

var (
	lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\u2028", "\n", "\u2029", "\n")
	spaces     = strings.NewReplacer("\t", " ", "\u00a0", " ")
)

// Lines prepares content for classification: markup is stripped, line endings
// normalized, tabs and non-breaking spaces folded to plain spaces. Leading and
// trailing empty lines are dropped; the classifier trims each line itself.
func Lines(content string) []string {
	content = StripTags(content)
	content = lineBreaks.Replace(content)
	content = spaces.Replace(content)
	content = strings.Trim(content, "\n ")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}
