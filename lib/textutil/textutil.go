package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)
var horizontalSpaceRegex = regexp.MustCompile(`[ \t\f\v]+`)
var lineBreakRegex = regexp.MustCompile(`[\r\n]+`)
var footnoteRegex = regexp.MustCompile(`\[[^\]]*\]`)
var parentheticalRegex = regexp.MustCompile(`\([^)]*\)`)

// NormalizeName lowercases a label and removes every whitespace character,
// "Head  coach" and "head coach" both become "headcoach".
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// MatchName reports whether the normalized name contains any of the matchers,
// matchers are expected to already be normalized.
func MatchName(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// StripFootnotes removes reference markers like "[1]" or "[note 2]".
func StripFootnotes(s string) string {
	return footnoteRegex.ReplaceAllString(s, "")
}

// StripNotes removes footnote markers and parenthetical notes like "(captain)".
func StripNotes(s string) string {
	s = footnoteRegex.ReplaceAllString(s, "")
	return parentheticalRegex.ReplaceAllString(s, "")
}

func tidy(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(horizontalSpaceRegex.ReplaceAllString(l, " "))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Clean strips footnotes and parenthetical notes, turns non-breaking spaces into
// spaces and collapses runs of spaces. Line breaks are kept.
func Clean(s string) string {
	return tidy(StripNotes(s))
}

// CleanFootnotes is Clean without removing parenthetical notes.
func CleanFootnotes(s string) string {
	return tidy(StripFootnotes(s))
}

// CollapseSpace joins every whitespace run (line breaks included) into one space.
func CollapseSpace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// Lines splits a multi-line cell into its cleaned, non-empty lines.
func Lines(s string) []string {
	var out []string
	for _, part := range lineBreakRegex.Split(s, -1) {
		part = Clean(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
