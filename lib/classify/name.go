package classify

import (
	"regexp"
	"strings"

	"eplgraph/lib/textutil"
)

// NamePredicate decides whether a line of a table cell is a person's name.
type NamePredicate func(line string) bool

var nationalityCodeRegex = regexp.MustCompile(`^[A-Z]{2,4}$`)
var numericRegex = regexp.MustCompile(`^[\d.,%\s–-]+$`)
var letterRegex = regexp.MustCompile(`\pL`)

// LooksLikeName is the default NamePredicate: the line has a letter, is not a
// bare nationality code like "ENG" and is not a number or percentage.
func LooksLikeName(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if nationalityCodeRegex.MatchString(line) {
		return false
	}
	if numericRegex.MatchString(line) {
		return false
	}
	return letterRegex.MatchString(line)
}

var innerSpaceRegex = regexp.MustCompile(`\s{2,}`)

// FirstName returns the first line of a cell accepted by `isName`. When no
// line qualifies it falls back to the first non-empty line.
func FirstName(cell string, isName NamePredicate) string {
	lines := textutil.Lines(cell)
	for _, l := range lines {
		l = strings.Trim(innerSpaceRegex.ReplaceAllString(l, " "), " ,;")
		if isName(l) {
			return l
		}
	}
	if len(lines) > 0 {
		return lines[0]
	}
	return ""
}

var digitRegex = regexp.MustCompile(`\d`)

// FirstDated returns the first line of a cell that contains a digit, or the
// first line when none does.
func FirstDated(cell string) string {
	lines := textutil.Lines(cell)
	for _, l := range lines {
		if digitRegex.MatchString(l) {
			return l
		}
	}
	if len(lines) > 0 {
		return lines[0]
	}
	return ""
}
