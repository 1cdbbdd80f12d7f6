// Package classify maps the loosely named columns of encyclopedia tables onto
// canonical field names.
package classify

import (
	"regexp"
)

// Rule lists the header patterns accepted for one canonical field.
type Rule struct {
	Field    string
	Patterns []*regexp.Regexp
}

// Classifier assigns header names to canonical fields. Rules are tried in
// order, a header goes to the first rule with a matching pattern.
type Classifier struct {
	rules []Rule
}

// NewClassifier builds a classifier from field -> case-insensitive pattern
// lists, given as ordered pairs so rule precedence is explicit.
func NewClassifier(rules ...Rule) Classifier {
	return Classifier{rules: rules}
}

// R compiles a rule, every pattern is matched case-insensitively.
func R(field string, patterns ...string) Rule {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile("(?i)" + p)
	}
	return Rule{Field: field, Patterns: compiled}
}

// FieldOf returns the canonical field of a header name.
func (c Classifier) FieldOf(header string) (string, bool) {
	for _, r := range c.rules {
		for _, p := range r.Patterns {
			if p.MatchString(header) {
				return r.Field, true
			}
		}
	}
	return "", false
}

// Columns maps each canonical field to the index of the first header
// classified as it.
func (c Classifier) Columns(headers []string) Columns {
	out := Columns{}
	for i, h := range headers {
		field, ok := c.FieldOf(h)
		if !ok {
			continue
		}
		if _, taken := out[field]; !taken {
			out[field] = i
		}
	}
	return out
}

// Score counts how many headers belong to `field`, used to pick the best of
// several candidate tables.
func (c Classifier) Score(headers []string, field string) int {
	n := 0
	for _, h := range headers {
		f, ok := c.FieldOf(h)
		if ok && f == field {
			n++
		}
	}
	return n
}

// Columns is the result of Classifier.Columns.
type Columns map[string]int

func (c Columns) Has(field string) bool {
	_, ok := c[field]
	return ok
}

// Get returns the cell of `field` in `row`, or "" when the field is absent.
func (c Columns) Get(row []string, field string) string {
	i, ok := c[field]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
