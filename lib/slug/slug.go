// Package slug derives the node identifiers of the graph from display names.
package slug

import (
	"regexp"
	"strings"

	"eplgraph/lib/textutil"

	"github.com/mozillazg/go-unidecode"
)

const (
	PREFIX_CLUB   = "club"
	PREFIX_PLAYER = "player"
	PREFIX_COACH  = "coach"
)

var disallowedRegex = regexp.MustCompile(`[^a-z0-9\s-]`)
var spaceRunRegex = regexp.MustCompile(`\s+`)

// Fold transliterates a display string to ascii and lowercases it, it is the
// comparison form used whenever two names from different pages are matched.
func Fold(s string) string {
	s = unidecode.Unidecode(s)
	s = strings.ToLower(s)
	return textutil.CollapseSpace(s)
}

// Make turns a display name into "<prefix>_<slug>". The second return value is
// false when nothing identifying is left of the name, the record should then be
// skipped.
func Make(prefix, display string) (string, bool) {
	s := textutil.StripNotes(display)
	s = unidecode.Unidecode(s)
	s = strings.ToLower(s)
	s = disallowedRegex.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = spaceRunRegex.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_-")
	if s == "" {
		return "", false
	}
	return prefix + "_" + s, true
}

func Club(name string) (string, bool) {
	return Make(PREFIX_CLUB, name)
}

func Player(name string) (string, bool) {
	return Make(PREFIX_PLAYER, name)
}

func Coach(name string) (string, bool) {
	return Make(PREFIX_COACH, name)
}
