package coaches

import (
	"strings"

	"eplgraph/lib/records"
	"eplgraph/lib/slug"

	"github.com/antzucaro/matchr"
)

// Current decides which history entry is the current manager. An entry is
// the current one when its name and the info box name contain one another,
// ignoring case and diacritics. The returned confidence is CONFIDENCE_INFOBOX
// when such an entry exists and CONFIDENCE_FALLBACK when the last entry was
// assumed.
func Current(entries []Entry, infobox string) (int, records.Confidence) {
	return CurrentFuzzy(entries, infobox, 0)
}

// CurrentFuzzy is Current, also accepting the entry whose Jaro-Winkler
// similarity to the info box name is at least `threshold` when no name
// contains the other. A zero threshold disables the fuzzy step.
func CurrentFuzzy(entries []Entry, infobox string, threshold float64) (int, records.Confidence) {
	if len(entries) == 0 {
		return -1, records.CONFIDENCE_NONE
	}
	last := len(entries) - 1
	if infobox == "" {
		return last, records.CONFIDENCE_FALLBACK
	}

	target := slug.Fold(infobox)

	// a manager may have had several spells, the latest is the current one
	for i := last; i >= 0; i-- {
		name := slug.Fold(entries[i].Name)
		if name == "" {
			continue
		}
		if strings.Contains(name, target) || strings.Contains(target, name) {
			return i, records.CONFIDENCE_INFOBOX
		}
	}

	if threshold > 0 {
		best := -1
		bestScore := 0.0
		for i := last; i >= 0; i-- {
			score := matchr.JaroWinkler(target, slug.Fold(entries[i].Name), false)
			if score >= threshold && score > bestScore {
				best = i
				bestScore = score
			}
		}
		if best >= 0 {
			return best, records.CONFIDENCE_INFOBOX
		}
	}

	return last, records.CONFIDENCE_FALLBACK
}
