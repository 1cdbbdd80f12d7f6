package records

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const SEASON_ID_PREFIX = "EPL-"

var dashReplacer = strings.NewReplacer("-", "–", "−", "–", "—", "–")
var seasonStartRegex = regexp.MustCompile(`^(\d{4})–(\d{2})`)
var yearRegex = regexp.MustCompile(`\d{4}`)

// CanonicalSeason rewrites every dash variant of a season display string into
// the en dash used by the encyclopedia's titles, "2023-24" becomes "2023–24".
func CanonicalSeason(display string) string {
	return dashReplacer.Replace(strings.TrimSpace(display))
}

// SeasonID derives the season node id from a display string. Node and edge
// files both go through this function so the ids always agree.
func SeasonID(display string) string {
	display = CanonicalSeason(display)
	if display == "" {
		return ""
	}
	return SEASON_ID_PREFIX + display
}

// SeasonStartYear returns the first year of a "YYYY–YY" display string, or -1
// when the string is not in that form.
func SeasonStartYear(display string) int {
	groups := seasonStartRegex.FindStringSubmatch(CanonicalSeason(display))
	if len(groups) < 2 {
		return -1
	}
	year, err := strconv.Atoi(groups[1])
	if err != nil {
		return -1
	}
	return year
}

// SeasonYears extracts the start and end year embedded in a display string.
// A single four digit year yields (year, year+1).
func SeasonYears(display string) (int, int, bool) {
	found := yearRegex.FindAllString(display, -1)
	switch len(found) {
	case 1:
		start, _ := strconv.Atoi(found[0])
		return start, start + 1, true
	case 2:
		start, _ := strconv.Atoi(found[0])
		end, _ := strconv.Atoi(found[1])
		return start, end, true
	}
	return 0, 0, false
}

// SeasonDisplay formats the season starting in `startYear`, 2024 becomes "2024–25".
func SeasonDisplay(startYear int) string {
	return fmt.Sprintf("%d–%02d", startYear, (startYear+1)%100)
}

// Window returns the `n` seasons ending with the one starting in
// `referenceStartYear`, most recent first.
func Window(referenceStartYear, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, SeasonDisplay(referenceStartYear-i))
	}
	return out
}

// CurrentSeasonStartYear gets the start year of the season in progress, or if
// in the summer break, the season that just ended. Seasons start in August.
func CurrentSeasonStartYear(now time.Time) int {
	if now.Month() >= time.August {
		return now.Year()
	}
	return now.Year() - 1
}
