// Package records holds the node and relation records that flow between the
// extractors and the relation assembler.
package records

type Season struct {
	ID        string
	Name      string
	StartYear int
	EndYear   int
	URL       string
}

type Club struct {
	ID       string
	Name     string
	Location string
	Stadium  string
}

// ClubSeason records that a club took part in a season, it becomes a PART_OF edge.
type ClubSeason struct {
	ClubID string
	Club   string
	Season string
}

type Player struct {
	ID       string
	Name     string
	Nation   string
	Position string
}

type PlayedFor struct {
	PlayerID string
	ClubID   string
	Season   string
	Position string
}

type Coach struct {
	ID   string
	Name string
}

// Confidence describes where the current flag of a Coached record came from.
type Confidence string

const (
	// CONFIDENCE_NONE is used for records that are not current.
	CONFIDENCE_NONE Confidence = ""
	// CONFIDENCE_INFOBOX means the club page's info box named this coach.
	CONFIDENCE_INFOBOX Confidence = "infobox"
	// CONFIDENCE_FALLBACK means the last row of the history table was assumed current.
	CONFIDENCE_FALLBACK Confidence = "fallback"
)

type Coached struct {
	CoachID    string
	ClubID     string
	Season     string
	Years      string
	IsCurrent  bool
	Confidence Confidence
}
