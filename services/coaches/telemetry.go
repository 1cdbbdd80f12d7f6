package coaches

const (
	report_fetch         = "fetch"
	report_list_page     = "list-page"
	report_parse_history = "parse-history"
	report_no_coach      = "no-coach"
	report_current_guess = "current-guess"
	report_read_clubs    = "read-clubs"
	report_club_coaches  = "club-coaches"
	report_coaches       = "coaches"
	report_write         = "write"
)
