package players

const (
	report_fetch       = "fetch"
	report_find_squad  = "find-squad"
	report_parse_squad = "parse-squad"
	report_read_clubs  = "read-clubs"
	report_club_squad  = "club-squad"
	report_players     = "players"
	report_write       = "write"
)
