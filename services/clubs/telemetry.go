package clubs

const (
	report_fetch        = "fetch"
	report_find_table   = "find-table"
	report_parse_table  = "parse-table"
	report_filtered     = "filtered"
	report_season_clubs = "season-clubs"
	report_clubs        = "clubs"
	report_write        = "write"
)
