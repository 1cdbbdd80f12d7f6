package seasons

const (
	report_fetch       = "fetch"
	report_parse_years = "parse-years"
	report_seasons     = "seasons"
	report_write       = "write"
)
