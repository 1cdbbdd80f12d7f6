package relations

const (
	report_read     = "read"
	report_write    = "write"
	report_edges    = "edges"
	report_dangling = "dangling"
)
