package telemetry

import (
	"strings"
	"sync"
)

type ReportKind int

const (
	REPORT_BROKEN ReportKind = iota
	REPORT_WARNING
	REPORT_DEBUG
	REPORT_COUNT
)

type Report struct {
	Kind   ReportKind
	ID     string
	Params []any
	Count  int64
}

// MemoryAPI keeps every report in memory so tests can assert on what a
// component reported.
type MemoryAPI struct {
	mu      *sync.Mutex
	reports *[]Report
}

func NewMemoryAPI() MemoryAPI {
	return MemoryAPI{
		mu:      &sync.Mutex{},
		reports: &[]Report{},
	}
}

func (m MemoryAPI) push(r Report) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*m.reports = append(*m.reports, r)
}

func (m MemoryAPI) ReportBroken(id string, params ...any) {
	m.push(Report{Kind: REPORT_BROKEN, ID: id, Params: params})
}

func (m MemoryAPI) ReportWarning(id string, params ...any) {
	m.push(Report{Kind: REPORT_WARNING, ID: id, Params: params})
}

func (m MemoryAPI) ReportDebug(msg string, params ...any) {
	m.push(Report{Kind: REPORT_DEBUG, ID: msg, Params: params})
}

func (m MemoryAPI) ReportCount(id string, count int64) {
	m.push(Report{Kind: REPORT_COUNT, ID: id, Count: count})
}

// Reports returns a copy of the reports of the given kind.
func (m MemoryAPI) Reports(kind ReportKind) []Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Report
	for _, r := range *m.reports {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// Has reports whether a report of the given kind has an id ending with suffix,
// scoped ids are prefixed with their namespace.
func (m MemoryAPI) Has(kind ReportKind, suffix string) bool {
	for _, r := range m.Reports(kind) {
		if strings.HasSuffix(r.ID, suffix) {
			return true
		}
	}
	return false
}

// LastCount returns the most recent count reported under an id ending with suffix.
func (m MemoryAPI) LastCount(suffix string) (int64, bool) {
	counts := m.Reports(REPORT_COUNT)
	for i := len(counts) - 1; i >= 0; i-- {
		if strings.HasSuffix(counts[i].ID, suffix) {
			return counts[i].Count, true
		}
	}
	return 0, false
}
