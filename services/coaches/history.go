package coaches

import (
	"errors"
	"regexp"
	"strings"

	"eplgraph/lib/classify"
	"eplgraph/lib/htmlutil"
	"eplgraph/lib/slug"
	"eplgraph/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

var ErrNoHistoryTable = errors.New("no managerial history table")

const (
	FIELD_NAME  = "Name"
	FIELD_YEARS = "Years"
)

var Columns = classify.NewClassifier(
	classify.R(FIELD_NAME, `manager`, `head coach`, `coach`, `name`),
	classify.R(FIELD_YEARS, `year`, `\bfrom\b`, `\bto\b`, `dates`, `tenure`, `period`, `season`),
)

var (
	infoboxLabelRegex = regexp.MustCompile(`(?i)manager|head coach`)
	historyRegex      = regexp.MustCompile(`(?i)managerial|managers`)
)

// InfoboxManager returns the manager named in the page's info box.
func InfoboxManager(doc *goquery.Document, isName classify.NamePredicate) (string, bool) {
	var name string
	doc.Find("table.infobox, table[class*=infobox]").First().Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		th := tr.ChildrenFiltered("th").First()
		if th.Length() == 0 || !infoboxLabelRegex.MatchString(th.Text()) {
			return true
		}
		td := tr.ChildrenFiltered("td").First()
		if td.Length() > 0 {
			name = classify.FirstName(htmlutil.SelectionText(td), isName)
		}
		return false
	})
	return name, name != ""
}

// HistoryTable returns the first wikitable after the managerial history
// heading of a club page.
func HistoryTable(doc *goquery.Document) (*goquery.Selection, bool) {
	headings := htmlutil.Headings(doc.Selection, "h2, h3")
	var heading htmlutil.Heading
	found := false
	for _, h := range headings {
		if historyRegex.MatchString(h.Text) {
			heading = h
			found = true
			break
		}
	}
	if !found {
		return nil, false
	}

	wikitables := doc.Find("table.wikitable")
	next := htmlutil.NewDocumentOrder(doc).NextAfter(wikitables, heading.Node)
	if next == nil {
		return nil, false
	}
	return wikitables.FilterNodes(next), true
}

// BestListTable picks the table of a "list of managers" page whose header
// best matches manager columns, ties go to the table with the most rows.
func BestListTable(doc *goquery.Document) (htmlutil.Table, error) {
	var best htmlutil.Table
	bestScore := -1
	doc.Find("table.wikitable").Each(func(_ int, s *goquery.Selection) {
		table, err := htmlutil.ParseTable(s)
		if err != nil {
			return
		}
		score := Columns.Score(table.Header, FIELD_NAME)
		if score > bestScore || (score == bestScore && len(table.Rows) > len(best.Rows)) {
			best = table
			bestScore = score
		}
	})
	if bestScore < 0 {
		return htmlutil.Table{}, ErrNoHistoryTable
	}
	return best, nil
}

// Entry is one row of a managerial history table.
type Entry struct {
	Name  string
	Years string
}

// Entries reads the history rows, rows without a usable name are dropped.
func Entries(table htmlutil.Table, isName classify.NamePredicate) []Entry {
	cols := Columns.Columns(table.Header)
	width := len(table.Header)

	nameCol, ok := cols[FIELD_NAME]
	if !ok {
		nameCol = min(1, width-1)
	}
	yearsCol, ok := cols[FIELD_YEARS]
	if !ok {
		yearsCol = 0
	}

	var out []Entry
	for _, row := range table.Rows {
		if nameCol < 0 || nameCol >= len(row) {
			continue
		}
		name := strings.TrimSpace(classify.FirstName(row[nameCol], isName))
		if _, ok := slug.Coach(name); !ok {
			continue
		}
		years := ""
		if yearsCol < len(row) {
			years = textutil.CollapseSpace(classify.FirstDated(row[yearsCol]))
		}
		out = append(out, Entry{
			Name:  name,
			Years: years,
		})
	}
	return out
}
