package players

import (
	"errors"
	"regexp"

	"eplgraph/lib/classify"
	"eplgraph/lib/htmlutil"
	"eplgraph/lib/records"
	"eplgraph/lib/slug"
	"eplgraph/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

var (
	ErrNoSquad      = errors.New("no squad section")
	ErrNoSquadTable = errors.New("no squad table")
)

const (
	FIELD_NAME     = "Name"
	FIELD_NATION   = "Nation"
	FIELD_POSITION = "Position"
)

var Columns = classify.NewClassifier(
	classify.R(FIELD_NAME, `player|name`),
	classify.R(FIELD_NATION, `nation`),
	classify.R(FIELD_POSITION, `pos`),
)

var (
	squadTextRegex     = regexp.MustCompile(`(?i)(first[- ]?team|current) squad`)
	firstTeamTextRegex = regexp.MustCompile(`(?i)first[- ]?team`)
	firstTeamIdRegex   = regexp.MustCompile(`(?i)first[-_ ]?team([-_ ]?squad)?`)
)

const squadTableSelector = "table.football-squad, table.wikitable"

// FindSquadHeading finds the heading of the current squad section.
func FindSquadHeading(headings []htmlutil.Heading) (htmlutil.Heading, bool) {
	for _, h := range headings {
		if squadTextRegex.MatchString(h.Text) {
			return h, true
		}
	}
	for _, h := range headings {
		if firstTeamTextRegex.MatchString(h.Text) {
			return h, true
		}
	}
	for _, h := range headings {
		if firstTeamIdRegex.MatchString(h.ID) {
			return h, true
		}
	}
	return htmlutil.Heading{}, false
}

// sectionEnd returns the first heading of any level after the squad heading.
// Loan and academy subsections never belong to the squad.
func sectionEnd(headings []htmlutil.Heading, squad htmlutil.Heading, order htmlutil.Order) (htmlutil.Heading, bool) {
	for _, h := range headings {
		if order.Before(squad.Node, h.Node) {
			return h, true
		}
	}
	return htmlutil.Heading{}, false
}

// SquadTables collects the tables of the current squad. Squads split by
// position usually sit in a shared presentation table, otherwise the first
// squad table of the section and the squad tables directly following it as
// siblings are taken.
func SquadTables(doc *goquery.Document) (*goquery.Selection, error) {
	headings := htmlutil.Headings(doc.Selection, "h2, h3, h4")
	squad, ok := FindSquadHeading(headings)
	if !ok {
		return nil, ErrNoSquad
	}

	order := htmlutil.NewDocumentOrder(doc)
	end, bounded := sectionEnd(headings, squad, order)
	inSection := func(sel *goquery.Selection) *goquery.Selection {
		if bounded {
			return order.Between(sel, squad.Node, end.Node)
		}
		return order.After(sel, squad.Node)
	}

	wrappers := inSection(doc.Find(`table[role="presentation"]`))
	if wrappers.Length() > 0 {
		inner := wrappers.First().Find(squadTableSelector)
		if inner.Length() > 0 {
			return inner, nil
		}
	}

	first := inSection(doc.Find(squadTableSelector)).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.ParentsFiltered(squadTableSelector).Length() == 0
	}).First()
	if first.Length() == 0 {
		return nil, ErrNoSquadTable
	}

	tables := first
	for next := first.Next(); next.Length() > 0 && next.Is(squadTableSelector); next = next.Next() {
		tables = tables.AddSelection(next)
	}
	return tables, nil
}

// ParseSquad flattens the squad tables into one table, tables that fail to
// parse or have no name column are left out.
func ParseSquad(tables *goquery.Selection) (htmlutil.Table, error) {
	var parsed []htmlutil.Table
	tables.Each(func(_ int, s *goquery.Selection) {
		table, err := htmlutil.ParseTable(s)
		if err != nil {
			return
		}
		if !Columns.Columns(table.Header).Has(FIELD_NAME) {
			return
		}
		parsed = append(parsed, table)
	})
	if len(parsed) == 0 {
		return htmlutil.Table{}, ErrNoSquadTable
	}
	return htmlutil.Concat(parsed), nil
}

func cell(s string) string {
	return textutil.CollapseSpace(textutil.Clean(s))
}

// Extract reads the players of a squad table, rows without a usable name are
// dropped.
func Extract(table htmlutil.Table) []records.Player {
	cols := Columns.Columns(table.Header)
	var out []records.Player
	for _, row := range table.Rows {
		name := cell(cols.Get(row, FIELD_NAME))
		id, ok := slug.Player(name)
		if !ok {
			continue
		}
		out = append(out, records.Player{
			ID:       id,
			Name:     name,
			Nation:   cell(cols.Get(row, FIELD_NATION)),
			Position: cell(cols.Get(row, FIELD_POSITION)),
		})
	}
	return out
}

// ExtractPage runs the whole squad extraction on a club page.
func ExtractPage(doc *goquery.Document) ([]records.Player, error) {
	tables, err := SquadTables(doc)
	if err != nil {
		return nil, err
	}
	table, err := ParseSquad(tables)
	if err != nil {
		return nil, err
	}
	return Extract(table), nil
}
