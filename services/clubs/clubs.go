// Package clubs extracts the clubs taking part in each season from the
// "stadia and locations" table of the season overview pages.
package clubs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"

	"eplgraph/internal/components/telemetry"
	"eplgraph/lib/classify"
	"eplgraph/lib/csvutil"
	"eplgraph/lib/htmlutil"
	"eplgraph/lib/pipeline"
	"eplgraph/lib/records"
	"eplgraph/lib/slug"
	"eplgraph/lib/textutil"
	"eplgraph/lib/wiki"
	"eplgraph/services/seasons"

	"github.com/PuerkitoBio/goquery"
)

var (
	ErrNoTable      = errors.New("no stadia table")
	ErrNoClubColumn = errors.New("stadia table has no club column")
)

var (
	NodeHeader     = []string{"club_id", "Club", "Location", "Stadium"}
	RelationHeader = []string{"club_id", "Club", "Season"}
)

const (
	FIELD_CLUB     = "Club"
	FIELD_STADIUM  = "Stadium"
	FIELD_LOCATION = "Location"
)

var Columns = classify.NewClassifier(
	classify.R(FIELD_CLUB, `club|team|participant`),
	classify.R(FIELD_STADIUM, `stadium|ground`),
	classify.R(FIELD_LOCATION, `location|city|town`),
)

var stadiaHeadingRegex = regexp.MustCompile(`(?i)stadi(a|ums)[ _]and[ _]locations`)

// non-senior sides, matched on word boundaries so "Sunderland" stays in
var denylistRegex = regexp.MustCompile(
	`(?i)\b(women|ladies|girls|wfc|academy|reserves?|development|youth)\b|\bu-?\d{2}s?\b|\bunder[- ]?\d{2}s?\b`,
)

// Excluded reports whether a club name belongs to a women's, youth or reserve side.
func Excluded(name string) bool {
	return denylistRegex.MatchString(name)
}

// FindTable locates the participation table of a season overview page: the
// first wikitable after the stadia heading, otherwise the first wikitable
// whose header names both a club and a stadium column.
func FindTable(doc *goquery.Document) (htmlutil.Table, error) {
	wikitables := doc.Find("table.wikitable")

	heading, ok := htmlutil.FindHeading(htmlutil.Headings(doc.Selection, "h2, h3, h4"), stadiaHeadingRegex)
	if ok {
		order := htmlutil.NewDocumentOrder(doc)
		next := order.NextAfter(wikitables, heading.Node)
		if next != nil {
			return htmlutil.ParseTable(wikitables.FilterNodes(next))
		}
	}

	var found htmlutil.Table
	var lastErr error
	wikitables.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		table, err := htmlutil.ParseTable(s)
		if err != nil {
			lastErr = err
			return true
		}
		cols := Columns.Columns(table.Header)
		if cols.Has(FIELD_CLUB) && cols.Has(FIELD_STADIUM) {
			found = table
			lastErr = nil
			return false
		}
		return true
	})
	if found.Header != nil {
		return found, nil
	}
	if lastErr != nil {
		return htmlutil.Table{}, fmt.Errorf("%w: %w", ErrNoTable, lastErr)
	}
	return htmlutil.Table{}, ErrNoTable
}

func cell(s string) string {
	return textutil.CollapseSpace(textutil.Clean(s))
}

// Extract turns a participation table into clubs. The second
// return value counts the rows dropped by the denylist.
func Extract(table htmlutil.Table) ([]records.Club, int, error) {
	cols := Columns.Columns(table.Header)
	if !cols.Has(FIELD_CLUB) {
		return nil, 0, ErrNoClubColumn
	}

	var out []records.Club
	filtered := 0
	for _, row := range table.Rows {
		name := cell(cols.Get(row, FIELD_CLUB))
		if name == "" {
			continue
		}
		if Excluded(name) {
			filtered++
			continue
		}
		id, ok := slug.Club(name)
		if !ok {
			continue
		}
		out = append(out, records.Club{
			ID:       id,
			Name:     name,
			Location: cell(cols.Get(row, FIELD_LOCATION)),
			Stadium:  cell(cols.Get(row, FIELD_STADIUM)),
		})
	}
	return out, filtered, nil
}

// SeasonClub is a club as it appeared in one season.
type SeasonClub struct {
	records.Club
	Season string
}

// Crawl extracts the clubs of every season. Seasons whose page or table is
// unusable are reported and skipped.
func Crawl(ctx context.Context, fetcher wiki.Fetcher, tel telemetry.API, window []string) []SeasonClub {
	var out []SeasonClub
	for _, season := range window {
		season = records.CanonicalSeason(season)
		page, err := fetcher.Fetch(ctx, seasons.PageTitle(season))
		if err != nil {
			tel.ReportWarning(report_fetch, err, slog.String("season", season))
			continue
		}
		table, err := FindTable(page.Doc)
		if err != nil {
			tel.ReportWarning(report_find_table, err, slog.String("season", season))
			continue
		}
		clubs, filtered, err := Extract(table)
		if err != nil {
			tel.ReportWarning(report_parse_table, err, slog.String("season", season))
			continue
		}
		if filtered > 0 {
			tel.ReportDebug(report_filtered, slog.String("season", season), slog.Int("rows", filtered))
		}
		tel.ReportCount(report_season_clubs, int64(len(clubs)))

		for _, c := range clubs {
			out = append(out, SeasonClub{Club: c, Season: season})
		}
	}
	return out
}

// Latest deduplicates clubs by id, keeping the attributes of the most recent
// season a club appeared in. Ties keep crawl order.
func Latest(crawled []SeasonClub) []records.Club {
	sorted := make([]SeasonClub, len(crawled))
	copy(sorted, crawled)
	sort.SliceStable(sorted, func(i, j int) bool {
		return records.SeasonStartYear(sorted[i].Season) > records.SeasonStartYear(sorted[j].Season)
	})

	seen := map[string]bool{}
	var out []records.Club
	for _, c := range sorted {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, c.Club)
	}
	return out
}

func NodeRows(clubs []records.Club) [][]string {
	rows := make([][]string, len(clubs))
	for i, c := range clubs {
		rows[i] = []string{c.ID, c.Name, c.Location, c.Stadium}
	}
	return rows
}

func RelationRows(crawled []SeasonClub) [][]string {
	rows := make([][]string, len(crawled))
	for i, c := range crawled {
		rows[i] = []string{c.ID, c.Name, c.Season}
	}
	return rows
}

// Run crawls the clubs of the configured window and writes the club nodes and
// the per-season membership relation.
func Run(ctx context.Context, env pipeline.Env) error {
	tel := telemetry.NewScopedAPI("clubs", env.Tel)

	crawled := Crawl(ctx, env.Fetcher, tel, env.Seasons)
	if len(crawled) == 0 {
		tel.ReportBroken(report_clubs, pipeline.ErrNoRecords)
		return fmt.Errorf("clubs: %w", pipeline.ErrNoRecords)
	}
	latest := Latest(crawled)
	tel.ReportCount(report_clubs, int64(len(latest)))

	err := csvutil.WriteFile(env.Paths.ClubsBySeason, RelationHeader, RelationRows(crawled))
	if err != nil {
		tel.ReportBroken(report_write, err, slog.String("path", env.Paths.ClubsBySeason))
		return err
	}
	err = csvutil.WriteFile(env.Paths.ClubNodes, NodeHeader, NodeRows(latest))
	if err != nil {
		tel.ReportBroken(report_write, err, slog.String("path", env.Paths.ClubNodes))
		return err
	}
	return nil
}

// ReadNodes loads the club nodes written by Run.
func ReadNodes(path string) ([]records.Club, error) {
	table, err := csvutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = table.Require("club_id", "Club")
	if err != nil {
		return nil, err
	}

	out := make([]records.Club, 0, len(table.Rows))
	for _, row := range table.Rows {
		name := table.Get(row, "Club")
		id := table.Get(row, "club_id")
		if name == "" || id == "" {
			continue
		}
		out = append(out, records.Club{
			ID:       id,
			Name:     name,
			Location: table.Get(row, "Location"),
			Stadium:  table.Get(row, "Stadium"),
		})
	}
	return out, nil
}
