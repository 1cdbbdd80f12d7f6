// Package seasons extracts one season node per season of the crawl window.
package seasons

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"eplgraph/internal/components/telemetry"
	"eplgraph/lib/csvutil"
	"eplgraph/lib/pipeline"
	"eplgraph/lib/records"
	"eplgraph/lib/textutil"
	"eplgraph/lib/wiki"
)

var ErrNoSeasonYears = errors.New("season has no four digit year")

var Header = []string{"season_id", "name", "start_year", "end_year", "url"}

// PageTitle is the title of a season's overview page.
func PageTitle(season string) string {
	return records.CanonicalSeason(season) + "_Premier_League"
}

// Parse builds the season record out of its overview page.
func Parse(season string, page wiki.Page) (records.Season, error) {
	season = records.CanonicalSeason(season)
	start, end, ok := records.SeasonYears(season)
	if !ok {
		return records.Season{}, fmt.Errorf("%s: %w", season, ErrNoSeasonYears)
	}

	name := ""
	if page.Doc != nil {
		heading := page.Doc.Find("#firstHeading")
		if heading.Length() == 0 {
			heading = page.Doc.Find("h1")
		}
		name = textutil.CollapseSpace(heading.First().Text())
	}
	if name == "" {
		name = season + " Premier League"
	}

	return records.Season{
		ID:        records.SeasonID(season),
		Name:      name,
		StartYear: start,
		EndYear:   end,
		URL:       page.URL,
	}, nil
}

// Crawl fetches every season in order. Seasons that cannot be fetched or
// parsed are reported and skipped.
func Crawl(ctx context.Context, fetcher wiki.Fetcher, tel telemetry.API, seasons []string) []records.Season {
	var out []records.Season
	for _, season := range seasons {
		page, err := fetcher.Fetch(ctx, PageTitle(season))
		if err != nil {
			tel.ReportWarning(report_fetch, err, slog.String("season", season))
			continue
		}
		record, err := Parse(season, page)
		if err != nil {
			tel.ReportWarning(report_parse_years, err, slog.String("season", season))
			continue
		}
		tel.ReportDebug("season crawled", slog.String("season", season), slog.String("name", record.Name))
		out = append(out, record)
	}
	tel.ReportCount(report_seasons, int64(len(out)))
	return out
}

func Rows(seasons []records.Season) [][]string {
	rows := make([][]string, len(seasons))
	for i, s := range seasons {
		rows[i] = []string{
			s.ID,
			s.Name,
			strconv.Itoa(s.StartYear),
			strconv.Itoa(s.EndYear),
			s.URL,
		}
	}
	return rows
}

// Run crawls the configured window and writes the season nodes.
func Run(ctx context.Context, env pipeline.Env) error {
	tel := telemetry.NewScopedAPI("seasons", env.Tel)

	crawled := Crawl(ctx, env.Fetcher, tel, env.Seasons)
	if len(crawled) == 0 {
		tel.ReportBroken(report_seasons, pipeline.ErrNoRecords)
		return fmt.Errorf("seasons: %w", pipeline.ErrNoRecords)
	}

	err := csvutil.WriteFile(env.Paths.SeasonNodes, Header, Rows(crawled))
	if err != nil {
		tel.ReportBroken(report_write, err, slog.String("path", env.Paths.SeasonNodes))
		return err
	}
	return nil
}
