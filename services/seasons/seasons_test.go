package seasons

import (
	"context"
	"errors"
	"testing"
	"time"

	"eplgraph/internal/components/chrono"
	"eplgraph/internal/components/telemetry"
	"eplgraph/lib/csvutil"
	"eplgraph/lib/pipeline"
	"eplgraph/lib/records"
	"eplgraph/lib/wiki"
	"eplgraph/lib/wiki/wikitest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func seasonPage(title string) string {
	return `<html><body><h1 id="firstHeading"><span>` + title + `</span></h1></body></html>`
}

func TestParse(t *testing.T) {
	pages := wikitest.New(map[string]string{
		"2023–24_Premier_League": seasonPage("2023–24 Premier League"),
		"1999–00_Premier_League": `<html><body></body></html>`,
	})

	page, err := pages.Fetch(context.Background(), "2023–24_Premier_League")
	require.NoError(t, err)
	season, err := Parse("2023-24", page)
	require.NoError(t, err)

	diff := cmp.Diff(records.Season{
		ID:        "EPL-2023–24",
		Name:      "2023–24 Premier League",
		StartYear: 2023,
		EndYear:   2024,
		URL:       wikitest.BaseURL + "2023%E2%80%9324_Premier_League",
	}, season)
	if diff != "" {
		t.Fatal(diff)
	}

	page, err = pages.Fetch(context.Background(), "1999–00_Premier_League")
	require.NoError(t, err)
	season, err = Parse("1999–00", page)
	require.NoError(t, err)
	require.Equal(t, "1999–00 Premier League", season.Name)
	require.Equal(t, 1999, season.StartYear)
	require.Equal(t, 2000, season.EndYear)
}

func TestParseWithoutYears(t *testing.T) {
	_, err := Parse("next season", wiki.Page{})
	require.True(t, errors.Is(err, ErrNoSeasonYears))
}

func TestRunSkipsUnreachableSeasons(t *testing.T) {
	pages := wikitest.New(map[string]string{
		"2023–24_Premier_League": seasonPage("2023–24 Premier League"),
		"2021–22_Premier_League": seasonPage("2021–22 Premier League"),
	})
	pages.Errors["2022–23_Premier_League"] = &wiki.FetchError{Title: "2022–23_Premier_League", Status: 503}

	tel := telemetry.NewMemoryAPI()
	cfg := pipeline.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.ReferenceYear = 2023
	cfg.SeasonCount = 3
	env := pipeline.NewEnv(cfg, pages, tel, chrono.FixedTime{At: time.Now()})

	require.NoError(t, Run(context.Background(), env))
	require.Equal(t, []string{
		"2023–24_Premier_League",
		"2022–23_Premier_League",
		"2021–22_Premier_League",
	}, pages.Requests)
	require.Len(t, tel.Reports(telemetry.REPORT_WARNING), 1)

	table, err := csvutil.ReadFile(env.Paths.SeasonNodes)
	require.NoError(t, err)
	require.Equal(t, Header, table.Header)
	require.Len(t, table.Rows, 2)
	require.Equal(t, "EPL-2023–24", table.Get(table.Rows[0], "season_id"))
	require.Equal(t, "2021", table.Get(table.Rows[1], "start_year"))
	require.Equal(t, "2022", table.Get(table.Rows[1], "end_year"))

	count, ok := tel.LastCount(report_seasons)
	require.True(t, ok)
	require.EqualValues(t, 2, count)
}

func TestRunWithNothingCrawled(t *testing.T) {
	cfg := pipeline.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Seasons = []string{"2023–24"}
	env := pipeline.NewEnv(cfg, wikitest.New(nil), telemetry.NewMemoryAPI(), chrono.NewStandardTime())

	err := Run(context.Background(), env)
	require.True(t, errors.Is(err, pipeline.ErrNoRecords))
}
