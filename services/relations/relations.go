// Package relations turns the relation files of the crawl jobs into the edge
// files of the bulk loader. It never touches the network.
package relations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"eplgraph/internal/components/telemetry"
	"eplgraph/lib/csvutil"
	"eplgraph/lib/pipeline"
	"eplgraph/lib/records"
)

const (
	TYPE_PART_OF    = "PART_OF"
	TYPE_PLAYED_FOR = "PLAYED_FOR"
	TYPE_COACHED    = "COACHED"
)

var (
	PartOfHeader    = []string{":START_ID(Club)", ":END_ID(Season)", "Season", ":TYPE"}
	PlayedForHeader = []string{":START_ID(Player)", ":END_ID(Club)", "season_id", "position", ":TYPE"}
	CoachedHeader   = []string{":START_ID(Coach)", ":END_ID(Club)", "season_id", "years", "is_current", ":TYPE"}
)

var (
	partOfColumns    = []string{"club_id", "Season"}
	playedForColumns = []string{"player_id", "club_id", "season", "position"}
	coachedColumns   = []string{"coach_id", "club_id", "season", "years", "is_current"}
)

// ContractError means an input file is missing or lacks a required column,
// the upstream job has to be run (or fixed) first.
type ContractError struct {
	Path string
	Err  error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("relations contract: %s: %s", e.Path, e.Err)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

func load(path string, required []string) (csvutil.Table, error) {
	table, err := csvutil.ReadFile(path)
	if err != nil {
		return csvutil.Table{}, &ContractError{Path: path, Err: err}
	}
	err = table.Require(required...)
	if err != nil {
		return csvutil.Table{}, &ContractError{Path: path, Err: err}
	}
	return table, nil
}

// Inputs are the three relation files, loaded and validated.
type Inputs struct {
	ClubsBySeason csvutil.Table
	PlayedFor     csvutil.Table
	Coached       csvutil.Table
}

// Load reads every input file. All of them are checked, the returned error
// joins one ContractError per broken file.
func Load(paths pipeline.Paths) (Inputs, error) {
	var in Inputs
	var errs []error

	var err error
	in.ClubsBySeason, err = load(paths.ClubsBySeason, partOfColumns)
	errs = append(errs, err)
	in.PlayedFor, err = load(paths.PlayedFor, playedForColumns)
	errs = append(errs, err)
	in.Coached, err = load(paths.Coached, coachedColumns)
	errs = append(errs, err)

	err = errors.Join(errs...)
	if err != nil {
		return Inputs{}, err
	}
	return in, nil
}

func PartOfRows(t csvutil.Table) [][]string {
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		season := records.CanonicalSeason(t.Get(row, "Season"))
		rows = append(rows, []string{
			t.Get(row, "club_id"),
			records.SeasonID(season),
			season,
			TYPE_PART_OF,
		})
	}
	return rows
}

func PlayedForRows(t csvutil.Table) [][]string {
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, []string{
			t.Get(row, "player_id"),
			t.Get(row, "club_id"),
			records.SeasonID(t.Get(row, "season")),
			t.Get(row, "position"),
			TYPE_PLAYED_FOR,
		})
	}
	return rows
}

// isCurrent normalizes "True", "1" and friends, anything unparseable is false.
func isCurrent(value string) string {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(b)
}

func CoachedRows(t csvutil.Table) [][]string {
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, []string{
			t.Get(row, "coach_id"),
			t.Get(row, "club_id"),
			records.SeasonID(t.Get(row, "season")),
			t.Get(row, "years"),
			isCurrent(t.Get(row, "is_current")),
			TYPE_COACHED,
		})
	}
	return rows
}

// Counts is the number of edges written per edge file.
type Counts struct {
	PartOf    int
	PlayedFor int
	Coached   int
}

// Assemble validates every input and only then writes the three edge files.
func Assemble(paths pipeline.Paths) (Counts, error) {
	in, err := Load(paths)
	if err != nil {
		return Counts{}, err
	}

	outputs := []struct {
		path   string
		header []string
		rows   [][]string
	}{
		{paths.PartOfEdges, PartOfHeader, PartOfRows(in.ClubsBySeason)},
		{paths.PlayedForEdges, PlayedForHeader, PlayedForRows(in.PlayedFor)},
		{paths.CoachedEdges, CoachedHeader, CoachedRows(in.Coached)},
	}
	for _, out := range outputs {
		err = csvutil.WriteFile(out.path, out.header, out.rows)
		if err != nil {
			return Counts{}, fmt.Errorf("write %s: %w", out.path, err)
		}
	}

	return Counts{
		PartOf:    len(outputs[0].rows),
		PlayedFor: len(outputs[1].rows),
		Coached:   len(outputs[2].rows),
	}, nil
}

// Run assembles the edge files and checks them against the node files.
// Dangling ids are reported but do not fail the job, the loader skips them.
func Run(ctx context.Context, env pipeline.Env) error {
	tel := telemetry.NewScopedAPI("relations", env.Tel)

	counts, err := Assemble(env.Paths)
	var contract *ContractError
	if errors.As(err, &contract) {
		tel.ReportBroken(report_read, err)
		return err
	}
	if err != nil {
		tel.ReportBroken(report_write, err)
		return err
	}
	tel.ReportCount(report_edges+"-part-of", int64(counts.PartOf))
	tel.ReportCount(report_edges+"-played-for", int64(counts.PlayedFor))
	tel.ReportCount(report_edges+"-coached", int64(counts.Coached))

	err = Check(env.Paths)
	if err != nil {
		tel.ReportWarning(report_dangling, slog.String("err", err.Error()))
	}
	return nil
}
