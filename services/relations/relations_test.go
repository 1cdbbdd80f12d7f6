package relations

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"eplgraph/internal/components/chrono"
	"eplgraph/internal/components/telemetry"
	"eplgraph/lib/csvutil"
	"eplgraph/lib/pipeline"
	"eplgraph/lib/wiki/wikitest"

	"github.com/stretchr/testify/require"
)

func writeInputs(t *testing.T, paths pipeline.Paths) {
	t.Helper()
	require.NoError(t, csvutil.WriteFile(paths.ClubsBySeason, []string{"club_id", "Club", "Season"}, [][]string{
		{"club_manchester_city", "Manchester City", "2024–25"},
		{"club_arsenal", "Arsenal", "2024-25"},
	}))
	require.NoError(t, csvutil.WriteFile(paths.PlayedFor, []string{"player_id", "club_id", "season", "position"}, [][]string{
		{"player_erling_haaland", "club_manchester_city", "2024–25", "FW"},
		{"player_bukayo_saka", "club_arsenal", "2024–25", "FW"},
	}))
	require.NoError(t, csvutil.WriteFile(paths.Coached, []string{"coach_id", "club_id", "season", "years", "is_current", "current_confidence"}, [][]string{
		{"coach_manuel_pellegrini", "club_manchester_city", "2024–25", "2013–2016", "false", ""},
		{"coach_pep_guardiola", "club_manchester_city", "2024–25", "1 July 2016", "True", "infobox"},
		{"coach_mikel_arteta", "club_arsenal", "2024–25", "20 December 2019", "true", "infobox"},
	}))
}

func writeNodes(t *testing.T, paths pipeline.Paths) {
	t.Helper()
	require.NoError(t, csvutil.WriteFile(paths.SeasonNodes, []string{"season_id", "name", "start_year", "end_year", "url"}, [][]string{
		{"EPL-2024–25", "2024–25 Premier League", "2024", "2025", ""},
	}))
	require.NoError(t, csvutil.WriteFile(paths.ClubNodes, []string{"club_id", "Club", "Location", "Stadium"}, [][]string{
		{"club_manchester_city", "Manchester City", "Manchester", "Etihad Stadium"},
		{"club_arsenal", "Arsenal", "London", "Emirates Stadium"},
	}))
	require.NoError(t, csvutil.WriteFile(paths.PlayerNodes, []string{"player_id", "name", "nation", "position"}, [][]string{
		{"player_erling_haaland", "Erling Haaland", "NOR", "FW"},
		{"player_bukayo_saka", "Bukayo Saka", "ENG", "FW"},
	}))
	require.NoError(t, csvutil.WriteFile(paths.CoachNodes, []string{"coach_id", "name"}, [][]string{
		{"coach_manuel_pellegrini", "Manuel Pellegrini"},
		{"coach_pep_guardiola", "Pep Guardiola"},
		{"coach_mikel_arteta", "Mikel Arteta"},
	}))
}

func TestAssemble(t *testing.T) {
	paths := pipeline.NewPaths(t.TempDir())
	writeInputs(t, paths)

	counts, err := Assemble(paths)
	require.NoError(t, err)
	require.Equal(t, Counts{PartOf: 2, PlayedFor: 2, Coached: 3}, counts)

	partOf, err := csvutil.ReadFile(paths.PartOfEdges)
	require.NoError(t, err)
	require.Equal(t, PartOfHeader, partOf.Header)
	require.Equal(t, [][]string{
		{"club_manchester_city", "EPL-2024–25", "2024–25", "PART_OF"},
		{"club_arsenal", "EPL-2024–25", "2024–25", "PART_OF"},
	}, partOf.Rows)

	playedFor, err := csvutil.ReadFile(paths.PlayedForEdges)
	require.NoError(t, err)
	require.Equal(t, PlayedForHeader, playedFor.Header)
	require.Equal(t, []string{"player_erling_haaland", "club_manchester_city", "EPL-2024–25", "FW", "PLAYED_FOR"}, playedFor.Rows[0])

	coached, err := csvutil.ReadFile(paths.CoachedEdges)
	require.NoError(t, err)
	require.Equal(t, CoachedHeader, coached.Header)

	current := map[string]int{}
	for _, row := range coached.Rows {
		require.Equal(t, "COACHED", coached.Get(row, ":TYPE"))
		if coached.Get(row, "is_current") == "true" {
			current[coached.Get(row, ":END_ID(Club)")]++
		}
	}
	require.Equal(t, map[string]int{"club_manchester_city": 1, "club_arsenal": 1}, current)
	require.Equal(t, "true", coached.Get(coached.Rows[1], "is_current"))
	require.Equal(t, "coach_pep_guardiola", coached.Get(coached.Rows[1], ":START_ID(Coach)"))
}

func TestAssembleIsIdempotent(t *testing.T) {
	paths := pipeline.NewPaths(t.TempDir())
	writeInputs(t, paths)

	_, err := Assemble(paths)
	require.NoError(t, err)
	first := map[string][]byte{}
	for _, p := range []string{paths.PartOfEdges, paths.PlayedForEdges, paths.CoachedEdges} {
		first[p], err = os.ReadFile(p)
		require.NoError(t, err)
	}

	_, err = Assemble(paths)
	require.NoError(t, err)
	for p, contents := range first {
		again, err := os.ReadFile(p)
		require.NoError(t, err)
		require.Equal(t, contents, again, p)
	}
}

func TestAssembleMissingInputWritesNothing(t *testing.T) {
	paths := pipeline.NewPaths(t.TempDir())
	writeInputs(t, paths)
	require.NoError(t, os.Remove(paths.PlayedFor))

	_, err := Assemble(paths)
	var contract *ContractError
	require.True(t, errors.As(err, &contract))
	require.Equal(t, paths.PlayedFor, contract.Path)
	require.True(t, errors.Is(err, os.ErrNotExist))

	for _, p := range []string{paths.PartOfEdges, paths.PlayedForEdges, paths.CoachedEdges} {
		_, err := os.Stat(p)
		require.True(t, os.IsNotExist(err), p)
	}
}

func TestAssembleMissingColumn(t *testing.T) {
	paths := pipeline.NewPaths(t.TempDir())
	writeInputs(t, paths)
	require.NoError(t, csvutil.WriteFile(paths.Coached, []string{"coach_id", "club_id", "season"}, [][]string{
		{"coach_pep_guardiola", "club_manchester_city", "2024–25"},
	}))

	_, err := Assemble(paths)
	var missing *csvutil.MissingColumnsError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, []string{"years", "is_current"}, missing.Columns)

	_, err = os.Stat(filepath.Dir(paths.PartOfEdges))
	require.True(t, os.IsNotExist(err))
}

func TestCheck(t *testing.T) {
	paths := pipeline.NewPaths(t.TempDir())
	writeInputs(t, paths)
	writeNodes(t, paths)
	_, err := Assemble(paths)
	require.NoError(t, err)

	require.NoError(t, Check(paths))

	require.NoError(t, csvutil.WriteFile(paths.CoachNodes, []string{"coach_id", "name"}, [][]string{
		{"coach_pep_guardiola", "Pep Guardiola"},
	}))
	err = Check(paths)
	var dangling *DanglingError
	require.True(t, errors.As(err, &dangling))
	require.Equal(t, ":START_ID(Coach)", dangling.Column)
	require.Equal(t, []string{"coach_manuel_pellegrini", "coach_mikel_arteta"}, dangling.IDs)
}

func TestCheckSeasonIds(t *testing.T) {
	paths := pipeline.NewPaths(t.TempDir())
	writeInputs(t, paths)
	writeNodes(t, paths)
	require.NoError(t, csvutil.WriteFile(paths.PlayedFor, []string{"player_id", "club_id", "season", "position"}, [][]string{
		{"player_erling_haaland", "club_manchester_city", "2023–24", "FW"},
	}))
	_, err := Assemble(paths)
	require.NoError(t, err)

	err = Check(paths)
	var dangling *DanglingError
	require.True(t, errors.As(err, &dangling))
	require.Equal(t, paths.PlayedForEdges, dangling.Path)
	require.Equal(t, "season_id", dangling.Column)
	require.Equal(t, []string{"EPL-2023–24"}, dangling.IDs)
}

func TestRun(t *testing.T) {
	cfg := pipeline.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Seasons = []string{"2024–25"}
	tel := telemetry.NewMemoryAPI()
	env := pipeline.NewEnv(cfg, wikitest.New(nil), tel, chrono.NewStandardTime())

	require.Error(t, Run(context.Background(), env))
	require.True(t, tel.Has(telemetry.REPORT_BROKEN, report_read))

	writeInputs(t, env.Paths)
	writeNodes(t, env.Paths)
	require.NoError(t, Run(context.Background(), env))

	n, ok := tel.LastCount(report_edges + "-coached")
	require.True(t, ok)
	require.Equal(t, int64(3), n)
	require.False(t, tel.Has(telemetry.REPORT_WARNING, report_dangling))
}
