package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"eplgraph/internal/components/chrono"

	"github.com/stretchr/testify/require"
)

func TestWindow(t *testing.T) {
	clock := chrono.FixedTime{At: time.Date(2024, time.March, 10, 12, 0, 0, 0, chrono.London())}

	testCases := []struct {
		name     string
		config   Config
		expected []string
	}{
		{
			name:     "clock mid season",
			config:   Config{SeasonCount: 5},
			expected: []string{"2023–24", "2022–23", "2021–22", "2020–21", "2019–20"},
		},
		{
			name:     "reference year",
			config:   Config{ReferenceYear: 1999, SeasonCount: 2},
			expected: []string{"1999–00", "1998–99"},
		},
		{
			name:     "explicit seasons",
			config:   Config{Seasons: []string{"2023-24", "2021–22"}, SeasonCount: 5},
			expected: []string{"2023–24", "2021–22"},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, test.config.Window(clock))
		})
	}
}

func TestWindowAfterAugust(t *testing.T) {
	clock := chrono.FixedTime{At: time.Date(2024, time.August, 16, 20, 0, 0, 0, chrono.London())}
	window := DefaultConfig().Window(clock)
	require.Len(t, window, 5)
	require.Equal(t, "2024–25", window[0])
}

func TestTargetCoachSeason(t *testing.T) {
	window := []string{"2023–24", "2022–23"}
	require.Equal(t, "2023–24", Config{}.TargetCoachSeason(window))
	require.Equal(t, "2022–23", Config{CoachSeason: "2022-23"}.TargetCoachSeason(window))
	require.Equal(t, "", Config{}.TargetCoachSeason(nil))
}

func TestLoadConfigFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(`{
		data_dir: "out",
		reference_year: 2023,
		club_overrides: {"Sheffield United": "Sheffield_United_F.C."},
	}`), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "out", cfg.DataDir)
	require.Equal(t, 2023, cfg.ReferenceYear)
	require.Equal(t, 5, cfg.SeasonCount)
	require.Equal(t, "https://en.wikipedia.org/wiki/", cfg.BaseURL)
	require.Equal(t, "Sheffield_United_F.C.", cfg.ClubOverrides["Sheffield United"])
	require.Equal(t, "AFC_Bournemouth", cfg.ClubOverrides["Bournemouth"])
}

func TestPaths(t *testing.T) {
	paths := NewPaths("data")
	require.Equal(t, filepath.Join("data", "nodes", "clubs.csv"), paths.ClubNodes)
	require.Equal(t, filepath.Join("data", "relations", "played_for.csv"), paths.PlayedFor)
	require.Equal(t, filepath.Join("data", "edges", "coached.csv"), paths.CoachedEdges)
}

func TestLoadConfigKeepsExplicitZeros(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(`{
		courtesy_delay_ms: 0,
		retry_count: 0,
	}`), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 0, cfg.CourtesyDelayMs)
	require.Equal(t, 0, cfg.RetryCount)
	require.Equal(t, 1000, cfg.RetryWaitMs)
	require.Equal(t, 30, cfg.RequestTimeoutSeconds)
}
