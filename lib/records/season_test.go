package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSeasonID(t *testing.T) {
	require.Equal(t, "EPL-2023–24", SeasonID("2023–24"))
	require.Equal(t, "EPL-2023–24", SeasonID("2023-24"))
	require.Equal(t, "EPL-2023–24", SeasonID(" 2023—24 "))
	require.Equal(t, "", SeasonID(""))
}

func TestSeasonStartYear(t *testing.T) {
	require.Equal(t, 2024, SeasonStartYear("2024–25"))
	require.Equal(t, 2019, SeasonStartYear("2019-20"))
	require.Equal(t, -1, SeasonStartYear("Premier League"))
}

func TestSeasonYears(t *testing.T) {
	testCases := []struct {
		display string
		start   int
		end     int
		ok      bool
	}{
		{display: "2023–24", start: 2023, end: 2024, ok: true},
		{display: "1999–2000", start: 1999, end: 2000, ok: true},
		{display: "2020", start: 2020, end: 2021, ok: true},
		{display: "next season", ok: false},
	}

	for _, test := range testCases {
		start, end, ok := SeasonYears(test.display)
		require.Equal(t, test.ok, ok, test.display)
		require.Equal(t, test.start, start, test.display)
		require.Equal(t, test.end, end, test.display)
	}
}

func TestWindow(t *testing.T) {
	require.Equal(
		t,
		[]string{"2024–25", "2023–24", "2022–23", "2021–22", "2020–21"},
		Window(2024, 5),
	)
	require.Equal(t, []string{"1999–00"}, Window(1999, 1))
	require.Empty(t, Window(2024, 0))
}

func TestCurrentSeasonStartYear(t *testing.T) {
	testCases := []struct {
		now      time.Time
		expected int
	}{
		{now: time.Date(2025, 5, 22, 0, 0, 0, 0, time.UTC), expected: 2024},
		{now: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), expected: 2025},
		{now: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), expected: 2026},
		{now: time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC), expected: 2025},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, CurrentSeasonStartYear(test.now))
	}
}
