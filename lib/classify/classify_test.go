package classify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var stadia = NewClassifier(
	R("Club", `club|team|participant`),
	R("Stadium", `stadium|ground`),
	R("Location", `location|city|town`),
)

func TestColumns(t *testing.T) {
	testCases := []struct {
		headers  []string
		expected Columns
	}{
		{
			headers:  []string{"Team", "Location", "Stadium", "Capacity"},
			expected: Columns{"Club": 0, "Location": 1, "Stadium": 2},
		},
		{
			headers:  []string{"Club", "City/Town", "Ground", "Club kit"},
			expected: Columns{"Club": 0, "Location": 1, "Stadium": 2},
		},
		{
			headers:  []string{"Stadium", "Capacity"},
			expected: Columns{"Stadium": 0},
		},
		{
			headers:  nil,
			expected: Columns{},
		},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, stadia.Columns(test.headers))
	}
}

func TestRuleOrderDecides(t *testing.T) {
	// "Team ground" mentions both, the first rule wins
	field, ok := stadia.FieldOf("Team ground")
	require.True(t, ok)
	require.Equal(t, "Club", field)

	_, ok = stadia.FieldOf("Capacity")
	require.False(t, ok)
}

func TestScore(t *testing.T) {
	managers := NewClassifier(R("Name", `manager|head coach|name`))
	require.Equal(t, 2, managers.Score([]string{"Name", "Nat.", "Manager", "From"}, "Name"))
	require.Equal(t, 0, managers.Score([]string{"Season", "Division"}, "Name"))
}

func TestColumnsGet(t *testing.T) {
	cols := Columns{"Name": 1}
	require.Equal(t, "Saka", cols.Get([]string{"7", "Saka"}, "Name"))
	require.Equal(t, "", cols.Get([]string{"7", "Saka"}, "Nation"))
	require.Equal(t, "", cols.Get([]string{"7"}, "Name"))
	require.True(t, cols.Has("Name"))
}

func TestLooksLikeName(t *testing.T) {
	table := []struct {
		line     string
		expected bool
	}{
		{line: "Pep Guardiola", expected: true},
		{line: "Arsène Wenger", expected: true},
		{line: "ENG", expected: false},
		{line: "ESP", expected: false},
		{line: "44.34", expected: false},
		{line: "60.63%", expected: false},
		{line: "1996–2018", expected: false},
		{line: "", expected: false},
		{line: "O'Neill", expected: true},
	}

	for _, row := range table {
		require.Equal(t, row.expected, LooksLikeName(row.line), row.line)
	}
}

func TestFirstName(t *testing.T) {
	require.Equal(t, "Arsène Wenger", FirstName("FRA\nArsène Wenger\n1996–2018", LooksLikeName))
	require.Equal(t, "Pep Guardiola", FirstName("Pep   Guardiola,\nESP", LooksLikeName))
	require.Equal(t, "ENG", FirstName("ENG\n12", LooksLikeName))
	require.Equal(t, "", FirstName(" ", LooksLikeName))

	// predicates are pluggable
	never := func(string) bool { return false }
	require.Equal(t, "Pep Guardiola", FirstName("Pep Guardiola\nESP", never))
}

func TestFirstDated(t *testing.T) {
	require.Equal(t, "1 July 2016 – present", FirstDated("Pep Guardiola\n1 July 2016 – present"))
	require.Equal(t, "present", FirstDated("present"))
	require.Equal(t, "", FirstDated(""))
}
