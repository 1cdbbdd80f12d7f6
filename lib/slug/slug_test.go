package slug

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	table := []struct {
		prefix   string
		input    string
		expected string
		ok       bool
	}{
		{prefix: PREFIX_CLUB, input: "Arsenal", expected: "club_arsenal", ok: true},
		{prefix: PREFIX_CLUB, input: "Brighton & Hove Albion", expected: "club_brighton_hove_albion", ok: true},
		{prefix: PREFIX_CLUB, input: "AFC Bournemouth[a]", expected: "club_afc_bournemouth", ok: true},
		{prefix: PREFIX_PLAYER, input: "Martin Ødegaard (captain)", expected: "player_martin_odegaard", ok: true},
		{prefix: PREFIX_PLAYER, input: "  Gabriel   Martinelli ", expected: "player_gabriel_martinelli", ok: true},
		{prefix: PREFIX_PLAYER, input: "Pierre-Emerick Aubameyang", expected: "player_pierre-emerick_aubameyang", ok: true},
		{prefix: PREFIX_COACH, input: "Nuno Espírito Santo", expected: "coach_nuno_espirito_santo", ok: true},
		{prefix: PREFIX_COACH, input: "", ok: false},
		{prefix: PREFIX_COACH, input: "[1] (caretaker)", ok: false},
		{prefix: PREFIX_COACH, input: "—", ok: false},
	}

	for _, row := range table {
		id, ok := Make(row.prefix, row.input)
		require.Equal(t, row.ok, ok, row.input)
		require.Equal(t, row.expected, id, row.input)
	}
}

func TestMakeIsDeterministic(t *testing.T) {
	for _, name := range []string{"Tottenham Hotspur", "Nottingham Forest", "Wolverhampton Wanderers"} {
		first, _ := Club(name)
		for i := 0; i < 10; i++ {
			again, _ := Club(name)
			require.Equal(t, first, again)
		}
	}
}

func TestMakeIsCaseInsensitive(t *testing.T) {
	a, _ := Player("BUKAYO SAKA")
	b, _ := Player("bukayo saka")
	require.Equal(t, a, b)
}

func TestClubIdsDoNotCollide(t *testing.T) {
	clubs := []string{
		"Arsenal", "Aston Villa", "Bournemouth", "Brentford", "Brighton & Hove Albion",
		"Burnley", "Chelsea", "Crystal Palace", "Everton", "Fulham", "Ipswich Town",
		"Leeds United", "Leicester City", "Liverpool", "Luton Town", "Manchester City",
		"Manchester United", "Newcastle United", "Norwich City", "Nottingham Forest",
		"Sheffield United", "Southampton", "Sunderland", "Tottenham Hotspur", "Watford",
		"West Bromwich Albion", "West Ham United", "Wolverhampton Wanderers",
	}

	seen := map[string]string{}
	for _, c := range clubs {
		id, ok := Club(c)
		require.True(t, ok)
		other, dup := seen[id]
		require.False(t, dup, "%s collides with %s", c, other)
		seen[id] = c
	}
}

func TestPrefixesSeparateTypes(t *testing.T) {
	club, _ := Club("Liverpool")
	player, _ := Player("Liverpool")
	coach, _ := Coach("Liverpool")
	require.NotEqual(t, club, player)
	require.NotEqual(t, player, coach)
	require.NotEqual(t, club, coach)
}

func TestFold(t *testing.T) {
	require.Equal(t, "nuno espirito santo", Fold("Nuno  Espírito Santo"))
}
