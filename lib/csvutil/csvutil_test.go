package csvutil

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteAddsSignature(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	err := Write(buf, []string{"club_id", "Club"}, [][]string{{"club_arsenal", "Arsenal"}})
	require.NoError(t, err)
	require.Equal(t, "\xef\xbb\xbfclub_id,Club\nclub_arsenal,Arsenal\n", buf.String())
}

func TestReadDropsSignature(t *testing.T) {
	input := "\xef\xbb\xbfcoach_id,name\ncoach_pep_guardiola,Pep Guardiola\n"
	table, err := Read("coaches.csv", bytes.NewBufferString(input))
	require.NoError(t, err)
	require.Equal(t, []string{"coach_id", "name"}, table.Header)
	require.True(t, table.Has("coach_id"))
	require.Equal(t, "Pep Guardiola", table.Get(table.Rows[0], "name"))
	require.Equal(t, "", table.Get(table.Rows[0], "nation"))
}

func TestReadWithoutSignature(t *testing.T) {
	table, err := Read("x.csv", bytes.NewBufferString("a,b\n1,2\n"))
	require.NoError(t, err)
	require.Equal(t, "1", table.Get(table.Rows[0], "a"))
}

func TestReadEmpty(t *testing.T) {
	_, err := Read("empty.csv", bytes.NewBuffer(nil))
	require.True(t, errors.Is(err, ErrEmptyFile))
}

func TestRequire(t *testing.T) {
	table, err := Read("played_for.csv", bytes.NewBufferString("player_id,season\np,s\n"))
	require.NoError(t, err)
	require.NoError(t, table.Require("player_id"))

	err = table.Require("player_id", "club_id", "position")
	var missing *MissingColumnsError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, []string{"club_id", "position"}, missing.Columns)
	require.Equal(t, "played_for.csv", missing.Path)
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "seasons.csv")
	header := []string{"season_id", "name"}
	rows := [][]string{{"EPL-2023–24", "2023–24 Premier League"}, {"EPL-2022–23", "quoted, name"}}

	require.NoError(t, WriteFile(path, header, rows))
	require.NoError(t, WriteFile(path, header, rows))

	table, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, header, table.Header)
	require.Equal(t, rows, table.Rows)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
