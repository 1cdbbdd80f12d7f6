// Package csvutil reads and writes the comma separated, UTF-8 with signature
// files exchanged between the pipeline stages and the bulk loader.
package csvutil

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var ErrEmptyFile = errors.New("csv file has no header row")

// MissingColumnsError is returned by Table.Require.
type MissingColumnsError struct {
	Path    string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: missing columns %s", e.Path, strings.Join(e.Columns, ", "))
}

// Table is a csv file held in memory, columns are addressed by header name.
type Table struct {
	Path   string
	Header []string
	Rows   [][]string
	index  map[string]int
}

func newTable(path string, header []string, rows [][]string) Table {
	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, exists := index[h]; !exists {
			index[h] = i
		}
	}
	return Table{Path: path, Header: header, Rows: rows, index: index}
}

// Has reports whether the table has a column with the given header.
func (t Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Require checks every column exists, listing all of the missing ones at once.
func (t Table) Require(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Path: t.Path, Columns: missing}
	}
	return nil
}

// Get returns the value of `column` in `row`, or "" if either is absent.
func (t Table) Get(row []string, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// Read parses a csv stream, a leading byte order mark is dropped.
func Read(path string, r io.Reader) (Table, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}
	return newTable(path, records[0], records[1:]), nil
}

// ReadFile reads a whole csv file.
func ReadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()
	return Read(path, f)
}

// Write encodes a header and rows as UTF-8 with a byte order mark.
func Write(w io.Writer, header []string, rows [][]string) error {
	encoded := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	writer := csv.NewWriter(encoded)
	err := writer.Write(header)
	if err != nil {
		return err
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return err
	}
	return encoded.Close()
}

// WriteFile replaces the file at `path` with the given table. The contents go
// to a temporary file first, readers never see a half written file.
func WriteFile(path string, header []string, rows [][]string) error {
	dir := filepath.Dir(path)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	err = Write(tmp, header, rows)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	err = tmp.Close()
	if err != nil {
		return err
	}
	err = os.Chmod(tmp.Name(), 0644)
	if err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
