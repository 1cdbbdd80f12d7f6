package htmlutil

import (
	"errors"
	"strconv"
	"strings"

	"eplgraph/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var ErrMalformedTable = errors.New("malformed table")

const maxSpan = 500

// Table is an html table flattened into a grid, spanning cells are copied into
// every slot they cover. Header holds one name per column, multi-row headers
// are joined with a space.
type Table struct {
	Header []string
	Rows   [][]string
}

type gridCell struct {
	// source identifies the <td>/<th> a slot was filled from
	source *html.Node
	header bool
	text   string
}

func spanAttr(s *goquery.Selection, name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s.AttrOr(name, "1")))
	if err != nil || n < 1 {
		return 1
	}
	if n > maxSpan {
		return maxSpan
	}
	return n
}

// ownRows returns the rows of `table` without the rows of tables nested in it.
func ownRows(table *goquery.Selection) *goquery.Selection {
	tableNode := table.Nodes[0]
	return table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		closest := tr.Closest("table")
		return closest.Length() > 0 && closest.Nodes[0] == tableNode
	})
}

func buildGrid(table *goquery.Selection) [][]gridCell {
	rows := ownRows(table)
	grid := make([][]gridCell, rows.Length())

	set := func(r, c int, cell gridCell) {
		if r >= len(grid) {
			return
		}
		for len(grid[r]) <= c {
			grid[r] = append(grid[r], gridCell{})
		}
		grid[r][c] = cell
	}
	occupied := func(r, c int) bool {
		return c < len(grid[r]) && grid[r][c].source != nil
	}

	rows.Each(func(r int, tr *goquery.Selection) {
		col := 0
		tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			for occupied(r, col) {
				col++
			}
			node := cell.Nodes[0]
			value := gridCell{
				source: node,
				header: node.Data == "th",
				text:   CellText(node),
			}
			rowspan := spanAttr(cell, "rowspan")
			colspan := spanAttr(cell, "colspan")
			for dr := 0; dr < rowspan; dr++ {
				for dc := 0; dc < colspan; dc++ {
					set(r+dr, col+dc, value)
				}
			}
			col += colspan
		})
	})
	return grid
}

func isHeaderRow(row []gridCell) bool {
	if len(row) == 0 {
		return false
	}
	for _, c := range row {
		if c.source != nil && !c.header {
			return false
		}
	}
	return true
}

// isBanner reports rows made of a single cell spanning the whole width, like
// the "Goalkeepers" separators of squad lists.
func isBanner(row []gridCell, width int) bool {
	if width <= 1 || len(row) < width {
		return false
	}
	for _, c := range row {
		if c.source != row[0].source {
			return false
		}
	}
	return true
}

func headerName(parts []string) string {
	var kept []string
	for _, p := range parts {
		if p == "" {
			continue
		}
		if len(kept) > 0 && kept[len(kept)-1] == p {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, " ")
}

// ParseTable flattens a <table> into a Table. It fails when the table has no
// column names or no data rows.
func ParseTable(table *goquery.Selection) (Table, error) {
	if table.Length() == 0 {
		return Table{}, ErrMalformedTable
	}
	grid := buildGrid(table.First())

	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return Table{}, ErrMalformedTable
	}

	headerRows := 0
	for headerRows < len(grid) && isHeaderRow(grid[headerRows]) {
		// a full width <th> below the column names starts a group of rows
		if headerRows > 0 && isBanner(grid[headerRows], width) {
			break
		}
		headerRows++
	}
	if headerRows == 0 {
		// no <th> anywhere at the top, use the first row for names
		headerRows = 1
	}

	header := make([]string, width)
	for c := 0; c < width; c++ {
		var parts []string
		for r := 0; r < headerRows && r < len(grid); r++ {
			if c < len(grid[r]) {
				parts = append(parts, textutil.CollapseSpace(textutil.Clean(grid[r][c].text)))
			}
		}
		header[c] = headerName(parts)
	}

	var rows [][]string
	for _, gridRow := range grid[min(headerRows, len(grid)):] {
		if isBanner(gridRow, width) {
			continue
		}
		row := make([]string, width)
		empty := true
		for c := 0; c < width; c++ {
			if c < len(gridRow) {
				row[c] = gridRow[c].text
			}
			if strings.TrimSpace(row[c]) != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return Table{}, ErrMalformedTable
	}

	return Table{Header: header, Rows: rows}, nil
}

// Concat appends the rows of several tables, aligning columns by header name.
// Columns that are missing in a table are left empty.
func Concat(tables []Table) Table {
	var out Table
	index := map[string]int{}
	for _, t := range tables {
		for _, h := range t.Header {
			if _, ok := index[h]; !ok {
				index[h] = len(out.Header)
				out.Header = append(out.Header, h)
			}
		}
	}
	for _, t := range tables {
		for _, r := range t.Rows {
			row := make([]string, len(out.Header))
			for c, h := range t.Header {
				if c < len(r) && row[index[h]] == "" {
					row[index[h]] = r[c]
				}
			}
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
