package relations

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"eplgraph/lib/csvutil"
	"eplgraph/lib/pipeline"
)

// how many offending ids a DanglingError prints
const danglingSample = 5

// DanglingError lists the ids of an edge column that have no node.
type DanglingError struct {
	Path   string
	Column string
	IDs    []string
}

func (e *DanglingError) Error() string {
	sample := e.IDs
	if len(sample) > danglingSample {
		sample = sample[:danglingSample]
	}
	return fmt.Sprintf(
		"%s: %d ids in %s have no node (%s)",
		e.Path, len(e.IDs), e.Column, strings.Join(sample, ", "),
	)
}

func idSet(path, column string) (map[string]bool, error) {
	table, err := csvutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = table.Require(column)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(table.Rows))
	for _, row := range table.Rows {
		set[table.Get(row, column)] = true
	}
	return set, nil
}

func dangling(edges csvutil.Table, column string, nodes map[string]bool) error {
	seen := map[string]bool{}
	var missing []string
	for _, row := range edges.Rows {
		id := edges.Get(row, column)
		if nodes[id] || seen[id] {
			continue
		}
		seen[id] = true
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &DanglingError{Path: edges.Path, Column: column, IDs: missing}
}

// Check verifies every id of the edge files exists in the matching node file.
// The result joins one error per unreadable file or dangling column.
func Check(paths pipeline.Paths) error {
	nodes := map[string]map[string]bool{}
	var errs []error
	for label, src := range map[string][2]string{
		"Season": {paths.SeasonNodes, "season_id"},
		"Club":   {paths.ClubNodes, "club_id"},
		"Player": {paths.PlayerNodes, "player_id"},
		"Coach":  {paths.CoachNodes, "coach_id"},
	} {
		set, err := idSet(src[0], src[1])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		nodes[label] = set
	}

	edges := []struct {
		path    string
		columns map[string]string
	}{
		{paths.PartOfEdges, map[string]string{":START_ID(Club)": "Club", ":END_ID(Season)": "Season"}},
		{paths.PlayedForEdges, map[string]string{":START_ID(Player)": "Player", ":END_ID(Club)": "Club", "season_id": "Season"}},
		{paths.CoachedEdges, map[string]string{":START_ID(Coach)": "Coach", ":END_ID(Club)": "Club", "season_id": "Season"}},
	}
	for _, e := range edges {
		table, err := csvutil.ReadFile(e.path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		columns := make([]string, 0, len(e.columns))
		for c := range e.columns {
			columns = append(columns, c)
		}
		sort.Strings(columns)
		for _, column := range columns {
			set, ok := nodes[e.columns[column]]
			if !ok {
				continue
			}
			if !table.Has(column) {
				errs = append(errs, &csvutil.MissingColumnsError{Path: e.path, Columns: []string{column}})
				continue
			}
			errs = append(errs, dangling(table, column, set))
		}
	}

	// map iteration above is unordered, keep the joined message stable
	errs = compact(errs)
	sort.SliceStable(errs, func(i, j int) bool {
		return errs[i].Error() < errs[j].Error()
	})
	return errors.Join(errs...)
}

func compact(errs []error) []error {
	out := errs[:0]
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}
