package commands

import (
	"errors"
	"os"

	"eplgraph/lib/csvutil"
	"eplgraph/lib/pipeline"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(summaryCmd)
}

type outputFile struct {
	kind string
	path string
}

func outputFiles(paths pipeline.Paths) []outputFile {
	return []outputFile{
		{"node", paths.SeasonNodes},
		{"node", paths.ClubNodes},
		{"node", paths.PlayerNodes},
		{"node", paths.CoachNodes},
		{"relation", paths.ClubsBySeason},
		{"relation", paths.PlayedFor},
		{"relation", paths.Coached},
		{"edge", paths.PartOfEdges},
		{"edge", paths.PlayedForEdges},
		{"edge", paths.CoachedEdges},
	}
}

// summaryRows reads every output file, missing or unreadable files get a row
// saying so.
func summaryRows(files []outputFile) ([]table.Row, error) {
	rows := make([]table.Row, 0, len(files))
	for _, f := range files {
		info, err := os.Stat(f.path)
		if errors.Is(err, os.ErrNotExist) {
			rows = append(rows, table.Row{f.kind, f.path, "missing", ""})
			continue
		}
		if err != nil {
			return nil, err
		}
		contents, err := csvutil.ReadFile(f.path)
		if err != nil {
			rows = append(rows, table.Row{f.kind, f.path, err.Error(), ""})
			continue
		}
		rows = append(rows, table.Row{
			f.kind,
			f.path,
			len(contents.Rows),
			info.ModTime().Format("2006-01-02 15:04"),
		})
	}
	return rows, nil
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Prints the number of rows of every output file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pipeline.LoadConfig()
		if err != nil {
			return err
		}
		rows, err := summaryRows(outputFiles(pipeline.NewPaths(cfg.DataDir)))
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"Kind", "File", "Rows", "Modified"})
		t.AppendRows(rows)
		t.Render()
		return nil
	},
}
