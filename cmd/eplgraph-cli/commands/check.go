package commands

import (
	"fmt"
	"io"

	"eplgraph/lib/pipeline"
	"eplgraph/services/relations"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

func check(out io.Writer, paths pipeline.Paths) error {
	err := relations.Check(paths)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "ok")
	return nil
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Checks that every id of the edge files has a node.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pipeline.LoadConfig()
		if err != nil {
			return err
		}
		return check(cmd.OutOrStdout(), pipeline.NewPaths(cfg.DataDir))
	},
}
