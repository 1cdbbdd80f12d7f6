package commands

import (
	"errors"
	"log/slog"
	"time"

	"eplgraph/lib/pipeline"
	"eplgraph/services/clubs"
	"eplgraph/services/coaches"
	"eplgraph/services/players"
	"eplgraph/services/relations"
	"eplgraph/services/seasons"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

type stage struct {
	name string
	job  pipeline.Job
}

var stages = []stage{
	{name: "crawl-seasons", job: seasons.Run},
	{name: "crawl-clubs", job: clubs.Run},
	{name: "crawl-players", job: players.Run},
	{name: "crawl-coaches", job: coaches.Run},
	{name: "build-relations", job: relations.Run},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs every stage of the pipeline in order, then checks the edge files.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, cleanup, err := pipeline.Setup(ctx, "eplgraph-cli")
		if err != nil {
			return err
		}
		defer cleanup()

		for _, s := range stages {
			t1 := time.Now()
			err := s.job(ctx, env)
			elapsed := time.Since(t1).Seconds()

			var contract *relations.ContractError
			switch {
			case errors.As(err, &contract):
				return err
			case ctx.Err() != nil:
				return ctx.Err()
			case err != nil:
				// the next stage reads whatever the previous run left behind
				slog.Warn("stage failed", "stage", s.name, "err", err, "seconds", elapsed)
			default:
				slog.Info("stage done", "stage", s.name, "seconds", elapsed)
			}
		}

		err = relations.Check(env.Paths)
		if err != nil {
			slog.Warn("edge files reference missing nodes", "err", err)
		}
		return nil
	},
}
