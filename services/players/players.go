// Package players extracts the current squad of every club.
package players

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"eplgraph/internal/components/telemetry"
	"eplgraph/lib/csvutil"
	"eplgraph/lib/pipeline"
	"eplgraph/lib/records"
	"eplgraph/lib/wiki"
	"eplgraph/services/clubs"
)

var (
	NodeHeader     = []string{"player_id", "name", "nation", "position"}
	RelationHeader = []string{"player_id", "club_id", "season", "position"}
)

// Result holds the deduplicated players and their club relations.
type Result struct {
	Players   []records.Player
	PlayedFor []records.PlayedFor

	seenPlayers   map[string]bool
	seenRelations map[records.PlayedFor]bool
}

func newResult() *Result {
	return &Result{
		seenPlayers:   map[string]bool{},
		seenRelations: map[records.PlayedFor]bool{},
	}
}

// add records a squad for every season of the window, the first attributes
// seen for a player win.
func (r *Result) add(club records.Club, window []string, squad []records.Player) {
	for _, season := range window {
		for _, p := range squad {
			if !r.seenPlayers[p.ID] {
				r.seenPlayers[p.ID] = true
				r.Players = append(r.Players, p)
			}
			rel := records.PlayedFor{
				PlayerID: p.ID,
				ClubID:   club.ID,
				Season:   season,
				Position: p.Position,
			}
			if !r.seenRelations[rel] {
				r.seenRelations[rel] = true
				r.PlayedFor = append(r.PlayedFor, rel)
			}
		}
	}
}

// Crawl fetches the page of every club once and attributes its squad to every
// season of the window. Clubs without a reachable page or squad section yield
// no players.
func Crawl(
	ctx context.Context,
	fetcher wiki.Fetcher,
	tel telemetry.API,
	clubList []records.Club,
	window []string,
	overrides map[string]string,
) Result {
	result := newResult()
	for _, club := range clubList {
		title := clubs.PageTitle(club.Name, overrides)
		page, err := clubs.FetchPage(ctx, fetcher, title)
		if err != nil {
			tel.ReportWarning(report_fetch, err, slog.String("club", club.Name), slog.String("title", title))
			continue
		}

		squad, err := ExtractPage(page.Doc)
		if err != nil {
			id := report_parse_squad
			if errors.Is(err, ErrNoSquad) {
				id = report_find_squad
			}
			tel.ReportWarning(
				id, err,
				slog.String("club", club.Name),
				slog.String("title", page.Title),
			)
			continue
		}
		tel.ReportCount(report_club_squad, int64(len(squad)))
		tel.ReportDebug("squad extracted", slog.String("club", club.Name), slog.Int("players", len(squad)))

		result.add(club, window, squad)
	}
	return *result
}

func NodeRows(players []records.Player) [][]string {
	rows := make([][]string, len(players))
	for i, p := range players {
		rows[i] = []string{p.ID, p.Name, p.Nation, p.Position}
	}
	return rows
}

func RelationRows(playedFor []records.PlayedFor) [][]string {
	rows := make([][]string, len(playedFor))
	for i, r := range playedFor {
		rows[i] = []string{r.PlayerID, r.ClubID, r.Season, r.Position}
	}
	return rows
}

// Run crawls the squads of the clubs in the club node file.
func Run(ctx context.Context, env pipeline.Env) error {
	tel := telemetry.NewScopedAPI("players", env.Tel)

	clubList, err := clubs.ReadNodes(env.Paths.ClubNodes)
	if err != nil {
		tel.ReportBroken(report_read_clubs, err)
		return fmt.Errorf("players: %w", err)
	}

	result := Crawl(ctx, env.Fetcher, tel, clubList, env.Seasons, env.Config.ClubOverrides)
	if len(result.Players) == 0 {
		tel.ReportBroken(report_players, pipeline.ErrNoRecords)
		return fmt.Errorf("players: %w", pipeline.ErrNoRecords)
	}
	tel.ReportCount(report_players, int64(len(result.Players)))

	err = csvutil.WriteFile(env.Paths.PlayerNodes, NodeHeader, NodeRows(result.Players))
	if err != nil {
		tel.ReportBroken(report_write, err, slog.String("path", env.Paths.PlayerNodes))
		return err
	}
	err = csvutil.WriteFile(env.Paths.PlayedFor, RelationHeader, RelationRows(result.PlayedFor))
	if err != nil {
		tel.ReportBroken(report_write, err, slog.String("path", env.Paths.PlayedFor))
		return err
	}
	return nil
}
