// Package coaches extracts the managerial history of every club and flags the
// current manager.
package coaches

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"eplgraph/internal/components/telemetry"
	"eplgraph/lib/classify"
	"eplgraph/lib/csvutil"
	"eplgraph/lib/htmlutil"
	"eplgraph/lib/pipeline"
	"eplgraph/lib/records"
	"eplgraph/lib/slug"
	"eplgraph/lib/wiki"
	"eplgraph/services/clubs"
)

var (
	NodeHeader     = []string{"coach_id", "name"}
	RelationHeader = []string{"coach_id", "club_id", "season", "years", "is_current", "current_confidence"}
)

// Extractor pulls coaches out of club pages.
type Extractor struct {
	fetcher wiki.Fetcher
	tel     telemetry.API
	// IsName decides which line of a cell is the manager's name.
	IsName classify.NamePredicate
	// FuzzyThreshold enables fuzzy matching of the info box name against the
	// history, see CurrentFuzzy. Zero keeps strict containment.
	FuzzyThreshold float64
}

func NewExtractor(fetcher wiki.Fetcher, tel telemetry.API) Extractor {
	return Extractor{
		fetcher: fetcher,
		tel:     tel,
		IsName:  classify.LooksLikeName,
	}
}

// ListTitle is the title of the dedicated list of managers of a club.
func ListTitle(clubTitle string) string {
	return "List_of_" + clubTitle + "_managers"
}

// history finds the managerial history table, on the club page itself or on
// the list of managers page.
func (e Extractor) history(ctx context.Context, club records.Club, page wiki.Page) (htmlutil.Table, error) {
	if sel, ok := HistoryTable(page.Doc); ok {
		return htmlutil.ParseTable(sel)
	}

	listTitle := ListTitle(page.Title)
	list, err := e.fetcher.Fetch(ctx, listTitle)
	if err != nil {
		// most clubs have no list page, only other failures are worth a re-run
		if errors.Is(err, wiki.ErrNotFound) {
			e.tel.ReportDebug(report_list_page, slog.String("club", club.Name), slog.String("title", listTitle), slog.Any("err", err))
		} else {
			e.tel.ReportWarning(report_list_page, err, slog.String("club", club.Name), slog.String("title", listTitle))
		}
		return htmlutil.Table{}, fmt.Errorf("%w: %w", ErrNoHistoryTable, err)
	}
	return BestListTable(list.Doc)
}

// Club extracts the coaches of one club page.
func (e Extractor) Club(ctx context.Context, club records.Club, page wiki.Page, season string) ([]records.Coach, []records.Coached) {
	infobox, hasInfobox := InfoboxManager(page.Doc, e.IsName)

	var entries []Entry
	table, err := e.history(ctx, club, page)
	if err == nil {
		entries = Entries(table, e.IsName)
	} else if !errors.Is(err, ErrNoHistoryTable) {
		e.tel.ReportWarning(report_parse_history, err, slog.String("club", club.Name))
	}

	if len(entries) == 0 {
		if !hasInfobox {
			e.tel.ReportWarning(report_no_coach, slog.String("club", club.Name))
			return nil, nil
		}
		entries = []Entry{{Name: infobox}}
	}

	current, confidence := CurrentFuzzy(entries, infobox, e.FuzzyThreshold)
	if confidence == records.CONFIDENCE_FALLBACK {
		e.tel.ReportWarning(
			report_current_guess,
			slog.String("club", club.Name),
			slog.String("coach", entries[current].Name),
			slog.String("infobox", infobox),
		)
	}

	var coaches []records.Coach
	var coached []records.Coached
	for i, entry := range entries {
		id, ok := slug.Coach(entry.Name)
		if !ok {
			continue
		}
		rel := records.Coached{
			CoachID: id,
			ClubID:  club.ID,
			Season:  season,
			Years:   entry.Years,
		}
		if i == current {
			rel.IsCurrent = true
			rel.Confidence = confidence
		}
		coaches = append(coaches, records.Coach{ID: id, Name: entry.Name})
		coached = append(coached, rel)
	}
	return coaches, coached
}

// Result holds the deduplicated coaches and every coached relation.
type Result struct {
	Coaches []records.Coach
	Coached []records.Coached
}

// Crawl extracts the coaches of every club, attributing them to `season`.
func (e Extractor) Crawl(ctx context.Context, clubList []records.Club, season string, overrides map[string]string) Result {
	var result Result
	seen := map[string]bool{}

	for _, club := range clubList {
		title := clubs.PageTitle(club.Name, overrides)
		page, err := clubs.FetchPage(ctx, e.fetcher, title)
		if err != nil {
			e.tel.ReportWarning(report_fetch, err, slog.String("club", club.Name), slog.String("title", title))
			continue
		}

		coaches, coached := e.Club(ctx, club, page, season)
		e.tel.ReportCount(report_club_coaches, int64(len(coached)))

		for _, c := range coaches {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			result.Coaches = append(result.Coaches, c)
		}
		result.Coached = append(result.Coached, coached...)
	}
	return result
}

func NodeRows(coaches []records.Coach) [][]string {
	rows := make([][]string, len(coaches))
	for i, c := range coaches {
		rows[i] = []string{c.ID, c.Name}
	}
	return rows
}

func RelationRows(coached []records.Coached) [][]string {
	rows := make([][]string, len(coached))
	for i, c := range coached {
		rows[i] = []string{
			c.CoachID,
			c.ClubID,
			c.Season,
			c.Years,
			strconv.FormatBool(c.IsCurrent),
			string(c.Confidence),
		}
	}
	return rows
}

// Run crawls the coaches of the clubs in the club node file.
func Run(ctx context.Context, env pipeline.Env) error {
	tel := telemetry.NewScopedAPI("coaches", env.Tel)

	clubList, err := clubs.ReadNodes(env.Paths.ClubNodes)
	if err != nil {
		tel.ReportBroken(report_read_clubs, err)
		return fmt.Errorf("coaches: %w", err)
	}

	e := NewExtractor(env.Fetcher, tel)
	e.FuzzyThreshold = env.Config.CoachFuzzyThreshold
	result := e.Crawl(ctx, clubList, env.CoachSeason(), env.Config.ClubOverrides)
	if len(result.Coaches) == 0 {
		tel.ReportBroken(report_coaches, pipeline.ErrNoRecords)
		return fmt.Errorf("coaches: %w", pipeline.ErrNoRecords)
	}
	tel.ReportCount(report_coaches, int64(len(result.Coaches)))

	err = csvutil.WriteFile(env.Paths.CoachNodes, NodeHeader, NodeRows(result.Coaches))
	if err != nil {
		tel.ReportBroken(report_write, err, slog.String("path", env.Paths.CoachNodes))
		return err
	}
	err = csvutil.WriteFile(env.Paths.Coached, RelationHeader, RelationRows(result.Coached))
	if err != nil {
		tel.ReportBroken(report_write, err, slog.String("path", env.Paths.Coached))
		return err
	}
	return nil
}
