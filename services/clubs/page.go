package clubs

import (
	"context"
	"errors"
	"strings"

	"eplgraph/lib/wiki"
)

const titleSuffix = "_F.C."

// PageTitle resolves the title of a club's page. Overrides are used verbatim,
// other names get the "_F.C." suffix unless they already carry it or are an
// "AFC" club.
func PageTitle(name string, overrides map[string]string) string {
	name = strings.TrimSpace(name)
	if title, ok := overrides[name]; ok {
		return strings.ReplaceAll(title, " ", "_")
	}
	title := strings.ReplaceAll(name, " ", "_")
	if strings.HasSuffix(title, "F.C.") || strings.Contains(title, "AFC") {
		return title
	}
	return title + titleSuffix
}

// FetchPage fetches a club page by title. A missing "<club>_F.C." page is
// retried once without the suffix.
func FetchPage(ctx context.Context, fetcher wiki.Fetcher, title string) (wiki.Page, error) {
	page, err := fetcher.Fetch(ctx, title)
	if err == nil {
		return page, nil
	}
	if errors.Is(err, wiki.ErrNotFound) && strings.HasSuffix(title, titleSuffix) {
		return fetcher.Fetch(ctx, strings.TrimSuffix(title, titleSuffix))
	}
	return wiki.Page{}, err
}
