// Package wikitest provides an in-memory wiki.Fetcher.
package wikitest

import (
	"context"
	"fmt"
	"strings"

	"eplgraph/lib/wiki"

	"github.com/PuerkitoBio/goquery"
)

const BaseURL = "https://wiki.test/wiki/"

// Pages serves html by page title. Titles that are not present are reported
// as wiki.ErrNotFound unless Errors holds something else for them.
type Pages struct {
	HTML   map[string]string
	Errors map[string]error
	// Requests lists every requested title in order.
	Requests []string
}

func New(html map[string]string) *Pages {
	return &Pages{HTML: html, Errors: map[string]error{}}
}

func (p *Pages) Fetch(ctx context.Context, title string) (wiki.Page, error) {
	p.Requests = append(p.Requests, title)
	if err := ctx.Err(); err != nil {
		return wiki.Page{}, err
	}
	if err, ok := p.Errors[title]; ok {
		return wiki.Page{}, err
	}
	body, ok := p.HTML[title]
	if !ok {
		return wiki.Page{}, fmt.Errorf("%s: %w", title, wiki.ErrNotFound)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return wiki.Page{}, err
	}
	return wiki.Page{
		Title: title,
		URL:   wiki.TitleURL(BaseURL, title),
		Doc:   doc,
	}, nil
}

// Requested counts how many times a title was fetched.
func (p *Pages) Requested(title string) int {
	n := 0
	for _, r := range p.Requests {
		if r == title {
			n++
		}
	}
	return n
}
