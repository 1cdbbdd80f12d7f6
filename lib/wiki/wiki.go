// Package wiki fetches encyclopedia pages by title. Retries, the courtesy
// pause between requests and the page cache all live here so the extractors
// only ever see a parsed page or a typed failure.
package wiki

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNotFound is a definitive absence, the page does not exist. It is never
// retried.
var ErrNotFound = errors.New("page not found")

// Page is a fetched and parsed page.
type Page struct {
	Title string
	URL   string
	Doc   *goquery.Document
}

// Fetcher fetches a page by its title, e.g. "2023–24_Premier_League".
type Fetcher interface {
	Fetch(ctx context.Context, title string) (Page, error)
}

// FetchError is returned when a page could not be fetched for a reason other
// than not existing. Status is 0 when no response was received.
type FetchError struct {
	Title  string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s", e.Title, e.Err.Error())
	}
	return fmt.Sprintf("fetch %s: status %d", e.Title, e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Transient reports failures that may go away on their own: network errors,
// rate limiting and server errors.
func (e *FetchError) Transient() bool {
	if e.Status == 0 {
		return e.Err != nil && !errors.Is(e.Err, context.Canceled)
	}
	return retryableStatus(e.Status)
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// TitleURL joins a page title onto the base url, spaces become underscores.
func TitleURL(baseURL, title string) string {
	title = strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL + url.PathEscape(title)
}
