package wiki

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"eplgraph/internal/components/assert"
	"eplgraph/internal/components/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("eplgraph/lib/wiki")

const (
	report_fetch        = "fetch"
	report_cache_read   = "cache-read"
	report_cache_write  = "cache-write"
	report_cache_hit    = "cache-hit"
	report_fetch_status = "fetch-status"
)

// Cache stores page bodies keyed by url.
type Cache interface {
	Get(ctx context.Context, url string) (body []byte, ok bool, err error)
	Put(ctx context.Context, url string, body []byte) error
}

type Options struct {
	BaseURL   string
	UserAgent string
	// Timeout applies to every single attempt.
	Timeout time.Duration
	// RetryCount is the number of retries after the first attempt.
	RetryCount   int
	RetryWait    time.Duration
	RetryMaxWait time.Duration
	// CourtesyDelay is waited after every request that went over the network.
	CourtesyDelay time.Duration
	// Cache is optional.
	Cache Cache
	// Output receives full HTTP exchanges, optional.
	Output telemetry.MessageOutput
}

// Client is the Fetcher used against the live site.
type Client struct {
	http    *resty.Client
	baseURL string
	delay   time.Duration
	cache   Cache
	tel     telemetry.API
}

func NewClient(opts Options, tel telemetry.API) *Client {
	assert.NotEmptyStr(opts.BaseURL)
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("wiki", tel)

	client := resty.New()
	client.SetHeader("user-agent", opts.UserAgent)
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	client.SetRetryCount(opts.RetryCount)
	client.SetRetryWaitTime(opts.RetryWait)
	client.SetRetryMaxWaitTime(opts.RetryMaxWait)
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		if err != nil {
			return !errors.Is(err, context.Canceled)
		}
		return res != nil && retryableStatus(res.StatusCode())
	})
	telemetry.InstrumentResty(client, tel, opts.Output)

	return &Client{
		http:    client,
		baseURL: opts.BaseURL,
		delay:   opts.CourtesyDelay,
		cache:   opts.Cache,
		tel:     tel,
	}
}

func (c *Client) Fetch(ctx context.Context, title string) (Page, error) {
	ctx, span := tracer.Start(ctx, "Fetch", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	pageUrl := TitleURL(c.baseURL, title)
	span.SetAttributes(
		attribute.String("title", title),
		attribute.String("url", pageUrl),
	)

	body, err := c.body(ctx, title, pageUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch page")
		return Page{}, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse page")
		return Page{}, &FetchError{Title: title, Status: http.StatusOK, Err: err}
	}

	return Page{Title: title, URL: pageUrl, Doc: doc}, nil
}

func (c *Client) body(ctx context.Context, title, pageUrl string) ([]byte, error) {
	if c.cache != nil {
		cached, ok, err := c.cache.Get(ctx, pageUrl)
		if err != nil {
			c.tel.ReportBroken(report_cache_read, err, slog.String("url", pageUrl))
		} else if ok {
			c.tel.ReportDebug(report_cache_hit, slog.String("url", pageUrl))
			return cached, nil
		}
	}

	c.tel.ReportDebug(report_fetch, slog.String("title", title))
	res, err := c.http.R().
		SetContext(ctx).
		Get(pageUrl)
	c.pause(ctx)
	if err != nil {
		return nil, &FetchError{Title: title, Err: err}
	}

	switch {
	case res.StatusCode() == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", title, ErrNotFound)
	case res.StatusCode() != http.StatusOK:
		c.tel.ReportWarning(
			report_fetch_status,
			slog.String("title", title),
			slog.Int("status", res.StatusCode()),
		)
		return nil, &FetchError{Title: title, Status: res.StatusCode()}
	}

	body := res.Body()
	if c.cache != nil {
		err = c.cache.Put(ctx, pageUrl, body)
		if err != nil {
			c.tel.ReportBroken(report_cache_write, err, slog.String("url", pageUrl))
		}
	}
	return body, nil
}

// pause waits out the courtesy delay or until ctx is done.
func (c *Client) pause(ctx context.Context) {
	if c.delay <= 0 {
		return
	}
	timer := time.NewTimer(c.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
