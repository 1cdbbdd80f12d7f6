package wiki

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/PuerkitoBio/purell"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const cacheSchema = `create table if not exists page (
	key text primary key,
	body blob not null,
	fetched_at integer not null
);`

// SQLiteCache keeps successfully fetched pages in a sqlite table so re-runs
// of a crawl do not hit the network again.
type SQLiteCache struct {
	db *sql.DB
	// MaxAge drops entries older than this on read, zero keeps them forever.
	MaxAge time.Duration
	now    func() time.Time
}

func NewSQLiteCache(db *sql.DB) (*SQLiteCache, error) {
	_, err := db.Exec(cacheSchema)
	if err != nil {
		return nil, err
	}
	return &SQLiteCache{db: db, now: time.Now}, nil
}

func cacheKey(rawUrl string) (string, error) {
	return purell.NormalizeURLString(
		rawUrl,
		purell.FlagsSafe|
			purell.FlagsUsuallySafeNonGreedy|
			purell.FlagRemoveDirectoryIndex|
			purell.FlagRemoveFragment|
			purell.FlagSortQuery,
	)
}

func (c *SQLiteCache) Get(ctx context.Context, url string) ([]byte, bool, error) {
	ctx, span := tracer.Start(ctx, "cache:get")
	defer span.End()

	key, err := cacheKey(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create cache key")
		return nil, false, err
	}
	span.SetAttributes(attribute.String("cache_key", key))

	var body []byte
	var fetchedAt int64
	err = c.db.QueryRowContext(ctx, "select body, fetched_at from page where key = ?", key).
		Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read cached page")
		return nil, false, err
	}

	if c.MaxAge > 0 && c.now().Sub(time.Unix(fetchedAt, 0)) > c.MaxAge {
		span.AddEvent("cache entry expired")
		return nil, false, nil
	}
	return body, true, nil
}

func (c *SQLiteCache) Put(ctx context.Context, url string, body []byte) error {
	ctx, span := tracer.Start(ctx, "cache:put")
	defer span.End()

	key, err := cacheKey(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create cache key")
		return err
	}
	span.SetAttributes(attribute.String("cache_key", key))

	_, err = c.db.ExecContext(
		ctx,
		"insert or replace into page(key, body, fetched_at) values (?, ?, ?)",
		key, body, c.now().Unix(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write cached page")
	}
	return err
}
