package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching fetched pages
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// PageFetcher retrieves the raw markup of a cost of living page
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// TableParser extracts label/price rows from page markup, in document order
type TableParser interface {
	ParseRows(markup string) ([]ScrapedRow, error)
}

// URLBuilder resolves a city and country to the page that describes them
type URLBuilder interface {
	CityURL(city, country string) string
}

// MatchObserver is notified of every row the matching engine handles
type MatchObserver interface {
	ObserveMatch(tier MatchTier)
	ObserveDroppedRow()
}
