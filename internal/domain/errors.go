package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCityNotFound is returned when the source has no page for the requested city
	ErrCityNotFound = errors.New("city not found")

	// ErrNoPriceTable is returned when a fetched page carries no price table
	ErrNoPriceTable = errors.New("city not found or no data available (page structure may have changed)")

	// ErrSourceUnavailable is returned when the source page cannot be fetched
	ErrSourceUnavailable = errors.New("failed to fetch cost of living page")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidCatalog is returned when a catalog definition is malformed
	ErrInvalidCatalog = errors.New("invalid catalog")
)
