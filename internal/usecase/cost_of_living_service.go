package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/costlens/backend/internal/domain"
)

// maxUnmatchedExamples caps how many unmatched labels are logged per lookup
const maxUnmatchedExamples = 8

// CostOfLivingServiceConfig holds configuration for the cost of living service
type CostOfLivingServiceConfig struct {
	CacheTTL       time.Duration
	DefaultCity    string
	DefaultCountry string
}

// CostOfLivingService fetches a city's price page and matches its rows
// against the catalog
type CostOfLivingService struct {
	cache          domain.CacheRepository
	fetcher        domain.PageFetcher
	parser         domain.TableParser
	urls           domain.URLBuilder
	matcher        *MatchingService
	catalog        *domain.Catalog
	cacheTTL       time.Duration
	defaultCity    string
	defaultCountry string
	now            func() time.Time
}

// NewCostOfLivingService creates a new cost of living service with dependencies.
// cache may be nil to disable page caching.
func NewCostOfLivingService(
	cache domain.CacheRepository,
	fetcher domain.PageFetcher,
	parser domain.TableParser,
	urls domain.URLBuilder,
	matcher *MatchingService,
	config CostOfLivingServiceConfig,
) *CostOfLivingService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	defaultCity := config.DefaultCity
	if defaultCity == "" {
		defaultCity = "Imphal"
	}
	defaultCountry := config.DefaultCountry
	if defaultCountry == "" {
		defaultCountry = "India"
	}

	return &CostOfLivingService{
		cache:          cache,
		fetcher:        fetcher,
		parser:         parser,
		urls:           urls,
		matcher:        matcher,
		catalog:        matcher.index.Catalog(),
		cacheTTL:       cacheTTL,
		defaultCity:    defaultCity,
		defaultCountry: defaultCountry,
		now:            time.Now,
	}
}

// Catalog returns the catalog lookups are matched against
func (s *CostOfLivingService) Catalog() *domain.Catalog {
	return s.catalog
}

// Lookup builds the price report for a city.
// Flow: resolve URL -> cache or fetch -> parse tables -> cache page -> match rows -> report
func (s *CostOfLivingService) Lookup(ctx context.Context, request domain.LookupRequest) (*domain.Report, error) {
	city := strings.TrimSpace(request.City)
	if city == "" {
		city = s.defaultCity
	}
	country := strings.TrimSpace(request.Country)
	if country == "" {
		country = s.defaultCountry
	}

	url := s.urls.CityURL(city, country)
	log.Printf("[LOOKUP] Fetching URL: %s", url)

	markup, fromCache, err := s.loadPage(ctx, url)
	if err != nil {
		return nil, err
	}

	rows, err := s.parser.ParseRows(markup)
	if err != nil {
		return nil, err
	}

	if !fromCache {
		s.storePage(ctx, url, markup)
	}

	table, stats := s.MatchRows(rows)

	unmatched := table.Unmatched()
	if len(unmatched) > 0 {
		examples := unmatched
		if len(examples) > maxUnmatchedExamples {
			examples = examples[:maxUnmatchedExamples]
		}
		log.Printf("[LOOKUP] Found %d unmatched labels. Examples: %v", len(unmatched), examples)
	}

	return &domain.Report{
		City:       city,
		Country:    country,
		SourceURL:  url,
		FetchedAt:  s.now(),
		FromCache:  fromCache,
		Categories: table.Categories(),
		Unmatched:  unmatched,
		Stats:      stats,
	}, nil
}

// MatchRows runs every row through the matching engine and collects the
// outcome in a fresh result table
func (s *CostOfLivingService) MatchRows(rows []domain.ScrapedRow) (*ResultTable, domain.LookupStats) {
	table := NewResultTable(s.catalog)
	stats := domain.LookupStats{Rows: len(rows)}

	for _, row := range rows {
		result, ok := s.matcher.Resolve(row)
		if !ok {
			stats.Dropped++
			continue
		}
		if result.Matched {
			stats.Matched++
		} else {
			stats.Unmatched++
		}
		table.Record(result)
	}

	return table, stats
}

// loadPage returns the page markup from cache when present, otherwise fetches it
func (s *CostOfLivingService) loadPage(ctx context.Context, url string) (string, bool, error) {
	if s.cache != nil {
		markup, err := s.cache.Get(ctx, cacheKey(url))
		if err == nil && markup != "" {
			log.Printf("[LOOKUP] Cache hit for %s", url)
			return markup, true, nil
		}
	}

	markup, err := s.fetcher.FetchPage(ctx, url)
	if err != nil {
		return "", false, err
	}

	return markup, false, nil
}

// storePage caches a page that parsed into price rows
func (s *CostOfLivingService) storePage(ctx context.Context, url, markup string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(url), markup, s.cacheTTL); err != nil {
		log.Printf("[LOOKUP] Failed to cache page %s: %v", url, err)
	}
}

// cacheKey builds the cache key for a page URL.
// Format: "page:{url}"
func cacheKey(url string) string {
	return fmt.Sprintf("page:%s", url)
}
