package usecase

import (
	"log"
	"strings"

	"github.com/costlens/backend/internal/domain"
)

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	EnableDebugLogging bool
	Observer           domain.MatchObserver
}

// MatchingService resolves scraped labels to canonical catalog items
type MatchingService struct {
	index              *Index
	observer           domain.MatchObserver
	enableDebugLogging bool
}

// NewMatchingService creates a matching service over a prebuilt index
func NewMatchingService(index *Index, config MatchConfig) *MatchingService {
	return &MatchingService{
		index:              index,
		observer:           config.Observer,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Resolve classifies one scraped row. The second return value is false when
// the row carries no numeric price; such rows are dropped and not reported.
//
// Labels are tried against three tiers in order:
//   - exact: the normalized label is a catalog key
//   - token: a catalog label sharing a significant word contains, or is
//     contained in, the normalized label (first in declaration order wins)
//   - fallback: every catalog item in declaration order is tested for the
//     same containment
//
// A label that passes no tier, or that consists only of punctuation, is
// returned as unmatched.
func (s *MatchingService) Resolve(row domain.ScrapedRow) (domain.MatchResult, bool) {
	price, ok := ExtractPrice(row.Price)
	if !ok {
		if s.enableDebugLogging {
			log.Printf("[MATCH] Skipping label with no numeric price: %q => %q", row.Label, row.Price)
		}
		if s.observer != nil {
			s.observer.ObserveDroppedRow()
		}
		return domain.MatchResult{}, false
	}

	result := s.resolveLabel(Normalize(row.Label), price, row)

	if s.enableDebugLogging {
		if result.Matched {
			log.Printf("[MATCH] %s match: %q -> %s / %q : %s",
				result.Tier, row.Label, result.Category, result.Item, result.Price)
		} else {
			log.Printf("[MATCH] Unmatched: %q | raw price: %q", row.Label, row.Price)
		}
	}
	if s.observer != nil {
		s.observer.ObserveMatch(result.Tier)
	}

	return result, true
}

func (s *MatchingService) resolveLabel(labelNorm, price string, row domain.ScrapedRow) domain.MatchResult {
	// Labels made only of punctuation normalize to "", which every catalog
	// label contains.
	if labelNorm == "" && !isBlank(row.Label) {
		return domain.Unmatched(row)
	}

	if entry, ok := s.index.Lookup(labelNorm); ok {
		return domain.Matched(domain.TierExact, entry, price, row)
	}

	for _, candidate := range s.index.Candidates(Tokens(labelNorm)) {
		if containsEither(candidate, labelNorm) {
			entry, _ := s.index.Lookup(candidate)
			return domain.Matched(domain.TierToken, entry, price, row)
		}
	}

	for _, item := range s.index.items {
		if containsEither(item.normalized, labelNorm) {
			return domain.Matched(domain.TierFallback, item.entry, price, row)
		}
	}

	return domain.Unmatched(row)
}

// isBlank reports whether a raw label holds nothing but whitespace
func isBlank(label string) bool {
	return strings.TrimSpace(strings.ReplaceAll(label, "\u200b", "")) == ""
}
