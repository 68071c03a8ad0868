package domain

import "time"

// ScrapedRow is a label/price cell pair as delivered by the table parser.
// Both fields may still carry non-breaking or zero-width spaces.
type ScrapedRow struct {
	Label string `json:"label"`
	Price string `json:"price"`
}

// MatchTier identifies which strategy resolved a label.
type MatchTier string

const (
	TierExact     MatchTier = "exact"
	TierToken     MatchTier = "token"
	TierFallback  MatchTier = "fallback"
	TierUnmatched MatchTier = "unmatched"
)

// MatchResult is the outcome of resolving one scraped row.
// When Matched is false, Category and Item are empty and Row holds the raw input.
type MatchResult struct {
	Matched  bool
	Tier     MatchTier
	Category string
	Item     string
	Price    string
	Row      ScrapedRow
}

// Matched builds a successful match result.
func Matched(tier MatchTier, entry LookupEntry, price string, row ScrapedRow) MatchResult {
	return MatchResult{
		Matched:  true,
		Tier:     tier,
		Category: entry.Category,
		Item:     entry.Item,
		Price:    price,
		Row:      row,
	}
}

// Unmatched builds a result for a row no tier could classify.
func Unmatched(row ScrapedRow) MatchResult {
	return MatchResult{Tier: TierUnmatched, Row: row}
}

// LookupRequest asks for the price table of one city
type LookupRequest struct {
	City    string `json:"city" form:"city" binding:"omitempty,max=100"`
	Country string `json:"country" form:"country" binding:"omitempty,max=100"`
}

// LookupStats summarizes how the rows of one page were handled
type LookupStats struct {
	Rows      int `json:"rows"`
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`
	Dropped   int `json:"dropped"`
}

// ItemPrice is one priced canonical item
type ItemPrice struct {
	Item  string `json:"item"`
	Price string `json:"price"`
}

// CategoryPrices is one category of a result table with its items in catalog order
type CategoryPrices struct {
	Name  string      `json:"name"`
	Items []ItemPrice `json:"items"`
}

// Report is the outcome of a single lookup
type Report struct {
	City       string           `json:"city"`
	Country    string           `json:"country"`
	SourceURL  string           `json:"sourceUrl"`
	FetchedAt  time.Time        `json:"fetchedAt"`
	FromCache  bool             `json:"fromCache"`
	Categories []CategoryPrices `json:"categories"`
	Unmatched  []ScrapedRow     `json:"unmatched"`
	Stats      LookupStats      `json:"stats"`
}
