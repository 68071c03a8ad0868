package numbeo

import (
	"net/url"
	"strings"
)

// DefaultBaseURL is the listing root for city pages
const DefaultBaseURL = "https://www.numbeo.com/cost-of-living/in"

// URLBuilder maps a city and country to its cost of living page.
//
// Most cities live at <base>/<City-Name>. Some share a name with cities in
// other countries and are published as <City-Name>-<Country>; others use a
// slug that differs from the common spelling.
type URLBuilder struct {
	baseURL         string
	citySlugs       map[string]string
	countrySuffixed map[string]bool
}

// NewURLBuilder creates a URL builder. Keys of citySlugs and entries of
// countrySuffixed are matched case-insensitively against the city name.
func NewURLBuilder(baseURL string, citySlugs map[string]string, countrySuffixed []string) *URLBuilder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	slugs := make(map[string]string, len(citySlugs))
	for city, slug := range citySlugs {
		slugs[strings.ToLower(strings.TrimSpace(city))] = slug
	}

	suffixed := make(map[string]bool, len(countrySuffixed))
	for _, city := range countrySuffixed {
		suffixed[strings.ToLower(strings.TrimSpace(city))] = true
	}

	return &URLBuilder{
		baseURL:         strings.TrimRight(baseURL, "/"),
		citySlugs:       slugs,
		countrySuffixed: suffixed,
	}
}

// CityURL returns the page URL for a city
func (b *URLBuilder) CityURL(city, country string) string {
	city = strings.TrimSpace(city)
	key := strings.ToLower(city)

	slug, ok := b.citySlugs[key]
	if !ok {
		slug = hyphenate(city)
		if b.countrySuffixed[key] && strings.TrimSpace(country) != "" {
			slug = slug + "-" + hyphenate(strings.TrimSpace(country))
		}
	}

	return b.baseURL + "/" + url.PathEscape(slug)
}

func hyphenate(s string) string {
	return strings.ReplaceAll(s, " ", "-")
}
