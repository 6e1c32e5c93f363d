// Package countries resolves country records from the RESTCountries API through
// the expiring cache.
package countries

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"country-explorer/internal/cache"
	"country-explorer/internal/fetch"
	"country-explorer/internal/models"
)

// ErrNotFound is returned when no record matches a query.
var ErrNotFound = errors.New("country not found")

const neighborsKeyPrefix = "neighbors_"

// Regions accepted by the region listing endpoint.
var Regions = []string{"africa", "americas", "antarctic", "asia", "europe", "oceania"}

// Repository resolves countries, cache first.
type Repository struct {
	baseURL string
	fetcher *fetch.Fetcher
	cache   *cache.ExpiringCache
}

// NewRepository returns a Repository querying the API at baseURL
// (e.g. https://restcountries.com/v3.1).
func NewRepository(baseURL string, fetcher *fetch.Fetcher, c *cache.ExpiringCache) *Repository {
	return &Repository{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetcher: fetcher,
		cache:   c,
	}
}

// ResolveByName returns the country matching name, trying an exact full-text match
// before a fuzzy one. Fetched records are cached under the lowercased query and the
// lowercased common name.
func (r *Repository) ResolveByName(ctx context.Context, name string) (*models.Country, error) {
	key := strings.ToLower(name)

	var cached models.Country
	if r.cache.Get(key, &cached) {
		return &cached, nil
	}

	country, err := r.fetchByName(ctx, name)
	if err != nil {
		return nil, err
	}
	r.cache.Set(key, country)
	r.cache.Set(country.Key(), country)
	return country, nil
}

func (r *Repository) fetchByName(ctx context.Context, name string) (*models.Country, error) {
	escaped := url.PathEscape(name)

	var results []models.APICountry
	found, err := r.fetcher.FetchJSON(ctx, r.baseURL+"/name/"+escaped+"?fullText=true", &results)
	if err != nil {
		return nil, err
	}
	if !found || len(results) == 0 {
		results = nil
		found, err = r.fetcher.FetchJSON(ctx, r.baseURL+"/name/"+escaped, &results)
		if err != nil {
			return nil, err
		}
	}
	if !found || len(results) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	country := results[0].ToCountry()
	return &country, nil
}

// ResolveByCodes returns the countries with the given alpha codes in one batched
// request. The cache key does not depend on the order of codes. Empty results are
// not cached.
func (r *Repository) ResolveByCodes(ctx context.Context, codes []string) ([]models.Country, error) {
	sorted := cache.SortedUnique(codes)
	if len(sorted) == 0 {
		return []models.Country{}, nil
	}
	key := cache.CompositeKey(neighborsKeyPrefix, sorted)

	var cached []models.Country
	if r.cache.Get(key, &cached) {
		return cached, nil
	}

	var results []models.APICountry
	found, err := r.fetcher.FetchJSON(ctx, r.baseURL+"/alpha?codes="+strings.Join(sorted, ","), &results)
	if err != nil {
		return nil, err
	}
	countries := make([]models.Country, 0, len(results))
	if found {
		for _, res := range results {
			countries = append(countries, res.ToCountry())
		}
	}
	if len(countries) > 0 {
		r.cache.Set(key, countries)
	}
	return countries, nil
}

// ListAllNames returns the common names of all countries.
func (r *Repository) ListAllNames(ctx context.Context) ([]string, error) {
	return r.listNames(ctx, r.baseURL+"/all?fields=name")
}

// ListRegionNames returns the common names of the countries in region.
func (r *Repository) ListRegionNames(ctx context.Context, region string) ([]string, error) {
	return r.listNames(ctx, r.baseURL+"/region/"+url.PathEscape(strings.ToLower(region))+"?fields=name")
}

// listNames is not cached and makes a single attempt.
func (r *Repository) listNames(ctx context.Context, endpoint string) ([]string, error) {
	var results []models.CountryName
	found, err := r.fetcher.FetchJSONWithRetries(ctx, endpoint, 0, &results)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(results))
	for _, res := range results {
		if res.Name.Common != "" {
			names = append(names, res.Name.Common)
		}
	}
	if !found || len(names) == 0 {
		return nil, ErrNotFound
	}
	return names, nil
}

// IsRegion reports whether region names one of Regions.
func IsRegion(region string) bool {
	region = strings.ToLower(region)
	for _, r := range Regions {
		if r == region {
			return true
		}
	}
	return false
}
