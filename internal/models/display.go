package models

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// LargestCountryArea is the area of Russia in km², the reference for AreaShare.
const LargestCountryArea = 17098242

const notAvailable = "N/A"

// Display holds presentation-ready values derived from a Country.
type Display struct {
	Capital        string  `json:"capital"`
	Population     string  `json:"population"`
	CallingCode    string  `json:"callingCode"`
	TopLevelDomain string  `json:"topLevelDomain"`
	Currencies     string  `json:"currencies"`
	Languages      string  `json:"languages"`
	Area           string  `json:"area"`
	AreaShare      float64 `json:"areaShare"` // percent of LargestCountryArea, capped at 100
	DrivingSide    string  `json:"drivingSide"`
	WikipediaURL   string  `json:"wikipediaUrl"`
}

// DisplayOf derives the display values of a country.
func DisplayOf(c Country) Display {
	d := Display{
		Capital:        notAvailable,
		Population:     FormatPopulation(c.Population),
		CallingCode:    c.CallingCode,
		TopLevelDomain: orNotAvailable(c.TopLevelDomain),
		Currencies:     orNotAvailable(CurrencyList(c.Currencies)),
		Languages:      orNotAvailable(LanguageList(c.Languages)),
		Area:           formatThousands(int64(c.Area)) + " km²",
		AreaShare:      AreaShare(c.Area),
		DrivingSide:    strings.ToUpper(c.DrivingSide),
		WikipediaURL:   "https://en.wikipedia.org/wiki/" + url.PathEscape(c.CommonName),
	}
	if len(c.Capital) > 0 && c.Capital[0] != "" {
		d.Capital = c.Capital[0]
	}
	return d
}

// FormatPopulation abbreviates large numbers: 2.00 B, 67.39 M, 12.5 K.
func FormatPopulation(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.2f B", float64(n)/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.2f M", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1f K", float64(n)/1_000)
	}
	return strconv.FormatInt(n, 10)
}

// AreaShare returns area as a percentage of LargestCountryArea, capped at 100.
func AreaShare(area float64) float64 {
	if area <= 0 {
		return 0
	}
	return min(area/LargestCountryArea*100, 100)
}

// CurrencyList renders currencies as "Euro (€), Swiss franc (Fr.)", ordered by code.
func CurrencyList(currencies map[string]Currency) string {
	codes := sortedKeys(currencies)
	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		cur := currencies[code]
		parts = append(parts, fmt.Sprintf("%s (%s)", cur.Name, cur.Symbol))
	}
	return strings.Join(parts, ", ")
}

// LanguageList renders language names ordered by language code.
func LanguageList(languages map[string]string) string {
	codes := sortedKeys(languages)
	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		parts = append(parts, languages[code])
	}
	return strings.Join(parts, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func formatThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if n < 0 {
		return "-" + formatThousands(-n)
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
