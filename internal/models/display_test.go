package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const franceJSON = `{
	"name": {"common": "France", "official": "French Republic"},
	"cca2": "FR", "cca3": "FRA",
	"capital": ["Paris"],
	"population": 67391582,
	"area": 551695,
	"region": "Europe",
	"currencies": {"EUR": {"name": "Euro", "symbol": "€"}},
	"languages": {"fra": "French"},
	"borders": ["AND", "BEL", "DEU"],
	"flags": {"svg": "https://flagcdn.com/fr.svg"},
	"maps": {"googleMaps": "https://goo.gl/maps/g7QxxSFsWyTPKuzd7"},
	"idd": {"root": "+3", "suffixes": ["3"]},
	"tld": [".fr"],
	"unMember": true,
	"status": "officially-assigned",
	"car": {"side": "right"},
	"coatOfArms": {"svg": "https://mainfacts.com/media/images/coats_of_arms/fr.svg"}
}`

func TestAPICountry_ToCountry(t *testing.T) {
	var wire APICountry
	require.NoError(t, json.Unmarshal([]byte(franceJSON), &wire))

	c := wire.ToCountry()
	assert.Equal(t, "France", c.CommonName)
	assert.Equal(t, "French Republic", c.OfficialName)
	assert.Equal(t, "+33", c.CallingCode)
	assert.Equal(t, ".fr", c.TopLevelDomain)
	assert.Equal(t, "right", c.DrivingSide)
	assert.Equal(t, "https://flagcdn.com/fr.svg", c.FlagURL)
	assert.Equal(t, []string{"AND", "BEL", "DEU"}, c.Borders)
	assert.Equal(t, "france", c.Key())
	assert.True(t, c.HasBorders())
}

func TestFormatPopulation(t *testing.T) {
	assert.Equal(t, "1.40 B", FormatPopulation(1_402_112_000))
	assert.Equal(t, "67.39 M", FormatPopulation(67_391_582))
	assert.Equal(t, "12.5 K", FormatPopulation(12_500))
	assert.Equal(t, "999", FormatPopulation(999))
}

func TestAreaShare(t *testing.T) {
	assert.Equal(t, 100.0, AreaShare(LargestCountryArea))
	assert.Equal(t, 100.0, AreaShare(LargestCountryArea*2))
	assert.InDelta(t, 3.2266, AreaShare(551695), 0.001)
	assert.Equal(t, 0.0, AreaShare(0))
}

func TestDisplayOf(t *testing.T) {
	d := DisplayOf(Country{
		CommonName:  "United Kingdom",
		Population:  67_215_293,
		Area:        242900,
		Currencies:  map[string]Currency{"GBP": {Name: "British pound", Symbol: "£"}},
		DrivingSide: "left",
	})
	assert.Equal(t, "N/A", d.Capital)
	assert.Equal(t, "N/A", d.TopLevelDomain)
	assert.Equal(t, "N/A", d.Languages)
	assert.Equal(t, "British pound (£)", d.Currencies)
	assert.Equal(t, "242,900 km²", d.Area)
	assert.Equal(t, "LEFT", d.DrivingSide)
	assert.Equal(t, "https://en.wikipedia.org/wiki/United%20Kingdom", d.WikipediaURL)
}
