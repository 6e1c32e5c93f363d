package models

import "strings"

// Currency describes one currency entry of a country.
type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol,omitempty"`
}

// Country represents a country record as rendered by the lookup core.
// Records are immutable snapshots of the remote API data.
type Country struct {
	CommonName     string              `json:"commonName"`
	OfficialName   string              `json:"officialName"`
	CCA2           string              `json:"cca2"`
	CCA3           string              `json:"cca3"`
	Capital        []string            `json:"capital"`
	Population     int64               `json:"population"`
	Area           float64             `json:"area"`
	Region         string              `json:"region"`
	Subregion      string              `json:"subregion,omitempty"`
	Currencies     map[string]Currency `json:"currencies"`
	Languages      map[string]string   `json:"languages"`
	Borders        []string            `json:"borders"`
	FlagURL        string              `json:"flagUrl"`
	MapsURL        string              `json:"mapsUrl"`
	CallingCode    string              `json:"callingCode"`
	TopLevelDomain string              `json:"topLevelDomain"`
	UNMember       bool                `json:"unMember"`
	DrivingSide    string              `json:"drivingSide"`
	Status         string              `json:"status"`
	CoatOfArmsURL  string              `json:"coatOfArmsUrl,omitempty"`
}

// Key returns the lowercase common name the record is cached under.
func (c Country) Key() string {
	return strings.ToLower(c.CommonName)
}

// HasBorders reports whether the country shares a land border with another country.
func (c Country) HasBorders() bool {
	return len(c.Borders) > 0
}

// APICountry is the RESTCountries v3.1 wire format.
type APICountry struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	CCA2       string              `json:"cca2"`
	CCA3       string              `json:"cca3"`
	Capital    []string            `json:"capital"`
	Population int64               `json:"population"`
	Area       float64             `json:"area"`
	Region     string              `json:"region"`
	Subregion  string              `json:"subregion"`
	Currencies map[string]Currency `json:"currencies"`
	Languages  map[string]string   `json:"languages"`
	Borders    []string            `json:"borders"`
	Flags      struct {
		SVG string `json:"svg"`
		PNG string `json:"png"`
	} `json:"flags"`
	Maps struct {
		GoogleMaps     string `json:"googleMaps"`
		OpenStreetMaps string `json:"openStreetMaps"`
	} `json:"maps"`
	IDD struct {
		Root     string   `json:"root"`
		Suffixes []string `json:"suffixes"`
	} `json:"idd"`
	TLD      []string `json:"tld"`
	UNMember bool     `json:"unMember"`
	Status   string   `json:"status"`
	Car      struct {
		Side string `json:"side"`
	} `json:"car"`
	CoatOfArms struct {
		SVG string `json:"svg"`
	} `json:"coatOfArms"`
}

// ToCountry flattens the wire format into a Country.
func (a APICountry) ToCountry() Country {
	country := Country{
		CommonName:    a.Name.Common,
		OfficialName:  a.Name.Official,
		CCA2:          strings.ToUpper(a.CCA2),
		CCA3:          strings.ToUpper(a.CCA3),
		Capital:       a.Capital,
		Population:    a.Population,
		Area:          a.Area,
		Region:        a.Region,
		Subregion:     a.Subregion,
		Currencies:    a.Currencies,
		Languages:     a.Languages,
		Borders:       a.Borders,
		FlagURL:       a.Flags.SVG,
		MapsURL:       a.Maps.GoogleMaps,
		CallingCode:   a.IDD.Root,
		UNMember:      a.UNMember,
		DrivingSide:   a.Car.Side,
		Status:        a.Status,
		CoatOfArmsURL: a.CoatOfArms.SVG,
	}
	if country.FlagURL == "" {
		country.FlagURL = a.Flags.PNG
	}
	if country.MapsURL == "" {
		country.MapsURL = a.Maps.OpenStreetMaps
	}
	if len(a.IDD.Suffixes) > 0 {
		country.CallingCode += a.IDD.Suffixes[0]
	}
	if len(a.TLD) > 0 {
		country.TopLevelDomain = a.TLD[0]
	}
	return country
}

// CountryName is the wire format of the name-only listings (?fields=name).
type CountryName struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
}
