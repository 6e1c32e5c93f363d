package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// FakeCountriesAPI simulates the RESTCountries v3.1 API for tests. It serves the
// fixtures below, counts hits per endpoint and can answer with scripted 429s.
type FakeCountriesAPI struct {
	Server *httptest.Server

	mu          sync.Mutex
	hits        map[string]int
	rateLimited int
	failAll     bool
}

// Endpoint names used by Hits.
const (
	EndpointExact  = "exact"
	EndpointFuzzy  = "fuzzy"
	EndpointCodes  = "codes"
	EndpointAll    = "all"
	EndpointRegion = "region"
)

// NewFakeCountriesAPI starts the fake API; it is closed when the test ends.
func NewFakeCountriesAPI(t interface{ Cleanup(func()) }) *FakeCountriesAPI {
	gin.SetMode(gin.TestMode)
	f := &FakeCountriesAPI{hits: make(map[string]int)}

	r := gin.New()
	r.Use(f.scripted)
	r.GET("/v3.1/name/:name", f.byName)
	r.GET("/v3.1/alpha", f.byCodes)
	r.GET("/v3.1/all", f.all)
	r.GET("/v3.1/region/:region", f.region)

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base url to configure a repository with.
func (f *FakeCountriesAPI) URL() string {
	return f.Server.URL + "/v3.1"
}

// Hits returns the number of requests served for endpoint.
func (f *FakeCountriesAPI) Hits(endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[endpoint]
}

// RateLimitNext makes the next n requests answer 429.
func (f *FakeCountriesAPI) RateLimitNext(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rateLimited = n
}

// FailAll makes every request answer 500.
func (f *FakeCountriesAPI) FailAll(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failAll = fail
}

func (f *FakeCountriesAPI) hit(endpoint string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits[endpoint]++
}

func (f *FakeCountriesAPI) scripted(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rateLimited > 0 {
		f.rateLimited--
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"status": 429, "message": "Too Many Requests"})
		return
	}
	if f.failAll {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"status": 500, "message": "Internal Server Error"})
		return
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"status": 404, "message": "Not Found"})
}

func writeList(c *gin.Context, items []string) {
	c.Data(http.StatusOK, "application/json", []byte("["+strings.Join(items, ",")+"]"))
}

func (f *FakeCountriesAPI) byName(c *gin.Context) {
	name := strings.ToLower(c.Param("name"))
	if c.Query("fullText") == "true" {
		f.hit(EndpointExact)
		for _, fx := range fixtures {
			if strings.ToLower(fx.common) == name || strings.ToLower(fx.official) == name {
				writeList(c, []string{fx.json()})
				return
			}
		}
		notFound(c)
		return
	}

	f.hit(EndpointFuzzy)
	var matches []string
	for _, fx := range fixtures {
		if fuzzyMatch(strings.ToLower(fx.common), name) {
			matches = append(matches, fx.json())
		}
	}
	if len(matches) == 0 {
		notFound(c)
		return
	}
	writeList(c, matches)
}

func (f *FakeCountriesAPI) byCodes(c *gin.Context) {
	f.hit(EndpointCodes)
	codes := strings.FieldsFunc(c.Query("codes"), func(r rune) bool { return r == ',' })
	if len(codes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": 400, "message": "Bad Request"})
		return
	}
	var matches []string
	for _, code := range codes {
		for _, fx := range fixtures {
			if strings.EqualFold(fx.cca3, code) {
				matches = append(matches, fx.json())
			}
		}
	}
	if len(matches) == 0 {
		notFound(c)
		return
	}
	writeList(c, matches)
}

func (f *FakeCountriesAPI) all(c *gin.Context) {
	f.hit(EndpointAll)
	names := make([]string, 0, len(fixtures))
	for _, fx := range fixtures {
		names = append(names, fx.nameOnly())
	}
	writeList(c, names)
}

func (f *FakeCountriesAPI) region(c *gin.Context) {
	f.hit(EndpointRegion)
	var names []string
	for _, fx := range fixtures {
		if strings.EqualFold(fx.region, c.Param("region")) {
			names = append(names, fx.nameOnly())
		}
	}
	if len(names) == 0 {
		notFound(c)
		return
	}
	writeList(c, names)
}

// fuzzyMatch accepts substrings and single transpositions ("frnace" -> "france").
func fuzzyMatch(name, query string) bool {
	if strings.Contains(name, query) {
		return true
	}
	if len(name) != len(query) {
		return false
	}
	for i := 0; i+1 < len(query); i++ {
		swapped := query[:i] + string(query[i+1]) + string(query[i]) + query[i+2:]
		if swapped == name {
			return true
		}
	}
	return false
}

type fixture struct {
	common, official, cca2, cca3, region, capital string
	population                                    int64
	area                                          float64
	borders                                       []string
}

func (fx fixture) json() string {
	borders := `[]`
	if len(fx.borders) > 0 {
		borders = `["` + strings.Join(fx.borders, `","`) + `"]`
	}
	return fmt.Sprintf(`{"name":{"common":%q,"official":%q},"cca2":%q,"cca3":%q,`+
		`"capital":[%q],"population":%d,"area":%g,"region":%q,`+
		`"currencies":{"EUR":{"name":"Euro","symbol":"€"}},"languages":{"xxx":"Language"},`+
		`"borders":%s,"flags":{"svg":"https://flagcdn.com/%s.svg"},`+
		`"maps":{"googleMaps":"https://goo.gl/maps/%s"},"idd":{"root":"+3","suffixes":["3"]},`+
		`"tld":[".%s"],"unMember":true,"status":"officially-assigned","car":{"side":"right"},`+
		`"coatOfArms":{"svg":""}}`,
		fx.common, fx.official, fx.cca2, fx.cca3, fx.capital, fx.population, fx.area, fx.region,
		borders, strings.ToLower(fx.cca2), fx.cca3, strings.ToLower(fx.cca2))
}

func (fx fixture) nameOnly() string {
	return fmt.Sprintf(`{"name":{"common":%q}}`, fx.common)
}

var fixtures = []fixture{
	{"France", "French Republic", "FR", "FRA", "Europe", "Paris", 67391582, 551695, []string{"BEL", "DEU", "ESP"}},
	{"Germany", "Federal Republic of Germany", "DE", "DEU", "Europe", "Berlin", 83240525, 357114, []string{"BEL", "FRA"}},
	{"Belgium", "Kingdom of Belgium", "BE", "BEL", "Europe", "Brussels", 11555997, 30528, []string{"DEU", "FRA"}},
	{"Spain", "Kingdom of Spain", "ES", "ESP", "Europe", "Madrid", 47351567, 505992, []string{"FRA"}},
	{"Iceland", "Iceland", "IS", "ISL", "Europe", "Reykjavik", 366425, 103000, nil},
	{"New Zealand", "New Zealand", "NZ", "NZL", "Oceania", "Wellington", 5084300, 270467, nil},
}
