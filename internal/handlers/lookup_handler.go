package handlers

import (
	"net/http"
	"strings"

	"country-explorer/internal/countries"
	"country-explorer/internal/fetch"
	"country-explorer/internal/lookup"

	"github.com/gin-gonic/gin"
)

// UnknownRegionMessage is returned for a region outside countries.Regions.
const UnknownRegionMessage = "Unknown region"

// SearchRequest represents the query of a one-shot search
type SearchRequest struct {
	Query string `form:"q" binding:"required"`
}

// RegionRequest represents the path of a region search
type RegionRequest struct {
	Region string `uri:"region" binding:"required"`
}

// SearchCountry looks up a country by name
// GET /api/countries?q=france
func SearchCountry(source lookup.CountrySource) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SearchRequest
		if err := c.ShouldBindQuery(&req); err != nil || strings.TrimSpace(req.Query) == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Query parameter q is required",
			})
			return
		}
		runLookup(c, source, lookup.ByName, req.Query)
	}
}

// RandomCountry looks up a random country
// GET /api/countries/random
func RandomCountry(source lookup.CountrySource) gin.HandlerFunc {
	return func(c *gin.Context) {
		runLookup(c, source, lookup.Random, "")
	}
}

// RandomCountryInRegion looks up a random country of a region
// GET /api/regions/:region/random
func RandomCountryInRegion(source lookup.CountrySource) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegionRequest
		if err := c.ShouldBindUri(&req); err != nil || !countries.IsRegion(req.Region) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   UnknownRegionMessage,
				"regions": countries.Regions,
			})
			return
		}
		runLookup(c, source, lookup.ByRegion, strings.ToLower(req.Region))
	}
}

// runLookup runs one lookup to completion with its own controller and writes
// the collected result.
func runLookup(c *gin.Context, source lookup.CountrySource, kind lookup.Kind, payload string) {
	collector := &lookup.Collector{}
	controller := lookup.NewController(source, collector)
	controller.StartLookup(c.Request.Context(), kind, payload)

	result := collector.Result()
	if result.Error != "" {
		c.JSON(statusForMessage(result.Error), result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func statusForMessage(message string) int {
	switch message {
	case lookup.NotFoundMessage:
		return http.StatusNotFound
	case fetch.RateLimitMessage:
		return http.StatusTooManyRequests
	case lookup.NetworkMessage, lookup.RegionFailedMessage, lookup.RandomFailedMessage:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
