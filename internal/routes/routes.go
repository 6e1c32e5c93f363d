package routes

import (
	"net/http"

	"country-explorer/internal/cache"
	"country-explorer/internal/handlers"
	"country-explorer/internal/lookup"
	"country-explorer/internal/middleware"
	"country-explorer/internal/realtime"

	"github.com/gin-gonic/gin"
)

// Dependencies are the collaborators shared by the route handlers.
type Dependencies struct {
	Source        lookup.CountrySource
	Cache         *cache.ExpiringCache
	Hub           *realtime.Hub
	AllowedOrigin string
}

func SetupRoutes(deps Dependencies) *gin.Engine {
	if deps.Hub == nil {
		deps.Hub = realtime.GetHub()
	}

	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(middleware.CORS(deps.AllowedOrigin))

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"message":  "Country Explorer is running",
			"sessions": deps.Hub.Sessions(),
		})
	})

	// Public routes (no session required)
	api := ginRouter.Group("/api")
	{
		api.POST("/session", handlers.CreateSession)
		api.GET("/countries", handlers.SearchCountry(deps.Source))
		api.GET("/countries/random", handlers.RandomCountry(deps.Source))
		api.GET("/regions/:region/random", handlers.RandomCountryInRegion(deps.Source))
	}

	// Session routes (token required)
	sessionRoutes := api.Group("")
	sessionRoutes.Use(middleware.JWTAuthMiddleware())
	{
		sessionRoutes.DELETE("/cache/expired", handlers.PurgeExpiredCache(deps.Cache))
	}

	// Lookup session websocket (token in header or ?token=)
	ginRouter.GET("/ws", middleware.JWTAuthMiddleware(), handlers.WebSocketHandler(deps.Hub, deps.Source))

	return ginRouter
}
