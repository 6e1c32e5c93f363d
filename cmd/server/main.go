package main

import (
	"flag"
	"log"

	"country-explorer/internal/app"
	"country-explorer/internal/config"
	"country-explorer/internal/realtime"
	"country-explorer/internal/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the yaml configuration file")
	flag.Parse()

	cfg := &config.Config{}
	if err := cfg.Initialize(*configPath); err != nil {
		log.Printf("Using default configuration: %v", err)
	}
	if !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// Init cache store and country repository
	a, err := app.New(cfg)
	if err != nil {
		log.Fatal("Failed to initialize: ", err)
	}
	defer a.Close()
	a.PurgeExpired()

	// Setup the routes
	ginRoutes := routes.SetupRoutes(routes.Dependencies{
		Source:        a.Repository,
		Cache:         a.Cache,
		Hub:           realtime.GetHub(),
		AllowedOrigin: cfg.AllowedOrigin,
	})

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server starting on port %s", port)
	log.Println("API endpoints:")
	log.Println("  POST   /api/session")
	log.Println("  GET    /api/countries?q=")
	log.Println("  GET    /api/countries/random")
	log.Println("  GET    /api/regions/:region/random")
	log.Println("  DELETE /api/cache/expired")
	log.Println("  GET    /ws?token=&q=")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
