package main

import (
	"context"
	"log"
	"net/http"

	"github.com/rs/cors"

	"github.com/PedroAugusto-sys/bigdata/internal/config"
	"github.com/PedroAugusto-sys/bigdata/internal/database"
	"github.com/PedroAugusto-sys/bigdata/internal/routes"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Connect to MongoDB
	client, err := database.ConnectMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Fatal("Failed to disconnect from MongoDB:", err)
		}
	}()

	// Initialize router
	router := routes.SetupRouter(client, cfg.DatabaseName)

	// Setup CORS middleware; the dashboard client may run anywhere
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	// Wrap router with CORS
	handler := c.Handler(router)

	// Start server
	log.Printf("Server running on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
