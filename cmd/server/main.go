package main

import (
	"context"
	"log"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/changestream"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/router"
	"github.com/ZamboVet/zambovet-v2-sub000/pkg/config"
	"github.com/ZamboVet/zambovet-v2-sub000/pkg/firebase"
	"github.com/ZamboVet/zambovet-v2-sub000/validators"
	"github.com/labstack/echo/v4"
	"github.com/nats-io/nats.go"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Connect to the change-stream broker
	nc, err := nats.Connect(cfg.NATSUrl)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer nc.Close()
	stream := changestream.NewNATSStream(nc)
	defer stream.Close()

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	if _, err := router.SetupRoutes(e, db.Postgres, stream, firebaseApp.AuthClient, cfg); err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
