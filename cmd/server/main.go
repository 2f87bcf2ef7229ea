package main

import (
	"context"

	"github.com/anonto42/blogspace/backend/internal/router"
	"github.com/anonto42/blogspace/backend/internal/token"
	"github.com/anonto42/blogspace/backend/pkg/config"
	"github.com/anonto42/blogspace/backend/pkg/firebase"
	"github.com/anonto42/blogspace/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB() // Ensure database connection is closed when main exits

	// Initialize Firebase storage for blog images
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.FirebaseStorageBucket)
	if err != nil {
		logrus.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Token service
	tokens := token.NewService(cfg.JWTSecret, token.DefaultTTL)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Mongo, cfg.MongoDB, tokens, firebaseApp)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
