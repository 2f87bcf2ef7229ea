package router

import (
	"net/http"

	"github.com/anonto42/blogspace/backend/internal/handlers"
	"github.com/anonto42/blogspace/backend/internal/middleware"
	"github.com/anonto42/blogspace/backend/internal/repositories"
	"github.com/anonto42/blogspace/backend/internal/token"
	"github.com/anonto42/blogspace/backend/pkg/firebase"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	logrus.Info("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, mgClient *mongo.Client, dbName string, tokens *token.Service, uploader firebase.Uploader) {
	db := mgClient.Database(dbName)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello World!")
	})

	// --- Initialize Repositories ---
	userRepo := repositories.NewMongoUserRepository(db)
	blogRepo := repositories.NewMongoBlogRepository(db)

	authMiddleware := middleware.JWTAuthMiddleware(tokens)

	// --- Auth routes ---
	authHandler := handlers.NewAuthHandler(userRepo, tokens)
	authHandler.RegisterAuthRoutes(e.Group("/auth"), authMiddleware)
	logrus.Info("Auth routes configured.")

	// --- Blog routes ---
	blogHandler := handlers.NewBlogHandler(blogRepo, userRepo, uploader)
	blogHandler.RegisterBlogRoutes(e.Group("/blog"), authMiddleware)
	logrus.Info("Blog routes configured.")

	logrus.Info("All routes configured.")
}
