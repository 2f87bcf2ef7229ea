package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/blogspace/backend/internal/middleware"
	"github.com/anonto42/blogspace/backend/internal/models"
	"github.com/anonto42/blogspace/backend/internal/repositories"
	"github.com/anonto42/blogspace/backend/internal/token"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles signup, login and profile picture lookup.
//
// Response codes mirror the legacy API the web client was built against:
// validation and auth failures answer 201 with a {message} body, success 200.
type AuthHandler struct {
	userRepository repositories.UserRepository
	tokens         *token.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, tokens *token.Service) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		tokens:         tokens,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
	g.GET("/profilePicture", h.ProfilePicture, auth)
}

// Signup registers a new user and returns a token for the fresh session
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Username takes priority over email when both collide.
	dupe, err := h.userRepository.FindByUsernameOrEmail(c.Request().Context(), req.Username, req.Email)
	if err == nil {
		if dupe.Username == req.Username {
			return c.JSON(http.StatusCreated, echo.Map{"message": "Username already exists"})
		}
		return c.JSON(http.StatusCreated, echo.Map{"message": "Email already exists"})
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username: req.Username,
		Password: string(hashedPassword),
		Email:    req.Email,
	}
	if err := h.userRepository.CreateUser(c.Request().Context(), user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	tok, err := h.tokens.Issue(user.ID.Hex())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token after signup")
	}

	return c.JSON(http.StatusOK, echo.Map{"token": tok, "message": "You are now signed up!"})
}

// Login authenticates a user by username and password
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByUsername(c.Request().Context(), req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return c.JSON(http.StatusCreated, echo.Map{"message": "User not found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusCreated, echo.Map{"message": "Invalid password"})
	}

	tok, err := h.tokens.Issue(user.ID.Hex())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{"token": tok, "message": "You are now logged in!"})
}

// ProfilePicture returns the authenticated user's profile picture URL
func (h *AuthHandler) ProfilePicture(c echo.Context) error {
	userID := c.Get(middleware.ContextUserID).(string)

	user, err := h.userRepository.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusCreated, echo.Map{"message": "User not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"image": user.ProfilePicture})
}
