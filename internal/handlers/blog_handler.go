package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/anonto42/blogspace/backend/internal/middleware"
	"github.com/anonto42/blogspace/backend/internal/models"
	"github.com/anonto42/blogspace/backend/internal/repositories"
	"github.com/anonto42/blogspace/backend/pkg/firebase"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlogHandler handles HTTP requests related to blogs.
//
// As with auth, the error surface matches the legacy API: failures answer 202
// with a {message} body so the existing web client keeps working.
type BlogHandler struct {
	blogRepository repositories.BlogRepository
	userRepository repositories.UserRepository
	uploader       firebase.Uploader
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(blogRepo repositories.BlogRepository, userRepo repositories.UserRepository, uploader firebase.Uploader) *BlogHandler {
	return &BlogHandler{
		blogRepository: blogRepo,
		userRepository: userRepo,
		uploader:       uploader,
	}
}

// RegisterBlogRoutes registers blog-related routes. Listing is public; every
// other route sits behind the auth middleware.
func (h *BlogHandler) RegisterBlogRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/get-blogs", h.GetBlogs)
	g.GET("/get-blog/:id", h.GetBlog, auth)
	g.GET("/get-my-blogs", h.GetMyBlogs, auth)
	g.POST("/create-blog", h.CreateBlog, auth)
	g.PUT("/update-blog/:id", h.UpdateBlog, auth)
	g.DELETE("/delete-blog/:id", h.DeleteBlog, auth)
	g.PUT("/like-blog/:id", h.LikeBlog, auth)
}

// GetBlogs returns every blog with its owner populated
func (h *BlogHandler) GetBlogs(c echo.Context) error {
	blogs, err := h.blogRepository.GetAllBlogs(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusAccepted, echo.Map{"message": err.Error()})
	}

	// Fetch each distinct owner once and join in memory.
	owners := make(map[string]models.OwnerSummary)
	for _, b := range blogs {
		ownerID := b.Owner.Hex()
		if _, ok := owners[ownerID]; ok {
			continue
		}
		user, err := h.userRepository.GetUserByID(c.Request().Context(), ownerID)
		if err == nil {
			owners[ownerID] = user.ToSummary()
		}
	}

	out := make([]models.BlogWithOwner, len(blogs))
	for i, b := range blogs {
		out[i] = models.BlogWithOwner{Blog: b, Owner: owners[b.Owner.Hex()]}
	}

	return c.JSON(http.StatusOK, out)
}

// GetBlog returns a single blog with its owner populated plus the isLiked and
// isOwner flags relative to the requesting user
func (h *BlogHandler) GetBlog(c echo.Context) error {
	userID := c.Get(middleware.ContextUserID).(string)

	blog, err := h.blogRepository.GetBlogByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrBlogNotFound) {
			return c.JSON(http.StatusAccepted, echo.Map{"message": "Blog not found"})
		}
		return c.JSON(http.StatusAccepted, echo.Map{"message": err.Error()})
	}

	view := models.BlogView{
		BlogWithOwner: models.BlogWithOwner{Blog: *blog},
		IsOwner:       blog.Owner.Hex() == userID,
	}
	for _, liker := range blog.LikedBy {
		if liker.Hex() == userID {
			view.IsLiked = true
			break
		}
	}

	if owner, err := h.userRepository.GetUserByID(c.Request().Context(), blog.Owner.Hex()); err == nil {
		view.Owner = owner.ToSummary()
	}

	return c.JSON(http.StatusOK, view)
}

// GetMyBlogs returns the blogs authored by the requesting user
func (h *BlogHandler) GetMyBlogs(c echo.Context) error {
	userID := c.Get(middleware.ContextUserID).(string)

	ownerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusAccepted, echo.Map{"message": "Invalid user ID"})
	}

	blogs, err := h.blogRepository.GetBlogsByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(http.StatusAccepted, echo.Map{"message": err.Error()})
	}

	return c.JSON(http.StatusOK, blogs)
}

// CreateBlog stores the uploaded image in the blob store and persists a new
// blog owned by the requesting user
func (h *BlogHandler) CreateBlog(c echo.Context) error {
	userID := c.Get(middleware.ContextUserID).(string)

	ownerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusAccepted, echo.Map{"message": "Invalid user ID"})
	}

	title := c.FormValue("title")
	content := c.FormValue("content")
	if title == "" || content == "" {
		return c.JSON(http.StatusAccepted, echo.Map{"message": "Title and content are required"})
	}

	imageURL, err := h.uploadImage(c)
	if err != nil {
		return c.JSON(http.StatusAccepted, echo.Map{"message": err.Error()})
	}
	if imageURL == "" {
		return c.JSON(http.StatusAccepted, echo.Map{"message": "Image is required"})
	}

	blog := &models.Blog{
		Title:   title,
		Content: content,
		Image:   imageURL,
		Date:    time.Now().Format("Jan 2, 2006"),
		Owner:   ownerID,
	}
	// If this insert fails the uploaded image is orphaned in the bucket;
	// accepted limitation, there is no cleanup.
	if err := h.blogRepository.CreateBlog(c.Request().Context(), blog); err != nil {
		return c.JSON(http.StatusAccepted, echo.Map{"message": err.Error()})
	}

	if err := h.userRepository.AddBlog(c.Request().Context(), userID, blog.ID); err != nil {
		return c.JSON(http.StatusAccepted, echo.Map{"message": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Blog posted successfully"})
}

// UpdateBlog overwrites a blog's title and content, and its image when a new
// file was uploaded. Only the owner may update.
func (h *BlogHandler) UpdateBlog(c echo.Context) error {
	userID := c.Get(middleware.ContextUserID).(string)
	blogID := c.Param("id")

	blog, err := h.blogRepository.GetBlogByID(c.Request().Context(), blogID)
	if err != nil {
		if errors.Is(err, repositories.ErrBlogNotFound) {
			return c.JSON(http.StatusAccepted, echo.Map{"message": "Blog not found"})
		}
		return c.JSON(http.StatusAccepted, echo.Map{"message": err.Error()})
	}
	if blog.Owner.Hex() != userID {
		return c.JSON(http.StatusAccepted, echo.Map{"message": "You are not the owner of this blog"})
	}

	title := c.FormValue("title")
	content := c.FormValue("content")
	if title == "" || content == "" {
		return c.JSON(http.StatusAccepted, echo.Map{"message": "Title and content are required"})
	}

	imageURL, err := h.uploadImage(c)
	if err != nil {
		return c.JSON(http.StatusAccepted, echo.Map{"message": err.Error()})
	}

	if err := h.blogRepository.UpdateBlog(c.Request().Context(), blogID, title, content, imageURL); err != nil {
		return c.JSON(http.StatusAccepted, echo.Map{"message": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Blog updated successfully"})
}

// DeleteBlog removes a blog and its reference from the owner's blog list.
// Only the owner may delete.
func (h *BlogHandler) DeleteBlog(c echo.Context) error {
	userID := c.Get(middleware.ContextUserID).(string)
	blogID := c.Param("id")

	blog, err := h.blogRepository.GetBlogByID(c.Request().Context(), blogID)
	if err != nil {
		if errors.Is(err, repositories.ErrBlogNotFound) {
			return c.JSON(http.StatusAccepted, echo.Map{"message": "Blog not found"})
		}
		return c.JSON(http.StatusAccepted, echo.Map{"message": err.Error()})
	}
	if blog.Owner.Hex() != userID {
		return c.JSON(http.StatusAccepted, echo.Map{"message": "You are not the owner of this blog"})
	}

	if err := h.userRepository.RemoveBlog(c.Request().Context(), userID, blog.ID); err != nil {
		return c.JSON(http.StatusAccepted, echo.Map{"message": err.Error()})
	}
	if err := h.blogRepository.DeleteBlog(c.Request().Context(), blogID); err != nil {
		return c.JSON(http.StatusAccepted, echo.Map{"message": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Blog deleted successfully"})
}

// LikeBlog toggles the requesting user's like on a blog. The direction is
// decided solely by current likedBy membership, not by the request.
func (h *BlogHandler) LikeBlog(c echo.Context) error {
	userID := c.Get(middleware.ContextUserID).(string)
	blogID := c.Param("id")

	likerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusAccepted, echo.Map{"message": "Invalid user ID"})
	}

	liked, err := h.blogRepository.ToggleLike(c.Request().Context(), blogID, likerID)
	if err != nil {
		if errors.Is(err, repositories.ErrBlogNotFound) {
			return c.JSON(http.StatusAccepted, echo.Map{"message": "Blog not found"})
		}
		return c.JSON(http.StatusAccepted, echo.Map{"message": err.Error()})
	}

	blogOID, err := primitive.ObjectIDFromHex(blogID)
	if err != nil {
		return c.JSON(http.StatusAccepted, echo.Map{"message": "Invalid blog ID"})
	}

	if liked {
		if err := h.userRepository.AddLikedBlog(c.Request().Context(), userID, blogOID); err != nil {
			return c.JSON(http.StatusAccepted, echo.Map{"message": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "The blog has been liked"})
	}

	if err := h.userRepository.RemoveLikedBlog(c.Request().Context(), userID, blogOID); err != nil {
		return c.JSON(http.StatusAccepted, echo.Map{"message": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "The blog has been disliked"})
}

// uploadImage reads the multipart "image" field and stores it in the blob
// store. Returns ("", nil) when no file was sent.
func (h *BlogHandler) uploadImage(c echo.Context) (string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded image: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded image: %w", err)
	}

	objectName := fmt.Sprintf("blogImages/%d-%s", time.Now().UnixMilli(), fileHeader.Filename)
	return h.uploader.Upload(c.Request().Context(), objectName, fileHeader.Header.Get("Content-Type"), data)
}
