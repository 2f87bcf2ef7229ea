// Package client is a typed Go client for the blogspace HTTP API. It covers
// the same surface the web client's service layer does: auth, blog CRUD and
// the like toggle.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/anonto42/blogspace/backend/internal/models"
)

// AuthResponse is the body returned by signup and login
type AuthResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// MessageResponse is the plain {message} envelope most endpoints answer with
type MessageResponse struct {
	Message string `json:"message"`
}

// Client talks to a blogspace server. After a successful Signup or Login it
// holds the session token and sends it raw in the Authorization header, the
// way the web client does.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates a Client for the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
	}
}

// SetToken installs a previously obtained session token
func (c *Client) SetToken(token string) { c.token = token }

// Token returns the current session token
func (c *Client) Token() string { return c.token }

// Signup registers a new user and keeps the returned token
func (c *Client) Signup(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var out AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/signup", body, &out); err != nil {
		return nil, err
	}
	if out.Token != "" {
		c.token = out.Token
	}
	return &out, nil
}

// Login authenticates and keeps the returned token
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	body := map[string]string{"username": username, "password": password}
	var out AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	if out.Token != "" {
		c.token = out.Token
	}
	return &out, nil
}

// ProfilePicture returns the authenticated user's profile picture URL
func (c *Client) ProfilePicture(ctx context.Context) (string, error) {
	var out struct {
		Image   string `json:"image"`
		Message string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/auth/profilePicture", nil, &out); err != nil {
		return "", err
	}
	if out.Message != "" {
		return "", fmt.Errorf("profile picture: %s", out.Message)
	}
	return out.Image, nil
}

// GetBlogs fetches every blog with populated owners
func (c *Client) GetBlogs(ctx context.Context) ([]models.BlogWithOwner, error) {
	var out []models.BlogWithOwner
	if err := c.doJSON(ctx, http.MethodGet, "/blog/get-blogs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBlog fetches one blog with the caller-relative isLiked/isOwner flags
func (c *Client) GetBlog(ctx context.Context, id string) (*models.BlogView, error) {
	var out models.BlogView
	if err := c.doJSON(ctx, http.MethodGet, "/blog/get-blog/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMyBlogs fetches the caller's own blogs
func (c *Client) GetMyBlogs(ctx context.Context) ([]models.Blog, error) {
	var out []models.Blog
	if err := c.doJSON(ctx, http.MethodGet, "/blog/get-my-blogs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateBlog posts a new blog as multipart form data
func (c *Client) CreateBlog(ctx context.Context, title, content, imageName string, image []byte) (*MessageResponse, error) {
	return c.doMultipart(ctx, http.MethodPost, "/blog/create-blog", title, content, imageName, image)
}

// UpdateBlog updates a blog; pass a nil image to keep the current one
func (c *Client) UpdateBlog(ctx context.Context, id, title, content, imageName string, image []byte) (*MessageResponse, error) {
	return c.doMultipart(ctx, http.MethodPut, "/blog/update-blog/"+id, title, content, imageName, image)
}

// DeleteBlog deletes a blog
func (c *Client) DeleteBlog(ctx context.Context, id string) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.doJSON(ctx, http.MethodDelete, "/blog/delete-blog/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LikeBlog toggles the caller's like on a blog
func (c *Client) LikeBlog(ctx context.Context, id string) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.doJSON(ctx, http.MethodPut, "/blog/like-blog/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) doMultipart(ctx context.Context, method, path, title, content, imageName string, image []byte) (*MessageResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("title", title); err != nil {
		return nil, err
	}
	if err := w.WriteField("content", content); err != nil {
		return nil, err
	}
	if image != nil {
		part, err := w.CreateFormFile("image", imageName)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(image); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out MessageResponse
	if err := c.send(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) send(req *http.Request, out interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized {
		var msg MessageResponse
		_ = json.NewDecoder(res.Body).Decode(&msg)
		return fmt.Errorf("unauthorized: %s", msg.Message)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
