package handlers

import (
	"context"
	"fmt"

	"github.com/anonto42/blogspace/backend/internal/models"
	"github.com/anonto42/blogspace/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes backing the handler tests.

type fakeUserRepo struct {
	users map[string]*models.User // keyed by ObjectID hex
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	if user.Blogs == nil {
		user.Blogs = []primitive.ObjectID{}
	}
	if user.LikedBlogs == nil {
		user.LikedBlogs = []primitive.ObjectID{}
	}
	r.users[user.ID.Hex()] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsernameOrEmail(_ context.Context, username, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) AddBlog(_ context.Context, userID string, blogID primitive.ObjectID) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Blogs = append(user.Blogs, blogID)
	return nil
}

func (r *fakeUserRepo) RemoveBlog(_ context.Context, userID string, blogID primitive.ObjectID) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Blogs = removeID(user.Blogs, blogID)
	return nil
}

func (r *fakeUserRepo) AddLikedBlog(_ context.Context, userID string, blogID primitive.ObjectID) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.LikedBlogs = append(user.LikedBlogs, blogID)
	return nil
}

func (r *fakeUserRepo) RemoveLikedBlog(_ context.Context, userID string, blogID primitive.ObjectID) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.LikedBlogs = removeID(user.LikedBlogs, blogID)
	return nil
}

type fakeBlogRepo struct {
	blogs map[string]*models.Blog
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{blogs: make(map[string]*models.Blog)}
}

func (r *fakeBlogRepo) CreateBlog(_ context.Context, blog *models.Blog) error {
	blog.ID = primitive.NewObjectID()
	if blog.LikedBy == nil {
		blog.LikedBy = []primitive.ObjectID{}
	}
	r.blogs[blog.ID.Hex()] = blog
	return nil
}

func (r *fakeBlogRepo) GetBlogByID(_ context.Context, id string) (*models.Blog, error) {
	blog, ok := r.blogs[id]
	if !ok {
		return nil, repositories.ErrBlogNotFound
	}
	return blog, nil
}

func (r *fakeBlogRepo) GetAllBlogs(_ context.Context) ([]models.Blog, error) {
	out := make([]models.Blog, 0, len(r.blogs))
	for _, blog := range r.blogs {
		out = append(out, *blog)
	}
	return out, nil
}

func (r *fakeBlogRepo) GetBlogsByOwner(_ context.Context, ownerID primitive.ObjectID) ([]models.Blog, error) {
	var out []models.Blog
	for _, blog := range r.blogs {
		if blog.Owner == ownerID {
			out = append(out, *blog)
		}
	}
	return out, nil
}

func (r *fakeBlogRepo) UpdateBlog(_ context.Context, id, title, content, image string) error {
	blog, ok := r.blogs[id]
	if !ok {
		return repositories.ErrBlogNotFound
	}
	blog.Title = title
	blog.Content = content
	if image != "" {
		blog.Image = image
	}
	return nil
}

func (r *fakeBlogRepo) DeleteBlog(_ context.Context, id string) error {
	if _, ok := r.blogs[id]; !ok {
		return repositories.ErrBlogNotFound
	}
	delete(r.blogs, id)
	return nil
}

func (r *fakeBlogRepo) ToggleLike(_ context.Context, id string, userID primitive.ObjectID) (bool, error) {
	blog, ok := r.blogs[id]
	if !ok {
		return false, repositories.ErrBlogNotFound
	}
	for _, liker := range blog.LikedBy {
		if liker == userID {
			blog.LikedBy = removeID(blog.LikedBy, userID)
			blog.Likes--
			return false, nil
		}
	}
	blog.LikedBy = append(blog.LikedBy, userID)
	blog.Likes++
	return true, nil
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}

type fakeUploader struct {
	uploads []string
}

func (u *fakeUploader) Upload(_ context.Context, objectName, _ string, _ []byte) (string, error) {
	u.uploads = append(u.uploads, objectName)
	return fmt.Sprintf("https://storage.example.com/%s", objectName), nil
}
