package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/blogspace/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// BlogRepository defines the interface for blog data operations
type BlogRepository interface {
	CreateBlog(ctx context.Context, blog *models.Blog) error
	GetBlogByID(ctx context.Context, id string) (*models.Blog, error)
	GetAllBlogs(ctx context.Context) ([]models.Blog, error)
	GetBlogsByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Blog, error)
	UpdateBlog(ctx context.Context, id, title, content, image string) error
	DeleteBlog(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id string, userID primitive.ObjectID) (bool, error)
}

// MongoBlogRepository implements BlogRepository for MongoDB
type MongoBlogRepository struct {
	collection *mongo.Collection
}

// NewMongoBlogRepository creates a new MongoBlogRepository
func NewMongoBlogRepository(db *mongo.Database) *MongoBlogRepository {
	return &MongoBlogRepository{collection: db.Collection("blogs")}
}

// CreateBlog inserts a new blog document
func (r *MongoBlogRepository) CreateBlog(ctx context.Context, blog *models.Blog) error {
	blog.ID = primitive.NewObjectID()
	if blog.LikedBy == nil {
		blog.LikedBy = []primitive.ObjectID{}
	}
	_, err := r.collection.InsertOne(ctx, blog)
	return err
}

// GetBlogByID retrieves a blog by its ObjectID hex
func (r *MongoBlogRepository) GetBlogByID(ctx context.Context, id string) (*models.Blog, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid blog ID format: %w", err)
	}

	var blog models.Blog
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&blog)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return &blog, nil
}

// GetAllBlogs retrieves every blog. No pagination: the client renders the full
// list on its home page.
func (r *MongoBlogRepository) GetAllBlogs(ctx context.Context) ([]models.Blog, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var blogs []models.Blog
	if err = cursor.All(ctx, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// GetBlogsByOwner retrieves the blogs authored by a specific user
func (r *MongoBlogRepository) GetBlogsByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Blog, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"owner": ownerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var blogs []models.Blog
	if err = cursor.All(ctx, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// UpdateBlog overwrites title and content, and the image only when a new one
// was uploaded. Owner and date are fixed at creation and never touched.
func (r *MongoBlogRepository) UpdateBlog(ctx context.Context, id, title, content, image string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid blog ID format: %w", err)
	}

	fields := bson.M{
		"title":   title,
		"content": content,
	}
	if image != "" {
		fields["image"] = image
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrBlogNotFound
	}
	return nil
}

// DeleteBlog deletes a blog by ID
func (r *MongoBlogRepository) DeleteBlog(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid blog ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrBlogNotFound
	}
	return nil
}

// ToggleLike flips the user's like on a blog and reports the resulting state
// (true = now liked). Each direction is a single conditional UpdateOne whose
// filter tests likedBy membership, so the membership change and the counter
// delta land atomically and likes can never drift from len(likedBy), even
// under concurrent togglers.
func (r *MongoBlogRepository) ToggleLike(ctx context.Context, id string, userID primitive.ObjectID) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("invalid blog ID format: %w", err)
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "likedBy": bson.M{"$ne": userID}},
		bson.M{"$push": bson.M{"likedBy": userID}, "$inc": bson.M{"likes": 1}},
	)
	if err != nil {
		return false, err
	}
	if res.ModifiedCount == 1 {
		return true, nil
	}

	// No match above means the user already liked it (or the blog is gone).
	res, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "likedBy": userID},
		bson.M{"$pull": bson.M{"likedBy": userID}, "$inc": bson.M{"likes": -1}},
	)
	if err != nil {
		return false, err
	}
	if res.ModifiedCount == 0 {
		return false, ErrBlogNotFound
	}
	return false, nil
}
