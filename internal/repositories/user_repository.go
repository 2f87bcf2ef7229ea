package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/blogspace/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	AddBlog(ctx context.Context, userID string, blogID primitive.ObjectID) error
	RemoveBlog(ctx context.Context, userID string, blogID primitive.ObjectID) error
	AddLikedBlog(ctx context.Context, userID string, blogID primitive.ObjectID) error
	RemoveLikedBlog(ctx context.Context, userID string, blogID primitive.ObjectID) error
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// CreateUser inserts a new user document
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	if user.Blogs == nil {
		user.Blogs = []primitive.ObjectID{}
	}
	if user.LikedBlogs == nil {
		user.LikedBlogs = []primitive.ObjectID{}
	}
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// GetUserByID retrieves a user by its ObjectID hex
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", err)
	}

	var user models.User
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (r *MongoUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByUsernameOrEmail retrieves a user matching either field. Used by signup
// to detect duplicates before inserting.
func (r *MongoUserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	filter := bson.M{"$or": []bson.M{
		{"username": username},
		{"email": email},
	}}

	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// AddBlog appends a blog id to the user's authored blogs
func (r *MongoUserRepository) AddBlog(ctx context.Context, userID string, blogID primitive.ObjectID) error {
	return r.updateByID(ctx, userID, bson.M{"$push": bson.M{"blogs": blogID}})
}

// RemoveBlog removes a blog id from the user's authored blogs
func (r *MongoUserRepository) RemoveBlog(ctx context.Context, userID string, blogID primitive.ObjectID) error {
	return r.updateByID(ctx, userID, bson.M{"$pull": bson.M{"blogs": blogID}})
}

// AddLikedBlog appends a blog id to the user's liked blogs
func (r *MongoUserRepository) AddLikedBlog(ctx context.Context, userID string, blogID primitive.ObjectID) error {
	return r.updateByID(ctx, userID, bson.M{"$push": bson.M{"likedBlogs": blogID}})
}

// RemoveLikedBlog removes a blog id from the user's liked blogs
func (r *MongoUserRepository) RemoveLikedBlog(ctx context.Context, userID string, blogID primitive.ObjectID) error {
	return r.updateByID(ctx, userID, bson.M{"$pull": bson.M{"likedBlogs": blogID}})
}

func (r *MongoUserRepository) updateByID(ctx context.Context, userID string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format: %w", err)
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
