package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account stored in MongoDB. The password field holds a
// bcrypt hash and is never serialized to JSON.
type User struct {
	ID             primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Username       string               `json:"username" bson:"username"`
	Password       string               `json:"-" bson:"password"`
	Email          string               `json:"email" bson:"email"`
	Blogs          []primitive.ObjectID `json:"blogs" bson:"blogs"`
	LikedBlogs     []primitive.ObjectID `json:"likedBlogs" bson:"likedBlogs"`
	ProfilePicture string               `json:"profilePicture,omitempty" bson:"profilePicture,omitempty"`
}

// OwnerSummary is the public slice of a user embedded in blog responses.
type OwnerSummary struct {
	ID             primitive.ObjectID `json:"id"`
	Username       string             `json:"username"`
	Email          string             `json:"email"`
	ProfilePicture string             `json:"profilePicture,omitempty"`
}

// ToSummary converts a User to its embeddable public form
func (u *User) ToSummary() OwnerSummary {
	return OwnerSummary{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
	}
}

// SignupRequest defines the request body for user registration
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest defines the request body for user authentication
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
