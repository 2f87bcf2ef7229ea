package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog represents a blog post stored in MongoDB
type Blog struct {
	ID      primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Title   string               `json:"title" bson:"title"`
	Content string               `json:"content" bson:"content"`
	Image   string               `json:"image" bson:"image"`
	Date    string               `json:"date" bson:"date"` // display-formatted creation date, immutable
	Owner   primitive.ObjectID   `json:"owner" bson:"owner"`
	Likes   int                  `json:"likes" bson:"likes"`
	LikedBy []primitive.ObjectID `json:"likedBy" bson:"likedBy"`
}

// BlogWithOwner is a blog with its owner record populated for list responses.
// The outer Owner field shadows the raw ObjectID of the embedded Blog.
type BlogWithOwner struct {
	Blog
	Owner OwnerSummary `json:"owner"`
}

// BlogView is a blog enriched with flags relative to the requesting user.
// Both flags are computed per request and never persisted.
type BlogView struct {
	BlogWithOwner
	IsLiked bool `json:"isLiked"`
	IsOwner bool `json:"isOwner"`
}
