package repositories

import "errors"

var (
	// ErrUserNotFound is returned when no user matches the query.
	ErrUserNotFound = errors.New("user not found")
	// ErrBlogNotFound is returned when no blog matches the query.
	ErrBlogNotFound = errors.New("blog not found")
)
