package repository

import "errors"

var (
	// ErrNotFound is returned when a record with the requested key does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateUsername is returned when an insert violates username uniqueness.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrEmptyTitle is returned when a post is created or updated with an empty title.
	ErrEmptyTitle = errors.New("post title is empty")
)
