package domain

import "time"

// Post is a text entry owned by exactly one user. AuthorID and CreatedAt are
// set at creation and never change.
type Post struct {
	ID        int64
	Title     string
	Body      string
	AuthorID  int64
	CreatedAt time.Time
}

// PostWithAuthor pairs a post with its author's username for listing.
type PostWithAuthor struct {
	Post
	AuthorName string
}
