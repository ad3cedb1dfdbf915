package repository

import (
	"context"

	"blogr/internal/domain"
)

// PostRepository defines persistence operations for Post entities.
type PostRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, post *domain.Post) (int64, error)
	// ListWithAuthors returns all posts joined with their author's username,
	// newest first.
	ListWithAuthors(ctx context.Context) ([]domain.PostWithAuthor, error)
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	Update(ctx context.Context, id int64, title, body string) error
	Delete(ctx context.Context, id int64) error
}
