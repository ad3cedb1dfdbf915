package service

import (
	"context"
	"errors"
	"strings"

	"blogr/internal/domain"
	"blogr/internal/repository"
)

var (
	// ErrTitleRequired indicates a post submitted without a title.
	ErrTitleRequired = errors.New("title is required")
	// ErrPostNotFound is returned when no post exists with the given id.
	ErrPostNotFound = errors.New("post not found")
	// ErrNotPostAuthor is returned when a user tries to mutate a post they do not own.
	ErrNotPostAuthor = errors.New("not the author of this post")
)

// PostService describes post lifecycle operations. Mutations take the acting
// user's id and enforce ownership on every call.
type PostService interface {
	Create(ctx context.Context, title, body string, authorID int64) (*domain.Post, error)
	List(ctx context.Context) ([]domain.PostWithAuthor, error)
	// GetForAuthor returns the post only if it exists and is owned by actorID.
	// Existence is checked before ownership, so a missing post is reported as
	// ErrPostNotFound regardless of who asks.
	GetForAuthor(ctx context.Context, id, actorID int64) (*domain.Post, error)
	Update(ctx context.Context, id, actorID int64, title, body string) error
	Delete(ctx context.Context, id, actorID int64) error
}

type postService struct {
	posts repository.PostRepository
}

func NewPostService(posts repository.PostRepository) PostService {
	return &postService{posts: posts}
}

func (s *postService) Create(ctx context.Context, title, body string, authorID int64) (*domain.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	post := &domain.Post{
		Title:    title,
		Body:     body,
		AuthorID: authorID,
	}
	if _, err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) List(ctx context.Context) ([]domain.PostWithAuthor, error) {
	return s.posts.ListWithAuthors(ctx)
}

func (s *postService) GetForAuthor(ctx context.Context, id, actorID int64) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, ErrNotPostAuthor
	}
	return post, nil
}

func (s *postService) Update(ctx context.Context, id, actorID int64, title, body string) error {
	if _, err := s.GetForAuthor(ctx, id, actorID); err != nil {
		return err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return ErrTitleRequired
	}

	if err := s.posts.Update(ctx, id, title, body); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

func (s *postService) Delete(ctx context.Context, id, actorID int64) error {
	if _, err := s.GetForAuthor(ctx, id, actorID); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}
