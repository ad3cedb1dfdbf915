package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blogr/internal/domain"
	"blogr/internal/repository"
)

const createPostTable = `
CREATE TABLE IF NOT EXISTS post (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	body TEXT NOT NULL DEFAULT '',
	author_id INTEGER NOT NULL REFERENCES user (id),
	created_at DATETIME NOT NULL
);
`

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) repository.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPostTable); err != nil {
		return fmt.Errorf("create post table: %w", err)
	}
	return nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (int64, error) {
	if post.Title == "" {
		return 0, repository.ErrEmptyTitle
	}
	post.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO post (title, body, author_id, created_at)
VALUES (?, ?, ?, ?)`,
		post.Title,
		post.Body,
		post.AuthorID,
		post.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("post last insert id: %w", err)
	}
	post.ID = id
	return id, nil
}

func (r *PostRepository) ListWithAuthors(ctx context.Context) ([]domain.PostWithAuthor, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT p.id, p.title, p.body, p.author_id, p.created_at, u.username
FROM post p
JOIN user u ON p.author_id = u.id
ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.PostWithAuthor
	for rows.Next() {
		var p domain.PostWithAuthor
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Body,
			&p.AuthorID,
			&p.CreatedAt,
			&p.AuthorName,
		); err != nil {
			return nil, fmt.Errorf("scan post row: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate post rows: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, body, author_id, created_at
FROM post
WHERE id = ?`,
		id,
	)

	var post domain.Post
	if err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Body,
		&post.AuthorID,
		&post.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) Update(ctx context.Context, id int64, title, body string) error {
	if title == "" {
		return repository.ErrEmptyTitle
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE post
SET title=?, body=?
WHERE id=?`,
		title,
		body,
		id,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("post update rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM post WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("post delete rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}
	return nil
}
