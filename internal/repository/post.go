package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/micropost/micropost-go/internal/model"
)

// ErrPostNotFound covers both a truly absent post and one owned by a
// different user. Callers cannot tell the two apart.
var ErrPostNotFound = errors.New("post not found")

// PostRepository handles post persistence operations. Every read and write is
// keyed by (post id, owner id), so one user can never reach another's posts.
type PostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a new post and sets the generated ID on the post struct.
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	query := `INSERT INTO posts (user_id, text) VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, post.UserID, post.Text)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	post.ID = id
	return nil
}

// ListByOwner retrieves all posts owned by the given user.
func (r *PostRepository) ListByOwner(ctx context.Context, userID int64) ([]model.Post, error) {
	query := `SELECT id, user_id, text, created_at FROM posts WHERE user_id = ?`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Text, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

// GetByID retrieves a post by id, scoped to the owning user.
func (r *PostRepository) GetByID(ctx context.Context, userID, postID int64) (*model.Post, error) {
	query := `SELECT id, user_id, text, created_at FROM posts WHERE id = ? AND user_id = ?`

	post := &model.Post{}
	err := r.db.QueryRowContext(ctx, query, postID, userID).Scan(
		&post.ID, &post.UserID, &post.Text, &post.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return post, nil
}

// UpdateText replaces the text of a post, scoped to the owning user, and
// returns the updated record.
func (r *PostRepository) UpdateText(ctx context.Context, userID, postID int64, text string) (*model.Post, error) {
	query := `UPDATE posts SET text = ? WHERE id = ? AND user_id = ?`

	if _, err := r.db.ExecContext(ctx, query, text, postID, userID); err != nil {
		return nil, err
	}

	// MySQL reports zero affected rows when the new text equals the old one,
	// so the follow-up read decides between success and ErrPostNotFound.
	return r.GetByID(ctx, userID, postID)
}

// Delete removes a post, scoped to the owning user, and returns the record
// as it was just before deletion.
func (r *PostRepository) Delete(ctx context.Context, userID, postID int64) (*model.Post, error) {
	post, err := r.GetByID(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	query := `DELETE FROM posts WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrPostNotFound
	}

	return post, nil
}
