package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"quillpad/app/apperrors"
	"quillpad/app/metrics"
	"quillpad/app/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const commentColumns = "id, post_id, author, content, created_at, updated_at"

// CommentRepository implements repositories.CommentRepository on Postgres.
type CommentRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewCommentRepository(pool *pgxpool.Pool, log *slog.Logger) *CommentRepository {
	return &CommentRepository{pool: pool, log: log}
}

func scanComment(row pgx.Row) (*models.Comment, error) {
	var comment models.Comment
	err := row.Scan(
		&comment.ID,
		&comment.PostID,
		&comment.Author,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *CommentRepository) Create(ctx context.Context, comment *models.Comment) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery("comment_create", start, err) }()

	comment.ID = uuid.NewString()
	comment.BeforeCreate()

	args := pgx.NamedArgs{
		"id":         comment.ID,
		"post_id":    comment.PostID,
		"author":     comment.Author,
		"content":    comment.Content,
		"created_at": comment.CreatedAt,
		"updated_at": comment.UpdatedAt,
	}
	query := `
		INSERT INTO comments (id, post_id, author, content, created_at, updated_at)
		VALUES (@id, @post_id, @author, @content, @created_at, @updated_at)`

	if _, err = c.pool.Exec(ctx, query, args); err != nil {
		c.log.Error("Error creating comment", slog.String("error", err.Error()))
		return apperrors.ErrDatabase
	}
	return nil
}

func (c *CommentRepository) GetByID(ctx context.Context, id string) (_ *models.Comment, err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery("comment_get", start, err) }()

	args := pgx.NamedArgs{"id": id}
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = @id`

	comment, err := scanComment(c.pool.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		c.log.Error("Error getting comment by id", slog.String("id", id), slog.String("error", err.Error()))
		return nil, apperrors.ErrDatabase
	}
	return comment, nil
}

func (c *CommentRepository) ListByPost(ctx context.Context, postID string) (_ []*models.Comment, err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery("comment_list", start, err) }()

	args := pgx.NamedArgs{"post_id": postID}
	query := `SELECT ` + commentColumns + ` FROM comments WHERE post_id = @post_id ORDER BY created_at DESC, id DESC`

	rows, err := c.pool.Query(ctx, query, args)
	if err != nil {
		c.log.Error("Error listing comments", slog.String("post_id", postID), slog.String("error", err.Error()))
		return nil, apperrors.ErrDatabase
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			c.log.Error("Error scanning comment during ListByPost", slog.String("error", err.Error()))
			return nil, apperrors.ErrDatabase
		}
		comments = append(comments, comment)
	}
	if err = rows.Err(); err != nil {
		c.log.Error("Error iterating rows during ListByPost", slog.String("error", err.Error()))
		return nil, apperrors.ErrDatabase
	}

	return comments, nil
}

func (c *CommentRepository) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery("comment_delete", start, err) }()

	args := pgx.NamedArgs{"id": id}
	result, err := c.pool.Exec(ctx, `DELETE FROM comments WHERE id = @id`, args)
	if err != nil {
		c.log.Error("Error deleting comment", slog.String("id", id), slog.String("error", err.Error()))
		return apperrors.ErrDatabase
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (c *CommentRepository) DeleteByPost(ctx context.Context, postID string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery("comment_delete_by_post", start, err) }()

	args := pgx.NamedArgs{"post_id": postID}
	if _, err = c.pool.Exec(ctx, `DELETE FROM comments WHERE post_id = @post_id`, args); err != nil {
		c.log.Error("Error deleting comments by post", slog.String("post_id", postID), slog.String("error", err.Error()))
		return apperrors.ErrDatabase
	}
	return nil
}
