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

const postColumns = "id, title, content, author, likes, created_at, updated_at"

// PostRepository implements repositories.PostRepository on Postgres.
type PostRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewPostRepository(pool *pgxpool.Pool, log *slog.Logger) *PostRepository {
	return &PostRepository{pool: pool, log: log}
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Author,
		&post.Likes,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if post.Likes == nil {
		post.Likes = []string{}
	}
	return &post, nil
}

func (p *PostRepository) Create(ctx context.Context, post *models.Post) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery("post_create", start, err) }()

	post.ID = uuid.NewString()
	post.BeforeCreate()

	args := pgx.NamedArgs{
		"id":         post.ID,
		"title":      post.Title,
		"content":    post.Content,
		"author":     post.Author,
		"likes":      post.Likes,
		"created_at": post.CreatedAt,
		"updated_at": post.UpdatedAt,
	}

	query := `
		INSERT INTO posts (id, title, content, author, likes, created_at, updated_at)
		VALUES (@id, @title, @content, @author, @likes, @created_at, @updated_at)`

	if _, err = p.pool.Exec(ctx, query, args); err != nil {
		p.log.Error("Error creating post", slog.String("error", err.Error()))
		return apperrors.ErrDatabase
	}
	return nil
}

func (p *PostRepository) GetByID(ctx context.Context, id string) (_ *models.Post, err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery("post_get", start, err) }()

	args := pgx.NamedArgs{"id": id}
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = @id`

	post, err := scanPost(p.pool.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		p.log.Error("Error getting post by id", slog.String("id", id), slog.String("error", err.Error()))
		return nil, apperrors.ErrDatabase
	}
	return post, nil
}

func (p *PostRepository) List(ctx context.Context, filters models.PostFilters) (_ []*models.Post, _ int, err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery("post_list", start, err) }()

	args := pgx.NamedArgs{}
	where := ""
	if filters.Author != "" {
		where = " WHERE author = @author"
		args["author"] = filters.Author
	}

	var total int
	if err = p.pool.QueryRow(ctx, "SELECT count(*) FROM posts"+where, args).Scan(&total); err != nil {
		p.log.Error("Error counting posts", slog.String("error", err.Error()))
		return nil, 0, apperrors.ErrDatabase
	}

	query := `SELECT ` + postColumns + ` FROM posts` + where + ` ORDER BY created_at DESC, id DESC`
	if filters.Limit > 0 {
		query += " LIMIT @limit"
		args["limit"] = filters.Limit
	}
	if filters.Offset > 0 {
		query += " OFFSET @offset"
		args["offset"] = filters.Offset
	}

	rows, err := p.pool.Query(ctx, query, args)
	if err != nil {
		p.log.Error("Error listing posts", slog.String("error", err.Error()))
		return nil, 0, apperrors.ErrDatabase
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			p.log.Error("Error scanning post during List", slog.String("error", err.Error()))
			return nil, 0, apperrors.ErrDatabase
		}
		posts = append(posts, post)
	}
	if err = rows.Err(); err != nil {
		p.log.Error("Error iterating rows during List", slog.String("error", err.Error()))
		return nil, 0, apperrors.ErrDatabase
	}

	return posts, total, nil
}

// Update persists the editable fields (title, content, updated_at). Author,
// creation time and likes are never written here.
func (p *PostRepository) Update(ctx context.Context, post *models.Post) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery("post_update", start, err) }()

	args := pgx.NamedArgs{
		"id":         post.ID,
		"title":      post.Title,
		"content":    post.Content,
		"updated_at": post.UpdatedAt,
	}
	query := `UPDATE posts SET title = @title, content = @content, updated_at = @updated_at WHERE id = @id`

	result, err := p.pool.Exec(ctx, query, args)
	if err != nil {
		p.log.Error("Error updating post", slog.String("id", post.ID), slog.String("error", err.Error()))
		return apperrors.ErrDatabase
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetLike toggles the like set in one conditional UPDATE, so concurrent
// toggles on the same row serialize on the row lock.
func (p *PostRepository) SetLike(ctx context.Context, id, user string, liked bool) (_ *models.Post, err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery("post_set_like", start, err) }()

	args := pgx.NamedArgs{
		"id":         id,
		"user":       user,
		"liked":      liked,
		"updated_at": time.Now().UTC(),
	}
	query := `
		UPDATE posts
		SET likes = CASE
				WHEN @liked AND NOT (@user = ANY(likes)) THEN array_append(likes, @user)
				WHEN NOT @liked THEN array_remove(likes, @user)
				ELSE likes
			END,
			updated_at = @updated_at
		WHERE id = @id
		RETURNING ` + postColumns

	post, err := scanPost(p.pool.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		p.log.Error("Error updating likes", slog.String("id", id), slog.String("error", err.Error()))
		return nil, apperrors.ErrDatabase
	}
	return post, nil
}

func (p *PostRepository) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery("post_delete", start, err) }()

	args := pgx.NamedArgs{"id": id}
	result, err := p.pool.Exec(ctx, `DELETE FROM posts WHERE id = @id`, args)
	if err != nil {
		p.log.Error("Error deleting post", slog.String("id", id), slog.String("error", err.Error()))
		return apperrors.ErrDatabase
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
