package repositories

import (
	"context"

	"quillpad/app/models"
)

// PostRepository defines the interface for post data access.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	// List returns one page of posts ordered by creation time descending,
	// plus the total number of posts matching the filters.
	List(ctx context.Context, filters models.PostFilters) ([]*models.Post, int, error)
	Update(ctx context.Context, post *models.Post) error
	// SetLike atomically adds (liked=true) or removes (liked=false) user
	// from the post's like set and returns the updated record. Both
	// directions are idempotent.
	SetLike(ctx context.Context, id, user string, liked bool) (*models.Post, error)
	Delete(ctx context.Context, id string) error
}

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	// ListByPost returns all comments for a post ordered by creation time
	// descending.
	ListByPost(ctx context.Context, postID string) ([]*models.Comment, error)
	Delete(ctx context.Context, id string) error
	// DeleteByPost removes every comment attached to the post.
	DeleteByPost(ctx context.Context, postID string) error
}
