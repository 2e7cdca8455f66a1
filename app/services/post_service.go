package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"quillpad/app/apperrors"
	"quillpad/app/models"
	"quillpad/app/repositories"
)

const (
	// DefaultPage and DefaultPerPage apply when the caller omits or
	// supplies non-positive pagination values.
	DefaultPage    = 1
	DefaultPerPage = 10
)

// Like actions accepted by SetLike.
const (
	ActionLike   = "like"
	ActionUnlike = "unlike"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	log         *slog.Logger
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, log *slog.Logger) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		log:         log,
	}
}

// CreatePost validates the input and persists a new post with an empty like
// set. The author is the verified caller identity.
func (s *PostService) CreatePost(ctx context.Context, input models.CreatePostInput) (*models.Post, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	post := &models.Post{
		Title:   input.Title,
		Content: input.Content,
		Author:  input.Author,
		Likes:   []string{},
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		s.log.Error("Failed to create post", slog.String("error", err.Error()))
		return nil, err
	}
	return post, nil
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts retrieves one page of posts ordered newest first, optionally
// filtered by author, together with the pagination envelope.
func (s *PostService) ListPosts(ctx context.Context, page, perPage int, author string) (*models.PostPage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	filters := models.PostFilters{
		Author: author,
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	}
	posts, total, err := s.postRepo.List(ctx, filters)
	if err != nil {
		s.log.Error("Failed to list posts", slog.String("error", err.Error()))
		return nil, err
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	totalPages := (total + perPage - 1) / perPage

	return &models.PostPage{
		Posts: posts,
		Pagination: models.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalPosts:  total,
			HasMore:     page < totalPages,
			HasPrevious: page > 1,
		},
	}, nil
}

// UpdatePost applies a partial edit. Omitted fields keep their prior
// values; callers other than the post's author are rejected.
func (s *PostService) UpdatePost(ctx context.Context, id string, input models.UpdatePostInput, caller string) (*models.Post, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.Author != caller {
		return nil, apperrors.ErrForbidden
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	post.UpdatedAt = time.Now().UTC()

	if err := s.postRepo.Update(ctx, post); err != nil {
		s.log.Error("Failed to update post", slog.String("id", id), slog.String("error", err.Error()))
		return nil, err
	}
	return post, nil
}

// SetLike adds or removes the caller from the post's like set. Both
// directions are idempotent; any identity may like any post.
func (s *PostService) SetLike(ctx context.Context, id, user, action string) (*models.Post, error) {
	var liked bool
	switch action {
	case ActionLike:
		liked = true
	case ActionUnlike:
		liked = false
	default:
		return nil, fmt.Errorf("%w: invalid action %q", apperrors.ErrInvalidInput, action)
	}

	post, err := s.postRepo.SetLike(ctx, id, user, liked)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost permanently removes a post and all of its comments. Callers
// other than the post's author are rejected.
func (s *PostService) DeletePost(ctx context.Context, id, caller string) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.Author != caller {
		return apperrors.ErrForbidden
	}

	if err := s.commentRepo.DeleteByPost(ctx, id); err != nil {
		s.log.Error("Failed to delete comments for post", slog.String("id", id), slog.String("error", err.Error()))
		return err
	}
	return s.postRepo.Delete(ctx, id)
}
