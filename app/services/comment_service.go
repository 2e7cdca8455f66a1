package services

import (
	"context"
	"fmt"
	"log/slog"

	"quillpad/app/apperrors"
	"quillpad/app/models"
	"quillpad/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	log         *slog.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, log *slog.Logger) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		log:         log,
	}
}

// ListPostComments retrieves all comments for a post, newest first. A post
// with no comments (or an unknown post id) yields an empty list.
func (s *CommentService) ListPostComments(ctx context.Context, postID string) ([]*models.Comment, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		s.log.Error("Failed to list comments", slog.String("post_id", postID), slog.String("error", err.Error()))
		return nil, err
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return comments, nil
}

// CreateComment validates the input and persists a new comment. The post id
// is deliberately not checked against the post collection.
func (s *CommentService) CreateComment(ctx context.Context, postID string, input models.CreateCommentInput) (*models.Comment, error) {
	if postID == "" {
		return nil, fmt.Errorf("%w: post id is required", apperrors.ErrInvalidInput)
	}
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	comment := &models.Comment{
		PostID:  postID,
		Author:  input.Author,
		Content: input.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		s.log.Error("Failed to create comment", slog.String("post_id", postID), slog.String("error", err.Error()))
		return nil, err
	}
	return comment, nil
}

// DeleteComment permanently removes a comment. Only the comment's author
// may delete it; post ownership grants no rights here.
func (s *CommentService) DeleteComment(ctx context.Context, id, caller string) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.Author != caller {
		return apperrors.ErrForbidden
	}

	return s.commentRepo.Delete(ctx, id)
}
