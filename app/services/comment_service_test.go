package services

import (
	"context"
	"testing"

	"quillpad/app/apperrors"
	"quillpad/app/models"
	"quillpad/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommentService() *CommentService {
	return NewCommentService(mock.NewCommentRepository(), testLogger())
}

func TestCreateCommentThenList(t *testing.T) {
	service := newTestCommentService()
	ctx := context.Background()

	comment, err := service.CreateComment(ctx, "post-1", models.CreateCommentInput{
		Content: "nice one",
		Author:  "u2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, comment.ID)
	assert.Equal(t, "post-1", comment.PostID)
	assert.False(t, comment.CreatedAt.IsZero())

	comments, err := service.ListPostComments(ctx, "post-1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice one", comments[0].Content)
	assert.Equal(t, "u2", comments[0].Author)
}

func TestCreateCommentValidation(t *testing.T) {
	service := newTestCommentService()
	ctx := context.Background()

	tests := []struct {
		name   string
		postID string
		input  models.CreateCommentInput
	}{
		{"missing post id", "", models.CreateCommentInput{Content: "hi", Author: "u2"}},
		{"missing content", "post-1", models.CreateCommentInput{Author: "u2"}},
		{"missing author", "post-1", models.CreateCommentInput{Content: "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateComment(ctx, tt.postID, tt.input)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestCreateCommentDoesNotCheckPost(t *testing.T) {
	service := newTestCommentService()

	// Comments attach to whatever post id the route names, even one that
	// was never created.
	comment, err := service.CreateComment(context.Background(), "never-created", models.CreateCommentInput{
		Content: "orphan",
		Author:  "u2",
	})
	require.NoError(t, err)
	assert.Equal(t, "never-created", comment.PostID)
}

func TestListPostCommentsEmpty(t *testing.T) {
	service := newTestCommentService()

	comments, err := service.ListPostComments(context.Background(), "post-1")
	require.NoError(t, err)
	assert.Equal(t, []*models.Comment{}, comments)
}

func TestListPostCommentsScoped(t *testing.T) {
	service := newTestCommentService()
	ctx := context.Background()

	_, err := service.CreateComment(ctx, "post-1", models.CreateCommentInput{Content: "a", Author: "u1"})
	require.NoError(t, err)
	_, err = service.CreateComment(ctx, "post-2", models.CreateCommentInput{Content: "b", Author: "u1"})
	require.NoError(t, err)

	comments, err := service.ListPostComments(ctx, "post-1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "a", comments[0].Content)
}

func TestDeleteComment(t *testing.T) {
	service := newTestCommentService()
	ctx := context.Background()

	comment, err := service.CreateComment(ctx, "post-1", models.CreateCommentInput{Content: "bye", Author: "u2"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteComment(ctx, comment.ID, "u2"))

	comments, err := service.ListPostComments(ctx, "post-1")
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestDeleteCommentForbidden(t *testing.T) {
	service := newTestCommentService()
	ctx := context.Background()

	comment, err := service.CreateComment(ctx, "post-1", models.CreateCommentInput{Content: "mine", Author: "u2"})
	require.NoError(t, err)

	assert.ErrorIs(t, service.DeleteComment(ctx, comment.ID, "u3"), apperrors.ErrForbidden)

	comments, err := service.ListPostComments(ctx, "post-1")
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestDeleteCommentMissing(t *testing.T) {
	service := newTestCommentService()

	err := service.DeleteComment(context.Background(), "no-such-id", "u2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
