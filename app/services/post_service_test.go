package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"quillpad/app/apperrors"
	"quillpad/app/models"
	"quillpad/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestPostService() (*PostService, *mock.PostRepository, *mock.CommentRepository) {
	postRepo := mock.NewPostRepository()
	commentRepo := mock.NewCommentRepository()
	return NewPostService(postRepo, commentRepo, testLogger()), postRepo, commentRepo
}

func createPost(t *testing.T, service *PostService, title, author string) *models.Post {
	t.Helper()
	post, err := service.CreatePost(context.Background(), models.CreatePostInput{
		Title:   title,
		Content: "content of " + title,
		Author:  author,
	})
	require.NoError(t, err)
	return post
}

func TestCreatePostThenGet(t *testing.T) {
	service, _, _ := newTestPostService()
	ctx := context.Background()

	post, err := service.CreatePost(ctx, models.CreatePostInput{
		Title:   "A",
		Content: "B",
		Author:  "u1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, []string{}, post.Likes)

	got, err := service.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "B", got.Content)
	assert.Equal(t, "u1", got.Author)
	assert.Equal(t, []string{}, got.Likes)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestCreatePostValidation(t *testing.T) {
	service, _, _ := newTestPostService()
	ctx := context.Background()

	tests := []struct {
		name  string
		input models.CreatePostInput
	}{
		{"missing title", models.CreatePostInput{Content: "B", Author: "u1"}},
		{"missing content", models.CreatePostInput{Title: "A", Author: "u1"}},
		{"missing author", models.CreatePostInput{Title: "A", Content: "B"}},
		{"title too long", models.CreatePostInput{Title: strings.Repeat("x", 101), Content: "B", Author: "u1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreatePost(ctx, tt.input)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestGetPostMissing(t *testing.T) {
	service, _, _ := newTestPostService()

	_, err := service.GetPost(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListPostsPagination(t *testing.T) {
	service, _, _ := newTestPostService()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		createPost(t, service, "post", "u1")
	}

	tests := []struct {
		name        string
		page, limit int
		wantLen     int
		wantPage    int
		wantPages   int
		hasMore     bool
		hasPrevious bool
	}{
		{"first page", 1, 10, 10, 1, 3, true, false},
		{"middle page", 2, 10, 10, 2, 3, true, true},
		{"last page", 3, 10, 5, 3, 3, false, true},
		{"beyond last", 4, 10, 0, 4, 3, false, true},
		{"defaults", 0, 0, 10, 1, 3, true, false},
		{"exact division", 5, 5, 5, 5, 5, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := service.ListPosts(ctx, tt.page, tt.limit, "")
			require.NoError(t, err)
			assert.Len(t, page.Posts, tt.wantLen)
			assert.Equal(t, tt.wantPage, page.Pagination.CurrentPage)
			assert.Equal(t, tt.wantPages, page.Pagination.TotalPages)
			assert.Equal(t, 25, page.Pagination.TotalPosts)
			assert.Equal(t, tt.hasMore, page.Pagination.HasMore)
			assert.Equal(t, tt.hasPrevious, page.Pagination.HasPrevious)
		})
	}
}

func TestListPostsEmpty(t *testing.T) {
	service, _, _ := newTestPostService()

	page, err := service.ListPosts(context.Background(), 1, 10, "")
	require.NoError(t, err)
	assert.Equal(t, []*models.Post{}, page.Posts)
	assert.Equal(t, 0, page.Pagination.TotalPages)
	assert.Equal(t, 0, page.Pagination.TotalPosts)
	assert.False(t, page.Pagination.HasMore)
	assert.False(t, page.Pagination.HasPrevious)
}

func TestListPostsByAuthor(t *testing.T) {
	service, _, _ := newTestPostService()
	ctx := context.Background()

	createPost(t, service, "mine", "u1")
	createPost(t, service, "mine too", "u1")
	createPost(t, service, "theirs", "u2")

	page, err := service.ListPosts(ctx, 1, 10, "u1")
	require.NoError(t, err)
	assert.Len(t, page.Posts, 2)
	assert.Equal(t, 2, page.Pagination.TotalPosts)
	for _, post := range page.Posts {
		assert.Equal(t, "u1", post.Author)
	}
}

func TestUpdatePostPartial(t *testing.T) {
	service, _, _ := newTestPostService()
	ctx := context.Background()

	post := createPost(t, service, "Original", "u1")

	title := "Renamed"
	updated, err := service.UpdatePost(ctx, post.ID, models.UpdatePostInput{Title: &title}, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	// Omitted content keeps its prior value.
	assert.Equal(t, post.Content, updated.Content)
	assert.Equal(t, "u1", updated.Author)
	assert.True(t, updated.UpdatedAt.After(post.UpdatedAt) || updated.UpdatedAt.Equal(post.UpdatedAt))
}

func TestUpdatePostForbidden(t *testing.T) {
	service, _, _ := newTestPostService()
	ctx := context.Background()

	post := createPost(t, service, "Original", "u1")

	title := "Hijacked"
	_, err := service.UpdatePost(ctx, post.ID, models.UpdatePostInput{Title: &title}, "u2")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// State must be untouched.
	got, err := service.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Title)
}

func TestUpdatePostMissing(t *testing.T) {
	service, _, _ := newTestPostService()

	title := "Renamed"
	_, err := service.UpdatePost(context.Background(), "no-such-id", models.UpdatePostInput{Title: &title}, "u1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSetLikeIdempotent(t *testing.T) {
	service, _, _ := newTestPostService()
	ctx := context.Background()

	post := createPost(t, service, "Likeable", "u1")

	updated, err := service.SetLike(ctx, post.ID, "u2", ActionLike)
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, updated.Likes)

	// Liking twice yields the same set.
	updated, err = service.SetLike(ctx, post.ID, "u2", ActionLike)
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, updated.Likes)

	// Unlike returns the set to its prior state.
	updated, err = service.SetLike(ctx, post.ID, "u2", ActionUnlike)
	require.NoError(t, err)
	assert.Equal(t, []string{}, updated.Likes)

	// Unliking again is a no-op.
	updated, err = service.SetLike(ctx, post.ID, "u2", ActionUnlike)
	require.NoError(t, err)
	assert.Equal(t, []string{}, updated.Likes)
}

func TestSetLikeInvalidAction(t *testing.T) {
	service, _, _ := newTestPostService()
	ctx := context.Background()

	post := createPost(t, service, "Likeable", "u1")

	_, err := service.SetLike(ctx, post.ID, "u2", "favorite")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSetLikeMissingPost(t *testing.T) {
	service, _, _ := newTestPostService()

	_, err := service.SetLike(context.Background(), "no-such-id", "u2", ActionLike)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeletePostCascadesComments(t *testing.T) {
	service, _, commentRepo := newTestPostService()
	ctx := context.Background()

	post := createPost(t, service, "Doomed", "u1")
	for i := 0; i < 3; i++ {
		require.NoError(t, commentRepo.Create(ctx, &models.Comment{
			PostID:  post.ID,
			Author:  "u2",
			Content: "a comment",
		}))
	}

	require.NoError(t, service.DeletePost(ctx, post.ID, "u1"))

	_, err := service.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	comments, err := commentRepo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestDeletePostForbidden(t *testing.T) {
	service, _, _ := newTestPostService()
	ctx := context.Background()

	post := createPost(t, service, "Keeper", "u1")

	assert.ErrorIs(t, service.DeletePost(ctx, post.ID, "u2"), apperrors.ErrForbidden)

	_, err := service.GetPost(ctx, post.ID)
	assert.NoError(t, err)
}

func TestDeletePostMissing(t *testing.T) {
	service, _, _ := newTestPostService()

	err := service.DeletePost(context.Background(), "no-such-id", "u1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
