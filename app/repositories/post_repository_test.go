package repositories

import (
	"context"
	"testing"
	"time"

	"quillpad/app/apperrors"
	"quillpad/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPost(title, author string) *models.Post {
	return &models.Post{
		Title:   title,
		Content: "content of " + title,
		Author:  author,
	}
}

func TestBadgerPostRepositoryCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerPostRepository(db)
	ctx := context.Background()

	post := newTestPost("First", "alice@example.com")
	require.NoError(t, repo.Create(ctx, post))

	assert.NotEmpty(t, post.ID)
	assert.False(t, post.CreatedAt.IsZero())
	assert.NotNil(t, post.Likes)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
	assert.Equal(t, "First", got.Title)
	assert.Equal(t, "alice@example.com", got.Author)
	assert.Equal(t, []string{}, got.Likes)
}

func TestBadgerPostRepositoryGetMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerPostRepository(db)

	_, err := repo.GetByID(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBadgerPostRepositoryList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerPostRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		post := newTestPost(string(rune('A'+i)), "alice@example.com")
		post.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, post))
	}
	other := newTestPost("Z", "bob@example.com")
	other.CreatedAt = base.Add(time.Hour)
	require.NoError(t, repo.Create(ctx, other))

	t.Run("newest first with total", func(t *testing.T) {
		posts, total, err := repo.List(ctx, models.PostFilters{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 6, total)
		require.Len(t, posts, 6)
		assert.Equal(t, "Z", posts[0].Title)
		assert.Equal(t, "E", posts[1].Title)
		assert.Equal(t, "A", posts[5].Title)
	})

	t.Run("offset and limit", func(t *testing.T) {
		posts, total, err := repo.List(ctx, models.PostFilters{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, 6, total)
		require.Len(t, posts, 2)
		assert.Equal(t, "D", posts[0].Title)
		assert.Equal(t, "C", posts[1].Title)
	})

	t.Run("author filter", func(t *testing.T) {
		posts, total, err := repo.List(ctx, models.PostFilters{Author: "bob@example.com", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, posts, 1)
		assert.Equal(t, "Z", posts[0].Title)
	})

	t.Run("offset beyond end", func(t *testing.T) {
		posts, total, err := repo.List(ctx, models.PostFilters{Limit: 10, Offset: 100})
		require.NoError(t, err)
		assert.Equal(t, 6, total)
		assert.Empty(t, posts)
	})
}

func TestBadgerPostRepositoryUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerPostRepository(db)
	ctx := context.Background()

	post := newTestPost("First", "alice@example.com")
	require.NoError(t, repo.Create(ctx, post))

	post.Title = "Renamed"
	require.NoError(t, repo.Update(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)

	missing := newTestPost("Ghost", "alice@example.com")
	missing.ID = "no-such-id"
	assert.ErrorIs(t, repo.Update(ctx, missing), apperrors.ErrNotFound)
}

func TestBadgerPostRepositorySetLike(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerPostRepository(db)
	ctx := context.Background()

	post := newTestPost("Likeable", "alice@example.com")
	require.NoError(t, repo.Create(ctx, post))

	updated, err := repo.SetLike(ctx, post.ID, "u2", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, updated.Likes)

	// Liking twice must not duplicate.
	updated, err = repo.SetLike(ctx, post.ID, "u2", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, updated.Likes)

	updated, err = repo.SetLike(ctx, post.ID, "u3", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"u2", "u3"}, updated.Likes)

	updated, err = repo.SetLike(ctx, post.ID, "u2", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"u3"}, updated.Likes)

	// Unliking an absent user is a no-op.
	updated, err = repo.SetLike(ctx, post.ID, "u2", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"u3"}, updated.Likes)

	_, err = repo.SetLike(ctx, "no-such-id", "u2", true)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBadgerPostRepositoryDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerPostRepository(db)
	ctx := context.Background()

	post := newTestPost("Doomed", "alice@example.com")
	require.NoError(t, repo.Create(ctx, post))

	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err := repo.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, post.ID), apperrors.ErrNotFound)
}
