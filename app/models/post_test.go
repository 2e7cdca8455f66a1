package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostValidate(t *testing.T) {
	tests := []struct {
		name    string
		post    Post
		wantErr bool
	}{
		{
			name: "valid post",
			post: Post{
				ID:        "p1",
				Title:     "Hello",
				Content:   "World",
				Author:    "alice@example.com",
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "missing title",
			post: Post{
				ID:        "p1",
				Content:   "World",
				Author:    "alice@example.com",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "title too long",
			post: Post{
				ID:        "p1",
				Title:     string(make([]byte, 101)),
				Content:   "World",
				Author:    "alice@example.com",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing author",
			post: Post{
				ID:        "p1",
				Title:     "Hello",
				Content:   "World",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero created_at",
			post: Post{
				ID:      "p1",
				Title:   "Hello",
				Content: "World",
				Author:  "alice@example.com",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostBeforeCreate(t *testing.T) {
	post := Post{Title: "Hello", Content: "World", Author: "alice@example.com"}
	post.BeforeCreate()

	assert.False(t, post.CreatedAt.IsZero())
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)
	assert.NotNil(t, post.Likes)
	assert.Empty(t, post.Likes)
}

func TestPostLikes(t *testing.T) {
	post := Post{Likes: []string{}}

	post.AddLike("u1")
	assert.Equal(t, []string{"u1"}, post.Likes)
	assert.True(t, post.Liked("u1"))

	// Adding the same user again must not duplicate.
	post.AddLike("u1")
	assert.Equal(t, []string{"u1"}, post.Likes)

	post.AddLike("u2")
	assert.Equal(t, []string{"u1", "u2"}, post.Likes)

	post.RemoveLike("u1")
	assert.Equal(t, []string{"u2"}, post.Likes)
	assert.False(t, post.Liked("u1"))

	// Removing an absent user is a no-op.
	post.RemoveLike("u1")
	assert.Equal(t, []string{"u2"}, post.Likes)
}

func TestCreatePostInputValidate(t *testing.T) {
	valid := CreatePostInput{Title: "A", Content: "B", Author: "u1"}
	assert.NoError(t, valid.Validate())

	missing := CreatePostInput{Title: "A", Author: "u1"}
	assert.Error(t, missing.Validate())
}

func TestUpdatePostInputValidate(t *testing.T) {
	empty := UpdatePostInput{}
	assert.NoError(t, empty.Validate())

	title := "New title"
	partial := UpdatePostInput{Title: &title}
	assert.NoError(t, partial.Validate())

	blank := ""
	invalid := UpdatePostInput{Title: &blank}
	assert.Error(t, invalid.Validate())
}
