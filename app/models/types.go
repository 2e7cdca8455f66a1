package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Post represents a blog entry. Likes holds the identities of users who
// liked the post; it never contains duplicates and is always serialized as
// an array. Author is the external identity subject and never changes after
// creation.
type Post struct {
	ID        string    `json:"id" validate:"required"`
	Title     string    `json:"title" validate:"required,max=100"`
	Content   string    `json:"content" validate:"required"`
	Author    string    `json:"author" validate:"required"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Comment represents a reply attached to a post. Author and PostID are
// immutable after creation.
type Comment struct {
	ID        string    `json:"id" validate:"required"`
	PostID    string    `json:"postId" validate:"required"`
	Author    string    `json:"author" validate:"required"`
	Content   string    `json:"content" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreatePostInput carries the caller-supplied fields for a new post.
type CreatePostInput struct {
	Title   string `json:"title" validate:"required,max=100"`
	Content string `json:"content" validate:"required"`
	Author  string `json:"author" validate:"required"`
}

// UpdatePostInput is a partial edit; nil fields keep their prior values.
type UpdatePostInput struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=100"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

// CreateCommentInput carries the caller-supplied fields for a new comment.
type CreateCommentInput struct {
	Content string `json:"content" validate:"required"`
	Author  string `json:"author" validate:"required"`
}

// PostFilters narrows and pages a post listing. An empty Author means
// unfiltered.
type PostFilters struct {
	Author string
	Limit  int
	Offset int
}

// Pagination describes the window returned by a post listing.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalPosts  int  `json:"totalPosts"`
	HasMore     bool `json:"hasMore"`
	HasPrevious bool `json:"hasPrevious"`
}

// PostPage couples one page of posts with its pagination envelope.
type PostPage struct {
	Posts      []*Post    `json:"posts"`
	Pagination Pagination `json:"pagination"`
}
