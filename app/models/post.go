package models

import (
	"errors"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// Validate checks the caller-supplied fields for a new post.
func (in *CreatePostInput) Validate() error {
	return validate.Struct(in)
}

// Validate checks the supplied fields of a partial edit.
func (in *UpdatePostInput) Validate() error {
	return validate.Struct(in)
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	if p.Likes == nil {
		p.Likes = []string{}
	}
}

// Liked reports whether user is in the like set.
func (p *Post) Liked(user string) bool {
	for _, u := range p.Likes {
		if u == user {
			return true
		}
	}
	return false
}

// AddLike adds user to the like set. Adding an existing user is a no-op.
func (p *Post) AddLike(user string) {
	if p.Liked(user) {
		return
	}
	p.Likes = append(p.Likes, user)
}

// RemoveLike removes user from the like set. Removing an absent user is a
// no-op.
func (p *Post) RemoveLike(user string) {
	for i, u := range p.Likes {
		if u == user {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return
		}
	}
}
