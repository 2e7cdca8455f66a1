// Package mock provides map-backed repository implementations for tests.
package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"quillpad/app/apperrors"
	"quillpad/app/models"

	"github.com/google/uuid"
)

type PostRepository struct {
	posts map[string]*models.Post
	mutex sync.RWMutex
}

type CommentRepository struct {
	comments map[string]*models.Comment
	mutex    sync.RWMutex
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[string]*models.Post)}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[string]*models.Comment)}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts = make(map[string]*models.Post)
}

// PostRepository implementation

func (m *PostRepository) Create(_ context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post.ID = uuid.NewString()
	post.BeforeCreate()
	clone := *post
	m.posts[post.ID] = &clone
	return nil
}

func (m *PostRepository) GetByID(_ context.Context, id string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, apperrors.ErrNotFound
	}
	clone := *post
	return &clone, nil
}

func (m *PostRepository) List(_ context.Context, filters models.PostFilters) ([]*models.Post, int, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var posts []*models.Post
	for _, post := range m.posts {
		if filters.Author != "" && post.Author != filters.Author {
			continue
		}
		clone := *post
		posts = append(posts, &clone)
	}

	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	total := len(posts)
	if filters.Offset >= total {
		return []*models.Post{}, total, nil
	}
	end := filters.Offset + filters.Limit
	if filters.Limit <= 0 || end > total {
		end = total
	}
	return posts[filters.Offset:end], total, nil
}

func (m *PostRepository) Update(_ context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[post.ID]; !exists {
		return apperrors.ErrNotFound
	}
	clone := *post
	m.posts[post.ID] = &clone
	return nil
}

func (m *PostRepository) SetLike(_ context.Context, id, user string, liked bool) (*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, apperrors.ErrNotFound
	}
	if liked {
		post.AddLike(user)
	} else {
		post.RemoveLike(user)
	}
	post.UpdatedAt = time.Now().UTC()
	clone := *post
	return &clone, nil
}

func (m *PostRepository) Delete(_ context.Context, id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return apperrors.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

// CommentRepository implementation

func (m *CommentRepository) Create(_ context.Context, comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment.ID = uuid.NewString()
	comment.BeforeCreate()
	clone := *comment
	m.comments[comment.ID] = &clone
	return nil
}

func (m *CommentRepository) GetByID(_ context.Context, id string) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comment, exists := m.comments[id]
	if !exists {
		return nil, apperrors.ErrNotFound
	}
	clone := *comment
	return &clone, nil
}

func (m *CommentRepository) ListByPost(_ context.Context, postID string) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comments := []*models.Comment{}
	for _, comment := range m.comments {
		if comment.PostID == postID {
			clone := *comment
			comments = append(comments, &clone)
		}
	}

	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID > comments[j].ID
		}
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})

	return comments, nil
}

func (m *CommentRepository) Delete(_ context.Context, id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.comments[id]; !exists {
		return apperrors.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *CommentRepository) DeleteByPost(_ context.Context, postID string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for id, comment := range m.comments {
		if comment.PostID == postID {
			delete(m.comments, id)
		}
	}
	return nil
}
