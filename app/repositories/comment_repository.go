package repositories

import (
	"context"
	"sort"
	"time"

	"quillpad/app/apperrors"
	"quillpad/app/metrics"
	"quillpad/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB
type BadgerCommentRepository struct {
	db *badger.DB
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// Create persists a new comment under a freshly generated id.
func (r *BadgerCommentRepository) Create(_ context.Context, comment *models.Comment) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery("comment_create", start, err) }()

	return r.db.Update(func(txn *badger.Txn) error {
		comment.ID = newID()
		comment.BeforeCreate()

		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}
		return txn.Set(commentKey(comment.ID), data)
	})
}

// GetByID retrieves a comment by ID
func (r *BadgerCommentRepository) GetByID(_ context.Context, id string) (_ *models.Comment, err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery("comment_get", start, err) }()

	var comment models.Comment
	err = r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(commentKey(id))
		if err == badger.ErrKeyNotFound {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &comment)
		})
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost retrieves all comments for a post ordered by creation time
// descending.
func (r *BadgerCommentRepository) ListByPost(_ context.Context, postID string) (_ []*models.Comment, err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery("comment_list", start, err) }()

	comments := []*models.Comment{}
	err = r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(CommentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var comment models.Comment
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return err
			}
			if comment.PostID == postID {
				comments = append(comments, &comment)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID > comments[j].ID
		}
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})

	return comments, nil
}

// Delete deletes a comment by ID
func (r *BadgerCommentRepository) Delete(_ context.Context, id string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery("comment_delete", start, err) }()

	return r.db.Update(func(txn *badger.Txn) error {
		key := commentKey(id)

		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return err
		}

		return txn.Delete(key)
	})
}

// DeleteByPost removes every comment attached to the post.
func (r *BadgerCommentRepository) DeleteByPost(ctx context.Context, postID string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery("comment_delete_by_post", start, err) }()

	comments, err := r.ListByPost(ctx, postID)
	if err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		for _, comment := range comments {
			if err := txn.Delete(commentKey(comment.ID)); err != nil {
				return err
			}
		}
		return nil
	})
}
