package repositories

import (
	"context"
	"errors"
	"sort"
	"time"

	"quillpad/app/apperrors"
	"quillpad/app/metrics"
	"quillpad/app/models"

	"github.com/dgraph-io/badger/v4"
)

// setLikeAttempts bounds the retry loop around badger write conflicts on
// concurrent like toggles.
const setLikeAttempts = 5

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create persists a new post under a freshly generated id.
func (r *BadgerPostRepository) Create(_ context.Context, post *models.Post) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery("post_create", start, err) }()

	return r.db.Update(func(txn *badger.Txn) error {
		post.ID = newID()
		post.BeforeCreate()

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(postKey(post.ID), data)
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(_ context.Context, id string) (_ *models.Post, err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery("post_get", start, err) }()

	var post models.Post
	err = r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(postKey(id))
		if err == badger.ErrKeyNotFound {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves one page of posts ordered by creation time descending,
// optionally filtered by author, plus the total matching count.
func (r *BadgerPostRepository) List(_ context.Context, filters models.PostFilters) (_ []*models.Post, _ int, err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery("post_list", start, err) }()

	var posts []*models.Post
	err = r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var post models.Post
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return err
			}
			if filters.Author != "" && post.Author != filters.Author {
				continue
			}
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
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

// Update overwrites an existing post.
func (r *BadgerPostRepository) Update(_ context.Context, post *models.Post) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery("post_update", start, err) }()

	return r.db.Update(func(txn *badger.Txn) error {
		key := postKey(post.ID)

		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return err
		}

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// SetLike toggles user's membership in the like set inside a single update
// transaction, so concurrent toggles on the same post serialize instead of
// clobbering each other. Conflicting transactions are retried.
func (r *BadgerPostRepository) SetLike(_ context.Context, id, user string, liked bool) (_ *models.Post, err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery("post_set_like", start, err) }()

	var post models.Post
	for attempt := 0; attempt < setLikeAttempts; attempt++ {
		err = r.db.Update(func(txn *badger.Txn) error {
			item, err := txn.Get(postKey(id))
			if err == badger.ErrKeyNotFound {
				return apperrors.ErrNotFound
			}
			if err != nil {
				return err
			}

			if err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			}); err != nil {
				return err
			}

			if liked {
				post.AddLike(user)
			} else {
				post.RemoveLike(user)
			}
			post.UpdatedAt = time.Now().UTC()

			data, err := marshalEntity(&post)
			if err != nil {
				return err
			}
			return txn.Set(postKey(id), data)
		})
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete deletes a post by ID
func (r *BadgerPostRepository) Delete(_ context.Context, id string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery("post_delete", start, err) }()

	return r.db.Update(func(txn *badger.Txn) error {
		key := postKey(id)

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
