package repositories

import (
	"context"
	"time"

	"realestate/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerBlogRepository implements BlogRepository using BadgerDB
type BadgerBlogRepository struct {
	db *badger.DB
}

// NewBadgerBlogRepository creates a new BadgerBlogRepository
func NewBadgerBlogRepository(db *badger.DB) *BadgerBlogRepository {
	return &BadgerBlogRepository{db: db}
}

// List retrieves a page of blogs, newest first
func (r *BadgerBlogRepository) List(ctx context.Context, page Page) ([]*models.Blog, int64, error) {
	return listNewest[models.Blog](r.db, BlogKeyPrefix, page)
}

// Create stores a new blog
func (r *BadgerBlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	blog.BeforeCreate(time.Now().UTC())
	return r.db.Update(func(txn *badger.Txn) error {
		return putNew(txn, entityKey(BlogKeyPrefix, blog.ID), blog)
	})
}

// UpdateByID applies patch to the stored blog
func (r *BadgerBlogRepository) UpdateByID(ctx context.Context, patch *models.BlogPatch) (*models.Blog, error) {
	return updateEntity(r.db, BlogKeyPrefix, patch.ID, func(b *models.Blog) {
		b.Apply(patch, time.Now().UTC())
	})
}

// DeleteByID deletes a blog by ID
func (r *BadgerBlogRepository) DeleteByID(ctx context.Context, id string) error {
	return deleteEntity(r.db, BlogKeyPrefix, id, nil)
}
