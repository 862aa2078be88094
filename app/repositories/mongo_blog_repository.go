package repositories

import (
	"context"
	"time"

	"realestate/app/models"
)

// MongoBlogRepository implements BlogRepository on the blogs collection.
type MongoBlogRepository struct {
	conn Connector
}

// NewMongoBlogRepository creates a new MongoBlogRepository
func NewMongoBlogRepository(conn Connector) *MongoBlogRepository {
	return &MongoBlogRepository{conn: conn}
}

func (r *MongoBlogRepository) List(ctx context.Context, page Page) ([]*models.Blog, int64, error) {
	return findPage[models.Blog](ctx, r.conn, BlogsCollection, page)
}

func (r *MongoBlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	blog.BeforeCreate(time.Now().UTC())
	return insert(ctx, r.conn, BlogsCollection, blog)
}

func (r *MongoBlogRepository) UpdateByID(ctx context.Context, patch *models.BlogPatch) (*models.Blog, error) {
	return updateByID[models.Blog](ctx, r.conn, BlogsCollection, patch.ID, patch.Set())
}

func (r *MongoBlogRepository) DeleteByID(ctx context.Context, id string) error {
	return deleteByID(ctx, r.conn, BlogsCollection, id)
}
