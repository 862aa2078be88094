// Package mock holds in-memory repositories for service and controller
// tests. Setting Err makes every call fail with it.
package mock

import (
	"context"
	"strings"
	"sync"
	"time"

	"realestate/app/models"
	"realestate/app/repositories"
)

// table keeps entities in insertion order, which is creation order.
type table[T any] struct {
	rows []*T
	id   func(*T) string
}

func (t *table[T]) index(id string) int {
	for i, row := range t.rows {
		if t.id(row) == id {
			return i
		}
	}
	return -1
}

// page returns the rows newest first.
func (t *table[T]) page(p repositories.Page) ([]*T, int64) {
	total := int64(len(t.rows))
	out := []*T{}
	skip := p.Skip()
	for i := len(t.rows) - 1; i >= 0; i-- {
		pos := int64(len(t.rows) - 1 - i)
		if pos < skip {
			continue
		}
		if p.Limit > 0 && len(out) >= p.Limit {
			break
		}
		row := *t.rows[i]
		out = append(out, &row)
	}
	return out, total
}

func (t *table[T]) remove(id string) error {
	i := t.index(id)
	if i < 0 {
		return repositories.ErrNotFound
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return nil
}

type ListingRepository struct {
	Err      error
	listings table[models.Listing]
	mutex    sync.RWMutex
}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{listings: table[models.Listing]{id: func(l *models.Listing) string { return l.ID.Hex() }}}
}

func (m *ListingRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.listings.rows = nil
}

func (m *ListingRepository) List(ctx context.Context, page repositories.Page) ([]*models.Listing, int64, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, 0, m.Err
	}
	items, total := m.listings.page(page)
	return items, total, nil
}

func (m *ListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	listing.BeforeCreate(time.Now().UTC())
	row := *listing
	m.listings.rows = append(m.listings.rows, &row)
	return nil
}

func (m *ListingRepository) UpdateByID(ctx context.Context, patch *models.ListingPatch) (*models.Listing, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	i := m.listings.index(patch.ID)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	m.listings.rows[i].Apply(patch, time.Now().UTC())
	out := *m.listings.rows[i]
	return &out, nil
}

func (m *ListingRepository) DeleteByID(ctx context.Context, id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	return m.listings.remove(id)
}

type BlogRepository struct {
	Err   error
	blogs table[models.Blog]
	mutex sync.RWMutex
}

func NewBlogRepository() *BlogRepository {
	return &BlogRepository{blogs: table[models.Blog]{id: func(b *models.Blog) string { return b.ID.Hex() }}}
}

func (m *BlogRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.blogs.rows = nil
}

func (m *BlogRepository) List(ctx context.Context, page repositories.Page) ([]*models.Blog, int64, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, 0, m.Err
	}
	items, total := m.blogs.page(page)
	return items, total, nil
}

func (m *BlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	blog.BeforeCreate(time.Now().UTC())
	row := *blog
	m.blogs.rows = append(m.blogs.rows, &row)
	return nil
}

func (m *BlogRepository) UpdateByID(ctx context.Context, patch *models.BlogPatch) (*models.Blog, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	i := m.blogs.index(patch.ID)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	m.blogs.rows[i].Apply(patch, time.Now().UTC())
	out := *m.blogs.rows[i]
	return &out, nil
}

func (m *BlogRepository) DeleteByID(ctx context.Context, id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	return m.blogs.remove(id)
}

type ContactRepository struct {
	Err      error
	contacts table[models.Contact]
	mutex    sync.RWMutex
}

func NewContactRepository() *ContactRepository {
	return &ContactRepository{contacts: table[models.Contact]{id: func(c *models.Contact) string { return c.ID.Hex() }}}
}

func (m *ContactRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.contacts.rows = nil
}

func (m *ContactRepository) List(ctx context.Context) ([]*models.Contact, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	items, _ := m.contacts.page(repositories.Page{})
	return items, nil
}

func (m *ContactRepository) First(ctx context.Context) (*models.Contact, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.contacts.rows) == 0 {
		return nil, repositories.ErrNotFound
	}
	out := *m.contacts.rows[0]
	return &out, nil
}

func (m *ContactRepository) FindByEmail(ctx context.Context, email string) (*models.Contact, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range m.contacts.rows {
		if strings.EqualFold(c.Email, email) {
			out := *c
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if len(m.contacts.rows) > 0 {
		return repositories.ErrDuplicate
	}
	contact.BeforeCreate(time.Now().UTC())
	row := *contact
	m.contacts.rows = append(m.contacts.rows, &row)
	return nil
}

func (m *ContactRepository) UpdateByID(ctx context.Context, patch *models.ContactPatch) (*models.Contact, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	i := m.contacts.index(patch.ID)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	m.contacts.rows[i].Apply(patch, time.Now().UTC())
	out := *m.contacts.rows[i]
	return &out, nil
}

func (m *ContactRepository) DeleteByID(ctx context.Context, id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	return m.contacts.remove(id)
}

// Repositories exposes the concrete mocks behind a Store.
type Repositories struct {
	Listings *ListingRepository
	Blogs    *BlogRepository
	Contacts *ContactRepository
}

// NewStore returns a Store over fresh mocks plus the mocks themselves.
func NewStore() (*repositories.Store, *Repositories) {
	r := &Repositories{
		Listings: NewListingRepository(),
		Blogs:    NewBlogRepository(),
		Contacts: NewContactRepository(),
	}
	return repositories.NewStore(r.Listings, r.Blogs, r.Contacts, nil, nil), r
}
