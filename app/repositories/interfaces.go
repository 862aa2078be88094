package repositories

import (
	"context"
	"errors"
	"math"

	"realestate/app/models"
)

var (
	// ErrNotFound is returned when an id does not resolve to a record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write would break a uniqueness rule.
	ErrDuplicate = errors.New("duplicate record")
	// ErrUnavailable wraps failures to reach the database at all.
	ErrUnavailable = errors.New("database unavailable")
)

// Page selects a window of a newest-first listing. Number is 1-based.
type Page struct {
	Number int
	Limit  int
}

// Skip is the number of records before the page. It saturates at
// math.MaxInt64 instead of overflowing.
func (p Page) Skip() int64 {
	if p.Number < 1 || p.Limit < 1 {
		return 0
	}
	before, limit := int64(p.Number-1), int64(p.Limit)
	if before > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return before * limit
}

// ListingRepository defines the interface for listing data access
type ListingRepository interface {
	List(ctx context.Context, page Page) ([]*models.Listing, int64, error)
	Create(ctx context.Context, listing *models.Listing) error
	UpdateByID(ctx context.Context, patch *models.ListingPatch) (*models.Listing, error)
	DeleteByID(ctx context.Context, id string) error
}

// BlogRepository defines the interface for blog data access
type BlogRepository interface {
	List(ctx context.Context, page Page) ([]*models.Blog, int64, error)
	Create(ctx context.Context, blog *models.Blog) error
	UpdateByID(ctx context.Context, patch *models.BlogPatch) (*models.Blog, error)
	DeleteByID(ctx context.Context, id string) error
}

// ContactRepository defines the interface for contact data access
type ContactRepository interface {
	// List returns every contact, newest first.
	List(ctx context.Context) ([]*models.Contact, error)
	// First returns the oldest contact or ErrNotFound.
	First(ctx context.Context) (*models.Contact, error)
	FindByEmail(ctx context.Context, email string) (*models.Contact, error)
	// Create returns ErrDuplicate when a contact already exists.
	Create(ctx context.Context, contact *models.Contact) error
	UpdateByID(ctx context.Context, patch *models.ContactPatch) (*models.Contact, error)
	DeleteByID(ctx context.Context, id string) error
}

// ListingMigrator rewrites listings stored in the retired
// userEmail/country shape into the contact snapshot shape.
type ListingMigrator interface {
	MigrateLegacyListings(ctx context.Context, contact *models.Contact) (int64, error)
}

// Store bundles the repositories of one backend.
type Store struct {
	Listings ListingRepository
	Blogs    BlogRepository
	Contacts ContactRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// NewStore assembles a Store. ping and close may be nil.
func NewStore(listings ListingRepository, blogs BlogRepository, contacts ContactRepository,
	ping, close func(ctx context.Context) error) *Store {
	return &Store{
		Listings: listings,
		Blogs:    blogs,
		Contacts: contacts,
		ping:     ping,
		close:    close,
	}
}

// Ping reports whether the backend answers.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the backend.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

var (
	_ ListingRepository = (*BadgerListingRepository)(nil)
	_ ListingRepository = (*MongoListingRepository)(nil)
	_ ListingMigrator   = (*BadgerListingRepository)(nil)
	_ ListingMigrator   = (*MongoListingRepository)(nil)
	_ BlogRepository    = (*BadgerBlogRepository)(nil)
	_ BlogRepository    = (*MongoBlogRepository)(nil)
	_ ContactRepository = (*BadgerContactRepository)(nil)
	_ ContactRepository = (*MongoContactRepository)(nil)
)
