package repositories

import (
	"context"
	"time"

	"realestate/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerListingRepository implements ListingRepository using BadgerDB
type BadgerListingRepository struct {
	db *badger.DB
}

// NewBadgerListingRepository creates a new BadgerListingRepository
func NewBadgerListingRepository(db *badger.DB) *BadgerListingRepository {
	return &BadgerListingRepository{db: db}
}

// List retrieves a page of listings, newest first
func (r *BadgerListingRepository) List(ctx context.Context, page Page) ([]*models.Listing, int64, error) {
	return listNewest[models.Listing](r.db, ListingKeyPrefix, page)
}

// Create stores a new listing
func (r *BadgerListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	listing.BeforeCreate(time.Now().UTC())
	return r.db.Update(func(txn *badger.Txn) error {
		return putNew(txn, entityKey(ListingKeyPrefix, listing.ID), listing)
	})
}

// UpdateByID applies patch to the stored listing
func (r *BadgerListingRepository) UpdateByID(ctx context.Context, patch *models.ListingPatch) (*models.Listing, error) {
	return updateEntity(r.db, ListingKeyPrefix, patch.ID, func(l *models.Listing) {
		l.Apply(patch, time.Now().UTC())
	})
}

// DeleteByID deletes a listing by ID
func (r *BadgerListingRepository) DeleteByID(ctx context.Context, id string) error {
	return deleteEntity(r.db, ListingKeyPrefix, id, nil)
}

type rewrite struct {
	key     []byte
	listing *models.Listing
}

// legacyListing is a listing written before the contact snapshot existed.
type legacyListing struct {
	models.Listing
	UserEmail string `json:"userEmail,omitempty"`
	Country   string `json:"country,omitempty"`
}

// MigrateLegacyListings rewrites listings that still carry userEmail, or
// have no snapshot at all, using contact for the missing fields.
func (r *BadgerListingRepository) MigrateLegacyListings(ctx context.Context, contact *models.Contact) (int64, error) {
	var migrated int64
	err := r.db.Update(func(txn *badger.Txn) error {
		pending, err := legacyRewrites(txn, contact)
		if err != nil {
			return err
		}
		for _, p := range pending {
			if err := putNew(txn, p.key, p.listing); err != nil {
				return err
			}
			migrated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return migrated, nil
}

// legacyRewrites collects the listings that need rewriting. The iterator is
// closed before any write happens.
func legacyRewrites(txn *badger.Txn, contact *models.Contact) ([]rewrite, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(ListingKeyPrefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	var pending []rewrite
	for it.Rewind(); it.Valid(); it.Next() {
		var old legacyListing
		if err := it.Item().Value(func(val []byte) error {
			return unmarshalEntity(val, &old)
		}); err != nil {
			return nil, err
		}
		if old.UserEmail == "" && old.ContactEmail != "" {
			continue
		}
		l := old.Listing
		l.ContactEmail = old.UserEmail
		if l.ContactEmail == "" {
			l.ContactEmail = contact.Email
		}
		l.ContactName = contact.Name
		l.ContactPhone = contact.Phone
		pending = append(pending, rewrite{key: it.Item().KeyCopy(nil), listing: &l})
	}
	return pending, nil
}
