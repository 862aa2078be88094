package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"realestate/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerContactRepository implements ContactRepository using BadgerDB. The
// slot key holds the id of the only contact.
type BadgerContactRepository struct {
	db *badger.DB
}

// NewBadgerContactRepository creates a new BadgerContactRepository
func NewBadgerContactRepository(db *badger.DB) *BadgerContactRepository {
	return &BadgerContactRepository{db: db}
}

// List retrieves every contact, newest first
func (r *BadgerContactRepository) List(ctx context.Context) ([]*models.Contact, error) {
	contacts, _, err := listNewest[models.Contact](r.db, ContactKeyPrefix, Page{})
	return contacts, err
}

// First returns the oldest contact
func (r *BadgerContactRepository) First(ctx context.Context) (*models.Contact, error) {
	return firstOldest[models.Contact](r.db, ContactKeyPrefix)
}

// FindByEmail returns the contact with email, ignoring case
func (r *BadgerContactRepository) FindByEmail(ctx context.Context, email string) (*models.Contact, error) {
	contacts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range contacts {
		if strings.EqualFold(c.Email, email) {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

// Create stores the contact unless one already exists
func (r *BadgerContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	contact.BeforeCreate(time.Now().UTC())
	return r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(ContactSlotKey))
		if err == nil {
			return ErrDuplicate
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Set([]byte(ContactSlotKey), []byte(contact.ID.Hex())); err != nil {
			return err
		}
		return putNew(txn, entityKey(ContactKeyPrefix, contact.ID), contact)
	})
}

// UpdateByID applies patch to the stored contact
func (r *BadgerContactRepository) UpdateByID(ctx context.Context, patch *models.ContactPatch) (*models.Contact, error) {
	return updateEntity(r.db, ContactKeyPrefix, patch.ID, func(c *models.Contact) {
		c.Apply(patch, time.Now().UTC())
	})
}

// DeleteByID deletes the contact and frees the slot
func (r *BadgerContactRepository) DeleteByID(ctx context.Context, id string) error {
	return deleteEntity(r.db, ContactKeyPrefix, id, func(txn *badger.Txn) error {
		return txn.Delete([]byte(ContactSlotKey))
	})
}
