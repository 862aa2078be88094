package services

import (
	"context"
	"errors"
	"fmt"

	"realestate/app/models"
	"realestate/app/repositories"
)

// ListingService handles business logic for listings
type ListingService struct {
	listings repositories.ListingRepository
	contacts repositories.ContactRepository
}

// NewListingService creates a new ListingService
func NewListingService(listings repositories.ListingRepository, contacts repositories.ContactRepository) *ListingService {
	return &ListingService{listings: listings, contacts: contacts}
}

// List retrieves a page of listings, newest first
func (s *ListingService) List(ctx context.Context, page repositories.Page) (*models.PageResult[models.Listing], error) {
	items, total, err := s.listings.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return &models.PageResult[models.Listing]{Items: items, Total: total, Page: page.Number, Limit: page.Limit}, nil
}

// Create validates in and stores a new listing. Missing contact fields are
// copied from the Contact, which must then exist.
func (s *ListingService) Create(ctx context.Context, in *models.ListingInput) (*models.Listing, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if !in.HasContactSnapshot() {
		contact, err := s.contacts.First(ctx)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoContact
		}
		if err != nil {
			return nil, fmt.Errorf("load contact: %w", err)
		}
		in.FillContact(contact)
	}

	listing := in.Listing()
	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return listing, nil
}

// Update applies patch to an existing listing
func (s *ListingService) Update(ctx context.Context, patch *models.ListingPatch) (*models.Listing, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	listing, err := s.listings.UpdateByID(ctx, patch)
	if err != nil {
		return nil, fmt.Errorf("update listing %s: %w", patch.ID, err)
	}
	return listing, nil
}

// Delete removes a listing
func (s *ListingService) Delete(ctx context.Context, req *models.DeleteRequest) error {
	if err := req.ValidateListing(); err != nil {
		return err
	}
	if err := s.listings.DeleteByID(ctx, req.ID); err != nil {
		return fmt.Errorf("delete listing %s: %w", req.ID, err)
	}
	return nil
}

// MigrateLegacy rewrites listings stored in the retired userEmail/country
// shape using the current Contact.
func (s *ListingService) MigrateLegacy(ctx context.Context, migrator repositories.ListingMigrator) (int64, error) {
	contact, err := s.contacts.First(ctx)
	if errors.Is(err, repositories.ErrNotFound) {
		return 0, ErrNoContact
	}
	if err != nil {
		return 0, fmt.Errorf("load contact: %w", err)
	}
	n, err := migrator.MigrateLegacyListings(ctx, contact)
	if err != nil {
		return 0, fmt.Errorf("migrate listings: %w", err)
	}
	return n, nil
}
