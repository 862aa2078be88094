package services

import (
	"context"
	"errors"
	"fmt"

	"realestate/app/models"
	"realestate/app/repositories"
)

// ContactService handles business logic for the single Contact
type ContactService struct {
	contacts repositories.ContactRepository
}

// NewContactService creates a new ContactService
func NewContactService(contacts repositories.ContactRepository) *ContactService {
	return &ContactService{contacts: contacts}
}

// List returns every contact, newest first
func (s *ContactService) List(ctx context.Context) ([]*models.Contact, error) {
	contacts, err := s.contacts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// Create stores the Contact unless one already exists
func (s *ContactService) Create(ctx context.Context, in *models.ContactInput) (*models.Contact, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	_, err := s.contacts.First(ctx)
	switch {
	case err == nil:
		return nil, ErrContactExists
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("load contact: %w", err)
	}

	contact := in.Contact()
	err = s.contacts.Create(ctx, contact)
	if errors.Is(err, repositories.ErrDuplicate) {
		return nil, ErrContactExists
	}
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return contact, nil
}

// Update applies patch to the Contact
func (s *ContactService) Update(ctx context.Context, patch *models.ContactPatch) (*models.Contact, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	contact, err := s.contacts.UpdateByID(ctx, patch)
	if errors.Is(err, repositories.ErrDuplicate) {
		return nil, ErrContactExists
	}
	if err != nil {
		return nil, fmt.Errorf("update contact %s: %w", patch.ID, err)
	}
	return contact, nil
}

// Delete removes the Contact. Blogs keep their reference to it.
func (s *ContactService) Delete(ctx context.Context, req *models.DeleteRequest) error {
	if err := req.ValidateContact(); err != nil {
		return err
	}
	if err := s.contacts.DeleteByID(ctx, req.ID); err != nil {
		return fmt.Errorf("delete contact %s: %w", req.ID, err)
	}
	return nil
}
