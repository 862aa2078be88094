package services

import (
	"context"
	"errors"
	"fmt"

	"realestate/app/models"
	"realestate/app/repositories"
)

// BlogService handles business logic for blogs. Every write is attributed
// to the Contact.
type BlogService struct {
	blogs    repositories.BlogRepository
	contacts repositories.ContactRepository
}

// NewBlogService creates a new BlogService
func NewBlogService(blogs repositories.BlogRepository, contacts repositories.ContactRepository) *BlogService {
	return &BlogService{blogs: blogs, contacts: contacts}
}

// List retrieves a page of blogs, newest first
func (s *BlogService) List(ctx context.Context, page repositories.Page) (*models.PageResult[models.Blog], error) {
	items, total, err := s.blogs.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return &models.PageResult[models.Blog]{Items: items, Total: total, Page: page.Number, Limit: page.Limit}, nil
}

func (s *BlogService) author(ctx context.Context) (*models.Contact, error) {
	contact, err := s.contacts.First(ctx)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNoContact
	}
	if err != nil {
		return nil, fmt.Errorf("load contact: %w", err)
	}
	return contact, nil
}

// Create stores a new blog written by the Contact
func (s *BlogService) Create(ctx context.Context, in *models.BlogInput) (*models.Blog, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	contact, err := s.author(ctx)
	if err != nil {
		return nil, err
	}

	blog := &models.Blog{Title: in.Title, Description: in.Description}
	blog.Attribute(contact)
	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return blog, nil
}

// Update applies patch and re-attributes the blog to the Contact
func (s *BlogService) Update(ctx context.Context, patch *models.BlogPatch) (*models.Blog, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	contact, err := s.author(ctx)
	if err != nil {
		return nil, err
	}

	patch.Attribute(contact)
	blog, err := s.blogs.UpdateByID(ctx, patch)
	if err != nil {
		return nil, fmt.Errorf("update blog %s: %w", patch.ID, err)
	}
	return blog, nil
}

// Delete removes a blog
func (s *BlogService) Delete(ctx context.Context, req *models.DeleteRequest) error {
	if err := req.ValidateBlog(); err != nil {
		return err
	}
	if err := s.blogs.DeleteByID(ctx, req.ID); err != nil {
		return fmt.Errorf("delete blog %s: %w", req.ID, err)
	}
	return nil
}
