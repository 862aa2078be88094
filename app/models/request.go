package models

import "realestate/app/validation"

// DeleteRequest is the body of every delete route.
type DeleteRequest struct {
	ID string `json:"id"`
}

// ValidateListing checks the request for a listing delete.
func (r *DeleteRequest) ValidateListing() error { return r.validate(listingMessages) }

// ValidateBlog checks the request for a blog delete.
func (r *DeleteRequest) ValidateBlog() error { return r.validate(blogMessages) }

// ValidateContact checks the request for a contact delete.
func (r *DeleteRequest) ValidateContact() error { return r.validate(contactMessages) }

func (r *DeleteRequest) validate(messages map[string]string) error {
	validation.Trim(&r.ID)
	if r.ID == "" {
		return &validation.Error{Field: "id", Message: messages["id.required"]}
	}
	return nil
}
