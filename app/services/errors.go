package services

import "errors"

// DomainError is a business rule violation. Its message is safe to show.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

var (
	// ErrNoContact rejects writes that need the Contact before one exists.
	ErrNoContact = &DomainError{Message: "No contact found. Please create a contact first."}
	// ErrContactExists rejects a second Contact.
	ErrContactExists = &DomainError{Message: "Contact already exists for this user"}
)

// IsDomainError reports whether err is or wraps a DomainError.
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}
