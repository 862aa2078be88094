package repositories

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// Key prefixes for different entity types
	ListingKeyPrefix = "listing:"
	BlogKeyPrefix    = "blog:"
	ContactKeyPrefix = "contact:"

	// ContactSlotKey is held while a contact exists.
	ContactSlotKey = "slot:contact"

	// Collection names
	ListingsCollection = "listings"
	BlogsCollection    = "blogs"
	ContactsCollection = "contacts"
)

// ParseID converts a hex id into an ObjectID. Anything that is not a valid
// id cannot match a record, so it maps to ErrNotFound.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q", ErrNotFound, id)
	}
	return oid, nil
}

// entityKey builds the storage key for an id under prefix
func entityKey(prefix string, id primitive.ObjectID) []byte {
	return []byte(prefix + id.Hex())
}

// marshalEntity marshals an entity to JSON
func marshalEntity(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}
