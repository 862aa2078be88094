package models

import (
	"time"

	"realestate/app/validation"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactInput is the create payload for the contact card.
type ContactInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

var contactMessages = map[string]string{
	"id.required":    "Contact ID is required",
	"name.required":  "Name is required",
	"name.min":       "Name is required",
	"email.required": "Invalid email address",
	"email.email":    "Invalid email address",
	"phone.required": "Phone is required",
	"phone.min":      "Phone is required",
}

func (in *ContactInput) Messages() map[string]string { return contactMessages }

func (in *ContactInput) Normalize() {
	validation.Trim(&in.Name)
	validation.Trim(&in.Email)
	validation.Trim(&in.Phone)
}

// Validate checks the payload and returns the first violated rule.
func (in *ContactInput) Validate() error {
	return validation.First(in)
}

// Contact builds the entity for this payload.
func (in *ContactInput) Contact() *Contact {
	return &Contact{Name: in.Name, Email: in.Email, Phone: in.Phone}
}

// ContactPatch is the update payload. Nil fields are left unchanged.
type ContactPatch struct {
	ID    string  `json:"id" validate:"required"`
	Name  *string `json:"name,omitempty" validate:"omitnil,min=1"`
	Email *string `json:"email,omitempty" validate:"omitnil,email"`
	Phone *string `json:"phone,omitempty" validate:"omitnil,min=1"`
}

func (p *ContactPatch) Messages() map[string]string { return contactMessages }

func (p *ContactPatch) Normalize() {
	validation.Trim(&p.ID)
	validation.Trim(p.Name)
	validation.Trim(p.Email)
	validation.Trim(p.Phone)
}

// Validate checks the payload and returns the first violated rule.
func (p *ContactPatch) Validate() error {
	return validation.First(p)
}

// Set returns the stored fields this patch changes.
func (p *ContactPatch) Set() bson.M {
	set := bson.M{}
	putString(set, "name", p.Name)
	putString(set, "email", p.Email)
	putString(set, "phone", p.Phone)
	return set
}

// BeforeCreate assigns identity and timestamps.
func (c *Contact) BeforeCreate(now time.Time) {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	c.CreatedAt = now
	c.UpdatedAt = now
}

// Apply copies the patch's non-nil fields onto c and bumps UpdatedAt.
func (c *Contact) Apply(p *ContactPatch, now time.Time) {
	copyString(&c.Name, p.Name)
	copyString(&c.Email, p.Email)
	copyString(&c.Phone, p.Phone)
	c.UpdatedAt = now
}
