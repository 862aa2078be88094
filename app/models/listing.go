package models

import (
	"time"

	"realestate/app/validation"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListingInput is the create payload for a listing.
type ListingInput struct {
	Title        string   `json:"title" validate:"required,max=100"`
	Description  string   `json:"description" validate:"required,max=1000"`
	Price        *float64 `json:"price" validate:"required,gte=0"`
	Address      string   `json:"address" validate:"required"`
	City         string   `json:"city" validate:"required"`
	Image        string   `json:"image,omitempty" validate:"urlorempty"`
	Facilities   string   `json:"facilities,omitempty"`
	ContactName  string   `json:"contactName,omitempty"`
	ContactEmail string   `json:"contactEmail,omitempty" validate:"omitempty,email"`
	ContactPhone string   `json:"contactPhone,omitempty"`
}

var listingMessages = map[string]string{
	"id.required":          "Listing ID is required",
	"title.required":       "Title is required",
	"title.min":            "Title is required",
	"title.max":            "Title is too long",
	"description.required": "Description is required",
	"description.min":      "Description is required",
	"description.max":      "Description is too long",
	"price.required":       "Price is required",
	"price.gte":            "Price must be positive",
	"address.required":     "Address is required",
	"address.min":          "Address is required",
	"city.required":        "City is required",
	"city.min":             "City is required",
	"image.urlorempty":     "Invalid image URL",
	"contactName.min":      "Contact name is required",
	"contactEmail.email":   "Invalid contact email",
	"contactPhone.min":     "Contact phone is required",
}

// Messages implements validation.Messager.
func (in *ListingInput) Messages() map[string]string { return listingMessages }

// Normalize implements validation.Normalizer.
func (in *ListingInput) Normalize() {
	for _, s := range []*string{
		&in.Title, &in.Description, &in.Address, &in.City, &in.Image,
		&in.Facilities, &in.ContactName, &in.ContactEmail, &in.ContactPhone,
	} {
		validation.Trim(s)
	}
}

// Validate checks the payload and returns the first violated rule.
func (in *ListingInput) Validate() error {
	return validation.First(in)
}

// HasContactSnapshot reports whether all three contact fields are present.
func (in *ListingInput) HasContactSnapshot() bool {
	return in.ContactName != "" && in.ContactEmail != "" && in.ContactPhone != ""
}

// FillContact copies any missing contact fields from c.
func (in *ListingInput) FillContact(c *Contact) {
	if in.ContactName == "" {
		in.ContactName = c.Name
	}
	if in.ContactEmail == "" {
		in.ContactEmail = c.Email
	}
	if in.ContactPhone == "" {
		in.ContactPhone = c.Phone
	}
}

// Listing builds the entity for this payload. Identity and timestamps are
// left for the data layer.
func (in *ListingInput) Listing() *Listing {
	l := &Listing{
		Title:        in.Title,
		Description:  in.Description,
		Address:      in.Address,
		City:         in.City,
		Image:        in.Image,
		Facilities:   in.Facilities,
		ContactName:  in.ContactName,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
	}
	if in.Price != nil {
		l.Price = *in.Price
	}
	return l
}

// ListingPatch is the update payload. Nil fields are left unchanged.
type ListingPatch struct {
	ID           string   `json:"id" validate:"required"`
	Title        *string  `json:"title,omitempty" validate:"omitnil,min=1,max=100"`
	Description  *string  `json:"description,omitempty" validate:"omitnil,min=1,max=1000"`
	Price        *float64 `json:"price,omitempty" validate:"omitnil,gte=0"`
	Address      *string  `json:"address,omitempty" validate:"omitnil,min=1"`
	City         *string  `json:"city,omitempty" validate:"omitnil,min=1"`
	Image        *string  `json:"image,omitempty" validate:"omitnil,urlorempty"`
	Facilities   *string  `json:"facilities,omitempty"`
	ContactName  *string  `json:"contactName,omitempty" validate:"omitnil,min=1"`
	ContactEmail *string  `json:"contactEmail,omitempty" validate:"omitnil,email"`
	ContactPhone *string  `json:"contactPhone,omitempty" validate:"omitnil,min=1"`
}

// Messages implements validation.Messager.
func (p *ListingPatch) Messages() map[string]string { return listingMessages }

// Normalize implements validation.Normalizer.
func (p *ListingPatch) Normalize() {
	validation.Trim(&p.ID)
	for _, s := range []*string{
		p.Title, p.Description, p.Address, p.City, p.Image,
		p.Facilities, p.ContactName, p.ContactEmail, p.ContactPhone,
	} {
		validation.Trim(s)
	}
}

// Validate checks the payload and returns the first violated rule.
func (p *ListingPatch) Validate() error {
	return validation.First(p)
}

// Set returns the stored fields this patch changes.
func (p *ListingPatch) Set() bson.M {
	set := bson.M{}
	putString(set, "title", p.Title)
	putString(set, "description", p.Description)
	if p.Price != nil {
		set["price"] = *p.Price
	}
	putString(set, "address", p.Address)
	putString(set, "city", p.City)
	putString(set, "image", p.Image)
	putString(set, "facilities", p.Facilities)
	putString(set, "contactName", p.ContactName)
	putString(set, "contactEmail", p.ContactEmail)
	putString(set, "contactPhone", p.ContactPhone)
	return set
}

// BeforeCreate assigns identity and timestamps.
func (l *Listing) BeforeCreate(now time.Time) {
	if l.ID.IsZero() {
		l.ID = primitive.NewObjectID()
	}
	l.CreatedAt = now
	l.UpdatedAt = now
}

// Apply copies the patch's non-nil fields onto l and bumps UpdatedAt.
func (l *Listing) Apply(p *ListingPatch, now time.Time) {
	copyString(&l.Title, p.Title)
	copyString(&l.Description, p.Description)
	if p.Price != nil {
		l.Price = *p.Price
	}
	copyString(&l.Address, p.Address)
	copyString(&l.City, p.City)
	copyString(&l.Image, p.Image)
	copyString(&l.Facilities, p.Facilities)
	copyString(&l.ContactName, p.ContactName)
	copyString(&l.ContactEmail, p.ContactEmail)
	copyString(&l.ContactPhone, p.ContactPhone)
	l.UpdatedAt = now
}

func putString(m bson.M, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

func copyString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
