package models

import (
	"time"

	"realestate/app/validation"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlogInput is the create payload for a blog. There is no author field: the
// author comes from the Contact.
type BlogInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

var blogMessages = map[string]string{
	"id.required":          "Blog ID is required",
	"title.required":       "Title is required",
	"title.min":            "Title is required",
	"description.required": "Description is required",
	"description.min":      "Description is required",
}

func (in *BlogInput) Messages() map[string]string { return blogMessages }

func (in *BlogInput) Normalize() {
	validation.Trim(&in.Title)
	validation.Trim(&in.Description)
}

// Validate checks the payload and returns the first violated rule.
func (in *BlogInput) Validate() error {
	return validation.First(in)
}

// BlogPatch is the update payload. Author and Contact are never decoded from
// the request; the service sets them.
type BlogPatch struct {
	ID          string              `json:"id" validate:"required"`
	Title       *string             `json:"title,omitempty" validate:"omitnil,min=1"`
	Description *string             `json:"description,omitempty" validate:"omitnil,min=1"`
	Author      *string             `json:"-"`
	Contact     *primitive.ObjectID `json:"-"`
}

func (p *BlogPatch) Messages() map[string]string { return blogMessages }

func (p *BlogPatch) Normalize() {
	validation.Trim(&p.ID)
	validation.Trim(p.Title)
	validation.Trim(p.Description)
}

// Validate checks the payload and returns the first violated rule.
func (p *BlogPatch) Validate() error {
	return validation.First(p)
}

// Attribute stamps the patch with c as author.
func (p *BlogPatch) Attribute(c *Contact) {
	name, id := c.Name, c.ID
	p.Author = &name
	p.Contact = &id
}

// Set returns the stored fields this patch changes.
func (p *BlogPatch) Set() bson.M {
	set := bson.M{}
	putString(set, "title", p.Title)
	putString(set, "description", p.Description)
	putString(set, "author", p.Author)
	if p.Contact != nil {
		set["contact"] = *p.Contact
	}
	return set
}

// BeforeCreate assigns identity and timestamps.
func (b *Blog) BeforeCreate(now time.Time) {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	b.CreatedAt = now
	b.UpdatedAt = now
}

// Apply copies the patch's non-nil fields onto b and bumps UpdatedAt.
func (b *Blog) Apply(p *BlogPatch, now time.Time) {
	copyString(&b.Title, p.Title)
	copyString(&b.Description, p.Description)
	copyString(&b.Author, p.Author)
	if p.Contact != nil {
		b.Contact = *p.Contact
	}
	b.UpdatedAt = now
}

// Attribute sets author and contact reference from c.
func (b *Blog) Attribute(c *Contact) {
	b.Author = c.Name
	b.Contact = c.ID
}
