package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing represents a property advertised on the dashboard. The contact
// fields are a snapshot of the Contact taken when the listing was written.
type Listing struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	Address      string             `bson:"address" json:"address"`
	City         string             `bson:"city" json:"city"`
	Image        string             `bson:"image" json:"image"`
	Facilities   string             `bson:"facilities" json:"facilities"`
	ContactName  string             `bson:"contactName" json:"contactName"`
	ContactEmail string             `bson:"contactEmail" json:"contactEmail"`
	ContactPhone string             `bson:"contactPhone" json:"contactPhone"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Blog represents a blog post. Author always mirrors the name of the
// referenced Contact at write time.
type Blog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Author      string             `bson:"author" json:"author"`
	Contact     primitive.ObjectID `bson:"contact" json:"contact"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Contact is the dashboard owner's public contact card. At most one exists.
type Contact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PageResult is one page of a newest-first listing plus the collection size.
type PageResult[T any] struct {
	Items []*T
	Total int64
	Page  int
	Limit int
}

// PageCount is ceil(Total / Limit).
func (p *PageResult[T]) PageCount() int {
	if p.Limit <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Limit) - 1) / int64(p.Limit))
}
