package repositories

import (
	"context"
	"time"

	"realestate/app/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// contactSlot is the constant value of the uniquely indexed slot field, so
// the collection holds at most one document.
const contactSlot = "contact"

type contactDocument struct {
	models.Contact `bson:",inline"`
	Slot           string `bson:"slot"`
}

// MongoContactRepository implements ContactRepository on the contacts
// collection.
type MongoContactRepository struct {
	conn Connector
}

// NewMongoContactRepository creates a new MongoContactRepository
func NewMongoContactRepository(conn Connector) *MongoContactRepository {
	return &MongoContactRepository{conn: conn}
}

func (r *MongoContactRepository) List(ctx context.Context) ([]*models.Contact, error) {
	contacts, _, err := findPage[models.Contact](ctx, r.conn, ContactsCollection, Page{})
	return contacts, err
}

func (r *MongoContactRepository) First(ctx context.Context) (*models.Contact, error) {
	return r.findOne(ctx, bson.M{})
}

func (r *MongoContactRepository) FindByEmail(ctx context.Context, email string) (*models.Contact, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoContactRepository) findOne(ctx context.Context, filter bson.M) (*models.Contact, error) {
	coll, err := r.conn.Collection(ctx, ContactsCollection)
	if err != nil {
		return nil, err
	}
	var c models.Contact
	err = coll.FindOne(ctx, filter, options.FindOne().SetSort(oldestFirst)).Decode(&c)
	if err != nil {
		return nil, classify(err)
	}
	return &c, nil
}

// Create inserts the contact. The slot index turns a second insert into
// ErrDuplicate.
func (r *MongoContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	contact.BeforeCreate(time.Now().UTC())
	return insert(ctx, r.conn, ContactsCollection, &contactDocument{Contact: *contact, Slot: contactSlot})
}

func (r *MongoContactRepository) UpdateByID(ctx context.Context, patch *models.ContactPatch) (*models.Contact, error) {
	return updateByID[models.Contact](ctx, r.conn, ContactsCollection, patch.ID, patch.Set())
}

func (r *MongoContactRepository) DeleteByID(ctx context.Context, id string) error {
	return deleteByID(ctx, r.conn, ContactsCollection, id)
}
