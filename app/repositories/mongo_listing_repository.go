package repositories

import (
	"context"
	"time"

	"realestate/app/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoListingRepository implements ListingRepository on the listings
// collection.
type MongoListingRepository struct {
	conn Connector
}

// NewMongoListingRepository creates a new MongoListingRepository
func NewMongoListingRepository(conn Connector) *MongoListingRepository {
	return &MongoListingRepository{conn: conn}
}

func (r *MongoListingRepository) List(ctx context.Context, page Page) ([]*models.Listing, int64, error) {
	return findPage[models.Listing](ctx, r.conn, ListingsCollection, page)
}

func (r *MongoListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	listing.BeforeCreate(time.Now().UTC())
	return insert(ctx, r.conn, ListingsCollection, listing)
}

func (r *MongoListingRepository) UpdateByID(ctx context.Context, patch *models.ListingPatch) (*models.Listing, error) {
	return updateByID[models.Listing](ctx, r.conn, ListingsCollection, patch.ID, patch.Set())
}

func (r *MongoListingRepository) DeleteByID(ctx context.Context, id string) error {
	return deleteByID(ctx, r.conn, ListingsCollection, id)
}

// legacyListingFilter matches listings stored with userEmail/country or
// without a contact snapshot.
var legacyListingFilter = bson.M{"$or": bson.A{
	bson.M{"userEmail": bson.M{"$exists": true}},
	bson.M{"contactEmail": bson.M{"$exists": false}},
	bson.M{"contactEmail": ""},
}}

// legacyListingPipeline moves userEmail into contactEmail and fills the
// rest of the snapshot from contact.
func legacyListingPipeline(contact *models.Contact) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "contactEmail", Value: bson.D{{Key: "$ifNull", Value: bson.A{
				"$userEmail", bson.D{{Key: "$literal", Value: contact.Email}},
			}}}},
			{Key: "contactName", Value: bson.D{{Key: "$literal", Value: contact.Name}}},
			{Key: "contactPhone", Value: bson.D{{Key: "$literal", Value: contact.Phone}}},
		}}},
		{{Key: "$unset", Value: bson.A{"userEmail", "country"}}},
	}
}

// MigrateLegacyListings rewrites legacy listings in one UpdateMany.
func (r *MongoListingRepository) MigrateLegacyListings(ctx context.Context, contact *models.Contact) (int64, error) {
	coll, err := r.conn.Collection(ctx, ListingsCollection)
	if err != nil {
		return 0, err
	}
	res, err := coll.UpdateMany(ctx, legacyListingFilter, legacyListingPipeline(contact))
	if err != nil {
		return 0, classify(err)
	}
	return res.ModifiedCount, nil
}
