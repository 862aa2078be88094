package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

// Connector hands out collections from a lazily connected client.
type Connector interface {
	Collection(ctx context.Context, name string) (*mongo.Collection, error)
	Ping(ctx context.Context) error
	Disconnect(ctx context.Context) error
}

// NewMongoStore wires the Mongo repositories over conn. Closing the store
// disconnects the client.
func NewMongoStore(conn Connector) *Store {
	return NewStore(
		NewMongoListingRepository(conn),
		NewMongoBlogRepository(conn),
		NewMongoContactRepository(conn),
		conn.Ping,
		conn.Disconnect,
	)
}

var (
	newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
	oldestFirst = bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}
)

// EnsureIndexes creates the indexes every collection relies on. It is safe
// to run repeatedly.
func EnsureIndexes(ctx context.Context, conn Connector) error {
	indexes := map[string][]mongo.IndexModel{
		ListingsCollection: {
			{Keys: newestFirst},
		},
		BlogsCollection: {
			{Keys: newestFirst},
		},
		ContactsCollection: {
			{Keys: bson.D{{Key: "slot", Value: 1}}, Options: options.Index().SetUnique(true).SetName("contact_singleton")},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("contact_email")},
		},
	}
	for name, specs := range indexes {
		coll, err := conn.Collection(ctx, name)
		if err != nil {
			return err
		}
		if _, err := coll.Indexes().CreateMany(ctx, specs); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, classify(err))
		}
	}
	return nil
}

// classify maps driver errors onto the package sentinels.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrUnavailable), errors.Is(err, ErrNotFound), errors.Is(err, ErrDuplicate):
		return err
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case mongo.IsNetworkError(err), mongo.IsTimeout(err), errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

// findPage runs the page query and the count concurrently.
func findPage[T any](ctx context.Context, conn Connector, name string, page Page) ([]*T, int64, error) {
	coll, err := conn.Collection(ctx, name)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(newestFirst).SetSkip(page.Skip())
	if page.Limit > 0 {
		opts.SetLimit(int64(page.Limit))
	}

	items := []*T{}
	var total int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cur, err := coll.Find(gctx, bson.D{}, opts)
		if err != nil {
			return err
		}
		return cur.All(gctx, &items)
	})
	g.Go(func() error {
		n, err := coll.CountDocuments(gctx, bson.D{})
		total = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, classify(err)
	}
	return items, total, nil
}

// updateByID sets fields on the document with id and returns the result.
func updateByID[T any](ctx context.Context, conn Connector, name, id string, set bson.M) (*T, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	coll, err := conn.Collection(ctx, name)
	if err != nil {
		return nil, err
	}

	set["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out T
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&out)
	if err != nil {
		return nil, classify(err)
	}
	return &out, nil
}

// deleteByID removes the document with id.
func deleteByID(ctx context.Context, conn Connector, name, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	coll, err := conn.Collection(ctx, name)
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return classify(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// insert stores doc in the named collection.
func insert(ctx context.Context, conn Connector, name string, doc interface{}) error {
	coll, err := conn.Collection(ctx, name)
	if err != nil {
		return err
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return classify(err)
	}
	return nil
}
