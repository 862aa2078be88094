package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// OpenBadger opens the embedded store at path. An empty path opens an
// in-memory store.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	return db, nil
}

// NewBadgerStore wires the Badger repositories over db. Closing the store
// closes db.
func NewBadgerStore(db *badger.DB) *Store {
	return NewStore(
		NewBadgerListingRepository(db),
		NewBadgerBlogRepository(db),
		NewBadgerContactRepository(db),
		func(ctx context.Context) error {
			if db.IsClosed() {
				return fmt.Errorf("%w: badger is closed", ErrUnavailable)
			}
			return nil
		},
		func(ctx context.Context) error { return db.Close() },
	)
}

// listNewest walks prefix from the newest key down. ObjectID hex keys sort
// by creation second first, so reverse key order is newest first. A page
// with Limit 0 returns everything.
func listNewest[T any](db *badger.DB, prefix string, page Page) ([]*T, int64, error) {
	items := []*T{}
	var total int64
	err := db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		skip := page.Skip()
		seek := append([]byte(prefix), 0xFF)
		for it.Seek(seek); it.ValidForPrefix([]byte(prefix)); it.Next() {
			total++
			if total <= skip {
				continue
			}
			if page.Limit > 0 && len(items) >= page.Limit {
				continue
			}
			var v T
			if err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &v)
			}); err != nil {
				return err
			}
			items = append(items, &v)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// firstOldest returns the oldest entity under prefix.
func firstOldest[T any](db *badger.DB, prefix string) (*T, error) {
	var out *T
	err := db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		it.Seek([]byte(prefix))
		if !it.ValidForPrefix([]byte(prefix)) {
			return ErrNotFound
		}
		var v T
		if err := it.Item().Value(func(val []byte) error {
			return unmarshalEntity(val, &v)
		}); err != nil {
			return err
		}
		out = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// putNew stores a new entity under key.
func putNew(txn *badger.Txn, key []byte, entity interface{}) error {
	data, err := marshalEntity(entity)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

// updateEntity loads the entity under prefix+id, mutates it and writes it
// back in one transaction.
func updateEntity[T any](db *badger.DB, prefix, id string, mutate func(*T)) (*T, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	key := entityKey(prefix, oid)

	var v T
	err = db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &v)
		}); err != nil {
			return err
		}
		mutate(&v)

		data, err := marshalEntity(&v)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// deleteEntity removes prefix+id. after runs inside the same transaction.
func deleteEntity(db *badger.DB, prefix, id string, after func(txn *badger.Txn) error) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	key := entityKey(prefix, oid)

	return db.Update(func(txn *badger.Txn) error {
		// Verify entity exists
		_, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		if after != nil {
			return after(txn)
		}
		return nil
	})
}
