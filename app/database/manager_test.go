package database

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"realestate/app/repositories"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeManager returns a Manager whose dial and ping are scripted. Connect
// only builds the client; nothing talks to a server.
func fakeManager(t *testing.T, pingErrs ...error) (*Manager, *int) {
	t.Helper()
	m := NewManager(Options{
		URI:            "mongodb://127.0.0.1:1",
		Database:       "realestate_test",
		ConnectTimeout: time.Second,
	}, zerolog.Nop())

	dials := 0
	m.dial = func(ctx context.Context, o *options.ClientOptions) (*mongo.Client, error) {
		dials++
		return mongo.Connect(ctx, o)
	}
	pings := 0
	m.ping = func(ctx context.Context, client *mongo.Client) error {
		defer func() { pings++ }()
		if pings < len(pingErrs) {
			return pingErrs[pings]
		}
		return nil
	}
	t.Cleanup(func() { _ = m.Disconnect(context.Background()) })
	return m, &dials
}

func TestManagerConnectsOnce(t *testing.T) {
	m, dials := fakeManager(t)
	ctx := context.Background()

	listings, err := m.Collection(ctx, "listings")
	require.NoError(t, err)
	assert.Equal(t, "listings", listings.Name())
	assert.Equal(t, "realestate_test", listings.Database().Name())

	_, err = m.Collection(ctx, "blogs")
	require.NoError(t, err)
	assert.Equal(t, 1, *dials)
}

func TestManagerRetriesAfterFailure(t *testing.T) {
	m, dials := fakeManager(t, errors.New("no server"))
	ctx := context.Background()

	_, err := m.Collection(ctx, "contacts")
	require.Error(t, err)
	assert.ErrorIs(t, err, repositories.ErrUnavailable)

	_, err = m.Collection(ctx, "contacts")
	require.NoError(t, err)
	assert.Equal(t, 2, *dials)
}

func TestManagerConcurrentFirstUse(t *testing.T) {
	m, dials := fakeManager(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Database(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, *dials)
}

func TestManagerDisconnect(t *testing.T) {
	m, dials := fakeManager(t)
	ctx := context.Background()

	require.NoError(t, m.Disconnect(ctx))

	_, err := m.Client(ctx)
	require.NoError(t, err)
	require.NoError(t, m.Disconnect(ctx))

	_, err = m.Client(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, *dials)
}

func TestManagerWithoutURI(t *testing.T) {
	m := NewManager(Options{Database: "x"}, zerolog.Nop())
	err := m.Ping(context.Background())
	assert.ErrorIs(t, err, repositories.ErrUnavailable)
}
