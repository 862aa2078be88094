// Package database owns the shared MongoDB client. The client is created on
// first use and reused by every request after that.
package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"realestate/app/repositories"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Options configures the Manager.
type Options struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
}

// Manager connects lazily and hands out scoped collection handles. A failed
// connect is retried on the next call.
type Manager struct {
	opts   Options
	logger zerolog.Logger

	mu     sync.Mutex
	client *mongo.Client

	dial func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error)
	ping func(ctx context.Context, client *mongo.Client) error
}

// NewManager creates a Manager. No connection is made until it is needed.
func NewManager(opts Options, logger zerolog.Logger) *Manager {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 10 * time.Second
	}
	return &Manager{
		opts:   opts,
		logger: logger,
		dial: func(ctx context.Context, o *options.ClientOptions) (*mongo.Client, error) {
			return mongo.Connect(ctx, o)
		},
		ping: func(ctx context.Context, client *mongo.Client) error {
			return client.Ping(ctx, readpref.Primary())
		},
	}
}

func (m *Manager) clientOptions() *options.ClientOptions {
	o := options.Client().
		ApplyURI(m.opts.URI).
		SetConnectTimeout(m.opts.ConnectTimeout).
		SetServerSelectionTimeout(m.opts.ConnectTimeout)
	if m.opts.MaxPoolSize > 0 {
		o.SetMaxPoolSize(m.opts.MaxPoolSize)
	}
	return o
}

// Client returns the connected client, connecting and pinging first if
// needed.
func (m *Manager) Client(ctx context.Context) (*mongo.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		return m.client, nil
	}
	if m.opts.URI == "" {
		return nil, fmt.Errorf("%w: no MongoDB URI configured", repositories.ErrUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, m.opts.ConnectTimeout)
	defer cancel()

	client, err := m.dial(ctx, m.clientOptions())
	if err != nil {
		m.logger.Error().Err(err).Msg("mongo connect failed")
		return nil, fmt.Errorf("%w: connect: %v", repositories.ErrUnavailable, err)
	}
	if err := m.ping(ctx, client); err != nil {
		m.logger.Error().Err(err).Msg("mongo ping failed")
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: ping: %v", repositories.ErrUnavailable, err)
	}

	m.logger.Info().Str("database", m.opts.Database).Msg("connected to MongoDB")
	m.client = client
	return client, nil
}

// Database returns the configured database.
func (m *Manager) Database(ctx context.Context) (*mongo.Database, error) {
	client, err := m.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(m.opts.Database), nil
}

// Collection returns the named collection of the configured database.
func (m *Manager) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := m.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// Ping checks the server answers, connecting first if needed.
func (m *Manager) Ping(ctx context.Context) error {
	client, err := m.Client(ctx)
	if err != nil {
		return err
	}
	if err := m.ping(ctx, client); err != nil {
		return fmt.Errorf("%w: ping: %v", repositories.ErrUnavailable, err)
	}
	return nil
}

// Disconnect closes the client. The next call connects again.
func (m *Manager) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	if err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("disconnect: %w", err)
	}
	return nil
}

var _ repositories.Connector = (*Manager)(nil)
