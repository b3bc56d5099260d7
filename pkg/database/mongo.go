package database

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/singleflight"
)

const connectTimeout = 10 * time.Second

// Mongo lazily establishes and memoizes a single database handle for the
// process lifetime. Concurrent first callers coalesce onto one
// establishment attempt; on failure the cache stays empty so the next call
// retries with a fresh connection.
type Mongo struct {
	uri    string
	dbName string

	mu     sync.RWMutex
	client *mongo.Client
	db     *mongo.Database

	group singleflight.Group

	// dial is swapped out in tests.
	dial func(ctx context.Context) (*mongo.Client, error)
}

func NewMongo(uri, dbName string) *Mongo {
	m := &Mongo{uri: uri, dbName: dbName}
	m.dial = m.connect
	return m
}

// Acquire returns the ready database handle, establishing the connection on
// first use. All callers that arrive during establishment share the same
// attempt and its outcome.
func (m *Mongo) Acquire(ctx context.Context) (*mongo.Database, error) {
	m.mu.RLock()
	if m.db != nil {
		db := m.db
		m.mu.RUnlock()
		return db, nil
	}
	m.mu.RUnlock()

	v, err, _ := m.group.Do("connect", func() (any, error) {
		m.mu.RLock()
		if m.db != nil {
			db := m.db
			m.mu.RUnlock()
			return db, nil
		}
		m.mu.RUnlock()

		// The establishment context is detached from any single caller so
		// one cancelled request cannot poison the shared attempt.
		dialCtx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		client, err := m.dial(dialCtx)
		if err != nil {
			return nil, err
		}
		db := client.Database(m.dbName)

		m.mu.Lock()
		m.client = client
		m.db = db
		m.mu.Unlock()

		log.Printf("[Mongo] connected to %s", m.dbName)
		return db, nil
	})
	if err != nil {
		return nil, fmt.Errorf("acquire database: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return v.(*mongo.Database), nil
}

// connect dials the server, verifies it is reachable and ensures the
// collection indexes exist. Any failure tears the client down again so
// repeated attempts do not leak connections.
func (m *Mongo) connect(ctx context.Context) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	if err := ensureIndexes(ctx, client.Database(m.dbName)); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}

// ensureIndexes enforces slug uniqueness so concurrent writes with a
// colliding slug surface as a duplicate-key write failure.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("events").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create slug index: %w", err)
	}
	return nil
}

// Close disconnects the cached client, if any.
func (m *Mongo) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	m.db = nil
	return err
}
