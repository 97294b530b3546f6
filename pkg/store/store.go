// Package store persists named diagrams in MongoDB for server deployments.
// Unlike the history log, which is a capped record of generations, the
// diagram store holds explicitly saved, named documents.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stackcanvas/stackcanvas/pkg/flow"
)

// ErrNotFound is returned when a diagram does not exist.
var ErrNotFound = errors.New("diagram not found")

// DefaultListLimit bounds List when no limit is given.
const DefaultListLimit = 50

// Diagram is a saved, named graph document.
type Diagram struct {
	ID          string     `json:"id" bson:"_id"`
	Name        string     `json:"name" bson:"name"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Graph       flow.Graph `json:"graph" bson:"graph"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// Config holds MongoDB connection settings.
type Config struct {
	// URI is the MongoDB connection string.
	URI string

	// Database name. Defaults to "stackcanvas".
	Database string

	// Collection name. Defaults to "diagrams".
	Collection string
}

// SetDefaults fills unset fields with package defaults.
func (c *Config) SetDefaults() {
	if c.Database == "" {
		c.Database = "stackcanvas"
	}
	if c.Collection == "" {
		c.Collection = "diagrams"
	}
}

// DiagramStore persists diagrams in a MongoDB collection.
type DiagramStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, cfg Config) (*DiagramStore, error) {
	cfg.SetDefaults()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &DiagramStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Save upserts a diagram. A diagram without an ID gets a fresh one and a
// creation timestamp; UpdatedAt is always refreshed.
func (s *DiagramStore) Save(ctx context.Context, d *Diagram) error {
	now := time.Now().UTC()
	if d.ID == "" {
		d.ID = uuid.NewString()
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": d.ID}, d,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save diagram %s: %w", d.ID, err)
	}
	return nil
}

// Get retrieves a diagram by ID.
func (s *DiagramStore) Get(ctx context.Context, id string) (*Diagram, error) {
	var d Diagram
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load diagram %s: %w", id, err)
	}
	return &d, nil
}

// List returns up to limit diagrams, most recently updated first.
func (s *DiagramStore) List(ctx context.Context, limit int) ([]Diagram, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	cur, err := s.coll.Find(ctx, bson.M{},
		options.Find().
			SetSort(bson.D{{Key: "updated_at", Value: -1}}).
			SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("list diagrams: %w", err)
	}

	var out []Diagram
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode diagrams: %w", err)
	}
	return out, nil
}

// Delete removes a diagram. Returns ErrNotFound if it did not exist.
func (s *DiagramStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete diagram %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *DiagramStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
