// Package store persists input graphs and their computed layouts in
// MongoDB, so a caller can submit a graph once and fetch its layout
// again later by id without resending the graph. Grounded on
// go.mongodb.org/mongo-driver, declared in matzehuels-stacktower's
// go.mod but never wired to any storage code there (that project
// persists everything as local files); this package gives it a
// document-store home matching its actual purpose.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/graphlayout/layered/core"
)

// Record is one stored graph/layout pair.
type Record struct {
	ID        string            `bson:"_id" json:"id"`
	Graph     core.InputGraph   `bson:"graph" json:"graph"`
	Layout    *core.OutputGraph `bson:"layout,omitempty" json:"layout,omitempty"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
}

// Store persists Records in a Mongo collection.
type Store struct {
	collection *mongo.Collection
}

// Connect dials uri and returns a Store backed by db.collection.
func Connect(ctx context.Context, uri, db, collection string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	return &Store{collection: client.Database(db).Collection(collection)}, nil
}

// Save inserts a new record for in and returns its generated id. If out
// is non-nil the computed layout is stored alongside the input graph.
func (s *Store) Save(ctx context.Context, in core.InputGraph, out *core.OutputGraph) (string, error) {
	rec := Record{
		ID:        uuid.NewString(),
		Graph:     in,
		Layout:    out,
		CreatedAt: time.Now(),
	}
	if _, err := s.collection.InsertOne(ctx, rec); err != nil {
		return "", fmt.Errorf("store: save: %w", err)
	}
	return rec.ID, nil
}

// SaveNamed upserts a record under a caller-chosen name rather than a
// generated id, so a later Get(ctx, name) retrieves it. Used for the
// CLI/HTTP "save under a name, fetch by that name" flow, as opposed to
// Save's anonymous, generated-id records.
func (s *Store) SaveNamed(ctx context.Context, name string, in core.InputGraph, out *core.OutputGraph) error {
	rec := Record{
		ID:        name,
		Graph:     in,
		Layout:    out,
		CreatedAt: time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": name}, rec, opts); err != nil {
		return fmt.Errorf("store: save named %s: %w", name, err)
	}
	return nil
}

// Get fetches the record stored under id.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get %s: %w", id, err)
	}
	return &rec, nil
}

// SetLayout updates the stored layout for an existing record.
func (s *Store) SetLayout(ctx context.Context, id string, out *core.OutputGraph) error {
	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"layout": out}})
	if err != nil {
		return fmt.Errorf("store: update layout %s: %w", id, err)
	}
	return nil
}

// Delete removes the record stored under id.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", id, err)
	}
	return nil
}

// Close disconnects the underlying Mongo client.
func (s *Store) Close(ctx context.Context) error {
	return s.collection.Database().Client().Disconnect(ctx)
}
