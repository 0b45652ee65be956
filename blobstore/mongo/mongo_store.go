package mongo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hupe1980/labeltransform/blobstore"
)

// DefaultURL is used by Connect when no URL is given and MONGO_URL is unset.
const DefaultURL = "mongodb://localhost:27017/labeltransform"

type document struct {
	Name string `bson:"_id"`
	Data []byte `bson:"data"`
}

// Store implements blobstore.Store on a MongoDB collection.
type Store struct {
	coll *mongo.Collection
}

// NewStore creates a store on the given collection.
func NewStore(coll *mongo.Collection) *Store {
	return &Store{coll: coll}
}

// Connect opens the database named in the URL path.
// An empty mongoURL falls back to $MONGO_URL, then to DefaultURL.
func Connect(ctx context.Context, mongoURL string) (*mongo.Database, error) {
	if mongoURL == "" {
		mongoURL = os.Getenv("MONGO_URL")
	}
	if mongoURL == "" {
		mongoURL = DefaultURL
	}

	uri, err := url.Parse(mongoURL)
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		return nil, err
	}

	dbName := strings.Trim(uri.Path, "/")
	if dbName == "" {
		dbName = "labeltransform"
	}
	return client.Database(dbName), nil
}

// Get reads a blob.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	var doc document
	if err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, blobstore.ErrNotFound
		}
		return nil, fmt.Errorf("mongo get %q: %w", name, err)
	}
	return doc.Data, nil
}

// Put writes a blob. Single-document writes are atomic.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": name},
		document{Name: name, Data: data},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo put %q: %w", name, err)
	}
	return nil
}

// Delete removes a blob.
func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return fmt.Errorf("mongo delete %q: %w", name, err)
	}
	return nil
}

// List returns all blob names with the given prefix, sorted.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	filter := bson.M{}
	if prefix != "" {
		filter["_id"] = bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}
	}

	cur, err := s.coll.Find(ctx, filter,
		options.Find().
			SetSort(bson.D{{Key: "_id", Value: 1}}).
			SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("mongo list %q: %w", prefix, err)
	}
	defer func() { _ = cur.Close(ctx) }()

	var names []string
	for cur.Next(ctx) {
		var doc document
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("unable to decode bson document: %w", err)
		}
		names = append(names, doc.Name)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
