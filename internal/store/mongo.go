package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mode identifies which credential a mongo-backed store was opened with.
// Behavior is identical either way; the restricted credential is simply
// subject to the database's declarative access rules.
type Mode string

const (
	ModePrivileged Mode = "privileged"
	ModeRestricted Mode = "restricted"
)

// MongoStore implements Store on a mongo database. Documents are stored with
// the section id as _id; all content fields live top-level beside it.
type MongoStore struct {
	db   *mongo.Database
	mode Mode
}

func NewMongoStore(db *mongo.Database, mode Mode) *MongoStore {
	return &MongoStore{db: db, mode: mode}
}

// Mode reports which credential this store was opened with (for logging).
func (s *MongoStore) Mode() Mode { return s.mode }

func (s *MongoStore) Get(ctx context.Context, collection, id string) (Document, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store get %s/%s: %w", collection, id, err)
	}
	return fromBSON(raw), nil
}

func (s *MongoStore) List(ctx context.Context, collection string) (map[string]Document, error) {
	cur, err := s.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("store list %s: %w", collection, err)
	}
	defer cur.Close(ctx)
	out := make(map[string]Document)
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("store list %s: %w", collection, err)
		}
		id, _ := raw["_id"].(string)
		if id == "" {
			continue
		}
		out[id] = fromBSON(raw)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("store list %s: %w", collection, err)
	}
	return out, nil
}

func (s *MongoStore) Set(ctx context.Context, collection, id string, doc Document, merge bool) error {
	if merge {
		update := bson.M{}
		if len(doc) == 0 {
			// the server rejects an empty $set; still upsert so merging
			// into an absent id creates the document, matching the memory
			// backend
			update["$setOnInsert"] = bson.M{"_id": id}
		} else {
			set := bson.M{}
			for k, v := range doc {
				set[k] = v
			}
			update["$set"] = set
		}
		opts := options.Update().SetUpsert(true)
		if _, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, update, opts); err != nil {
			return fmt.Errorf("store set %s/%s: %w", collection, id, err)
		}
		return nil
	}
	repl := bson.M{"_id": id}
	for k, v := range doc {
		repl[k] = v
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, repl, opts); err != nil {
		return fmt.Errorf("store set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("store delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// fromBSON converts a decoded bson document into a plain Document: bson map
// and array types become plain maps/slices, int32 widens to int64, and the
// _id key is dropped (ids travel in the API path, not the payload).
func fromBSON(raw bson.M) Document {
	out := make(Document, len(raw))
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		out[k] = fromBSONValue(v)
	}
	return out
}

func fromBSONValue(v interface{}) interface{} {
	switch val := v.(type) {
	case bson.M:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = fromBSONValue(item)
		}
		return out
	case bson.D:
		out := make(map[string]interface{}, len(val))
		for _, e := range val {
			out[e.Key] = fromBSONValue(e.Value)
		}
		return out
	case bson.A:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = fromBSONValue(item)
		}
		return out
	case int32:
		return int64(val)
	case primitive.DateTime:
		return val.Time().UTC()
	default:
		return v
	}
}
