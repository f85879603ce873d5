package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sjmedialabs/vbrlandscap-sub001/internal/config"
	"github.com/sjmedialabs/vbrlandscap-sub001/internal/store"
)

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// OpenStore connects to the document store, choosing the backend by
// configuration availability: the privileged server credential when present,
// otherwise the restricted client credential. Selection happens once at
// startup so behavior is deterministic; callers receive a plain store.Store
// either way.
func OpenStore(ctx context.Context, cfg *config.MongoDBConfig) (*store.MongoStore, *mongo.Client, error) {
	uri := cfg.URI
	mode := store.ModePrivileged
	if uri == "" {
		uri = cfg.PublicURI
		mode = store.ModeRestricted
	}
	if uri == "" {
		return nil, nil, fmt.Errorf("document store not configured: no credential available")
	}
	client, err := ConnectMongo(ctx, uri, cfg.Timeout)
	if err != nil {
		return nil, nil, err
	}
	return store.NewMongoStore(client.Database(cfg.Database), mode), client, nil
}
