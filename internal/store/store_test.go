package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	doc := Document{
		"title":   "Our Services",
		"visible": true,
		"order":   int64(3),
		"rating":  4.5,
		"tags":    []interface{}{"lawn", "design"},
		"cta":     map[string]interface{}{"label": "Get a quote", "href": "/contact"},
		"legacy":  nil,
	}
	require.NoError(t, s.Set(ctx, "sections", "hero", doc, false))

	got, err := s.Get(ctx, "sections", "hero")
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	// stored copy must be isolated from caller mutation
	got["title"] = "mutated"
	again, err := s.Get(ctx, "sections", "hero")
	require.NoError(t, err)
	assert.Equal(t, "Our Services", again["title"])
}

func TestMemoryStoreNotFoundIsDistinct(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Get(ctx, "sections", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	// an empty document is a value, not absence
	require.NoError(t, s.Set(ctx, "sections", "empty", Document{}, false))
	got, err := s.Get(ctx, "sections", "empty")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStoreMergePreservesOtherFields(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "sections", "about", Document{"a": int64(1)}, false))
	require.NoError(t, s.Set(ctx, "sections", "about", Document{"b": int64(2)}, true))

	got, err := s.Get(ctx, "sections", "about")
	require.NoError(t, err)
	assert.Equal(t, Document{"a": int64(1), "b": int64(2)}, got)
}

func TestMemoryStoreEmptyMergeIsANoOp(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "sections", "about", Document{"a": int64(1)}, false))
	require.NoError(t, s.Set(ctx, "sections", "about", Document{}, true))

	got, err := s.Get(ctx, "sections", "about")
	require.NoError(t, err)
	assert.Equal(t, Document{"a": int64(1)}, got)

	// merging into an absent id still creates the document
	require.NoError(t, s.Set(ctx, "sections", "fresh", Document{}, true))
	got, err = s.Get(ctx, "sections", "fresh")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStoreMergeReplacesNestedObjectsWholesale(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "sections", "nav", Document{
		"links": map[string]interface{}{"home": "/", "about": "/about"},
	}, false))
	require.NoError(t, s.Set(ctx, "sections", "nav", Document{
		"links": map[string]interface{}{"home": "/"},
	}, true))

	got, err := s.Get(ctx, "sections", "nav")
	require.NoError(t, err)
	links := got["links"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"home": "/"}, links)
}

func TestMemoryStoreFullReplaceDropsOldFields(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "sections", "hero", Document{"a": int64(1), "b": int64(2)}, false))
	require.NoError(t, s.Set(ctx, "sections", "hero", Document{"c": int64(3)}, false))

	got, err := s.Get(ctx, "sections", "hero")
	require.NoError(t, err)
	assert.Equal(t, Document{"c": int64(3)}, got)
}

func TestMemoryStoreDeleteIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "sections", "x", Document{"v": int64(1)}, false))
	require.NoError(t, s.Delete(ctx, "sections", "x"))
	require.NoError(t, s.Delete(ctx, "sections", "x"))
	_, err := s.Get(ctx, "sections", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecodeJSONKeepsIntegersAndFloatsDistinct(t *testing.T) {
	doc, err := DecodeJSON(strings.NewReader(`{"order":7,"price":19.5,"nested":{"count":2},"items":[1,2.5]}`))
	require.NoError(t, err)

	assert.Equal(t, int64(7), doc["order"])
	assert.Equal(t, 19.5, doc["price"])
	nested := doc["nested"].(map[string]interface{})
	assert.Equal(t, int64(2), nested["count"])
	items := doc["items"].([]interface{})
	assert.Equal(t, int64(1), items[0])
	assert.Equal(t, 2.5, items[1])
}

func TestDecodeJSONValueArray(t *testing.T) {
	v, err := DecodeJSONValue(strings.NewReader(`[{"id":"a","order":1},{"id":"b","order":2}]`))
	require.NoError(t, err)

	arr, ok := v.([]interface{})
	require.True(t, ok)
	require.Len(t, arr, 2)
	first := arr[0].(map[string]interface{})
	assert.Equal(t, int64(1), first["order"])
}

func TestMongoStoreReportsMode(t *testing.T) {
	assert.Equal(t, ModePrivileged, NewMongoStore(nil, ModePrivileged).Mode())
	assert.Equal(t, ModeRestricted, NewMongoStore(nil, ModeRestricted).Mode())
}
