package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/labeltransform/blobstore"
)

var _ blobstore.Store = (*Store)(nil)

// TestMongoStore_Integration requires a running MongoDB instance.
// Skip if not available.
func TestMongoStore_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := Connect(ctx, "")
	if err != nil {
		t.Skipf("MongoDB client creation failed: %v", err)
	}
	if err := db.Client().Ping(ctx, nil); err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}

	coll := db.Collection("blobstore_test")
	_ = coll.Drop(ctx)
	defer func() { _ = coll.Drop(ctx) }()

	store := NewStore(coll)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	require.NoError(t, store.Put(ctx, "model/v000001.ltm", []byte("one")))
	require.NoError(t, store.Put(ctx, "model/v000002.ltm", []byte("two")))
	require.NoError(t, store.Put(ctx, "model.x/v000001.ltm", []byte("other")))
	require.NoError(t, store.Put(ctx, "model/v000001.ltm", []byte("uno")))

	got, err := store.Get(ctx, "model/v000001.ltm")
	require.NoError(t, err)
	assert.Equal(t, "uno", string(got))

	names, err := store.List(ctx, "model/")
	require.NoError(t, err)
	assert.Equal(t, []string{"model/v000001.ltm", "model/v000002.ltm"}, names)

	require.NoError(t, store.Delete(ctx, "model/v000001.ltm"))
	require.NoError(t, store.Delete(ctx, "model/v000001.ltm"))

	names, err = store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"model.x/v000001.ltm", "model/v000002.ltm"}, names)
}
