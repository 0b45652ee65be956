package minio

import (
	"context"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/labeltransform/blobstore"
)

var _ blobstore.Store = (*Store)(nil)

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-labeltransform"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	_, err = client.ListBuckets(ctx)
	if err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	// Ensure bucket exists
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		err = client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
		require.NoError(t, err)
	}

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "model/v000001.ltm", data))

	got, err := store.Get(ctx, "model/v000001.ltm")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "model/")
	require.NoError(t, err)
	assert.Contains(t, names, "model/v000001.ltm")

	require.NoError(t, store.Delete(ctx, "model/v000001.ltm"))

	_, err = store.Get(ctx, "model/v000001.ltm")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	// Deleting twice is fine.
	require.NoError(t, store.Delete(ctx, "model/v000001.ltm"))
}
