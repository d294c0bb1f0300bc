package demo

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratusctl/stratus/internal/logging"
	"github.com/stratusctl/stratus/pkg/types"
)

type fakeStorage struct {
	buckets     []types.Bucket
	objects     map[string][]types.Object
	created     []string
	uploaded    map[string][]string // bucket -> keys
	deleted     []string
	deletedKeys map[string][]string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		objects:     make(map[string][]types.Object),
		uploaded:    make(map[string][]string),
		deletedKeys: make(map[string][]string),
	}
}

func (f *fakeStorage) ListBuckets(ctx context.Context) ([]types.Bucket, error) {
	return f.buckets, nil
}

func (f *fakeStorage) BucketExists(ctx context.Context, bucket string) (bool, error) {
	for _, b := range f.buckets {
		if b.Name == bucket {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStorage) ListObjects(ctx context.Context, bucket, prefix string) ([]types.Object, error) {
	return f.objects[bucket], nil
}

func (f *fakeStorage) Upload(ctx context.Context, bucket, key, localPath string) (int64, error) {
	f.uploaded[bucket] = append(f.uploaded[bucket], key)
	return 64, nil
}

func (f *fakeStorage) Download(ctx context.Context, bucket, key, destPath string) (int64, error) {
	return 0, nil
}

func (f *fakeStorage) CreateBucket(ctx context.Context, bucket string) error {
	f.created = append(f.created, bucket)
	return nil
}

func (f *fakeStorage) DeleteBucket(ctx context.Context, bucket string) error {
	f.deleted = append(f.deleted, bucket)
	return nil
}

func (f *fakeStorage) DeleteObjects(ctx context.Context, bucket string, keys []string) error {
	f.deletedKeys[bucket] = append(f.deletedKeys[bucket], keys...)
	return nil
}

func newTestManager(storage *fakeStorage) *Manager {
	return New(storage, logging.NewWithWriters(io.Discard, io.Discard), "")
}

func TestBucketNameEmbedsTimestamp(t *testing.T) {
	m := newTestManager(newFakeStorage())
	m.now = func() time.Time { return time.Unix(1700000000, 0) }

	assert.Equal(t, "stratus-demo-1-1700000000", m.BucketName(1))

	// A later run yields different names for the same index
	m.now = func() time.Time { return time.Unix(1700000099, 0) }
	assert.Equal(t, "stratus-demo-1-1700000099", m.BucketName(1))
}

func TestSetupCreatesAndSeeds(t *testing.T) {
	storage := newFakeStorage()
	m := newTestManager(storage)
	m.now = func() time.Time { return time.Unix(1700000000, 0) }

	created, err := m.Setup(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, created, storage.created)
	for _, name := range created {
		assert.True(t, m.MatchesPrefix(name))
		assert.Equal(t, []string{"welcome.txt"}, storage.uploaded[name])
	}
}

func TestCleanupOnlyTargetsPrefixedBuckets(t *testing.T) {
	storage := newFakeStorage()
	storage.buckets = []types.Bucket{
		{Name: "stratus-demo-1-1700000000"},
		{Name: "stratus-demo-2-1700000000"},
		{Name: "prod-data"},
		{Name: "stratus-demography"}, // shares a prefix substring, not the separator
	}
	m := newTestManager(storage)

	removed, err := m.Cleanup(context.Background())

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"stratus-demo-1-1700000000", "stratus-demo-2-1700000000"}, removed)
	assert.ElementsMatch(t, removed, storage.deleted)
	assert.NotContains(t, storage.deleted, "prod-data")
	assert.NotContains(t, storage.deleted, "stratus-demography")
}

func TestCleanupEmptiesBucketFirst(t *testing.T) {
	storage := newFakeStorage()
	storage.buckets = []types.Bucket{{Name: "stratus-demo-1-1700000000"}}
	storage.objects["stratus-demo-1-1700000000"] = []types.Object{
		{Key: "welcome.txt"},
		{Key: "extra.txt"},
	}
	m := newTestManager(storage)

	removed, err := m.Cleanup(context.Background())

	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.ElementsMatch(t, []string{"welcome.txt", "extra.txt"}, storage.deletedKeys["stratus-demo-1-1700000000"])
}

func TestMatchesPrefix(t *testing.T) {
	m := newTestManager(newFakeStorage())

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"demo bucket", "stratus-demo-1-1700000000", true},
		{"unrelated bucket", "prod-data", false},
		{"prefix without separator", "stratus-demo", false},
		{"prefix substring", "stratus-demography", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.MatchesPrefix(tt.input))
		})
	}
}
