package menu

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratusctl/stratus/internal/logging"
	"github.com/stratusctl/stratus/pkg/provider"
	"github.com/stratusctl/stratus/pkg/types"
)

type uploadCall struct {
	bucket, key, local string
}

type downloadCall struct {
	bucket, key, dest string
}

type fakeStorage struct {
	buckets     []types.Bucket
	objects     []types.Object
	exists      map[string]bool
	existsCalls int
	uploads     []uploadCall
	downloads   []downloadCall
	created     []string
	deleted     []string
	deletedKeys map[string][]string
	listErr     error
	existsErr   error
	uploadErr   error
	downloadErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		exists:      make(map[string]bool),
		deletedKeys: make(map[string][]string),
	}
}

func (f *fakeStorage) ListBuckets(ctx context.Context) ([]types.Bucket, error) {
	return f.buckets, f.listErr
}

func (f *fakeStorage) BucketExists(ctx context.Context, bucket string) (bool, error) {
	f.existsCalls++
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.exists[bucket], nil
}

func (f *fakeStorage) ListObjects(ctx context.Context, bucket, prefix string) ([]types.Object, error) {
	return f.objects, nil
}

func (f *fakeStorage) Upload(ctx context.Context, bucket, key, localPath string) (int64, error) {
	if f.uploadErr != nil {
		return 0, f.uploadErr
	}
	f.uploads = append(f.uploads, uploadCall{bucket, key, localPath})
	return 1024, nil
}

func (f *fakeStorage) Download(ctx context.Context, bucket, key, destPath string) (int64, error) {
	if f.downloadErr != nil {
		return 0, f.downloadErr
	}
	f.downloads = append(f.downloads, downloadCall{bucket, key, destPath})
	return 2048, nil
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

type fakeCompute struct {
	instances []types.Instance
	listErr   error
	actionErr error
	starts    []string
	stops     []string
	reboots   []string
}

func (f *fakeCompute) List(ctx context.Context, filter *provider.InstanceFilter) ([]types.Instance, error) {
	return f.instances, f.listErr
}

func (f *fakeCompute) Get(ctx context.Context, nameOrID string) (*types.Instance, error) {
	for i := range f.instances {
		if f.instances[i].ID == nameOrID || f.instances[i].Name == nameOrID {
			return &f.instances[i], nil
		}
	}
	return nil, provider.ErrNotFound
}

func (f *fakeCompute) Start(ctx context.Context, id string) error {
	if f.actionErr != nil {
		return f.actionErr
	}
	f.starts = append(f.starts, id)
	return nil
}

func (f *fakeCompute) Stop(ctx context.Context, id string) error {
	if f.actionErr != nil {
		return f.actionErr
	}
	f.stops = append(f.stops, id)
	return nil
}

func (f *fakeCompute) Reboot(ctx context.Context, id string) error {
	if f.actionErr != nil {
		return f.actionErr
	}
	f.reboots = append(f.reboots, id)
	return nil
}

type fixture struct {
	menu    *Menu
	out     *bytes.Buffer
	logBuf  *bytes.Buffer
	storage *fakeStorage
	compute *fakeCompute
}

func newFixture(t *testing.T, input string) *fixture {
	t.Helper()
	f := &fixture{
		out:     &bytes.Buffer{},
		logBuf:  &bytes.Buffer{},
		storage: newFakeStorage(),
		compute: &fakeCompute{},
	}
	f.menu = New(Options{
		Storage: f.storage,
		Compute: f.compute,
		Logger:  logging.NewWithWriters(f.logBuf, io.Discard),
		In:      strings.NewReader(input),
		Out:     f.out,
		Profile: "test",
		Region:  "us-east-1",
	})
	return f
}

// entries parses the captured log file content back into typed entries
func (f *fixture) entries(t *testing.T) []types.LogEntry {
	t.Helper()
	var entries []types.LogEntry
	for _, line := range strings.Split(strings.TrimSpace(f.logBuf.String()), "\n") {
		if line == "" {
			continue
		}
		e, err := logging.ParseLine(line)
		require.NoError(t, err, "unparseable log line: %q", line)
		entries = append(entries, e)
	}
	return entries
}

func (f *fixture) countLevel(t *testing.T, level types.Level) int {
	t.Helper()
	n := 0
	for _, e := range f.entries(t) {
		if e.Level == level {
			n++
		}
	}
	return n
}

func (f *fixture) lastMessage(t *testing.T, level types.Level) string {
	t.Helper()
	msg := ""
	for _, e := range f.entries(t) {
		if e.Level == level {
			msg = e.Message
		}
	}
	return msg
}

func TestRunExitChoice(t *testing.T) {
	f := newFixture(t, "7\n")

	err := f.menu.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, f.countLevel(t, types.LevelSuccess))
	assert.Contains(t, f.lastMessage(t, types.LevelSuccess), "goodbye")
}

func TestRunInvalidChoicesRedisplayMenu(t *testing.T) {
	f := newFixture(t, "42\nabc\n7\n")

	err := f.menu.Run(context.Background())

	require.NoError(t, err)
	// One menu render per read: two rejected inputs plus the exit
	assert.Equal(t, 3, strings.Count(f.out.String(), "List EC2 instances"))
	assert.Equal(t, 2, f.countLevel(t, types.LevelError))
	assert.Contains(t, f.lastMessage(t, types.LevelError), "invalid option")
	// No operation ran
	assert.Empty(t, f.storage.uploads)
	assert.Empty(t, f.compute.starts)
}

func TestRunEndOfInput(t *testing.T) {
	f := newFixture(t, "")

	err := f.menu.Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, f.lastMessage(t, types.LevelInfo), "input closed")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A reader that never yields a line, so only cancellation can end the read
	blocked, _ := io.Pipe()
	f := &fixture{
		out:     &bytes.Buffer{},
		logBuf:  &bytes.Buffer{},
		storage: newFakeStorage(),
		compute: &fakeCompute{},
	}
	f.menu = New(Options{
		Storage: f.storage,
		Compute: f.compute,
		Logger:  logging.NewWithWriters(f.logBuf, io.Discard),
		In:      blocked,
		Out:     f.out,
	})

	err := f.menu.Run(ctx)

	assert.ErrorIs(t, err, ErrInterrupted)
	assert.Equal(t, 1, f.countLevel(t, types.LevelWarning))
	assert.Contains(t, f.lastMessage(t, types.LevelWarning), "interrupted")
}

func TestRunDispatchesListBuckets(t *testing.T) {
	f := newFixture(t, "1\n7\n")
	f.storage.buckets = []types.Bucket{{Name: "app-assets"}}

	err := f.menu.Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "app-assets")
	// One SUCCESS for the listing, one for the farewell
	assert.Equal(t, 2, f.countLevel(t, types.LevelSuccess))
}

func TestRunHandlerErrorKeepsLooping(t *testing.T) {
	f := newFixture(t, "1\n7\n")
	f.storage.listErr = provider.ErrPermissionDenied

	err := f.menu.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, f.countLevel(t, types.LevelError))
	assert.Equal(t, 1, f.countLevel(t, types.LevelSuccess))
}
