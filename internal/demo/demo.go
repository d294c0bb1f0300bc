package demo

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/stratusctl/stratus/internal/logging"
	"github.com/stratusctl/stratus/pkg/provider"
)

// DefaultPrefix is the name prefix shared by all demo resources
const DefaultPrefix = "stratus-demo"

const seedKey = "welcome.txt"

// Manager creates and removes throwaway demo buckets
type Manager struct {
	storage provider.StorageProvider
	log     *logging.Logger
	prefix  string
	now     func() time.Time
}

// New creates a manager for demo buckets under the given name prefix
func New(storage provider.StorageProvider, log *logging.Logger, prefix string) *Manager {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Manager{
		storage: storage,
		log:     log,
		prefix:  prefix,
		now:     time.Now,
	}
}

// BucketName builds a demo bucket name <prefix>-<index>-<unix time>.
// The embedded timestamp keeps repeated setup runs from colliding.
func (m *Manager) BucketName(index int) string {
	return fmt.Sprintf("%s-%d-%d", m.prefix, index, m.now().Unix())
}

// MatchesPrefix reports whether name belongs to this manager's demo set
func (m *Manager) MatchesPrefix(name string) bool {
	return strings.HasPrefix(name, m.prefix+"-")
}

// Setup creates count demo buckets, each seeded with one small object,
// and returns the created names.
func (m *Manager) Setup(ctx context.Context, count int) ([]string, error) {
	if count <= 0 {
		count = 1
	}

	seed, err := m.writeSeedFile()
	if err != nil {
		return nil, err
	}
	defer os.Remove(seed)

	var created []string
	for i := 1; i <= count; i++ {
		name := m.BucketName(i)
		if err := m.storage.CreateBucket(ctx, name); err != nil {
			return created, fmt.Errorf("creating bucket %s: %w", name, err)
		}
		if _, err := m.storage.Upload(ctx, name, seedKey, seed); err != nil {
			return created, fmt.Errorf("seeding bucket %s: %w", name, err)
		}
		m.log.Successf("created demo bucket %s", name)
		created = append(created, name)
	}
	return created, nil
}

// Cleanup removes every bucket carrying the demo prefix, emptying each
// one first. Buckets without the prefix are never touched. Returns the
// removed names.
func (m *Manager) Cleanup(ctx context.Context) ([]string, error) {
	buckets, err := m.storage.ListBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing buckets: %w", err)
	}

	var removed []string
	for _, b := range buckets {
		if !m.MatchesPrefix(b.Name) {
			continue
		}

		objects, err := m.storage.ListObjects(ctx, b.Name, "")
		if err != nil {
			return removed, fmt.Errorf("listing objects in %s: %w", b.Name, err)
		}
		if len(objects) > 0 {
			keys := make([]string, 0, len(objects))
			for _, o := range objects {
				keys = append(keys, o.Key)
			}
			if err := m.storage.DeleteObjects(ctx, b.Name, keys); err != nil {
				return removed, fmt.Errorf("emptying bucket %s: %w", b.Name, err)
			}
		}

		if err := m.storage.DeleteBucket(ctx, b.Name); err != nil {
			return removed, fmt.Errorf("deleting bucket %s: %w", b.Name, err)
		}
		m.log.Successf("removed demo bucket %s", b.Name)
		removed = append(removed, b.Name)
	}

	if len(removed) == 0 {
		m.log.Warningf("no demo buckets found")
	}
	return removed, nil
}

func (m *Manager) writeSeedFile() (string, error) {
	f, err := os.CreateTemp("", "stratus-demo-*.txt")
	if err != nil {
		return "", fmt.Errorf("creating seed file: %w", err)
	}
	defer f.Close()

	content := fmt.Sprintf("stratus demo object created at %s\n", m.now().Format(time.RFC3339))
	if _, err := f.WriteString(content); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing seed file: %w", err)
	}
	return f.Name(), nil
}
