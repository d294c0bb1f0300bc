package provider

import (
	"context"
	"errors"

	"github.com/stratusctl/stratus/pkg/types"
)

// Common errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrNotConfigured    = errors.New("credentials not configured")
	ErrAuthFailed       = errors.New("authentication failed")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotSupported     = errors.New("operation not supported")
)

// InstanceFilter contains filters for instance listing
type InstanceFilter struct {
	Name   string                // Name tag pattern
	States []types.InstanceState // instance-state-name values
}

// ComputeProvider defines the interface for EC2 instance operations
type ComputeProvider interface {
	// List returns instances matching the filter
	List(ctx context.Context, filter *InstanceFilter) ([]types.Instance, error)

	// Get returns a single instance by ID or Name tag
	Get(ctx context.Context, nameOrID string) (*types.Instance, error)

	// Start starts a stopped instance
	Start(ctx context.Context, id string) error

	// Stop stops a running instance
	Stop(ctx context.Context, id string) error

	// Reboot reboots an instance regardless of state
	Reboot(ctx context.Context, id string) error
}

// StorageProvider defines the interface for S3 operations
type StorageProvider interface {
	// ListBuckets returns all buckets owned by the caller
	ListBuckets(ctx context.Context) ([]types.Bucket, error)

	// BucketExists reports whether the bucket exists and is accessible
	BucketExists(ctx context.Context, bucket string) (bool, error)

	// ListObjects returns objects in a bucket with optional prefix
	ListObjects(ctx context.Context, bucket, prefix string) ([]types.Object, error)

	// Upload copies a local file to a bucket and returns the bytes written
	Upload(ctx context.Context, bucket, key, localPath string) (int64, error)

	// Download copies an object to a local file and returns the bytes read
	Download(ctx context.Context, bucket, key, destPath string) (int64, error)

	// CreateBucket creates a bucket in the client's region
	CreateBucket(ctx context.Context, bucket string) error

	// DeleteBucket removes an empty bucket
	DeleteBucket(ctx context.Context, bucket string) error

	// DeleteObjects removes the named keys from a bucket
	DeleteObjects(ctx context.Context, bucket string, keys []string) error
}

// IdentityProvider defines the credential-health probe
type IdentityProvider interface {
	// WhoAmI returns the identity behind the configured credentials
	WhoAmI(ctx context.Context) (*types.CallerIdentity, error)
}
