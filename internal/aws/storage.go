package aws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/stratusctl/stratus/pkg/types"
)

// AWSStorageProvider implements the StorageProvider interface over S3
type AWSStorageProvider struct {
	client *Client
}

// NewStorageProvider creates a new S3-backed storage provider
func NewStorageProvider(client *Client) *AWSStorageProvider {
	return &AWSStorageProvider{client: client}
}

// ListBuckets returns all buckets owned by the caller
func (p *AWSStorageProvider) ListBuckets(ctx context.Context) ([]types.Bucket, error) {
	output, err := p.client.S3.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}

	var buckets []types.Bucket
	for _, b := range output.Buckets {
		bucket := types.Bucket{
			Name:   deref(b.Name),
			Region: p.bucketRegion(ctx, deref(b.Name)),
		}
		if b.CreationDate != nil {
			bucket.CreatedAt = *b.CreationDate
		}
		buckets = append(buckets, bucket)
	}

	return buckets, nil
}

// bucketRegion resolves where a bucket lives. The API reports us-east-1
// as an empty constraint; a failed lookup leaves the region blank rather
// than failing the whole listing.
func (p *AWSStorageProvider) bucketRegion(ctx context.Context, bucket string) string {
	output, err := p.client.S3.GetBucketLocation(ctx, &s3.GetBucketLocationInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return ""
	}
	if output.LocationConstraint == "" {
		return "us-east-1"
	}
	return string(output.LocationConstraint)
}

// BucketExists reports whether the bucket exists and is accessible
func (p *AWSStorageProvider) BucketExists(ctx context.Context, bucket string) (bool, error) {
	_, err := p.client.S3.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		var notFound *s3types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	return true, nil
}

// ListObjects returns objects in a bucket with optional prefix
func (p *AWSStorageProvider) ListObjects(ctx context.Context, bucket, prefix string) ([]types.Object, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	var objects []types.Object
	paginator := s3.NewListObjectsV2Paginator(p.client.S3, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects in %s: %w", bucket, err)
		}
		for _, obj := range page.Contents {
			o := types.Object{
				Key:          deref(obj.Key),
				StorageClass: string(obj.StorageClass),
			}
			if obj.Size != nil {
				o.Size = *obj.Size
			}
			if obj.LastModified != nil {
				o.LastModified = *obj.LastModified
			}
			objects = append(objects, o)
		}
	}

	return objects, nil
}

// Upload copies a local file into the bucket and returns the bytes written
func (p *AWSStorageProvider) Upload(ctx context.Context, bucket, key, localPath string) (int64, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", localPath, err)
	}

	_, err = p.client.S3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upload to s3://%s/%s: %w", bucket, key, err)
	}

	return info.Size(), nil
}

// Download copies an object to a local file and returns the bytes read
func (p *AWSStorageProvider) Download(ctx context.Context, bucket, key, destPath string) (int64, error) {
	output, err := p.client.S3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to download s3://%s/%s: %w", bucket, key, err)
	}
	defer output.Body.Close()

	f, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", destPath, err)
	}
	defer f.Close()

	n, err := io.Copy(f, output.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", destPath, err)
	}

	return n, nil
}

// CreateBucket creates a bucket in the client's region
func (p *AWSStorageProvider) CreateBucket(ctx context.Context, bucket string) error {
	input := &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	}

	// us-east-1 rejects an explicit location constraint
	if region := p.client.region; region != "" && region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(region),
		}
	}

	if _, err := p.client.S3.CreateBucket(ctx, input); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}

	return nil
}

// DeleteBucket removes an empty bucket
func (p *AWSStorageProvider) DeleteBucket(ctx context.Context, bucket string) error {
	_, err := p.client.S3.DeleteBucket(ctx, &s3.DeleteBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return fmt.Errorf("failed to delete bucket %s: %w", bucket, err)
	}

	return nil
}

// DeleteObjects removes the named keys from a bucket
func (p *AWSStorageProvider) DeleteObjects(ctx context.Context, bucket string, keys []string) error {
	// The API caps one request at 1000 keys
	for len(keys) > 0 {
		batch := keys
		if len(batch) > 1000 {
			batch = keys[:1000]
		}
		keys = keys[len(batch):]

		objects := make([]s3types.ObjectIdentifier, 0, len(batch))
		for _, key := range batch {
			objects = append(objects, s3types.ObjectIdentifier{Key: aws.String(key)})
		}

		_, err := p.client.S3.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(bucket),
			Delete: &s3types.Delete{
				Objects: objects,
				Quiet:   aws.Bool(true),
			},
		})
		if err != nil {
			return fmt.Errorf("failed to delete objects from %s: %w", bucket, err)
		}
	}

	return nil
}
