package types

import "time"

// Bucket represents an S3 bucket
type Bucket struct {
	Name      string
	Region    string
	CreatedAt time.Time
}

// Object represents an object stored in a bucket
type Object struct {
	Key          string
	Size         int64 // bytes
	LastModified time.Time
	StorageClass string
}
