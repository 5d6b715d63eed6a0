package storage

import (
	"context"
	"io"
	"time"
)

// Package storage holds the export audit archive: generated spreadsheet
// exports are retained in an S3-compatible bucket so past exports can be
// audited without replaying queries. Implementations stream only, no local disk.

// PutOptions define optional parameters for archiving objects.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an archived object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	LastModified time.Time
}

// Archive is an S3-compatible retention store for generated exports.
type Archive interface {
	// Put stores an object under the given key using the provided reader.
	Put(ctx context.Context, key string, r io.Reader, size int64, opt PutOptions) (ObjectInfo, error)
	// PresignGet returns a time-limited URL for downloading an archived export.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
