package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/dtroode/authkeeper/internal/model"
)

// minioAPI is the subset of *minio.Client the avatar store uses.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	SetBucketPolicy(ctx context.Context, bucketName, policy string) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

var (
	_ minioAPI      = (*minio.Client)(nil)
	_ model.Storage = (*Client)(nil)
	_ model.Pinger  = (*Client)(nil)
)

// publicReadPolicy lets anonymous clients read objects under avatars/.
const publicReadPolicy = `{
  "Version": "2012-10-17",
  "Statement": [{
    "Effect": "Allow",
    "Principal": {"AWS": ["*"]},
    "Action": ["s3:GetObject"],
    "Resource": ["arn:aws:s3:::%s/avatars/*"]
  }]
}`

// Client stores account assets in a MinIO bucket.
type Client struct {
	api       minioAPI
	bucket    string
	publicURL string
}

// NewClient creates a storage client over a real *minio.Client.
func NewClient(ctx context.Context, client *minio.Client, bucket, publicURL string) (*Client, error) {
	return NewClientWithAPI(ctx, client, bucket, publicURL)
}

// NewClientWithAPI creates a storage client over any minioAPI and makes sure the bucket
// exists and serves avatars publicly.
func NewClientWithAPI(ctx context.Context, api minioAPI, bucket, publicURL string) (*Client, error) {
	c := &Client{
		api:       api,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}

	if err := c.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return c, nil
}

func (c *Client) ensureBucket(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := c.api.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	if err := c.api.SetBucketPolicy(ctx, c.bucket, fmt.Sprintf(publicReadPolicy, c.bucket)); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	return nil
}

// Upload stores size bytes from reader under key.
func (c *Client) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := c.api.PutObject(ctx, c.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "no-cache",
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

// Delete removes the object under key.
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.api.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// URL returns the public address of key.
func (c *Client) URL(key string) string {
	return fmt.Sprintf("%s/%s/%s", c.publicURL, c.bucket, strings.TrimLeft(key, "/"))
}

// Ping checks that the bucket is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.api.BucketExists(ctx, c.bucket); err != nil {
		return fmt.Errorf("failed to reach bucket: %w", err)
	}
	return nil
}
