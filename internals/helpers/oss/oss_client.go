package oss

import (
	"context"
	"errors"
	"io"
	"log"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"okr_backend/internals/configs"
)

var ErrNotConfigured = errors.New("oss: storage is not configured")

// Client wraps an S3-compatible bucket. All object keys are virtual paths
// like "folders/<folder>/<file>".
type Client struct {
	mc     *minio.Client
	bucket string
	public string
}

// NewClientFromEnv builds the client from the S3_* settings. Returns
// ErrNotConfigured when no endpoint is set so callers can keep serving
// non-storage endpoints.
func NewClientFromEnv() (*Client, error) {
	if configs.S3Endpoint == "" {
		return nil, ErrNotConfigured
	}

	mc, err := minio.New(configs.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(configs.S3AccessKey, configs.S3SecretKey, ""),
		Secure: configs.S3UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		mc:     mc,
		bucket: configs.S3Bucket,
		public: strings.TrimRight(configs.S3PublicBase, "/"),
	}, nil
}

// PublicURL maps a virtual path to its public URL.
func (c *Client) PublicURL(virtualPath string) string {
	if c == nil || c.public == "" {
		return virtualPath
	}
	return c.public + "/" + strings.TrimLeft(virtualPath, "/")
}

func (c *Client) CreateFile(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if c == nil {
		return ErrNotConfigured
	}
	_, err := c.mc.PutObject(ctx, c.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (c *Client) DeleteFile(ctx context.Context, key string) error {
	if c == nil {
		return ErrNotConfigured
	}
	return c.mc.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{})
}

// MoveFile is copy-then-delete; S3 has no native rename.
func (c *Client) MoveFile(ctx context.Context, srcKey, dstKey string) error {
	if c == nil {
		return ErrNotConfigured
	}
	_, err := c.mc.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: c.bucket, Object: dstKey},
		minio.CopySrcOptions{Bucket: c.bucket, Object: srcKey},
	)
	if err != nil {
		return err
	}
	return c.mc.RemoveObject(ctx, c.bucket, srcKey, minio.RemoveObjectOptions{})
}

// CreateFolder writes a zero-byte marker object ending in "/".
func (c *Client) CreateFolder(ctx context.Context, prefix string) error {
	if c == nil {
		return ErrNotConfigured
	}
	key := strings.TrimRight(prefix, "/") + "/"
	_, err := c.mc.PutObject(ctx, c.bucket, key, strings.NewReader(""), 0, minio.PutObjectOptions{})
	return err
}

// DeleteFolder removes the marker and everything under the prefix.
func (c *Client) DeleteFolder(ctx context.Context, prefix string) error {
	if c == nil {
		return ErrNotConfigured
	}
	prefix = strings.TrimRight(prefix, "/") + "/"

	objectsCh := c.mc.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	for rmErr := range c.mc.RemoveObjects(ctx, c.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rmErr.Err != nil {
			log.Printf("[ERROR] oss: remove %s: %v", rmErr.ObjectName, rmErr.Err)
			return rmErr.Err
		}
	}
	return nil
}

// JoinPath builds a virtual path from segments, keeping single slashes.
func JoinPath(segments ...string) string {
	cleaned := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return path.Join(cleaned...)
}
