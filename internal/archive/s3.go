// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package archive uploads export backups to S3-compatible object storage
// and hands out short-lived download links. It wraps the AWS SDK v2 and is
// configured for path-style access (required by CEPH/Hetzner/MinIO).
package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// DefaultLinkTTL is how long a presigned backup link stays valid.
const DefaultLinkTTL = 15 * time.Minute

// Receipt describes a stored backup.
type Receipt struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Client stores backups in a single private bucket.
type Client struct {
	s3        *s3.Client
	presigner *s3.PresignClient
	bucket    string
	linkTTL   time.Duration
}

// New creates an archive client with path-style addressing. Returns
// (nil, nil) if the endpoint, credentials or bucket are empty, allowing the
// server to start without archive support.
func New(endpoint, region, accessKey, secretKey, bucket string) (*Client, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" || bucket == "" {
		return nil, nil
	}
	if region == "" {
		return nil, fmt.Errorf("archive: region is required when an endpoint is set")
	}

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(strings.TrimRight(endpoint, "/")),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:        s3Client,
		presigner: s3.NewPresignClient(s3Client),
		bucket:    bucket,
		linkTTL:   DefaultLinkTTL,
	}, nil
}

// ObjectKey returns the object key for a vault's backup file.
func ObjectKey(vault, filename string) string {
	return path.Join("backups", vault, path.Base(filename))
}

// Store uploads data as a private object and returns a presigned GET link.
func (c *Client) Store(ctx context.Context, vault, filename, contentType string, data []byte) (Receipt, error) {
	key := ObjectKey(vault, filename)

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(c.bucket),
		Key:                  aws.String(key),
		Body:                 bytes.NewReader(data),
		ContentLength:        aws.Int64(int64(len(data))),
		ContentType:          aws.String(contentType),
		ContentDisposition:   aws.String(`attachment; filename="` + path.Base(filename) + `"`),
		ACL:                  s3types.ObjectCannedACLPrivate,
		ServerSideEncryption: s3types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("s3 upload %s/%s: %w", c.bucket, key, err)
	}

	url, err := c.presign(ctx, key)
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{Key: key, URL: url, ExpiresAt: time.Now().Add(c.linkTTL)}, nil
}

// presign generates a pre-signed GET URL for key.
func (c *Client) presign(ctx context.Context, key string) (string, error) {
	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(c.linkTTL))
	if err != nil {
		return "", fmt.Errorf("s3 presign %s/%s: %w", c.bucket, key, err)
	}
	return req.URL, nil
}

// Bucket returns the configured bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}
