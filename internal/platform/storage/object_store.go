// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage provides S3-compatible object storage for binary media.

Scripture PDFs, chanting audio and discourse video recordings are kept outside
PostgreSQL; the database only stores the object key and public URL. MinIO is
used in development and any S3-compatible service in production.
*/
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// bucketCheckTimeout bounds the startup bucket existence probe.
const bucketCheckTimeout = 5 * time.Second

// ObjectStore is the interface consumed by the content service for media uploads.
type ObjectStore interface {
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// MinioStore implements [ObjectStore] for MinIO / S3-compatible storage.
type MinioStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

// NewMinioStore connects to the object storage endpoint and ensures the bucket exists.
//
// # Parameters
//   - endpoint: Host:port of the S3-compatible service.
//   - accessKey, secretKey: Static credentials.
//   - bucket: Target bucket for all media objects.
//   - publicBaseURL: Base URL prepended to object keys for public links; when
//     empty, callers must use PresignGet instead.
//   - useSSL: Whether to use TLS for the endpoint.
func NewMinioStore(endpoint, accessKey, secretKey, bucket, publicBaseURL string, useSSL bool, logger *slog.Logger) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: failed to init client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), bucketCheckTimeout)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("storage: failed to create bucket: %w", err)
		}
	}

	logger.Info("object_storage_connected",
		slog.String("endpoint", endpoint),
		slog.String("bucket", bucket),
	)

	return &MinioStore{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Put uploads an object and returns its public URL.
func (store *MinioStore) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := store.client.PutObject(ctx, store.bucket, key, reader, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("storage: failed to put object: %w", err)
	}

	if store.publicBaseURL != "" {
		return store.publicBaseURL + "/" + key, nil
	}

	return key, nil
}

// PresignGet generates a pre-signed GET URL for private objects.
func (store *MinioStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	presigned, err := store.client.PresignedGetObject(ctx, store.bucket, key, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("storage: failed to presign get: %w", err)
	}
	return presigned.String(), nil
}

// Ping verifies the bucket is still reachable. Used by the readiness probe.
func (store *MinioStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, bucketCheckTimeout)
	defer cancel()

	exists, err := store.client.BucketExists(ctx, store.bucket)
	if err != nil {
		return fmt.Errorf("storage: bucket check failed: %w", err)
	}
	if !exists {
		return fmt.Errorf("storage: bucket %q is missing", store.bucket)
	}
	return nil
}

// Delete removes an object.
func (store *MinioStore) Delete(ctx context.Context, key string) error {
	if err := store.client.RemoveObject(ctx, store.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("storage: failed to delete object: %w", err)
	}
	return nil
}
