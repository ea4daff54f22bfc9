package infra

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/haneulab/thumbsmith-api/config"
	"github.com/minio/madmin-go/v3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioClient struct {
	Admin    *madmin.AdminClient
	Client   *minio.Client
	Endpoint string
	Bucket   string
}

// InitMinioClient returns nil when storage is not configured. The generate
// handler reports that as a fixed 500 before any external call is made.
func InitMinioClient(cfg *config.EnvConfig) *MinioClient {
	if cfg.Minio.Endpoint == "" || cfg.Minio.RootUser == "" || cfg.Minio.RootPassword == "" {
		log.Println("MinIO not configured, storage operations will be rejected")
		return nil
	}

	madminClient, err := madmin.New(cfg.Minio.Endpoint, cfg.Minio.RootUser, cfg.Minio.RootPassword, cfg.Minio.UseSSL)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO admin client: %v", err))
	}

	minioClient, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.RootUser, cfg.Minio.RootPassword, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO client: %v", err))
	}

	return &MinioClient{
		Admin:    madminClient,
		Client:   minioClient,
		Endpoint: cfg.Minio.Endpoint,
		Bucket:   cfg.Minio.Bucket,
	}
}

// EnsureBucket creates the thumbnail bucket if it does not exist yet.
func (m *MinioClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.Client.BucketExists(ctx, m.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	if err := m.Client.MakeBucket(ctx, m.Bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// UploadObject writes data at objectPath. Overwriting an existing object is
// forbidden: each upload owns a random path and a collision means something
// went wrong upstream.
func (m *MinioClient) UploadObject(ctx context.Context, objectPath string, data []byte, contentType string) error {
	if objectPath == "" {
		return fmt.Errorf("objectPath cannot be empty")
	}

	_, err := m.Client.StatObject(ctx, m.Bucket, objectPath, minio.StatObjectOptions{})
	if err == nil {
		return fmt.Errorf("object already exists at %s", objectPath)
	}
	if resp := minio.ToErrorResponse(err); resp.Code != "NoSuchKey" {
		return fmt.Errorf("failed to check object existence: %w", err)
	}

	_, err = m.Client.PutObject(ctx, m.Bucket, objectPath, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}

	return nil
}

// PresignObjectURL issues a time-limited read URL for an uploaded object.
func (m *MinioClient) PresignObjectURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	if objectPath == "" {
		return "", fmt.Errorf("objectPath cannot be empty")
	}

	signed, err := m.Client.PresignedGetObject(ctx, m.Bucket, objectPath, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign object URL: %w", err)
	}

	return signed.String(), nil
}

// Ping asks the MinIO admin API for server info, used by the health endpoint.
func (m *MinioClient) Ping(ctx context.Context) error {
	if _, err := m.Admin.ServerInfo(ctx); err != nil {
		return fmt.Errorf("storage server unreachable: %w", err)
	}
	return nil
}
