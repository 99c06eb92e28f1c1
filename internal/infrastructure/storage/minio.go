package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/meeting-insights/pkg/config"
)

const transcriptPrefix = "transcripts/"

// MinIOArchive stores transcripts as text objects in a MinIO or S3 bucket
type MinIOArchive struct {
	client *minio.Client
	bucket string
}

// NewMinIOArchive creates the client and makes sure the bucket exists
func NewMinIOArchive(ctx context.Context, cfg config.ArchiveConfig) (*MinIOArchive, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	archive := &MinIOArchive{client: client, bucket: cfg.BucketName}
	if err := archive.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}
	return archive, nil
}

func (m *MinIOArchive) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Put uploads transcript under the identity key. Rewrites of the same key
// replace the object.
func (m *MinIOArchive) Put(ctx context.Context, key, transcript string) (string, error) {
	name := ObjectName(key)
	_, err := m.client.PutObject(ctx, m.bucket, name, strings.NewReader(transcript), int64(len(transcript)),
		minio.PutObjectOptions{
			ContentType: "text/plain; charset=utf-8",
			UserMetadata: map[string]string{
				"archived-at": time.Now().UTC().Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("failed to upload transcript: %w", err)
	}
	return Ref(m.bucket, key), nil
}

// PresignedURL returns a temporary download link for an archived transcript
func (m *MinIOArchive) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, ObjectName(key), expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return u.String(), nil
}

// ObjectName is the object path of the transcript for key
func ObjectName(key string) string {
	return transcriptPrefix + key + ".txt"
}

// Ref is the transcript_ref recorded on results
func Ref(bucket, key string) string {
	return fmt.Sprintf("s3://%s/%s", bucket, ObjectName(key))
}
