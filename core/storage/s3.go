package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gosimple/slug"

	"appointment-sync/core/config"
	"appointment-sync/core/logger"
)

// Uploader ships export snapshots to an external backup location.
type Uploader interface {
	UploadExport(ctx context.Context, takenAt time.Time, payload []byte) (string, error)
}

type s3Uploader struct {
	client    *s3.Client
	bucket    string
	keyPrefix string
}

func NewS3Uploader(appName string, cfg config.S3Config) Uploader {
	awsCfg := aws.Config{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}
	return &s3Uploader{
		client:    s3.NewFromConfig(awsCfg),
		bucket:    cfg.Bucket,
		keyPrefix: fmt.Sprintf("exports/%s", slug.Make(appName)),
	}
}

func (u *s3Uploader) UploadExport(ctx context.Context, takenAt time.Time, payload []byte) (string, error) {
	key := fmt.Sprintf("%s/%s.json", u.keyPrefix, takenAt.Format("20060102T150405"))

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		logger.Error("Storage:UploadExport:Error:", err, "bucket", u.bucket, "key", key)
		return "", fmt.Errorf("failed to upload export: %w", err)
	}

	logger.Info("Storage:UploadExport:Success", "bucket", u.bucket, "key", key, "bytes", len(payload))
	return key, nil
}
