package services

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog/log"
)

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// BackupUploader stores database snapshots in an S3 bucket.
type BackupUploader struct {
	client objectPutter
	bucket string
	prefix string
}

// NewBackupUploader builds an uploader from the default AWS credential chain.
func NewBackupUploader(ctx context.Context, cfg config.BackupConfig) (*BackupUploader, error) {
	if cfg.Bucket == "" {
		return nil, errs.NewConfigMissingError("BACKUP_S3_BUCKET")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &BackupUploader{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// Upload writes body under prefix/name and returns the object key.
func (u *BackupUploader) Upload(ctx context.Context, name string, body io.Reader) (string, error) {
	key := path.Join(u.prefix, name)
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String("application/vnd.sqlite3"),
	})
	if err != nil {
		return "", fmt.Errorf("upload s3://%s/%s: %w", u.bucket, key, err)
	}
	log.Info().Str("bucket", u.bucket).Str("key", key).Msg("Uploaded database snapshot")
	return key, nil
}
