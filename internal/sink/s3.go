package sink

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
	config "github.com/thirdweb-dev/freeze/configs"
	"github.com/thirdweb-dev/freeze/internal/metrics"
	"github.com/thirdweb-dev/freeze/internal/schema"
)

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader copies written fragments to a bucket under
// "{prefix}/chain_{chainId}/{datatype}/{file}".
type S3Uploader struct {
	client  putObjectAPI
	bucket  string
	prefix  string
	chainID uint64
}

func NewS3Uploader(ctx context.Context, cfg config.S3Config, chainID uint64) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Override with explicit credentials if provided
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg.Credentials = aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     cfg.AccessKeyID,
				SecretAccessKey: cfg.SecretAccessKey,
			}, nil
		})
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Uploader(client, cfg.Bucket, cfg.Prefix, chainID), nil
}

func newS3Uploader(client putObjectAPI, bucket, prefix string, chainID uint64) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket, prefix: prefix, chainID: chainID}
}

func (u *S3Uploader) Key(d schema.Datatype, label string) string {
	return path.Join(u.prefix, fmt.Sprintf("chain_%d", u.chainID), d.String(), FileName(d, label))
}

// Upload streams the file at localPath to the bucket.
func (u *S3Uploader) Upload(ctx context.Context, localPath string, d schema.Datatype, label string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer file.Close()

	checksum, err := calculateFileChecksum(file)
	if err != nil {
		return fmt.Errorf("failed to calculate file checksum: %w", err)
	}

	key := u.Key(d, label)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String("application/octet-stream"),
		Metadata: map[string]string{
			"chain_id": fmt.Sprintf("%d", u.chainID),
			"datatype": d.String(),
			"label":    label,
			"checksum": checksum,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3: %w", key, err)
	}
	metrics.FilesUploaded.Inc()
	log.Debug().Str("bucket", u.bucket).Str("key", key).Msg("Uploaded parquet file")
	return nil
}

// calculateFileChecksum returns the hex SHA256 of the file and rewinds it.
func calculateFileChecksum(file *os.File) (string, error) {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
