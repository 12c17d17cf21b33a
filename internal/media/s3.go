// Package media uploads photo content and hands back URLs the backend can
// store on posts and stories. Backends are selected by config.
package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"bee-go/internal/bee"
	"bee-go/internal/config"
)

// S3Store uploads photos to an S3 bucket. Objects are written under the
// configured prefix; the returned URL is either <url_prefix>/<key> or the
// standard bucket endpoint form.
type S3Store struct {
	bucket    string
	prefix    string
	urlPrefix string
	region    string
	client    *s3.Client
	uploader  *manager.Uploader
}

// NewS3Store creates an S3Store from configuration. Credentials come from
// the config when set, otherwise from the default AWS chain (environment,
// shared config, instance role).
func NewS3Store(ctx context.Context, cfg config.MediaConfig) (*S3Store, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("s3 media store requires s3_bucket to be set")
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.S3Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.S3Region))
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Store{
		bucket:    cfg.S3Bucket,
		prefix:    cfg.S3Prefix,
		urlPrefix: strings.TrimSuffix(cfg.S3URLPrefix, "/"),
		region:    awsCfg.Region,
		client:    client,
		uploader:  manager.NewUploader(client),
	}, nil
}

// Put uploads the content and returns its public URL. The manager splits
// large bodies into multipart uploads transparently.
func (s *S3Store) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	objectKey := key
	if s.prefix != "" {
		objectKey = path.Join(s.prefix, key)
	}

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading to s3: %w", err)
	}

	return s.urlFor(objectKey), nil
}

// ValidateSetup verifies the bucket is reachable with the configured
// credentials.
func (s *S3Store) ValidateSetup(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket %s not accessible: %w", s.bucket, err)
	}
	return nil
}

func (s *S3Store) urlFor(objectKey string) string {
	if s.urlPrefix != "" {
		return s.urlPrefix + "/" + objectKey
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, objectKey)
}

// Compile-time check that S3Store implements bee.MediaStore
var _ bee.MediaStore = (*S3Store)(nil)
