package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	portssvc "github.com/SscSPs/municipal_tax_app/internal/core/ports/services"
	"github.com/SscSPs/municipal_tax_app/internal/platform/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var _ portssvc.ProofStorage = (*S3ProofStorage)(nil)

// objectPutter is the slice of the S3 client this store needs.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ProofStorage uploads proofs to an S3-compatible bucket (AWS, MinIO and the like).
type S3ProofStorage struct {
	client  objectPutter
	bucket  string
	baseURL string
}

// NewS3ProofStorage builds a client from cfg. Static keys are used when set, otherwise the
// default AWS credential chain applies.
func NewS3ProofStorage(ctx context.Context, cfg config.S3Config) (*S3ProofStorage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.UsePathStyle = true
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	baseURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region)
	if endpoint != "" {
		baseURL = endpoint + "/" + cfg.Bucket
	}
	return newS3ProofStorage(client, cfg.Bucket, baseURL), nil
}

func newS3ProofStorage(client objectPutter, bucket, baseURL string) *S3ProofStorage {
	return &S3ProofStorage{client: client, bucket: bucket, baseURL: baseURL}
}

func (s *S3ProofStorage) Save(ctx context.Context, key, contentType string, size int64, body io.Reader) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload proof %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}
