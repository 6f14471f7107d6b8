package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"groweasy/internal/config"
)

var ErrDisabled = errors.New("storage: not configured")

// ObjectPutter is the slice of the S3 API used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Resumes stores uploaded resume files in an S3-compatible bucket.
type Resumes struct {
	client  ObjectPutter
	bucket  string
	baseURL string
}

func NewResumes(ctx context.Context, cfg config.StorageConfig) (*Resumes, error) {
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}

	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewResumesWithClient(client, cfg.Bucket, publicBase(cfg)), nil
}

func NewResumesWithClient(client ObjectPutter, bucket, baseURL string) *Resumes {
	return &Resumes{client: client, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}
}

func publicBase(cfg config.StorageConfig) string {
	if cfg.PublicBaseURL != "" {
		return cfg.PublicBaseURL
	}
	if cfg.Endpoint != "" {
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com", cfg.Bucket)
}

// Upload stores a resume under resumes/<user>/<random><ext> and returns its URL.
func (r *Resumes) Upload(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (string, error) {
	if r == nil || r.client == nil {
		return "", ErrDisabled
	}

	ext := strings.ToLower(path.Ext(filename))
	key := fmt.Sprintf("resumes/%s/%s%s", userID, uuid.NewString(), ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload resume: %w", err)
	}
	return r.baseURL + "/" + key, nil
}
