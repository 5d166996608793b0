package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/config"
)

// PutObjectAPI is the subset of *s3.Client the archive needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 writes transcripts as JSON objects to an S3 compatible bucket.
type S3 struct {
	client PutObjectAPI
	bucket string
}

// NewS3 builds an S3 archiver from config. Static credentials are used when
// both keys are set, otherwise the default AWS credential chain applies.
// A custom endpoint switches to path-style addressing for MinIO and friends.
func NewS3(ctx context.Context, cfg config.ArchiveConfig) (*S3, error) {
	opts := []func(*awscfg.LoadOptions) error{awscfg.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsConfig, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("archive: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3WithClient(client, cfg.Bucket), nil
}

// NewS3WithClient wraps an existing client.
func NewS3WithClient(client PutObjectAPI, bucket string) *S3 {
	return &S3{client: client, bucket: bucket}
}

func (a *S3) Put(ctx context.Context, t Transcript) error {
	body, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("archive: encode transcript: %w", err)
	}

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(t.Key()),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("archive: put %s: %w", t.Key(), err)
	}
	return nil
}
