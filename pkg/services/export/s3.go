package export

import (
	"bytes"
	"context"
	"fmt"
	"path"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultS3Region = "us-east-1"

type s3Writer struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Writer uploads documents to an S3 bucket using the shared AWS config,
// optionally pinned to a named profile.
func NewS3Writer(ctx context.Context, dest Destination, profile string) (Writer, error) {
	options := []func(*config.LoadOptions) error{
		config.WithDefaultRegion(defaultS3Region),
	}
	if profile != "" {
		options = append(options, config.WithSharedConfigProfile(profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	return &s3Writer{
		client: s3.NewFromConfig(awsCfg),
		bucket: dest.Bucket,
		prefix: dest.Prefix,
	}, nil
}

func (w *s3Writer) Write(ctx context.Context, filename string, data []byte) error {
	key := path.Join(w.prefix, filename)
	_, err := w.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      awssdk.String(w.bucket),
		Key:         awssdk.String(key),
		Body:        bytes.NewReader(data),
		ContentType: awssdk.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload s3 object %s/%s: %w", w.bucket, key, err)
	}
	return nil
}
