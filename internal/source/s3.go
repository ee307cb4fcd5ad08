package source

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/ignite/campaign-insights/internal/contact"
)

// S3Loader fetches the contact-log CSV export from S3 and feeds it through
// the CSV loader. Used when the upstream load step drops files in a bucket
// instead of landing a warehouse table.
type S3Loader struct {
	client *s3.Client
	bucket string
	key    string
}

func NewS3Loader(ctx context.Context, cfg S3Config) (*S3Loader, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &S3Loader{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		key:    cfg.Key,
	}, nil
}

func (l *S3Loader) Load(ctx context.Context) ([]contact.RawContactEvent, error) {
	obj, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(l.key),
	})
	if err != nil {
		return nil, fmt.Errorf("fetching s3://%s/%s: %w", l.bucket, l.key, err)
	}
	defer obj.Body.Close()

	log.Printf("[source] loading contact log from s3://%s/%s", l.bucket, l.key)
	return NewCSVLoader(obj.Body, fmt.Sprintf("s3://%s/%s", l.bucket, l.key)).Load(ctx)
}
