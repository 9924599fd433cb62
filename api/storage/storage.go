package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"

	"Yatube/api/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Store persists uploaded media and returns the location clients load it from.
type Store interface {
	Save(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// LocalStore writes files below Root; they are served under URL.
type LocalStore struct {
	Root string
	URL  string
}

func NewLocalStore(root, url string) *LocalStore {
	return &LocalStore{Root: root, URL: url}
}

func (s *LocalStore) Save(_ context.Context, key, _ string, data []byte) (string, error) {
	dst := filepath.Join(s.Root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", err
	}
	return path.Join("/", s.URL, key), nil
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads to a bucket and hands out public object URLs.
type S3Store struct {
	Client putObjectAPI
	Bucket string
	Region string
}

// NewS3Store loads AWS config using the default credential chain.
func NewS3Store(ctx context.Context, bucket, region string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return &S3Store{Client: client, Bucket: bucket, Region: region}, nil
}

func (s *S3Store) Save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %s: %w", key, err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.Bucket, s.Region, key), nil
}

// FromConfig picks S3 when a bucket is configured and the local media
// directory otherwise.
func FromConfig(ctx context.Context, cfg config.Config) Store {
	if cfg.S3Bucket != "" {
		store, err := NewS3Store(ctx, cfg.S3Bucket, cfg.AWSRegion)
		if err == nil {
			return store
		}
		log.Printf("[storage] falling back to %s: %v", cfg.MediaRoot, err)
	}
	return NewLocalStore(cfg.MediaRoot, cfg.MediaURL)
}
