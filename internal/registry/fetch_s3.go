package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Fetcher downloads s3://bucket/key artifacts from any S3-compatible store.
type S3Fetcher struct {
	client *minio.Client
}

// NewS3Fetcher connects to endpoint (host[:port]) with static credentials.
func NewS3Fetcher(endpoint, accessKey, secretKey string, useSSL bool) (*S3Fetcher, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, errors.New("s3 endpoint is empty")
	}
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}
	return &S3Fetcher{client: cli}, nil
}

func (s *S3Fetcher) Fetch(ctx context.Context, src *url.URL, w io.Writer) error {
	bucket := src.Host
	key := strings.TrimPrefix(src.Path, "/")
	if bucket == "" || key == "" {
		return fmt.Errorf("s3 source must look like s3://bucket/key, got %q", src.String())
	}
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return err
	}
	defer obj.Close()
	_, err = io.Copy(w, obj)
	return err
}
