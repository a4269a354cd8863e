package pkg

import (
	"bytes"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// FileStore stores uploaded blobs and hands back a public URL.
type FileStore interface {
	Upload(key, contentType string, data []byte) (string, error)
}

type S3FileStore struct {
	bucket    string
	publicURL string
	uploader  *s3manager.Uploader
}

type S3Config struct {
	Bucket    string
	Region    string
	PublicURL string // optional CDN/base URL prefix; defaults to the bucket endpoint
}

func NewS3FileStore(cfg S3Config) (*S3FileStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
	})
	if err != nil {
		return nil, err
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3FileStore{
		bucket:    cfg.Bucket,
		publicURL: publicURL,
		uploader:  s3manager.NewUploader(sess),
	}, nil
}

func (s *S3FileStore) Upload(key, contentType string, data []byte) (string, error) {
	_, err := s.uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}
