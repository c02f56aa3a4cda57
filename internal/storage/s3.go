package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/felipepalage/agorahora-api/internal/config"
)

type Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewUploader(cfg *config.Config) *Uploader {
	client := s3.New(s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	})

	return &Uploader{
		client:    client,
		bucket:    cfg.S3Bucket,
		publicURL: cfg.S3PublicURL,
	}
}

// UploadLogo grava o logo já normalizado e devolve a URL pública. O nome
// do objeto é um UUID para nunca sobrescrever upload anterior.
func (u *Uploader) UploadLogo(ctx context.Context, establishmentID uint, data []byte) (string, error) {
	key := fmt.Sprintf("logos/%d/%s.webp", establishmentID, uuid.NewString())

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", err
	}

	if u.publicURL != "" {
		return fmt.Sprintf("%s/%s", u.publicURL, key), nil
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", u.bucket, key), nil
}
