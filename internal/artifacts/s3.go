package artifacts

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/facekeeper/internal/imagex"
	"github.com/dmitrijs2005/facekeeper/internal/vision"
)

// S3Config holds the settings for the S3-compatible artifact backend.
// BaseEndpoint makes it usable against MinIO as well as AWS.
type S3Config struct {
	RootUser     string
	RootPassword string
	Bucket       string
	Region       string
	BaseEndpoint string
}

// S3Store keeps artifacts in an object bucket under the same relative keys
// the local backend uses, so a record's reference is meaningful in either
// backend.
type S3Store struct {
	client *s3.Client
	bucket string
}

func NewS3Store(ctx context.Context, conf S3Config) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(conf.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			conf.RootUser, conf.RootPassword, "")))
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if conf.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(conf.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{client: client, bucket: conf.Bucket}, nil
}

func (s *S3Store) SaveImage(ctx context.Context, email string, img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imagex.EncodeJPEG(&buf, img); err != nil {
		return "", err
	}

	key := path.Join(imagesDir, imageName(email))
	if err := s.put(ctx, key, buf.Bytes(), "image/jpeg"); err != nil {
		return "", err
	}
	return key, nil
}

func (s *S3Store) SaveDescriptor(ctx context.Context, email string, d *vision.Descriptor) (string, error) {
	key := path.Join(descriptorsDir, descriptorName(email))
	if err := s.put(ctx, key, vision.MarshalDescriptor(d), "application/octet-stream"); err != nil {
		return "", err
	}
	return key, nil
}

func (s *S3Store) LoadDescriptor(ctx context.Context, ref string) (*vision.Descriptor, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", ref, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ref, err)
	}
	return vision.UnmarshalDescriptor(data)
}

func (s *S3Store) put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
