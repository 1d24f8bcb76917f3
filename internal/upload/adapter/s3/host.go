package s3

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"sharvari-site/internal/upload/config"
	"sharvari-site/internal/upload/domain/model"
	"sharvari-site/internal/upload/domain/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Putter is the part of the S3 client the host needs.
type Putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Host stores images in an S3-compatible bucket served from a public base URL.
type Host struct {
	client     Putter
	bucket     string
	publicBase string
	newKey     func(folder string, file model.File) string
}

// NewHost builds an S3 client from cfg. Static credentials are used when
// both keys are set, otherwise the default AWS credential chain applies.
func NewHost(ctx context.Context, cfg *config.Config) (*Host, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKeyID != "" && cfg.S3SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		o.UsePathStyle = cfg.S3UsePathStyle
	})
	return NewHostWithClient(client, cfg.S3Bucket, cfg.S3PublicBaseURL), nil
}

// NewHostWithClient creates a host on an existing client.
func NewHostWithClient(client Putter, bucket, publicBase string) *Host {
	return &Host{
		client:     client,
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
		newKey:     objectKey,
	}
}

var _ repository.AssetHost = (*Host)(nil)

func (h *Host) Name() string { return "s3" }

func (h *Host) Upload(ctx context.Context, folder string, file model.File) (string, error) {
	key := h.newKey(folder, file)

	_, err := h.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(h.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(file.Data),
		ContentType:   aws.String(file.ContentType),
		ContentLength: aws.Int64(int64(len(file.Data))),
	})
	if err != nil {
		return "", fmt.Errorf("upload failed for %s: %w", file.Name, err)
	}
	return h.publicBase + "/" + key, nil
}

func objectKey(folder string, file model.File) string {
	folder = strings.Trim(folder, "/")
	name := uuid.NewString() + file.Extension()
	if folder == "" {
		return name
	}
	return path.Join(folder, name)
}
