package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog/log"

	"venus/config"
	"venus/infras/otel"
	"venus/shared/constant"
)

const (
	otelScopeName   = "s3"
	otelAttrObject  = "object"
	otelAttrBucket  = "bucket"
	jsonContentType = constant.ContentTypeJSON
)

var ErrObjectNotFound = errors.New("object not found")

// S3 stores whole objects under the configured bucket and directory.
type S3 interface {
	GetObject(ctx context.Context, name string) (data []byte, err error)
	PutObject(ctx context.Context, name string, data []byte) (err error)
	DeleteObject(ctx context.Context, name string) (err error)
}

type s3Impl struct {
	Client    *s3.Client
	bucket    string
	directory string
	otel      otel.Otel
}

func (svc *s3Impl) GetObject(ctx context.Context, name string) (data []byte, err error) {
	ctx, scope := svc.otel.NewScope(ctx, otelScopeName, otelScopeName+".GetObject")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{otelAttrObject: name, otelAttrBucket: svc.bucket})

	out, err := svc.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(svc.key(name)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, ErrObjectNotFound
		}

		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer out.Body.Close()

	data, err = io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}

	return data, nil
}

func (svc *s3Impl) PutObject(ctx context.Context, name string, data []byte) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, otelScopeName, otelScopeName+".PutObject")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{otelAttrObject: name, otelAttrBucket: svc.bucket})

	_, err = svc.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket),
		Key:           aws.String(svc.key(name)),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(jsonContentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("failed to put object to S3: %w", err)
	}

	return nil
}

func (svc *s3Impl) DeleteObject(ctx context.Context, name string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, otelScopeName, otelScopeName+".DeleteObject")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{otelAttrObject: name, otelAttrBucket: svc.bucket})

	_, err = svc.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(svc.key(name)),
	})
	if err != nil {
		log.Error().Err(err).Str("object", name).Msg("failed to delete object from S3")

		return fmt.Errorf("failed to delete object from S3: %w", err)
	}

	return nil
}

func (svc *s3Impl) key(name string) string {
	return path.Join(svc.directory, name+".json")
}

func New(config *config.Config, otel otel.Otel) (S3, error) {
	s3Cfg := config.External.S3

	staticProvider := credentials.NewStaticCredentialsProvider(
		s3Cfg.AccessKeyID,
		s3Cfg.SecretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
		awsConfig.WithRegion(s3Cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s3Cfg.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(s3Cfg.APIEndpoint)
			o.UsePathStyle = true
		}
	})

	log.Info().Str("bucket", s3Cfg.BucketName).Str("directory", s3Cfg.Directory).Msg("S3 client initialized")

	return &s3Impl{
		Client:    s3Client,
		bucket:    s3Cfg.BucketName,
		directory: s3Cfg.Directory,
		otel:      otel,
	}, nil
}
