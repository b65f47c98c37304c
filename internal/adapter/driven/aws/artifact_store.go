package aws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/diillson/retail-report-go/internal/domain/repository"
)

var errNoBucket = errors.New("no S3 bucket configured")

// PutObjectAPI é a parte do cliente S3 usada para enviar os artefatos.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ArtifactStore implementa o ArtifactStore enviando os relatórios para um bucket S3.
// O cliente é criado na primeira chamada e reutilizado depois.
type S3ArtifactStore struct {
	bucket  string
	prefix  string
	profile string
	region  string

	client PutObjectAPI
	mu     sync.Mutex
}

// NewS3ArtifactStore cria um ArtifactStore que carrega as credenciais do perfil informado.
func NewS3ArtifactStore(bucket, prefix, profile, region string) repository.ArtifactStore {
	return &S3ArtifactStore{bucket: bucket, prefix: prefix, profile: profile, region: region}
}

// NewS3ArtifactStoreWithClient usa um cliente já configurado.
func NewS3ArtifactStoreWithClient(client PutObjectAPI, bucket, prefix string) *S3ArtifactStore {
	return &S3ArtifactStore{bucket: bucket, prefix: prefix, client: client}
}

func (s *S3ArtifactStore) getClient(ctx context.Context) (PutObjectAPI, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	var opts []func(*config.LoadOptions) error
	if s.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(s.profile))
	}
	if s.region != "" {
		opts = append(opts, config.WithRegion(s.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for profile %s: %w", s.profile, err)
	}

	s.client = s3.NewFromConfig(cfg)
	return s.client, nil
}

// Put envia body em <prefix>/<key> e retorna a URI s3:// do objeto.
func (s *S3ArtifactStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if s.bucket == "" {
		return "", errNoBucket
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	objectKey := strings.TrimPrefix(path.Join(s.prefix, key), "/")
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("error uploading %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, objectKey), nil
}
