package s3snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/mrled/suns/titlesym/internal/model"
	"github.com/mrled/suns/titlesym/internal/repository/memrepo"
)

// ErrSnapshotMissing is returned by Load when no snapshot object exists yet
var ErrSnapshotMissing = errors.New("snapshot object does not exist")

// S3API is the subset of the S3 client used by the snapshot adapter.
// *s3.Client satisfies it.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Snapshot publishes the full set of check records as one JSON object in S3.
// The object uses the same format as the JSON file repository.
type S3Snapshot struct {
	client       S3API
	bucketName   string
	key          string
	contentType  string
	cacheControl string
}

// New creates a new S3Snapshot adapter
func New(client S3API, bucketName, key string) *S3Snapshot {
	return &S3Snapshot{
		client:       client,
		bucketName:   bucketName,
		key:          key,
		contentType:  "application/json",
		cacheControl: "max-age=60",
	}
}

// Load reads the snapshot from S3 into a new MemoryRepository
func (s *S3Snapshot) Load(ctx context.Context) (*memrepo.MemoryRepository, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, ErrSnapshotMissing
		}
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer result.Body.Close()

	body, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}

	repo, err := memrepo.NewMemoryRepositoryFromJsonString(string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create repository from JSON: %w", err)
	}

	return repo, nil
}

// Save writes records to S3, replacing the previous snapshot
func (s *S3Snapshot) Save(ctx context.Context, records []*model.CheckRecord) error {
	sorted := make([]*model.CheckRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	jsonData, err := json.MarshalIndent(sorted, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucketName),
		Key:          aws.String(s.key),
		Body:         bytes.NewReader(jsonData),
		ContentType:  aws.String(s.contentType),
		CacheControl: aws.String(s.cacheControl),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}

	slog.Info("Successfully updated S3 snapshot",
		slog.String("bucket", s.bucketName),
		slog.String("key", s.key),
		slog.Int("record_count", len(records)))
	return nil
}

// NewClient creates an S3 client from the default AWS configuration.
// A non-empty endpoint switches to path-style addressing for local S3 servers.
func NewClient(ctx context.Context, endpoint string) (*s3.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if endpoint != "" {
		return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}), nil
	}
	return s3.NewFromConfig(awsCfg), nil
}
