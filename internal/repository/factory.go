package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/mrled/suns/titlesym/internal/model"
	"github.com/mrled/suns/titlesym/internal/repository/dynamorepo"
	"github.com/mrled/suns/titlesym/internal/repository/memrepo"
)

// RepositoryConfig holds configuration for creating a repository
type RepositoryConfig struct {
	// FilePath for JSON file persistence (ignored when DynamoTable is set)
	FilePath string

	// DynamoTable is the DynamoDB table name for persistence
	DynamoTable string

	// DynamoEndpoint is an optional custom DynamoDB endpoint URL
	DynamoEndpoint string
}

// NewDynamoClient loads the default AWS configuration and creates a DynamoDB client,
// pointing it at endpoint when one is given.
func NewDynamoClient(ctx context.Context, endpoint string) (*dynamodb.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if endpoint != "" {
		return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			o.BaseEndpoint = &endpoint
		}), nil
	}
	return dynamodb.NewFromConfig(awsCfg), nil
}

// NewRepository creates a CheckRepository based on the provided configuration.
// DynamoDB wins over a JSON file; with neither configured the repository is in-memory only.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (model.CheckRepository, error) {
	if cfg.DynamoTable != "" {
		client, err := NewDynamoClient(ctx, cfg.DynamoEndpoint)
		if err != nil {
			return nil, err
		}
		slog.Debug("Using DynamoDB persistence",
			slog.String("table", cfg.DynamoTable),
			slog.String("endpoint", cfg.DynamoEndpoint))
		return dynamorepo.NewDynamoRepository(client, cfg.DynamoTable), nil
	}

	if cfg.FilePath != "" {
		repo, err := memrepo.NewMemoryRepositoryWithPersistence(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create repository: %w", err)
		}
		slog.Debug("Using JSON persistence", slog.String("file", cfg.FilePath))
		return repo, nil
	}

	slog.Debug("Using in-memory persistence")
	return memrepo.NewMemoryRepository(), nil
}
