package commands

import (
	"context"

	"github.com/mrled/suns/titlesym/internal/config"
	"github.com/mrled/suns/titlesym/internal/model"
	"github.com/mrled/suns/titlesym/internal/repository"
	"github.com/spf13/cobra"
)

// PersistenceFlags holds flags related to persistence and data storage options
type PersistenceFlags struct {
	FilePath       string
	DynamoTable    string
	DynamoEndpoint string
	DryRun         bool
}

// configured reports whether any persistence backend was requested
func (f *PersistenceFlags) configured() bool {
	return f.FilePath != "" || f.DynamoTable != ""
}

// openRepository creates the repository selected by the flags
func (f *PersistenceFlags) openRepository(ctx context.Context) (model.CheckRepository, error) {
	return repository.NewRepository(ctx, repository.RepositoryConfig{
		FilePath:       f.FilePath,
		DynamoTable:    f.DynamoTable,
		DynamoEndpoint: f.DynamoEndpoint,
	})
}

// addPersistenceFlags adds common persistence-related flags to a command.
// Defaults come from TITLESYM_FILE, DYNAMODB_TABLE and DYNAMODB_ENDPOINT.
func addPersistenceFlags(cmd *cobra.Command, flags *PersistenceFlags, withDryRun bool) {
	defaults := &config.Config{}
	if cfg, err := config.Load(); err == nil {
		defaults = cfg
	}

	cmd.Flags().StringVarP(&flags.FilePath, "file", "f", defaults.FilePath, "Path to JSON file for persistence")
	cmd.Flags().StringVarP(&flags.DynamoTable, "dynamodb-table", "t", defaults.DynamoTable, "DynamoDB table name for persistence")
	cmd.Flags().StringVarP(&flags.DynamoEndpoint, "dynamodb-endpoint", "e", defaults.DynamoEndpoint, "DynamoDB endpoint URL (optional, uses AWS SDK default if not specified)")
	if withDryRun {
		cmd.Flags().BoolVarP(&flags.DryRun, "dry-run", "r", false, "Show results without storing them")
	}
}
