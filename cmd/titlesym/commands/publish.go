package commands

import (
	"context"
	"fmt"

	"github.com/mrled/suns/titlesym/internal/adapter/s3snapshot"
	"github.com/mrled/suns/titlesym/internal/config"
	"github.com/spf13/cobra"
)

// s3Opener creates the S3 client used by publish
type s3Opener func(ctx context.Context, endpoint string) (s3snapshot.S3API, error)

func openS3(ctx context.Context, endpoint string) (s3snapshot.S3API, error) {
	return s3snapshot.NewClient(ctx, endpoint)
}

func newPublishCmd(open s3Opener) *cobra.Command {
	var flags struct {
		PersistenceFlags
		Bucket     string
		Key        string
		S3Endpoint string
	}

	defaults := &config.Config{S3DataKey: "records/checks.json"}
	if cfg, err := config.Load(); err == nil {
		defaults = cfg
	}

	cmd := &cobra.Command{
		Use:     "publish",
		Short:   "Publish all stored records to S3 as a JSON snapshot",
		GroupID: "records",
		Long: `Write every stored check record to a single JSON object in S3.

The object uses the same format as the --file store, and is kept up to date
afterwards by the streamer lambda.

Examples:
  # Publish records from a local file
  titlesym publish --file ./checks.json --bucket my-bucket

  # Publish records from DynamoDB to a custom key
  titlesym publish --dynamodb-table titlesym --bucket my-bucket --key public/checks.json`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if !flags.configured() {
				return &UsageError{fmt.Errorf("one of --file or --dynamodb-table is required")}
			}
			if flags.Bucket == "" {
				return &UsageError{fmt.Errorf("--bucket is required")}
			}

			repo, err := flags.openRepository(ctx)
			if err != nil {
				return err
			}
			records, err := repo.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list records: %w", err)
			}

			client, err := open(ctx, flags.S3Endpoint)
			if err != nil {
				return err
			}
			snapshot := s3snapshot.New(client, flags.Bucket, flags.Key)
			if err := snapshot.Save(ctx, records); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Published %d records to s3://%s/%s\n", len(records), flags.Bucket, flags.Key)
			return nil
		},
	}

	addPersistenceFlags(cmd, &flags.PersistenceFlags, false)
	cmd.Flags().StringVar(&flags.Bucket, "bucket", defaults.S3Bucket, "S3 bucket to publish to")
	cmd.Flags().StringVar(&flags.Key, "key", defaults.S3DataKey, "S3 object key for the snapshot")
	cmd.Flags().StringVar(&flags.S3Endpoint, "s3-endpoint", defaults.S3Endpoint, "S3 endpoint URL (optional, uses AWS SDK default if not specified)")

	return cmd
}
