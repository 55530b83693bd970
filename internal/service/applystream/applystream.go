package applystream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/mrled/suns/titlesym/internal/adapter/dynamostream"
	"github.com/mrled/suns/titlesym/internal/adapter/s3snapshot"
	"github.com/mrled/suns/titlesym/internal/model"
	"github.com/mrled/suns/titlesym/internal/repository/memrepo"
)

// Snapshot loads and saves the published set of check records
type Snapshot interface {
	Load(ctx context.Context) (*memrepo.MemoryRepository, error)
	Save(ctx context.Context, records []*model.CheckRecord) error
}

// Service applies DynamoDB stream changes to the published snapshot
type Service struct {
	snapshot Snapshot
}

// New creates a new applystream service
func New(snapshot Snapshot) *Service {
	return &Service{
		snapshot: snapshot,
	}
}

// ProcessStreamBatch loads the current snapshot, applies every stream record
// to it in order, and saves it back. Records that fail to apply are logged and
// skipped. The read-modify-write is only safe with a single concurrent invocation.
func (s *Service) ProcessStreamBatch(ctx context.Context, records []events.DynamoDBEventRecord) error {
	slog.Info("Processing batch from DynamoDB stream", slog.Int("record_count", len(records)))

	repo, err := s.loadRepository(ctx)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	processedCount := 0
	for _, record := range records {
		if err := s.processRecord(ctx, repo, record); err != nil {
			slog.Error("Error processing record",
				slog.String("event_id", record.EventID),
				slog.String("error", err.Error()))
			continue
		}
		processedCount++
	}

	allRecords, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	if err := s.snapshot.Save(ctx, allRecords); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	slog.Info("Successfully processed stream batch",
		slog.Int("processed", processedCount),
		slog.Int("total", len(records)),
		slog.Int("snapshot_record_count", len(allRecords)))

	return nil
}

// loadRepository loads the current snapshot, starting empty if none exists yet
func (s *Service) loadRepository(ctx context.Context) (*memrepo.MemoryRepository, error) {
	repo, err := s.snapshot.Load(ctx)
	if errors.Is(err, s3snapshot.ErrSnapshotMissing) {
		slog.Info("No snapshot yet, starting with empty repository")
		return memrepo.NewMemoryRepository(), nil
	}
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// processRecord applies a single DynamoDB stream record
func (s *Service) processRecord(ctx context.Context, repo *memrepo.MemoryRepository, record events.DynamoDBEventRecord) error {
	slog.Debug("Processing record",
		slog.String("event_id", record.EventID),
		slog.String("event_name", record.EventName))

	switch record.EventName {
	case "INSERT", "MODIFY":
		checkRecord, err := dynamostream.ConvertToCheckRecord(record.Change.NewImage)
		if err != nil {
			return fmt.Errorf("failed to convert stream record: %w", err)
		}
		if err := repo.Replace(ctx, checkRecord); err != nil {
			return fmt.Errorf("failed to store record: %w", err)
		}
		slog.Debug("Stored record", slog.String("id", checkRecord.ID), slog.Int64("rev", checkRecord.Rev))
		return nil

	case "REMOVE":
		id := dynamostream.ExtractStringAttribute(record.Change.Keys, "PK")
		if id == "" {
			return fmt.Errorf("missing required key: PK")
		}
		if err := repo.Delete(ctx, id); err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				return fmt.Errorf("failed to delete record: %w", err)
			}
			slog.Debug("Record not found for deletion", slog.String("id", id))
			return nil
		}
		slog.Debug("Removed record", slog.String("id", id))
		return nil

	default:
		return fmt.Errorf("unknown event type: %s", record.EventName)
	}
}
