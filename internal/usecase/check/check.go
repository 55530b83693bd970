package check

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mrled/suns/titlesym/internal/logger"
	"github.com/mrled/suns/titlesym/internal/model"
	"github.com/mrled/suns/titlesym/internal/recordid"
	"github.com/mrled/suns/titlesym/internal/symmetry"
)

// CheckUseCase runs symmetry checks on titles and records the outcomes
type CheckUseCase struct {
	repo model.CheckRepository
	log  *slog.Logger
	now  func() time.Time
}

// NewCheckUseCase creates a new check use case.
// A nil repository disables persistence; a nil logger uses slog.Default.
func NewCheckUseCase(repo model.CheckRepository, log *slog.Logger) *CheckUseCase {
	if log == nil {
		log = slog.Default()
	}
	return &CheckUseCase{
		repo: repo,
		log:  logger.WithService(log, "check"),
		now:  time.Now,
	}
}

// Check decides whether title is symmetrical and stores the outcome when a
// repository is configured. Re-checking a title replaces its record and bumps Rev.
// The returned record always carries the verdict, even when storing fails.
func (uc *CheckUseCase) Check(ctx context.Context, title string) (*model.CheckRecord, error) {
	result := symmetry.Check(title)

	record := &model.CheckRecord{
		ID:          recordid.CalculateV1(title),
		Title:       result.Title,
		Normalized:  result.Normalized,
		Symmetrical: result.Symmetrical,
		CheckTime:   uc.now().UTC(),
	}

	uc.log.Debug("Checked title",
		slog.String("title", record.Title),
		slog.String("normalized", record.Normalized),
		slog.Bool("symmetrical", record.Symmetrical))

	if uc.repo == nil {
		return record, nil
	}

	if err := uc.repo.UnconditionalStore(ctx, record); err != nil {
		uc.log.Error("Failed to store check record",
			slog.String("id", record.ID),
			slog.String("error", err.Error()))
		return record, fmt.Errorf("failed to store check record for %q: %w", title, err)
	}

	uc.log.Info("Stored check record",
		slog.String("id", record.ID),
		slog.Int64("rev", record.Rev))

	return record, nil
}

// CheckAll checks each title in order, stopping at the first storage error.
// Records checked before the failure are returned along with the error.
func (uc *CheckUseCase) CheckAll(ctx context.Context, titles []string) ([]*model.CheckRecord, error) {
	records := make([]*model.CheckRecord, 0, len(titles))
	for _, title := range titles {
		record, err := uc.Check(ctx, title)
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}
	return records, nil
}
