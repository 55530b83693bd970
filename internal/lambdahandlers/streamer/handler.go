package streamer

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/mrled/suns/titlesym/internal/adapter/s3snapshot"
	"github.com/mrled/suns/titlesym/internal/config"
	"github.com/mrled/suns/titlesym/internal/logger"
	"github.com/mrled/suns/titlesym/internal/service/applystream"
)

// Handler holds the dependencies for the streamer Lambda handler
type Handler struct {
	streamerService *applystream.Service
	log             *slog.Logger
}

// NewHandler creates a new streamer handler that mirrors the check table into S3
func NewHandler() (*Handler, error) {
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "streamer")
	logger.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateStreamer(); err != nil {
		return nil, err
	}
	log.Info("Using S3 snapshot",
		slog.String("bucket", cfg.S3Bucket),
		slog.String("key", cfg.S3DataKey))

	s3Client, err := s3snapshot.NewClient(context.Background(), cfg.S3Endpoint)
	if err != nil {
		log.Error("Failed to create S3 client", slog.String("error", err.Error()))
		return nil, err
	}

	snapshot := s3snapshot.New(s3Client, cfg.S3Bucket, cfg.S3DataKey)
	return NewHandlerWithSnapshot(snapshot, log), nil
}

// NewHandlerWithSnapshot creates a handler around an existing snapshot store
func NewHandlerWithSnapshot(snapshot applystream.Snapshot, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		streamerService: applystream.New(snapshot),
		log:             log,
	}
}

// Handle processes DynamoDB stream events
func (h *Handler) Handle(ctx context.Context, event events.DynamoDBEvent) error {
	err := h.streamerService.ProcessStreamBatch(ctx, event.Records)
	if err != nil {
		h.log.Error("Stream processing failed",
			slog.String("error", err.Error()),
			slog.Bool("notify", true))
	}
	return err
}
