package httpapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/mrled/suns/titlesym/internal/config"
	"github.com/mrled/suns/titlesym/internal/logger"
	"github.com/mrled/suns/titlesym/internal/model"
	"github.com/mrled/suns/titlesym/internal/recordid"
	"github.com/mrled/suns/titlesym/internal/repository"
	"github.com/mrled/suns/titlesym/internal/repository/dynamorepo"
	"github.com/mrled/suns/titlesym/internal/usecase/check"
)

// Handler holds the dependencies for the httpapi Lambda handler
type Handler struct {
	repo         model.CheckRepository
	checkUseCase *check.CheckUseCase
	log          *slog.Logger
}

// CheckRequest represents the expected JSON payload for a check.
// Title is a pointer so a missing field can be told apart from an empty title.
type CheckRequest struct {
	Title *string `json:"title"`
}

// CheckResponse represents the JSON response for a check
type CheckResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Normalized  string `json:"normalized"`
	Symmetrical bool   `json:"symmetrical"`
	Rev         int64  `json:"rev,omitempty"`
}

// RecordResponse is a stored check record as returned by the records endpoint
type RecordResponse struct {
	CheckResponse
	CheckTime time.Time `json:"checkTime"`
}

// NewHandler creates a new httpapi handler backed by DynamoDB, configured from the environment
func NewHandler() (*Handler, error) {
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "httpapi")
	logger.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.DynamoEndpoint != "" {
		log.Info("Using custom DynamoDB endpoint", slog.String("endpoint", cfg.DynamoEndpoint))
	} else {
		log.Info("Using AWS region", slog.String("region", cfg.AWSRegion))
	}
	log.Info("Using DynamoDB table", slog.String("table", cfg.DynamoTable))

	ctx := context.Background()
	client, err := repository.NewDynamoClient(ctx, cfg.DynamoEndpoint)
	if err != nil {
		log.Error("Failed to create DynamoDB client", slog.String("error", err.Error()))
		return nil, err
	}

	repo := dynamorepo.NewDynamoRepository(client, cfg.DynamoTable)
	log.Info("DynamoDB repository initialized", slog.String("table", cfg.DynamoTable))

	return NewHandlerWithRepository(repo, log), nil
}

// NewHandlerWithRepository creates a handler around an existing repository
func NewHandlerWithRepository(repo model.CheckRepository, log *slog.Logger) *Handler {
	return &Handler{
		repo:         repo,
		checkUseCase: check.NewCheckUseCase(repo, log),
		log:          log,
	}
}

func (h *Handler) requestLogger(request events.APIGatewayV2HTTPRequest) *slog.Logger {
	return logger.WithLambda(h.log,
		os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		os.Getenv("AWS_LAMBDA_FUNCTION_VERSION"),
		request.RequestContext.RequestID)
}

// Handle processes API Gateway HTTP requests
func (h *Handler) Handle(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	requestLogger := h.requestLogger(request)

	requestLogger.Info("Incoming request",
		slog.String("method", request.RequestContext.HTTP.Method),
		slog.String("path", request.RequestContext.HTTP.Path),
		slog.String("raw_path", request.RawPath))

	path := request.RequestContext.HTTP.Path
	if path == "" {
		path = request.RawPath
	}
	path = strings.TrimPrefix(path, "/api")

	switch path {
	case "/v1/check":
		return h.handleCheck(ctx, request, requestLogger)
	case "/v1/records":
		return h.handleRecords(ctx, request, requestLogger)
	default:
		requestLogger.Warn("Path not matched", slog.String("path", path))
		return errorResponseV2(http.StatusNotFound, fmt.Sprintf("Unknown endpoint: %s", path))
	}
}

func (h *Handler) handleCheck(ctx context.Context, request events.APIGatewayV2HTTPRequest, log *slog.Logger) (events.APIGatewayV2HTTPResponse, error) {
	switch request.RequestContext.HTTP.Method {
	case http.MethodGet:
		// Query-only check; nothing is stored
		title, ok := request.QueryStringParameters["title"]
		if !ok {
			return errorResponseV2(http.StatusBadRequest, "title query parameter is required")
		}
		record, err := check.NewCheckUseCase(nil, log).Check(ctx, title)
		if err != nil {
			return errorResponseV2(http.StatusInternalServerError, fmt.Sprintf("check failed: %v", err))
		}
		return jsonResponseV2(http.StatusOK, toCheckResponse(record))

	case http.MethodPost:
		body := request.Body
		if request.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(body)
			if err != nil {
				return errorResponseV2(http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
			}
			body = string(decoded)
		}

		var checkReq CheckRequest
		if err := json.Unmarshal([]byte(body), &checkReq); err != nil {
			return errorResponseV2(http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		}
		if checkReq.Title == nil {
			return errorResponseV2(http.StatusBadRequest, "title field is required")
		}

		record, err := h.checkUseCase.Check(ctx, *checkReq.Title)
		if err != nil {
			log.Error("Check failed", slog.String("error", err.Error()))
			return errorResponseV2(http.StatusInternalServerError, fmt.Sprintf("check failed: %v", err))
		}
		return jsonResponseV2(http.StatusOK, toCheckResponse(record))

	default:
		method := request.RequestContext.HTTP.Method
		log.Warn("Method validation failed", slog.String("received_method", method))
		return errorResponseV2(http.StatusMethodNotAllowed, fmt.Sprintf("Method not allowed. Only GET and POST are supported for this endpoint (received: %s)", method))
	}
}

func (h *Handler) handleRecords(ctx context.Context, request events.APIGatewayV2HTTPRequest, log *slog.Logger) (events.APIGatewayV2HTTPResponse, error) {
	method := request.RequestContext.HTTP.Method
	if method != http.MethodGet {
		return errorResponseV2(http.StatusMethodNotAllowed, fmt.Sprintf("Method not allowed. Only GET is supported for this endpoint (received: %s)", method))
	}

	if id, ok := request.QueryStringParameters["id"]; ok {
		return h.handleRecord(ctx, id, log)
	}

	records, err := h.repo.List(ctx)
	if err != nil {
		log.Error("Failed to list records", slog.String("error", err.Error()))
		return errorResponseV2(http.StatusInternalServerError, "failed to list records")
	}

	filter := model.RecordFilter{}
	if title, ok := request.QueryStringParameters["title"]; ok {
		filter.Titles = []string{title}
	}
	switch request.QueryStringParameters["symmetrical"] {
	case "true":
		symmetrical := true
		filter.Symmetrical = &symmetrical
	case "false":
		symmetrical := false
		filter.Symmetrical = &symmetrical
	}

	records = model.FilterRecords(records, filter)
	model.SortRecords(records, request.QueryStringParameters["sort"])

	response := make([]RecordResponse, 0, len(records))
	for _, record := range records {
		response = append(response, RecordResponse{
			CheckResponse: toCheckResponse(record),
			CheckTime:     record.CheckTime,
		})
	}
	return jsonResponseV2(http.StatusOK, response)
}

// handleRecord returns the single record stored under id
func (h *Handler) handleRecord(ctx context.Context, id string, log *slog.Logger) (events.APIGatewayV2HTTPResponse, error) {
	if _, err := recordid.ParseV1(id); err != nil {
		return errorResponseV2(http.StatusBadRequest, fmt.Sprintf("invalid id: %v", err))
	}

	record, err := h.repo.Get(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return errorResponseV2(http.StatusNotFound, fmt.Sprintf("no record with id %s", id))
	}
	if err != nil {
		log.Error("Failed to get record", slog.String("id", id), slog.String("error", err.Error()))
		return errorResponseV2(http.StatusInternalServerError, "failed to get record")
	}

	return jsonResponseV2(http.StatusOK, RecordResponse{
		CheckResponse: toCheckResponse(record),
		CheckTime:     record.CheckTime,
	})
}

func toCheckResponse(record *model.CheckRecord) CheckResponse {
	return CheckResponse{
		ID:          record.ID,
		Title:       record.Title,
		Normalized:  record.Normalized,
		Symmetrical: record.Symmetrical,
		Rev:         record.Rev,
	}
}

// jsonResponseV2 marshals body into a JSON response for API Gateway v2
func jsonResponseV2(statusCode int, body any) (events.APIGatewayV2HTTPResponse, error) {
	responseBody, err := json.Marshal(body)
	if err != nil {
		return errorResponseV2(http.StatusInternalServerError, "failed to generate response")
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       string(responseBody),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

// errorResponseV2 creates a standardized error response for API Gateway v2
func errorResponseV2(statusCode int, message string) (events.APIGatewayV2HTTPResponse, error) {
	errorBody := map[string]string{
		"error": message,
	}
	body, _ := json.Marshal(errorBody)

	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}
