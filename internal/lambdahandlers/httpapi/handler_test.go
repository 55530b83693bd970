package httpapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/mrled/suns/titlesym/internal/model"
	"github.com/mrled/suns/titlesym/internal/repository/memrepo"
)

func newTestHandler() (*Handler, *memrepo.MemoryRepository) {
	repo := memrepo.NewMemoryRepository()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandlerWithRepository(repo, log), repo
}

func request(method, path, body string, query map[string]string) events.APIGatewayV2HTTPRequest {
	req := events.APIGatewayV2HTTPRequest{
		RawPath:               path,
		Body:                  body,
		QueryStringParameters: query,
	}
	req.RequestContext.HTTP.Method = method
	req.RequestContext.HTTP.Path = path
	req.RequestContext.RequestID = "req-1"
	return req
}

func decodeCheck(t *testing.T, resp events.APIGatewayV2HTTPResponse) CheckResponse {
	t.Helper()
	var out CheckResponse
	if err := json.Unmarshal([]byte(resp.Body), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", resp.Body, err)
	}
	return out
}

func TestHandle_PostCheck(t *testing.T) {
	h, repo := newTestHandler()
	ctx := context.Background()

	tests := []struct {
		body       string
		normalized string
		expected   bool
	}{
		{`{"title": "A Santa at NASA"}`, "asantaatnasa", true},
		{`{"title": "Social Media"}`, "socialmedia", false},
		{`{"title": ""}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			resp, err := h.Handle(ctx, request("POST", "/api/v1/check", tt.body, nil))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.StatusCode != 200 {
				t.Fatalf("expected 200, got %d: %s", resp.StatusCode, resp.Body)
			}
			out := decodeCheck(t, resp)
			if out.Symmetrical != tt.expected {
				t.Errorf("expected symmetrical=%v, got %v", tt.expected, out.Symmetrical)
			}
			if out.Normalized != tt.normalized {
				t.Errorf("expected normalized %q, got %q", tt.normalized, out.Normalized)
			}
			if out.Rev != 1 {
				t.Errorf("expected rev 1, got %d", out.Rev)
			}
		})
	}

	records, _ := repo.List(ctx)
	if len(records) != 3 {
		t.Errorf("expected 3 stored records, got %d", len(records))
	}
}

func TestHandle_PostCheckBase64(t *testing.T) {
	h, _ := newTestHandler()

	req := request("POST", "/v1/check", base64.StdEncoding.EncodeToString([]byte(`{"title": "ab ba"}`)), nil)
	req.IsBase64Encoded = true

	resp, _ := h.Handle(context.Background(), req)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, resp.Body)
	}
	if out := decodeCheck(t, resp); !out.Symmetrical || out.Normalized != "abba" {
		t.Errorf("unexpected response: %+v", out)
	}
}

func TestHandle_PostCheckBadRequests(t *testing.T) {
	h, _ := newTestHandler()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"title":`},
		{"missing title", `{"name": "Taco cat"}`},
		{"wrong type", `{"title": 42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := h.Handle(context.Background(), request("POST", "/v1/check", tt.body, nil))
			if resp.StatusCode != 400 {
				t.Errorf("expected 400, got %d: %s", resp.StatusCode, resp.Body)
			}
			var body map[string]string
			if err := json.Unmarshal([]byte(resp.Body), &body); err != nil || body["error"] == "" {
				t.Errorf("expected JSON error body, got %q", resp.Body)
			}
		})
	}
}

func TestHandle_GetCheckDoesNotStore(t *testing.T) {
	h, repo := newTestHandler()
	ctx := context.Background()

	resp, _ := h.Handle(ctx, request("GET", "/v1/check", "", map[string]string{"title": "Taco cat"}))
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, resp.Body)
	}
	if out := decodeCheck(t, resp); !out.Symmetrical {
		t.Errorf("expected symmetrical response, got %+v", out)
	}

	records, _ := repo.List(ctx)
	if len(records) != 0 {
		t.Errorf("expected nothing stored, got %d records", len(records))
	}

	resp, _ = h.Handle(ctx, request("GET", "/v1/check", "", nil))
	if resp.StatusCode != 400 {
		t.Errorf("expected 400 without title, got %d", resp.StatusCode)
	}
}

func TestHandle_MethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler()

	resp, _ := h.Handle(context.Background(), request("DELETE", "/v1/check", "", nil))
	if resp.StatusCode != 405 {
		t.Errorf("expected 405, got %d", resp.StatusCode)
	}

	resp, _ = h.Handle(context.Background(), request("POST", "/v1/records", "", nil))
	if resp.StatusCode != 405 {
		t.Errorf("expected 405, got %d", resp.StatusCode)
	}
}

func TestHandle_UnknownPath(t *testing.T) {
	h, _ := newTestHandler()

	resp, _ := h.Handle(context.Background(), request("GET", "/v1/nothing", "", nil))
	if resp.StatusCode != 404 {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHandle_Records(t *testing.T) {
	h, _ := newTestHandler()
	ctx := context.Background()

	for _, title := range []string{"Social Media", "A Santa at NASA", "Taco cat"} {
		body, _ := json.Marshal(map[string]string{"title": title})
		if resp, _ := h.Handle(ctx, request("POST", "/v1/check", string(body), nil)); resp.StatusCode != 200 {
			t.Fatalf("failed to seed %q: %s", title, resp.Body)
		}
	}

	resp, _ := h.Handle(ctx, request("GET", "/v1/records", "", map[string]string{"symmetrical": "true"}))
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, resp.Body)
	}

	var records []RecordResponse
	if err := json.Unmarshal([]byte(resp.Body), &records); err != nil {
		t.Fatalf("failed to decode records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 symmetrical records, got %d", len(records))
	}
	if records[0].Title != "A Santa at NASA" || records[1].Title != "Taco cat" {
		t.Errorf("unexpected record order: %q, %q", records[0].Title, records[1].Title)
	}
}

// brokenRepo fails every list call
type brokenRepo struct {
	*memrepo.MemoryRepository
}

func (brokenRepo) List(ctx context.Context) ([]*model.CheckRecord, error) {
	return nil, errors.New("unavailable")
}

func TestHandle_RecordsStorageError(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandlerWithRepository(brokenRepo{memrepo.NewMemoryRepository()}, log)

	resp, _ := h.Handle(context.Background(), request("GET", "/v1/records", "", nil))
	if resp.StatusCode != 500 {
		t.Errorf("expected 500, got %d", resp.StatusCode)
	}
}

func TestHandle_RecordByID(t *testing.T) {
	h, _ := newTestHandler()
	ctx := context.Background()

	resp, _ := h.Handle(ctx, request("POST", "/v1/check", `{"title": "Taco cat"}`, nil))
	created := decodeCheck(t, resp)

	resp, _ = h.Handle(ctx, request("GET", "/v1/records", "", map[string]string{"id": created.ID}))
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, resp.Body)
	}
	var record RecordResponse
	if err := json.Unmarshal([]byte(resp.Body), &record); err != nil {
		t.Fatalf("failed to decode record: %v", err)
	}
	if record.Title != "Taco cat" || !record.Symmetrical || record.CheckTime.IsZero() {
		t.Errorf("unexpected record %+v", record)
	}

	// Well-formed ID that was never stored: sha256 of the empty title
	resp, _ = h.Handle(ctx, request("GET", "/v1/records", "", map[string]string{"id": "v1:47DEQpj8HBSa+/TImW+5JCeuQeRkm5NMpJWZG3hSuFU="}))
	if resp.StatusCode != 404 {
		t.Errorf("expected 404 for unknown id, got %d", resp.StatusCode)
	}

	resp, _ = h.Handle(ctx, request("GET", "/v1/records", "", map[string]string{"id": "v2:nope"}))
	if resp.StatusCode != 400 {
		t.Errorf("expected 400 for malformed id, got %d", resp.StatusCode)
	}
}
