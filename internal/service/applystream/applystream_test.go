package applystream

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/mrled/suns/titlesym/internal/adapter/s3snapshot"
	"github.com/mrled/suns/titlesym/internal/model"
	"github.com/mrled/suns/titlesym/internal/repository/memrepo"
)

// fakeSnapshot stands in for the S3 snapshot
type fakeSnapshot struct {
	initial []*model.CheckRecord
	loadErr error
	saved   []*model.CheckRecord
	saves   int
}

func (f *fakeSnapshot) Load(ctx context.Context) (*memrepo.MemoryRepository, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	repo := memrepo.NewMemoryRepository()
	for _, r := range f.initial {
		if err := repo.Replace(ctx, r); err != nil {
			return nil, err
		}
	}
	return repo, nil
}

func (f *fakeSnapshot) Save(ctx context.Context, records []*model.CheckRecord) error {
	f.saved = records
	f.saves++
	return nil
}

func (f *fakeSnapshot) savedByID() map[string]*model.CheckRecord {
	byID := make(map[string]*model.CheckRecord)
	for _, r := range f.saved {
		byID[r.ID] = r
	}
	return byID
}

func streamRecords(t *testing.T, fixture string) []events.DynamoDBEventRecord {
	t.Helper()
	var event events.DynamoDBEvent
	if err := json.Unmarshal([]byte(fixture), &event); err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return event.Records
}

const batchFixture = `{"Records": [
	{
		"eventID": "1",
		"eventName": "INSERT",
		"dynamodb": {
			"Keys": {"PK": {"S": "v1:santa"}, "SK": {"S": "CHECK"}},
			"NewImage": {
				"PK": {"S": "v1:santa"}, "SK": {"S": "CHECK"},
				"Title": {"S": "A Santa at NASA"}, "Normalized": {"S": "asantaatnasa"},
				"Symmetrical": {"BOOL": true}, "CheckTime": {"S": "2025-10-30T12:00:00Z"}, "Rev": {"N": "1"}
			}
		}
	},
	{
		"eventID": "2",
		"eventName": "MODIFY",
		"dynamodb": {
			"Keys": {"PK": {"S": "v1:social"}, "SK": {"S": "CHECK"}},
			"NewImage": {
				"PK": {"S": "v1:social"}, "SK": {"S": "CHECK"},
				"Title": {"S": "Social Media"}, "Normalized": {"S": "socialmedia"},
				"Symmetrical": {"BOOL": false}, "CheckTime": {"S": "2025-10-30T12:00:00Z"}, "Rev": {"N": "5"}
			}
		}
	},
	{
		"eventID": "3",
		"eventName": "REMOVE",
		"dynamodb": {"Keys": {"PK": {"S": "v1:old"}, "SK": {"S": "CHECK"}}}
	},
	{
		"eventID": "4",
		"eventName": "INSERT",
		"dynamodb": {"Keys": {"PK": {"S": "v1:broken"}}, "NewImage": {"PK": {"S": "v1:broken"}}}
	}
]}`

func TestProcessStreamBatch(t *testing.T) {
	snapshot := &fakeSnapshot{
		initial: []*model.CheckRecord{
			{ID: "v1:old", Title: "Old", Rev: 1},
			{ID: "v1:social", Title: "Social Media", Rev: 4},
		},
	}
	service := New(snapshot)

	if err := service.ProcessStreamBatch(context.Background(), streamRecords(t, batchFixture)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snapshot.saves != 1 {
		t.Fatalf("expected 1 save, got %d", snapshot.saves)
	}

	byID := snapshot.savedByID()
	if len(byID) != 2 {
		t.Fatalf("expected 2 records in snapshot, got %d", len(byID))
	}
	if _, ok := byID["v1:old"]; ok {
		t.Error("expected removed record to be gone")
	}
	if r := byID["v1:santa"]; r == nil || !r.Symmetrical || r.Rev != 1 {
		t.Errorf("unexpected inserted record: %+v", r)
	}
	if r := byID["v1:social"]; r == nil || r.Rev != 5 {
		t.Errorf("expected modified record to carry stream Rev 5, got %+v", r)
	}
	if _, ok := byID["v1:broken"]; ok {
		t.Error("expected unconvertible record to be skipped")
	}
}

func TestProcessStreamBatch_MissingSnapshot(t *testing.T) {
	snapshot := &fakeSnapshot{loadErr: s3snapshot.ErrSnapshotMissing}
	service := New(snapshot)

	if err := service.ProcessStreamBatch(context.Background(), streamRecords(t, batchFixture)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snapshot.saved) != 2 {
		t.Errorf("expected 2 records saved from empty start, got %d", len(snapshot.saved))
	}
}

func TestProcessStreamBatch_LoadError(t *testing.T) {
	snapshot := &fakeSnapshot{loadErr: errors.New("access denied")}
	service := New(snapshot)

	if err := service.ProcessStreamBatch(context.Background(), nil); err == nil {
		t.Fatal("expected error when snapshot cannot be loaded")
	}
	if snapshot.saves != 0 {
		t.Errorf("expected no save after load failure, got %d", snapshot.saves)
	}
}
