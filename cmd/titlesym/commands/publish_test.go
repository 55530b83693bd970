package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mrled/suns/titlesym/internal/adapter/s3snapshot"
	"github.com/mrled/suns/titlesym/internal/model"
)

type memoryS3 struct {
	objects map[string][]byte
}

func (m *memoryS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := m.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, errors.New("no such key")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (m *memoryS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	m.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func runPublish(t *testing.T, client *memoryS3, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"TITLESYM_FILE", "DYNAMODB_TABLE", "DYNAMODB_ENDPOINT", "S3_BUCKET", "S3_ENDPOINT", "S3_DATA_KEY"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	var stdout bytes.Buffer
	cmd := newPublishCmd(func(ctx context.Context, endpoint string) (s3snapshot.S3API, error) {
		return client, nil
	})
	cmd.SetOut(&stdout)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestPublish(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checks.json")
	if _, err := runCmd(t, "check", "--file", path, "Taco cat", "Social Media"); err != nil {
		t.Fatalf("check failed: %v", err)
	}

	client := &memoryS3{objects: map[string][]byte{}}
	out, err := runPublish(t, client, "--file", path, "--bucket", "public")
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if !strings.Contains(out, "Published 2 records to s3://public/records/checks.json") {
		t.Errorf("unexpected output %q", out)
	}

	data, ok := client.objects["public/records/checks.json"]
	if !ok {
		t.Fatal("expected snapshot object to be written")
	}
	var records []*model.CheckRecord
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records in snapshot, got %d", len(records))
	}
}

func TestPublish_Errors(t *testing.T) {
	client := &memoryS3{objects: map[string][]byte{}}
	var usageErr *UsageError

	if _, err := runPublish(t, client, "--bucket", "public"); !errors.As(err, &usageErr) {
		t.Errorf("expected UsageError without persistence flags, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "checks.json")
	if _, err := runPublish(t, client, "--file", path); !errors.As(err, &usageErr) {
		t.Errorf("expected UsageError without bucket, got %v", err)
	}
	if len(client.objects) != 0 {
		t.Error("expected nothing to be published")
	}
}
