package memrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/mrled/suns/titlesym/internal/model"
)

// MemoryRepository is an in-memory implementation of CheckRepository optionally backed by a JSON file
type MemoryRepository struct {
	mu       sync.RWMutex
	data     map[string]*model.CheckRecord
	filePath string
}

// NewMemoryRepository creates a new in-memory repository without persistence.
// Data is stored only in memory and will be lost when the process terminates.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		data: make(map[string]*model.CheckRecord),
	}
}

// NewMemoryRepositoryWithPersistence creates a new in-memory repository backed by a JSON file.
// Existing data is loaded from the file on initialization and every change
// (Store, UnconditionalStore, Delete) is written back to it.
func NewMemoryRepositoryWithPersistence(filePath string) (*MemoryRepository, error) {
	repo := &MemoryRepository{
		data:     make(map[string]*model.CheckRecord),
		filePath: filePath,
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	if err := repo.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return repo, nil
}

// NewMemoryRepositoryFromJsonString creates a new in-memory repository initialized with data from a JSON string.
// The repository is not backed by a file and will not persist changes.
func NewMemoryRepositoryFromJsonString(jsonString string) (*MemoryRepository, error) {
	repo := NewMemoryRepository()
	if err := repo.loadFromReader(strings.NewReader(jsonString)); err != nil {
		return nil, err
	}
	return repo, nil
}

// loadFromReader reads JSON data from a reader and populates the in-memory data
func (r *MemoryRepository) loadFromReader(reader io.Reader) error {
	var records []*model.CheckRecord
	if err := json.NewDecoder(reader).Decode(&records); err != nil {
		return fmt.Errorf("failed to decode check records: %w", err)
	}

	r.data = make(map[string]*model.CheckRecord)
	for _, rec := range records {
		// DynamoDB would silently overwrite here, so only warn
		if _, exists := r.data[rec.ID]; exists {
			slog.Warn("Duplicate check record, keeping last occurrence",
				slog.String("id", rec.ID),
				slog.String("title", rec.Title))
		}
		r.data[rec.ID] = rec
	}

	return nil
}

// load reads the JSON file and populates the in-memory data
func (r *MemoryRepository) load() error {
	file, err := os.Open(r.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return err
	}
	if stat.Size() == 0 {
		return nil
	}

	return r.loadFromReader(file)
}

// save writes the in-memory data to the JSON file, sorted by ID for stable diffs.
// If filePath is empty, this is a no-op.
func (r *MemoryRepository) save() error {
	if r.filePath == "" {
		return nil
	}

	records := make([]*model.CheckRecord, 0, len(r.data))
	for _, rec := range r.data {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})

	file, err := os.Create(r.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

// put sets the record under its ID and writes the file.
// When the write fails the previous entry is restored. Callers hold the lock.
func (r *MemoryRepository) put(record *model.CheckRecord) error {
	previous, existed := r.data[record.ID]
	r.data[record.ID] = record

	if err := r.save(); err != nil {
		if existed {
			r.data[record.ID] = previous
		} else {
			delete(r.data, record.ID)
		}
		return err
	}
	return nil
}

// Store saves a new check record
func (r *MemoryRepository) Store(ctx context.Context, record *model.CheckRecord) error {
	if record == nil {
		return errors.New("check record cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[record.ID]; exists {
		return model.ErrAlreadyExists
	}

	rev := record.Rev
	if record.Rev == 0 {
		record.Rev = 1
	}
	if err := r.put(record); err != nil {
		record.Rev = rev
		return err
	}
	return nil
}

// UnconditionalStore saves a check record, replacing any existing one.
// The stored revision is one more than the revision it replaces.
func (r *MemoryRepository) UnconditionalStore(ctx context.Context, record *model.CheckRecord) error {
	if record == nil {
		return errors.New("check record cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rev := record.Rev
	record.Rev = 1
	if existing, exists := r.data[record.ID]; exists {
		record.Rev = existing.Rev + 1
	}

	if err := r.put(record); err != nil {
		record.Rev = rev
		return err
	}
	return nil
}

// Replace saves a check record as-is, keeping its Rev.
// It is used when mirroring records whose revision was assigned elsewhere.
func (r *MemoryRepository) Replace(ctx context.Context, record *model.CheckRecord) error {
	if record == nil {
		return errors.New("check record cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.put(record)
}

// Get retrieves a check record by ID
func (r *MemoryRepository) Get(ctx context.Context, id string) (*model.CheckRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.data[id]
	if !exists {
		return nil, model.ErrNotFound
	}

	return record, nil
}

// List retrieves all check records
func (r *MemoryRepository) List(ctx context.Context) ([]*model.CheckRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.CheckRecord, 0, len(r.data))
	for _, record := range r.data {
		result = append(result, record)
	}

	return result, nil
}

// Delete removes a check record by ID
func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.data[id]
	if !exists {
		return model.ErrNotFound
	}

	delete(r.data, id)
	if err := r.save(); err != nil {
		r.data[id] = existing
		return err
	}
	return nil
}
