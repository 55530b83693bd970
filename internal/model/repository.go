package model

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("check record not found")
	ErrAlreadyExists = errors.New("check record already exists")
)

// CheckRepository defines the interface for storing and retrieving check records
type CheckRepository interface {
	// Store saves a new record, failing with ErrAlreadyExists if the ID is taken
	Store(ctx context.Context, record *CheckRecord) error

	// UnconditionalStore saves a record, replacing any existing one and bumping its Rev
	UnconditionalStore(ctx context.Context, record *CheckRecord) error

	// Get retrieves a record by ID
	Get(ctx context.Context, id string) (*CheckRecord, error)

	// List retrieves all records
	List(ctx context.Context) ([]*CheckRecord, error)

	// Delete removes a record by ID
	Delete(ctx context.Context, id string) error
}
