package recordid

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	// IDVersion is the current version of the record ID algorithm
	IDVersion = "v1"
)

// RecordIDV1 represents a parsed v1 record ID
type RecordIDV1 struct {
	Version   string
	TitleHash string
	Raw       string
}

// String returns the raw record ID string
func (r RecordIDV1) String() string {
	return r.Raw
}

// CalculateV1 derives a record ID from the exact title text.
// The result is formatted as: idversion:base64(sha256(title)).
// Any title is accepted, including the empty string.
func CalculateV1(title string) string {
	titleHash := sha256.Sum256([]byte(title))
	return IDVersion + ":" + base64.StdEncoding.EncodeToString(titleHash[:])
}

// ParseV1 parses a raw record ID string into a RecordIDV1 struct.
// The expected format is: v1:titlehash
func ParseV1(raw string) (RecordIDV1, error) {
	if raw == "" {
		return RecordIDV1{}, fmt.Errorf("record ID cannot be empty")
	}

	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return RecordIDV1{}, fmt.Errorf("invalid record ID format: expected 2 colon-separated parts, got %d", len(parts))
	}

	if parts[0] != IDVersion {
		return RecordIDV1{}, fmt.Errorf("unsupported record ID version: %s (expected %s)", parts[0], IDVersion)
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return RecordIDV1{}, fmt.Errorf("invalid record ID hash: %w", err)
	}
	if len(decoded) != sha256.Size {
		return RecordIDV1{}, fmt.Errorf("invalid record ID hash length: expected %d bytes, got %d", sha256.Size, len(decoded))
	}

	return RecordIDV1{
		Version:   parts[0],
		TitleHash: parts[1],
		Raw:       raw,
	}, nil
}
