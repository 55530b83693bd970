package dynamorepo

import (
	"time"

	"github.com/mrled/suns/titlesym/internal/model"
)

// recordSortKey is the fixed sort key for check records.
// Titles may be empty, and DynamoDB key attributes may not, so the title is not part of the key.
const recordSortKey = "CHECK"

// DynamoDTO represents the persistence layer DTO for DynamoDB
// It maps the domain model to DynamoDB's key structure where:
// - PK (partition key) is the record ID
// - SK (sort key) is the fixed record kind
type DynamoDTO struct {
	PK          string    `dynamodbav:"PK"`
	SK          string    `dynamodbav:"SK"`
	Title       string    `dynamodbav:"Title"`
	Normalized  string    `dynamodbav:"Normalized"`
	Symmetrical bool      `dynamodbav:"Symmetrical"`
	CheckTime   time.Time `dynamodbav:"CheckTime"`
	Rev         int64     `dynamodbav:"Rev"` // Monotonically increasing revision number
}

// ToDomain converts a DynamoDTO to a domain model CheckRecord
func (dto *DynamoDTO) ToDomain() *model.CheckRecord {
	return &model.CheckRecord{
		ID:          dto.PK,
		Title:       dto.Title,
		Normalized:  dto.Normalized,
		Symmetrical: dto.Symmetrical,
		CheckTime:   dto.CheckTime,
		Rev:         dto.Rev,
	}
}

// FromDomain creates a DynamoDTO from a domain model CheckRecord
func FromDomain(record *model.CheckRecord) *DynamoDTO {
	return &DynamoDTO{
		PK:          record.ID,
		SK:          recordSortKey,
		Title:       record.Title,
		Normalized:  record.Normalized,
		Symmetrical: record.Symmetrical,
		CheckTime:   record.CheckTime,
		Rev:         record.Rev,
	}
}

// ToDomainList converts a slice of DynamoDTOs to domain model CheckRecords
func ToDomainList(dtos []*DynamoDTO) []*model.CheckRecord {
	records := make([]*model.CheckRecord, len(dtos))
	for i, dto := range dtos {
		records[i] = dto.ToDomain()
	}
	return records
}
