package dynamostream

import (
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/mrled/suns/titlesym/internal/model"
)

// ConvertToCheckRecord converts a DynamoDB stream NewImage map to a CheckRecord.
// The attribute names match dynamorepo.DynamoDTO.
func ConvertToCheckRecord(newImage map[string]events.DynamoDBAttributeValue) (*model.CheckRecord, error) {
	if newImage == nil {
		return nil, fmt.Errorf("newImage is nil")
	}

	record := &model.CheckRecord{}

	record.ID = ExtractStringAttribute(newImage, "PK")
	if record.ID == "" {
		return nil, fmt.Errorf("missing required field: ID (PK)")
	}

	// Title may legitimately be empty, but it must be present
	title, ok := newImage["Title"]
	if !ok || title.DataType() != events.DataTypeString {
		return nil, fmt.Errorf("missing required field: Title")
	}
	record.Title = title.String()
	record.Normalized = ExtractStringAttribute(newImage, "Normalized")

	symmetrical, ok := newImage["Symmetrical"]
	if !ok || symmetrical.DataType() != events.DataTypeBoolean {
		return nil, fmt.Errorf("missing required field: Symmetrical")
	}
	record.Symmetrical = symmetrical.Boolean()

	checkTime := ExtractStringAttribute(newImage, "CheckTime")
	if checkTime == "" {
		return nil, fmt.Errorf("missing required field: CheckTime")
	}
	t, err := time.Parse(time.RFC3339Nano, checkTime)
	if err != nil {
		return nil, fmt.Errorf("invalid CheckTime format: %w", err)
	}
	record.CheckTime = t

	if rev, ok := newImage["Rev"]; ok && rev.DataType() == events.DataTypeNumber {
		n, err := rev.Integer()
		if err != nil {
			return nil, fmt.Errorf("invalid Rev: %w", err)
		}
		record.Rev = n
	}

	return record, nil
}

// ExtractStringAttribute extracts a string value from DynamoDB attribute map
func ExtractStringAttribute(attrs map[string]events.DynamoDBAttributeValue, key string) string {
	if attr, ok := attrs[key]; ok {
		if attr.DataType() == events.DataTypeString {
			return attr.String()
		}
	}
	return ""
}
