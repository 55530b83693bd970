package dynamorepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/mrled/suns/titlesym/internal/model"
)

// DynamoAPI is the subset of the DynamoDB client used by the repository.
// *dynamodb.Client satisfies it.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoRepository is a DynamoDB implementation of CheckRepository
type DynamoRepository struct {
	client    DynamoAPI
	tableName string
}

// NewDynamoRepository creates a new DynamoDB-backed repository
func NewDynamoRepository(client DynamoAPI, tableName string) *DynamoRepository {
	return &DynamoRepository{
		client:    client,
		tableName: tableName,
	}
}

func keyFor(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: id},
		"SK": &types.AttributeValueMemberS{Value: recordSortKey},
	}
}

func isConditionalCheckFailed(err error) bool {
	var ccfe *types.ConditionalCheckFailedException
	return errors.As(err, &ccfe)
}

// Store saves a new check record to DynamoDB
func (r *DynamoRepository) Store(ctx context.Context, record *model.CheckRecord) error {
	if record == nil {
		return fmt.Errorf("check record cannot be nil")
	}

	if record.Rev == 0 {
		record.Rev = 1
	}

	item, err := attributevalue.MarshalMap(FromDomain(record))
	if err != nil {
		return fmt.Errorf("failed to marshal check record: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("failed to store check record: %w", err)
	}

	return nil
}

// UnconditionalStore writes a check record whether or not it already exists,
// atomically incrementing its revision number.
func (r *DynamoRepository) UnconditionalStore(ctx context.Context, record *model.CheckRecord) error {
	if record == nil {
		return fmt.Errorf("check record cannot be nil")
	}

	dto := FromDomain(record)
	values, err := attributevalue.MarshalMap(map[string]any{
		":title":       dto.Title,
		":normalized":  dto.Normalized,
		":symmetrical": dto.Symmetrical,
		":checkTime":   dto.CheckTime,
		":rev":         int64(1),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal check record: %w", err)
	}

	result, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              keyFor(record.ID),
		UpdateExpression: aws.String("SET #title = :title, #normalized = :normalized, #symmetrical = :symmetrical, #checkTime = :checkTime ADD #rev :rev"),
		ExpressionAttributeNames: map[string]string{
			"#title":       "Title",
			"#normalized":  "Normalized",
			"#symmetrical": "Symmetrical",
			"#checkTime":   "CheckTime",
			"#rev":         "Rev",
		},
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return fmt.Errorf("failed to store check record: %w", err)
	}

	var stored DynamoDTO
	if err := attributevalue.UnmarshalMap(result.Attributes, &stored); err != nil {
		return fmt.Errorf("failed to unmarshal stored check record: %w", err)
	}
	record.Rev = stored.Rev

	return nil
}

// Get retrieves a check record by ID from DynamoDB
func (r *DynamoRepository) Get(ctx context.Context, id string) (*model.CheckRecord, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       keyFor(id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get check record: %w", err)
	}

	if result.Item == nil {
		return nil, model.ErrNotFound
	}

	var dto DynamoDTO
	if err := attributevalue.UnmarshalMap(result.Item, &dto); err != nil {
		return nil, fmt.Errorf("failed to unmarshal check record: %w", err)
	}

	return dto.ToDomain(), nil
}

// List retrieves all check records from DynamoDB, following scan pagination
func (r *DynamoRepository) List(ctx context.Context) ([]*model.CheckRecord, error) {
	var dtos []*DynamoDTO

	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check records: %w", err)
		}

		var pageDTOs []*DynamoDTO
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageDTOs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal check records: %w", err)
		}
		dtos = append(dtos, pageDTOs...)
	}

	return ToDomainList(dtos), nil
}

// Delete removes a check record by ID from DynamoDB
func (r *DynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 keyFor(id),
		ConditionExpression: aws.String("attribute_exists(PK) AND attribute_exists(SK)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to delete check record: %w", err)
	}

	return nil
}
