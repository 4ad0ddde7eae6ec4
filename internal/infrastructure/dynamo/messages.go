package dynamo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/portfolio-api/internal/domain"
)

// dynamodbAPI is the subset of *dynamodb.Client used by MessageRepo.
type dynamodbAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// MessageRepo provides typed DynamoDB operations for the messages table.
// PK: message_id (ULID). The inbox is small, so listing scans and sorts in memory.
type MessageRepo struct {
	api       dynamodbAPI
	tableName string
}

func NewMessageRepo(api dynamodbAPI, tableName string) (*MessageRepo, error) {
	if api == nil {
		return nil, errors.New("dynamo: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("dynamo: table name must not be empty")
	}
	return &MessageRepo{api: api, tableName: tableName}, nil
}

// Create inserts a new message; it never overwrites an existing id.
func (r *MessageRepo) Create(ctx context.Context, m *domain.Message) error {
	item, err := attributevalue.MarshalMap(m)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	_, err = r.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": fieldMessageID,
		},
	})
	if err != nil {
		return fmt.Errorf("put message: %w", err)
	}
	return nil
}

func (r *MessageRepo) Get(ctx context.Context, messageID string) (*domain.Message, error) {
	out, err := r.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(fieldMessageID, messageID),
	})
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("message not found: %w", domain.ErrNotFound)
	}
	var m domain.Message
	if err := attributevalue.UnmarshalMap(out.Item, &m); err != nil {
		return nil, fmt.Errorf("unmarshal message: %w", err)
	}
	return &m, nil
}

// List returns every message, newest first.
func (r *MessageRepo) List(ctx context.Context) ([]domain.Message, error) {
	return r.scan(ctx, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
}

// ListUnread returns up to limit unread messages, newest first. limit <= 0 means no limit.
func (r *MessageRepo) ListUnread(ctx context.Context, limit int) ([]domain.Message, error) {
	msgs, err := r.scan(ctx, r.unreadScan())
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

func (r *MessageRepo) CountUnread(ctx context.Context) (int, error) {
	in := r.unreadScan()
	in.Select = types.SelectCount
	total := 0
	p := dynamodb.NewScanPaginator(r.api, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return 0, fmt.Errorf("count unread messages: %w", err)
		}
		total += int(page.Count)
	}
	return total, nil
}

// SetRead flips the read flag and returns the updated message.
func (r *MessageRepo) SetRead(ctx context.Context, messageID string, read bool) (*domain.Message, error) {
	ue, err := buildUpdateExpr(map[string]interface{}{fieldRead: read})
	if err != nil {
		return nil, err
	}
	ue.Names["#id"] = fieldMessageID
	out, err := r.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(fieldMessageID, messageID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return nil, fmt.Errorf("message not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update message: %w", err)
	}
	var m domain.Message
	if err := attributevalue.UnmarshalMap(out.Attributes, &m); err != nil {
		return nil, fmt.Errorf("unmarshal message: %w", err)
	}
	return &m, nil
}

// Delete permanently removes a message.
func (r *MessageRepo) Delete(ctx context.Context, messageID string) error {
	_, err := r.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey(fieldMessageID, messageID),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": fieldMessageID,
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return fmt.Errorf("message not found: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

func (r *MessageRepo) unreadScan() *dynamodb.ScanInput {
	return &dynamodb.ScanInput{
		TableName:                aws.String(r.tableName),
		FilterExpression:         aws.String("#read = :false"),
		ExpressionAttributeNames: map[string]string{"#read": fieldRead},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":false": &types.AttributeValueMemberBOOL{Value: false},
		},
	}
}

func (r *MessageRepo) scan(ctx context.Context, in *dynamodb.ScanInput) ([]domain.Message, error) {
	msgs := make([]domain.Message, 0)
	p := dynamodb.NewScanPaginator(r.api, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan messages: %w", err)
		}
		var batch []domain.Message
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("unmarshal messages: %w", err)
		}
		msgs = append(msgs, batch...)
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
	})
	return msgs, nil
}
