package repository

import (
	"context"

	"insurance_quotes/internal/domain/entities"
	"insurance_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const DefaultAttemptsTableName = "provider_attempts"

type providerAttemptItem struct {
	AggregationRequestID string `dynamodbav:"aggregation_request_id"`
	ProviderCode         string `dynamodbav:"provider_code"`
	Outcome              string `dynamodbav:"outcome"`
	Attempts             int    `dynamodbav:"attempts"`
	DurationMs           int64  `dynamodbav:"duration_ms"`
	ErrorMessage         string `dynamodbav:"error_message,omitempty"`
	CreatedAt            string `dynamodbav:"created_at"`
}

// ProviderAttemptDynamoRepository is the append-only attempt log.
//
// Table requirements:
//   - PK: aggregation_request_id (string)
//   - SK: provider_code (string)

type ProviderAttemptDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IProviderAttemptRepository = (*ProviderAttemptDynamoRepository)(nil)

func NewProviderAttemptDynamoRepository(ddb DynamoAPI, tableName string) *ProviderAttemptDynamoRepository {
	return &ProviderAttemptDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, DefaultAttemptsTableName),
	}
}

func (r *ProviderAttemptDynamoRepository) Create(ctx context.Context, a entities.ProviderAttempt) error {
	av, err := attributevalue.MarshalMap(providerAttemptItem{
		AggregationRequestID: a.AggregationRequestID,
		ProviderCode:         a.ProviderCode,
		Outcome:              string(a.Outcome),
		Attempts:             a.Attempts,
		DurationMs:           a.DurationMs,
		ErrorMessage:         a.ErrorMessage,
		CreatedAt:            formatTime(a.CreatedAt),
	})
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#pk) AND attribute_not_exists(#sk)"),
		ExpressionAttributeNames: map[string]string{
			"#pk": "aggregation_request_id",
			"#sk": "provider_code",
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return interfaces.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ProviderAttemptDynamoRepository) Get(ctx context.Context, requestID, providerCode string) (entities.ProviderAttempt, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"aggregation_request_id": &types.AttributeValueMemberS{Value: requestID},
			"provider_code":          &types.AttributeValueMemberS{Value: providerCode},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ProviderAttempt{}, err
	}
	if len(out.Item) == 0 {
		return entities.ProviderAttempt{}, nil
	}
	var it providerAttemptItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ProviderAttempt{}, err
	}
	return fromProviderAttemptItem(it), nil
}

func (r *ProviderAttemptDynamoRepository) ListByRequestID(ctx context.Context, requestID string) ([]entities.ProviderAttempt, error) {
	raw, err := queryByRequestID(ctx, r.ddb, r.tableName, requestID)
	if err != nil {
		return nil, err
	}
	items := make([]entities.ProviderAttempt, 0, len(raw))
	for _, m := range raw {
		var it providerAttemptItem
		if err := attributevalue.UnmarshalMap(m, &it); err != nil {
			return nil, err
		}
		items = append(items, fromProviderAttemptItem(it))
	}
	return items, nil
}

func fromProviderAttemptItem(it providerAttemptItem) entities.ProviderAttempt {
	return entities.ProviderAttempt{
		AggregationRequestID: it.AggregationRequestID,
		ProviderCode:         it.ProviderCode,
		Outcome:              entities.AttemptOutcome(it.Outcome),
		Attempts:             it.Attempts,
		DurationMs:           it.DurationMs,
		ErrorMessage:         it.ErrorMessage,
		CreatedAt:            parseTime(it.CreatedAt),
	}
}

// queryByRequestID reads every item under one partition key with strongly
// consistent reads, following pagination.
func queryByRequestID(ctx context.Context, ddb DynamoAPI, table, requestID string) ([]map[string]types.AttributeValue, error) {
	p := dynamodb.NewQueryPaginator(ddb, &dynamodb.QueryInput{
		TableName:              aws.String(table),
		KeyConditionExpression: aws.String("#pk = :rid"),
		ExpressionAttributeNames: map[string]string{
			"#pk": "aggregation_request_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rid": &types.AttributeValueMemberS{Value: requestID},
		},
		ConsistentRead: aws.Bool(true),
	})

	var out []map[string]types.AttributeValue
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Items...)
	}
	return out, nil
}
