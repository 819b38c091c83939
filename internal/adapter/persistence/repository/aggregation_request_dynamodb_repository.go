package repository

import (
	"context"
	"time"

	"insurance_quotes/internal/domain/entities"
	"insurance_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const DefaultAggregationsTableName = "aggregation_requests"

type aggregationRequestItem struct {
	ID                  string         `dynamodbav:"id"`
	Category            string         `dynamodbav:"category"`
	Payload             map[string]any `dynamodbav:"payload,omitempty"`
	Status              string         `dynamodbav:"status"`
	DispatchedProviders []string       `dynamodbav:"dispatched_providers,omitempty"`
	FailureReason       string         `dynamodbav:"failure_reason,omitempty"`
	AccessToken         string         `dynamodbav:"access_token"`
	CreatedAt           string         `dynamodbav:"created_at"`
	UpdatedAt           string         `dynamodbav:"updated_at"`
}

// AggregationRequestDynamoRepository persists AggregationRequest entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Every status change is an UpdateItem conditioned on the current status, so
// the PROCESSING -> COMPLETED flip is a compare-and-set.

type AggregationRequestDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IAggregationRequestRepository = (*AggregationRequestDynamoRepository)(nil)

func NewAggregationRequestDynamoRepository(ddb DynamoAPI, tableName string) *AggregationRequestDynamoRepository {
	return &AggregationRequestDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, DefaultAggregationsTableName),
	}
}

func (r *AggregationRequestDynamoRepository) Create(ctx context.Context, req entities.AggregationRequest) (entities.AggregationRequest, error) {
	av, err := attributevalue.MarshalMap(toAggregationRequestItem(req))
	if err != nil {
		return entities.AggregationRequest{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.AggregationRequest{}, interfaces.ErrAlreadyExists
		}
		return entities.AggregationRequest{}, err
	}
	return req, nil
}

func (r *AggregationRequestDynamoRepository) GetByID(ctx context.Context, id string) (entities.AggregationRequest, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.AggregationRequest{}, err
	}
	if len(out.Item) == 0 {
		return entities.AggregationRequest{}, nil
	}

	var it aggregationRequestItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.AggregationRequest{}, err
	}
	return fromAggregationRequestItem(it), nil
}

func (r *AggregationRequestDynamoRepository) MarkProcessing(ctx context.Context, id string, dispatched []string) (entities.AggregationRequest, error) {
	providers, err := attributevalue.Marshal(dispatched)
	if err != nil {
		return entities.AggregationRequest{}, err
	}
	return r.transition(ctx, id, entities.AggregationStatusPending, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :to, #dispatched = :dispatched, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":to":         &types.AttributeValueMemberS{Value: string(entities.AggregationStatusProcessing)},
			":dispatched": providers,
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#dispatched": "dispatched_providers",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *AggregationRequestDynamoRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	_, err := r.transition(ctx, id, entities.AggregationStatusPending, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :to, #reason = :reason, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":to":         &types.AttributeValueMemberS{Value: string(entities.AggregationStatusFailed)},
			":reason":     &types.AttributeValueMemberS{Value: reason},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#reason":     "failure_reason",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
	return err
}

func (r *AggregationRequestDynamoRepository) MarkCompleted(ctx context.Context, id string) (bool, error) {
	updated, err := r.transition(ctx, id, entities.AggregationStatusProcessing, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :to, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":to":         &types.AttributeValueMemberS{Value: string(entities.AggregationStatusCompleted)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
	if err != nil {
		return false, err
	}
	return updated.ID != "", nil
}

// transition runs an UpdateItem guarded by "#status = :from". A failed
// condition (missing item or other status) returns a zero value and no error.
func (r *AggregationRequestDynamoRepository) transition(
	ctx context.Context,
	id string,
	from entities.AggregationStatus,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.AggregationRequest, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	updateExpr, values, names := build(now)
	values[":from"] = &types.AttributeValueMemberS{Value: string(from)}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :from"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id", "#status": "status"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.AggregationRequest{}, nil
		}
		return entities.AggregationRequest{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.AggregationRequest{}, nil
	}
	var it aggregationRequestItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.AggregationRequest{}, err
	}
	return fromAggregationRequestItem(it), nil
}

func toAggregationRequestItem(r entities.AggregationRequest) aggregationRequestItem {
	return aggregationRequestItem{
		ID:                  r.ID,
		Category:            r.Category,
		Payload:             r.Payload,
		Status:              string(r.Status),
		DispatchedProviders: r.DispatchedProviders,
		FailureReason:       r.FailureReason,
		AccessToken:         r.AccessToken,
		CreatedAt:           formatTime(r.CreatedAt),
		UpdatedAt:           formatTime(r.UpdatedAt),
	}
}

func fromAggregationRequestItem(it aggregationRequestItem) entities.AggregationRequest {
	return entities.AggregationRequest{
		ID:                  it.ID,
		Category:            it.Category,
		Payload:             it.Payload,
		Status:              entities.AggregationStatus(it.Status),
		DispatchedProviders: it.DispatchedProviders,
		FailureReason:       it.FailureReason,
		AccessToken:         it.AccessToken,
		CreatedAt:           parseTime(it.CreatedAt),
		UpdatedAt:           parseTime(it.UpdatedAt),
	}
}
