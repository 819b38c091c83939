package repository

import (
	"context"

	"insurance_quotes/internal/domain/entities"
	"insurance_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const DefaultQuotesTableName = "quote_responses"

type quoteResponseItem struct {
	AggregationRequestID string         `dynamodbav:"aggregation_request_id"`
	ProviderCode         string         `dynamodbav:"provider_code"`
	Price                string         `dynamodbav:"price"`
	Currency             string         `dynamodbav:"currency"`
	CoverageDetails      map[string]any `dynamodbav:"coverage_details,omitempty"`
	RawPayload           string         `dynamodbav:"raw_payload,omitempty"`
	Breakdown            *breakdownItem `dynamodbav:"breakdown,omitempty"`
	ReceivedAt           string         `dynamodbav:"received_at"`
}

type breakdownItem struct {
	NetPremium     float64 `dynamodbav:"net_premium"`
	Taxes          float64 `dynamodbav:"taxes"`
	Commission     float64 `dynamodbav:"commission"`
	CommissionRate float64 `dynamodbav:"commission_rate"`
	RiskScore      float64 `dynamodbav:"risk_score"`
	RiskBand       string  `dynamodbav:"risk_band"`
}

// QuoteResponseDynamoRepository persists successful quotes.
//
// Table requirements:
//   - PK: aggregation_request_id (string)
//   - SK: provider_code (string)
//
// RawPayload is kept as the provider sent it (string attribute) for audit.

type QuoteResponseDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IQuoteResponseRepository = (*QuoteResponseDynamoRepository)(nil)

func NewQuoteResponseDynamoRepository(ddb DynamoAPI, tableName string) *QuoteResponseDynamoRepository {
	return &QuoteResponseDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, DefaultQuotesTableName),
	}
}

func (r *QuoteResponseDynamoRepository) Create(ctx context.Context, q entities.QuoteResponse) error {
	av, err := attributevalue.MarshalMap(toQuoteResponseItem(q))
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

func (r *QuoteResponseDynamoRepository) ListByRequestID(ctx context.Context, requestID string) ([]entities.QuoteResponse, error) {
	raw, err := queryByRequestID(ctx, r.ddb, r.tableName, requestID)
	if err != nil {
		return nil, err
	}
	items := make([]entities.QuoteResponse, 0, len(raw))
	for _, m := range raw {
		var it quoteResponseItem
		if err := attributevalue.UnmarshalMap(m, &it); err != nil {
			return nil, err
		}
		items = append(items, fromQuoteResponseItem(it))
	}
	return items, nil
}

func toQuoteResponseItem(q entities.QuoteResponse) quoteResponseItem {
	it := quoteResponseItem{
		AggregationRequestID: q.AggregationRequestID,
		ProviderCode:         q.ProviderCode,
		Price:                floatToString(q.Price),
		Currency:             q.Currency,
		CoverageDetails:      q.CoverageDetails,
		RawPayload:           string(q.RawPayload),
		ReceivedAt:           formatTime(q.ReceivedAt),
	}
	if b := q.Breakdown; b != nil {
		it.Breakdown = &breakdownItem{
			NetPremium:     b.NetPremium,
			Taxes:          b.Taxes,
			Commission:     b.Commission,
			CommissionRate: b.CommissionRate,
			RiskScore:      b.RiskScore,
			RiskBand:       b.RiskBand,
		}
	}
	return it
}

func fromQuoteResponseItem(it quoteResponseItem) entities.QuoteResponse {
	q := entities.QuoteResponse{
		AggregationRequestID: it.AggregationRequestID,
		ProviderCode:         it.ProviderCode,
		Price:                parseFloat(it.Price),
		Currency:             it.Currency,
		CoverageDetails:      it.CoverageDetails,
		ReceivedAt:           parseTime(it.ReceivedAt),
	}
	if it.RawPayload != "" {
		q.RawPayload = []byte(it.RawPayload)
	}
	if b := it.Breakdown; b != nil {
		q.Breakdown = &entities.PriceBreakdown{
			NetPremium:     b.NetPremium,
			Taxes:          b.Taxes,
			Commission:     b.Commission,
			CommissionRate: b.CommissionRate,
			RiskScore:      b.RiskScore,
			RiskBand:       b.RiskBand,
		}
	}
	return q
}
