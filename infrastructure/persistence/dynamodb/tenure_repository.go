package dynamodb

import (
	"context"
	"fmt"

	"pledgeboard-backend/application/ports"
	"pledgeboard-backend/domain/core/entities"
	pkgerrors "pledgeboard-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// TenureRepository implements the TenureRepository interface using DynamoDB
type TenureRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewTenureRepository creates a new TenureRepository
func NewTenureRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.TenureRepository {
	return &TenureRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// tenureItem represents the DynamoDB item structure for a tenure record.
// Position dates are kept raw: older records carry epoch pairs or date-only
// strings, newer ones RFC3339. Normalization happens in the resolver.
type tenureItem struct {
	PK             string      `dynamodbav:"PK"`
	SK             string      `dynamodbav:"SK"`
	EntityType     string      `dynamodbav:"EntityType"`
	RecordID       string      `dynamodbav:"RecordID"`
	RoleIdentityID string      `dynamodbav:"RoleIdentityID"`
	PersonName     string      `dynamodbav:"PersonName"`
	Party          string      `dynamodbav:"Party"`
	Title          string      `dynamodbav:"Title"`
	PositionStart  interface{} `dynamodbav:"PositionStart"`
	PositionEnd    interface{} `dynamodbav:"PositionEnd,omitempty"`
	AvatarURL      string      `dynamodbav:"AvatarURL,omitempty"`
}

// ListByRoleAndPeriod retrieves all tenure records for a role within a
// parliamentary period. The query is keyed by role and period only, with no
// date condition: stored record boundaries are not aligned to session
// boundaries; the resolver owns the temporal filtering.
func (r *TenureRepository) ListByRoleAndPeriod(ctx context.Context, roleIdentityID string, ordinal int) ([]entities.TenureRecord, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(fmt.Sprintf("ROLE#%s", roleIdentityID))).
		And(expression.Key("SK").BeginsWith(fmt.Sprintf("TENURE#P%d#", ordinal)))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, pkgerrors.NewInternalError("build tenure query expression").WithCause(err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	records := make([]entities.TenureRecord, 0)
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			r.logger.Error("Failed to query tenure records",
				zap.Error(err),
				zap.String("roleIdentityID", roleIdentityID),
				zap.Int("ordinal", ordinal),
			)
			return nil, pkgerrors.NewStoreError("query tenure records", err)
		}

		for _, raw := range page.Items {
			var item tenureItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("Skipping unreadable tenure item",
					zap.Error(err),
					zap.String("roleIdentityID", roleIdentityID),
				)
				continue
			}
			records = append(records, entities.TenureRecord{
				ID:             item.RecordID,
				RoleIdentityID: item.RoleIdentityID,
				PersonName:     item.PersonName,
				Party:          item.Party,
				Title:          item.Title,
				PositionStart:  item.PositionStart,
				PositionEnd:    item.PositionEnd,
				AvatarURL:      item.AvatarURL,
			})
		}
	}

	r.logger.Debug("Fetched tenure candidates",
		zap.String("roleIdentityID", roleIdentityID),
		zap.Int("ordinal", ordinal),
		zap.Int("count", len(records)),
	)
	return records, nil
}
