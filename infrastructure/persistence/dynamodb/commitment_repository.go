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
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// CommitmentRepository implements the CommitmentRepository interface using DynamoDB
type CommitmentRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewCommitmentRepository creates a new CommitmentRepository. indexName is the
// GSI keyed by session for commitment listings.
func NewCommitmentRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.CommitmentRepository {
	return &CommitmentRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// commitmentItem represents the DynamoDB item structure for a commitment
type commitmentItem struct {
	PK                string   `dynamodbav:"PK"`
	SK                string   `dynamodbav:"SK"`
	GSI1PK            string   `dynamodbav:"GSI1PK"`
	GSI1SK            string   `dynamodbav:"GSI1SK"`
	EntityType        string   `dynamodbav:"EntityType"`
	CommitmentID      string   `dynamodbav:"CommitmentID"`
	SessionID         string   `dynamodbav:"SessionID"`
	Text              string   `dynamodbav:"Text"`
	LinkedEvidenceIDs []string `dynamodbav:"LinkedEvidenceIDs,omitempty"`
}

func (i commitmentItem) toCommitment() entities.Commitment {
	return entities.Commitment{
		ID:                i.CommitmentID,
		SessionID:         i.SessionID,
		Text:              i.Text,
		LinkedEvidenceIDs: i.LinkedEvidenceIDs,
	}
}

// GetByID retrieves a commitment by its ID
func (r *CommitmentRepository) GetByID(ctx context.Context, id string) (*entities.Commitment, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("COMMITMENT#%s", id)},
			"SK": &types.AttributeValueMemberS{Value: "METADATA"},
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		r.logger.Error("Failed to get commitment from DynamoDB",
			zap.Error(err),
			zap.String("commitmentID", id),
		)
		return nil, pkgerrors.NewStoreError("get commitment", err)
	}

	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("commitment %s", id))
	}

	var item commitmentItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, pkgerrors.NewStoreError("unmarshal commitment", err)
	}

	commitment := item.toCommitment()
	return &commitment, nil
}

// ListBySession retrieves all commitments tracked for a session via the
// session index
func (r *CommitmentRepository) ListBySession(ctx context.Context, sessionID string) ([]entities.Commitment, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(fmt.Sprintf("SESSION#%s", sessionID))).
		And(expression.Key("GSI1SK").BeginsWith("COMMITMENT#"))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, pkgerrors.NewInternalError("build commitment query expression").WithCause(err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	commitments := make([]entities.Commitment, 0)
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			r.logger.Error("Failed to query commitments by session",
				zap.Error(err),
				zap.String("sessionID", sessionID),
			)
			return nil, pkgerrors.NewStoreError("query commitments by session", err)
		}

		for _, raw := range page.Items {
			var item commitmentItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("Skipping unreadable commitment item",
					zap.Error(err),
					zap.String("sessionID", sessionID),
				)
				continue
			}
			commitments = append(commitments, item.toCommitment())
		}
	}

	return commitments, nil
}
