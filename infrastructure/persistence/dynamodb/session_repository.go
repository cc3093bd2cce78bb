package dynamodb

import (
	"context"
	"fmt"
	"sort"

	"pledgeboard-backend/application/ports"
	"pledgeboard-backend/domain/core/valueobjects"
	pkgerrors "pledgeboard-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// SessionRepository implements the SessionRepository interface using DynamoDB
type SessionRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.SessionRepository {
	return &SessionRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// sessionItem represents the DynamoDB item structure for a session
type sessionItem struct {
	PK         string      `dynamodbav:"PK"`
	SK         string      `dynamodbav:"SK"`
	EntityType string      `dynamodbav:"EntityType"`
	SessionID  string      `dynamodbav:"SessionID"`
	Ordinal    int         `dynamodbav:"Ordinal"`
	StartDate  interface{} `dynamodbav:"StartDate"`
	EndDate    interface{} `dynamodbav:"EndDate,omitempty"`
	AnchorDate interface{} `dynamodbav:"AnchorDate,omitempty"`
}

// GetByID retrieves a session by its ID
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*valueobjects.Session, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("SESSION#%s", id)},
			"SK": &types.AttributeValueMemberS{Value: "METADATA"},
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		r.logger.Error("Failed to get session from DynamoDB",
			zap.Error(err),
			zap.String("sessionID", id),
		)
		return nil, pkgerrors.NewStoreError("get session", err)
	}

	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("session %s", id))
	}

	var item sessionItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, pkgerrors.NewStoreError("unmarshal session", err)
	}

	return r.toSession(item)
}

// List retrieves all sessions, most recent ordinal first. Sessions are a
// small, slowly changing configuration set; a filtered scan is fine here.
func (r *SessionRepository) List(ctx context.Context) ([]valueobjects.Session, error) {
	filter := expression.Name("EntityType").Equal(expression.Value("SESSION"))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, pkgerrors.NewInternalError("build session scan expression").WithCause(err)
	}

	input := &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	sessions := make([]valueobjects.Session, 0)
	paginator := dynamodb.NewScanPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, pkgerrors.NewStoreError("scan sessions", err)
		}
		for _, raw := range page.Items {
			var item sessionItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("Skipping unreadable session item", zap.Error(err))
				continue
			}
			session, err := r.toSession(item)
			if err != nil {
				r.logger.Warn("Skipping session with invalid dates",
					zap.String("sessionID", item.SessionID),
					zap.Error(err),
				)
				continue
			}
			sessions = append(sessions, *session)
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Ordinal > sessions[j].Ordinal
	})
	return sessions, nil
}

// toSession normalizes a stored session's dates. Sessions are configuration
// data: an unusable start date is a store-shape problem, not a skippable
// record.
func (r *SessionRepository) toSession(item sessionItem) (*valueobjects.Session, error) {
	start, err := valueobjects.Normalize(item.StartDate)
	if err != nil {
		return nil, pkgerrors.NewStoreError("session start date", err)
	}

	session := &valueobjects.Session{
		ID:        item.SessionID,
		Ordinal:   item.Ordinal,
		StartDate: start,
	}

	if item.EndDate != nil {
		end, err := valueobjects.Normalize(item.EndDate)
		if err != nil {
			return nil, pkgerrors.NewStoreError("session end date", err)
		}
		session.EndDate = &end
	}

	if item.AnchorDate != nil {
		// The anchor is a best-effort secondary hint; a bad one is logged
		// and dropped rather than failing the session.
		anchor, err := valueobjects.Normalize(item.AnchorDate)
		if err != nil {
			r.logger.Warn("Ignoring unparseable session anchor date",
				zap.String("sessionID", item.SessionID),
				zap.Error(err),
			)
		} else {
			session.PrecedingAnchorDate = &anchor
		}
	}

	if err := session.Validate(); err != nil {
		return nil, pkgerrors.NewStoreError("session invariants", err)
	}
	return session, nil
}
