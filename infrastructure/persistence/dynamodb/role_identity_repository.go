package dynamodb

import (
	"context"
	"fmt"

	"pledgeboard-backend/application/ports"
	"pledgeboard-backend/domain/core/valueobjects"
	pkgerrors "pledgeboard-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// RoleIdentityRepository implements the RoleIdentityRepository interface
// using DynamoDB
type RoleIdentityRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewRoleIdentityRepository creates a new RoleIdentityRepository
func NewRoleIdentityRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.RoleIdentityRepository {
	return &RoleIdentityRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// historicalMappingItem is the stored form of one session override
type historicalMappingItem struct {
	LookupID            string `dynamodbav:"LookupID"`
	DisplayNameOverride string `dynamodbav:"DisplayNameOverride,omitempty"`
}

// roleIdentityItem represents the DynamoDB item structure for a role identity
type roleIdentityItem struct {
	PK                string                           `dynamodbav:"PK"`
	SK                string                           `dynamodbav:"SK"`
	EntityType        string                           `dynamodbav:"EntityType"`
	RoleID            string                           `dynamodbav:"RoleID"`
	DisplayName       string                           `dynamodbav:"DisplayName"`
	HistoricalMapping map[string]historicalMappingItem `dynamodbav:"HistoricalMapping,omitempty"`
}

// GetByID retrieves a role identity with its historical mapping table
func (r *RoleIdentityRepository) GetByID(ctx context.Context, id string) (*valueobjects.RoleIdentity, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("ROLE#%s", id)},
			"SK": &types.AttributeValueMemberS{Value: "IDENTITY"},
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		r.logger.Error("Failed to get role identity from DynamoDB",
			zap.Error(err),
			zap.String("roleID", id),
		)
		return nil, pkgerrors.NewStoreError("get role identity", err)
	}

	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("role identity %s", id))
	}

	var item roleIdentityItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, pkgerrors.NewStoreError("unmarshal role identity", err)
	}

	role := &valueobjects.RoleIdentity{
		ID:          item.RoleID,
		DisplayName: item.DisplayName,
	}
	if len(item.HistoricalMapping) > 0 {
		role.HistoricalMapping = make(map[string]valueobjects.HistoricalIdentity, len(item.HistoricalMapping))
		for sessionID, m := range item.HistoricalMapping {
			role.HistoricalMapping[sessionID] = valueobjects.HistoricalIdentity{
				LookupID:            m.LookupID,
				DisplayNameOverride: m.DisplayNameOverride,
			}
		}
	}

	return role, nil
}
