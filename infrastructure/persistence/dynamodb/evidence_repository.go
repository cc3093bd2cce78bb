package dynamodb

import (
	"context"
	"fmt"

	"pledgeboard-backend/application/ports"
	"pledgeboard-backend/domain/core/entities"
	pkgerrors "pledgeboard-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// maxBatchGetRetries bounds the UnprocessedKeys retry loop. DynamoDB can
// return unprocessed keys under throttling; a handful of passes is enough
// for batches capped at 30 keys.
const maxBatchGetRetries = 3

// EvidenceRepository implements the EvidenceRepository interface using DynamoDB
type EvidenceRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewEvidenceRepository creates a new EvidenceRepository
func NewEvidenceRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.EvidenceRepository {
	return &EvidenceRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// evidenceItem represents the DynamoDB item structure for an evidence record.
// The date is kept raw; normalization happens in the window filter.
type evidenceItem struct {
	PK                   string      `dynamodbav:"PK"`
	SK                   string      `dynamodbav:"SK"`
	EntityType           string      `dynamodbav:"EntityType"`
	EvidenceID           string      `dynamodbav:"EvidenceID"`
	Date                 interface{} `dynamodbav:"Date"`
	Summary              string      `dynamodbav:"Summary"`
	SourceURL            string      `dynamodbav:"SourceURL,omitempty"`
	RelatedCommitmentIDs []string    `dynamodbav:"RelatedCommitmentIDs,omitempty"`
}

func (i evidenceItem) toRecord() entities.EvidenceRecord {
	return entities.EvidenceRecord{
		ID:                   i.EvidenceID,
		Date:                 i.Date,
		Summary:              i.Summary,
		SourceURL:            i.SourceURL,
		RelatedCommitmentIDs: i.RelatedCommitmentIDs,
	}
}

// GetByID retrieves a single evidence record
func (r *EvidenceRepository) GetByID(ctx context.Context, id string) (*entities.EvidenceRecord, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       evidenceKey(id),
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		r.logger.Error("Failed to get evidence record from DynamoDB",
			zap.Error(err),
			zap.String("evidenceID", id),
		)
		return nil, pkgerrors.NewStoreError("get evidence record", err)
	}

	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("evidence record %s", id))
	}

	var item evidenceItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, pkgerrors.NewStoreError("unmarshal evidence record", err)
	}

	record := item.toRecord()
	return &record, nil
}

// GetByIDs retrieves records for an identifier set in one BatchGetItem call.
// Callers must respect the batch cap and supply distinct identifiers, since
// BatchGetItem rejects a key set containing duplicates; identifiers with no
// stored record are omitted from the result. Unprocessed keys are retried a bounded number of
// times, and leftovers after that are a store failure, not silent omission.
func (r *EvidenceRepository) GetByIDs(ctx context.Context, ids []string) ([]entities.EvidenceRecord, error) {
	if len(ids) == 0 {
		return []entities.EvidenceRecord{}, nil
	}

	keys := make([]map[string]types.AttributeValue, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, evidenceKey(id))
	}

	records := make([]entities.EvidenceRecord, 0, len(ids))
	pending := keys
	for attempt := 0; len(pending) > 0; attempt++ {
		if attempt > maxBatchGetRetries {
			err := fmt.Errorf("%d keys still unprocessed after %d retries", len(pending), maxBatchGetRetries)
			return nil, pkgerrors.NewStoreError("batch get evidence records", err)
		}

		input := &dynamodb.BatchGetItemInput{
			RequestItems: map[string]types.KeysAndAttributes{
				r.tableName: {Keys: pending},
			},
		}

		result, err := r.client.BatchGetItem(ctx, input)
		if err != nil {
			r.logger.Error("Failed to batch get evidence records",
				zap.Error(err),
				zap.Int("requested", len(ids)),
			)
			return nil, pkgerrors.NewStoreError("batch get evidence records", err)
		}

		for _, raw := range result.Responses[r.tableName] {
			var item evidenceItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("Skipping unreadable evidence item", zap.Error(err))
				continue
			}
			records = append(records, item.toRecord())
		}

		pending = nil
		if unprocessed, ok := result.UnprocessedKeys[r.tableName]; ok && len(unprocessed.Keys) > 0 {
			r.logger.Debug("Retrying unprocessed evidence keys",
				zap.Int("count", len(unprocessed.Keys)),
				zap.Int("attempt", attempt+1),
			)
			pending = unprocessed.Keys
		}
	}

	return records, nil
}

func evidenceKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("EVIDENCE#%s", id)},
		"SK": &types.AttributeValueMemberS{Value: "METADATA"},
	}
}
