package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/streamkas/streamkas/pkg/models"
)

// maxTransactItems is DynamoDB's cap on items in one write transaction.
// The snapshot must apply atomically, so an oversized one is rejected
// outright rather than split into non-atomic chunks.
const maxTransactItems = 100

// SaveStreams overwrites the full persisted set: every stream in the
// snapshot is put, and items whose stream was removed are deleted, all in
// one write transaction so readers never observe a half-applied snapshot.
func (s *Store) SaveStreams(ctx context.Context, streams []models.Stream) error {
	// 1. Find the ids currently in the table so removals can be deleted.
	existing, err := s.existingIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list existing streams: %w", err)
	}

	// 2. Build a Put per stream in the snapshot.
	writes := make([]types.TransactWriteItem, 0, len(streams))
	keep := make(map[string]bool, len(streams))
	for i, stream := range streams {
		keep[stream.Id] = true

		item, err := attributevalue.MarshalMap(streamItem{Stream: stream, Seq: int64(i)})
		if err != nil {
			return fmt.Errorf("failed to marshal stream %s: %w", stream.Id, err)
		}

		writes = append(writes, types.TransactWriteItem{
			Put: &types.Put{
				TableName: aws.String(s.TableName),
				Item:      item,
			},
		})
	}

	// 3. Delete anything that fell out of the snapshot.
	for _, id := range existing {
		if keep[id] {
			continue
		}
		writes = append(writes, types.TransactWriteItem{
			Delete: &types.Delete{
				TableName: aws.String(s.TableName),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: id},
				},
			},
		})
	}

	if len(writes) == 0 {
		return nil
	}
	if len(writes) > maxTransactItems {
		return fmt.Errorf("snapshot needs %d writes, exceeding the %d-item transaction limit", len(writes), maxTransactItems)
	}

	// 4. Execute the transaction.
	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: writes,
	})
	if err != nil {
		return fmt.Errorf("failed to write stream snapshot: %w", err)
	}

	return nil
}

func (s *Store) existingIDs(ctx context.Context) ([]string, error) {
	input := &dynamodb.ScanInput{
		TableName:            aws.String(s.TableName),
		ProjectionExpression: aws.String("id"),
	}

	var ids []string
	for {
		result, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, err
		}

		var keys []struct {
			Id string `dynamodbav:"id"`
		}
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &keys); err != nil {
			return nil, err
		}
		for _, key := range keys {
			ids = append(ids, key.Id)
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	return ids, nil
}
