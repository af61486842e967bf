package dynamodb

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/streamkas/streamkas/pkg/models"
)

// streamItem is the persisted shape of a stream. Seq preserves creation
// order across the unordered Scan.
type streamItem struct {
	models.Stream
	Seq int64 `dynamodbav:"seq"`
}

// LoadStreams reads every persisted stream, in creation order.
func (s *Store) LoadStreams(ctx context.Context) ([]models.Stream, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.TableName),
	}

	var items []streamItem
	for {
		result, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan streams table: %w", err)
		}

		var page []streamItem
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal streams: %w", err)
		}
		items = append(items, page...)

		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Seq < items[j].Seq })

	streams := make([]models.Stream, len(items))
	for i, item := range items {
		streams[i] = item.Stream
	}

	return streams, nil
}
