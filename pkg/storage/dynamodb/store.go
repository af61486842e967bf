// Package dynamodb persists the stream set in a DynamoDB table, one item per
// stream. It is the remote alternative to the local file store for
// deployments that want snapshots to survive the host.
package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/streamkas/streamkas/pkg/storage"
)

// DynamoDBAPI captures the subset of the DynamoDB client the store uses,
// so tests can substitute a mock.
type DynamoDBAPI interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements storage.StreamStore using AWS DynamoDB.
type Store struct {
	Client    DynamoDBAPI
	TableName string
}

// New creates a new Store.
func New(client DynamoDBAPI, tableName string) *Store {
	return &Store{
		Client:    client,
		TableName: tableName,
	}
}

// Make sure we conform to the interface
var _ storage.StreamStore = (*Store)(nil)
