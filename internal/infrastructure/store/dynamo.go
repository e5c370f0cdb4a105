package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/dawid-splk/task1-store/internal/catalog"
)

// counterKey is the reserved partition key of the id-counter item. Real
// product ids start at 1, so it never collides with a record.
const counterKey = int64(0)

// DynamoStore implements catalog.Store on a single DynamoDB table keyed
// by the numeric product id. Id assignment uses an atomic counter item so
// ids stay unique and are never reused, like the BIGSERIAL backend.
type DynamoStore struct {
	client    *dynamodb.Client
	tableName string
}

// dynamoProduct represents the DynamoDB item structure
type dynamoProduct struct {
	ID         int64   `dynamodbav:"id"`
	Name       string  `dynamodbav:"name"`
	Price      float64 `dynamodbav:"price"`
	Category   string  `dynamodbav:"category"`
	ExpiryDate string  `dynamodbav:"expiry_date"`
	Quantity   float64 `dynamodbav:"quantity"`
}

func NewDynamoStore(client *dynamodb.Client, tableName string) *DynamoStore {
	return &DynamoStore{client: client, tableName: tableName}
}

func (ds *DynamoStore) Insert(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	id, err := ds.nextID(ctx)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("failed to assign product id: %w", err)
	}
	p.ID = id

	av, err := attributevalue.MarshalMap(toDynamoProduct(p))
	if err != nil {
		return catalog.Product{}, fmt.Errorf("failed to marshal product: %w", err)
	}

	// The counter guarantees a fresh id; the condition guards against a
	// counter item that was reset out-of-band.
	_, err = ds.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(ds.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return catalog.Product{}, fmt.Errorf("failed to put product: %w", err)
	}

	return p, nil
}

// nextID bumps the counter item atomically and returns the new value.
func (ds *DynamoStore) nextID(ctx context.Context) (int64, error) {
	result, err := ds.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(ds.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(counterKey, 10)},
		},
		UpdateExpression: aws.String("ADD last_id :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}

	var counter struct {
		LastID int64 `dynamodbav:"last_id"`
	}
	if err := attributevalue.UnmarshalMap(result.Attributes, &counter); err != nil {
		return 0, err
	}
	return counter.LastID, nil
}

func (ds *DynamoStore) FindByID(ctx context.Context, id int64) (catalog.Product, bool, error) {
	result, err := ds.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(ds.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
		},
	})
	if err != nil {
		return catalog.Product{}, false, err
	}
	if len(result.Item) == 0 {
		return catalog.Product{}, false, nil
	}

	var dp dynamoProduct
	if err := attributevalue.UnmarshalMap(result.Item, &dp); err != nil {
		return catalog.Product{}, false, err
	}
	return fromDynamoProduct(dp), true, nil
}

func (ds *DynamoStore) FindAll(ctx context.Context) ([]catalog.Product, error) {
	return ds.scan(ctx, nil, nil)
}

func (ds *DynamoStore) FindByCategory(ctx context.Context, category catalog.Category) ([]catalog.Product, error) {
	return ds.scan(ctx,
		aws.String("category = :c"),
		map[string]types.AttributeValue{
			":c": &types.AttributeValueMemberS{Value: string(category)},
		})
}

func (ds *DynamoStore) scan(ctx context.Context, filter *string, values map[string]types.AttributeValue) ([]catalog.Product, error) {
	var products []catalog.Product
	var startKey map[string]types.AttributeValue

	for {
		result, err := ds.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(ds.tableName),
			FilterExpression:          filter,
			ExpressionAttributeValues: values,
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, err
		}

		for _, item := range result.Items {
			var dp dynamoProduct
			if err := attributevalue.UnmarshalMap(item, &dp); err != nil {
				continue
			}
			if dp.ID == counterKey {
				continue
			}
			products = append(products, fromDynamoProduct(dp))
		}

		if result.LastEvaluatedKey == nil {
			return products, nil
		}
		startKey = result.LastEvaluatedKey
	}
}

func (ds *DynamoStore) Save(ctx context.Context, p catalog.Product) error {
	av, err := attributevalue.MarshalMap(toDynamoProduct(p))
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	_, err = ds.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(ds.tableName),
		Item:      av,
	})
	return err
}

func (ds *DynamoStore) Delete(ctx context.Context, id int64) (bool, error) {
	_, err := ds.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(ds.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
		},
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func toDynamoProduct(p catalog.Product) dynamoProduct {
	return dynamoProduct{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Category:   string(p.Category),
		ExpiryDate: p.ExpiryDate.Format(time.RFC3339Nano),
		Quantity:   p.Quantity,
	}
}

func fromDynamoProduct(dp dynamoProduct) catalog.Product {
	expiry, _ := time.Parse(time.RFC3339Nano, dp.ExpiryDate)
	return catalog.Product{
		ID:         dp.ID,
		Name:       dp.Name,
		Price:      dp.Price,
		Category:   catalog.Category(dp.Category),
		ExpiryDate: expiry,
		Quantity:   dp.Quantity,
	}
}
