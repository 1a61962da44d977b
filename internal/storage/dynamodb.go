package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/countycontacts/internal/core"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// AttrPK is the partition key attribute of the contacts table.
const AttrPK = "pk"

// DynamoDBClient is the subset of the DynamoDB API used by DynamoDB.
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

var _ DynamoDBClient = (*dynamodb.Client)(nil)

// DynamoDB keeps the contact document in a single item.
type DynamoDB struct {
	client    DynamoDBClient
	tableName string
	docID     string
}

type dynamoDocument struct {
	PK        string                   `dynamodbav:"pk"`
	Contacts  map[string]dynamoContact `dynamodbav:"contacts"`
	UpdatedAt string                   `dynamodbav:"updated_at"`
}

type dynamoContact struct {
	Name  string `dynamodbav:"name,omitempty"`
	Phone string `dynamodbav:"phone,omitempty"`
	Email string `dynamodbav:"email,omitempty"`
}

// NewDynamoDB returns a backend storing the document under docID in tableName.
func NewDynamoDB(client DynamoDBClient, tableName, docID string) *DynamoDB {
	if docID == "" {
		docID = DefaultDocumentID
	}
	return &DynamoDB{client: client, tableName: tableName, docID: docID}
}

// Load returns the document, writing an empty one when the item is missing.
func (d *DynamoDB) Load(ctx context.Context) (map[string]core.Contact, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(d.tableName),
		Key:            d.key(),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get document %q: %w", d.docID, err)
	}

	if out.Item == nil {
		doc := make(map[string]core.Contact)
		if err := d.Save(ctx, doc); err != nil {
			return nil, err
		}
		return doc, nil
	}

	var item dynamoDocument
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("decode document %q: %w", d.docID, err)
	}

	doc := make(map[string]core.Contact, len(item.Contacts))
	for k, c := range item.Contacts {
		doc[k] = core.Contact{Name: c.Name, Phone: c.Phone, Email: c.Email}
	}
	return doc, nil
}

// Save overwrites the item with doc.
func (d *DynamoDB) Save(ctx context.Context, doc map[string]core.Contact) error {
	item := dynamoDocument{
		PK:        d.docID,
		Contacts:  make(map[string]dynamoContact, len(doc)),
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for k, c := range doc {
		item.Contacts[k] = dynamoContact{Name: c.Name, Phone: c.Phone, Email: c.Email}
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("encode document %q: %w", d.docID, err)
	}

	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("put document %q: %w", d.docID, err)
	}
	return nil
}

func (d *DynamoDB) key() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		AttrPK: &types.AttributeValueMemberS{Value: d.docID},
	}
}
