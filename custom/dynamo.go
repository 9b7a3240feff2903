package custom

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/rebeam/model"
)

const DefaultTable = "rebeam-overrides"

// overrideItem is an override row. Each sequence is a list of numbers;
// missing attributes keep the derived sequence.
type overrideItem struct {
	Split8    model.Positions `dynamodbav:"Split8"`
	Split16   model.Positions `dynamodbav:"Split16"`
	Split32   model.Positions `dynamodbav:"Split32"`
	Sub8In16  model.Positions `dynamodbav:"Sub8In16"`
	Sub8In32  model.Positions `dynamodbav:"Sub8In32"`
	Sub16In32 model.Positions `dynamodbav:"Sub16In32"`
}

const attrKey = "PK"

// DynamoSource reads overrides from a DynamoDB table with partition key PK
// holding "n/d". Results, including misses, are cached for the life of the
// source.
type DynamoSource struct {
	client dynamodbiface.DynamoDBAPI
	table  string
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string]*model.Sequences
}

func NewDynamoSource(client dynamodbiface.DynamoDBAPI, table string, logger *slog.Logger) *DynamoSource {
	if table == "" {
		table = DefaultTable
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DynamoSource{
		client: client,
		table:  table,
		logger: logger,
		cache:  make(map[string]*model.Sequences),
	}
}

// DialDynamo connects to DynamoDB. An empty endpoint uses the AWS default
// for the region.
func DialDynamo(region, endpoint string) (dynamodbiface.DynamoDBAPI, error) {
	cfg := &aws.Config{Region: aws.String(region)}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create a new DynamoDB session: %w", err)
	}
	return dynamodb.New(sess), nil
}

func (d *DynamoSource) Lookup(ts model.TimeSignature) (model.Sequences, bool) {
	key := ts.String()

	d.mu.Lock()
	cached, ok := d.cache[key]
	d.mu.Unlock()
	if ok {
		if cached == nil {
			return model.Sequences{}, false
		}
		return *cached, true
	}

	seqs, found, err := d.fetch(key)
	if err != nil {
		// not cached, the next lookup retries
		d.logger.Warn("DynamoDB override lookup failed", slog.String("timesig", key), slog.String("error", err.Error()))
		return model.Sequences{}, false
	}

	d.mu.Lock()
	if found {
		d.cache[key] = &seqs
	} else {
		d.cache[key] = nil
	}
	d.mu.Unlock()
	return seqs, found
}

func (d *DynamoSource) fetch(key string) (model.Sequences, bool, error) {
	out, err := d.client.GetItem(&dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key: map[string]*dynamodb.AttributeValue{
			attrKey: {S: aws.String(key)},
		},
	})
	if err != nil {
		return model.Sequences{}, false, fmt.Errorf("error from DynamoDB: %w", err)
	}
	if len(out.Item) == 0 {
		return model.Sequences{}, false, nil
	}
	seqs, err := decodeItem(out.Item)
	if err != nil {
		return model.Sequences{}, false, fmt.Errorf("bad override item %s: %w", key, err)
	}
	return seqs, !seqs.Empty(), nil
}

func decodeItem(item map[string]*dynamodb.AttributeValue) (model.Sequences, error) {
	var row overrideItem
	if err := dynamodbattribute.UnmarshalMap(item, &row); err != nil {
		return model.Sequences{}, err
	}
	return model.Sequences{
		Split8:    row.Split8,
		Split16:   row.Split16,
		Split32:   row.Split32,
		Sub8In16:  row.Sub8In16,
		Sub8In32:  row.Sub8In32,
		Sub16In32: row.Sub16In32,
	}, nil
}
