package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoCollection = "storage"

// Collection is the part of *mongo.Collection the Mongo storage needs.
type Collection interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{},
		opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
}

type document struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

type Mongo struct {
	coll Collection
}

func NewMongo(coll Collection) *Mongo {
	return &Mongo{
		coll: coll,
	}
}

// NewMongoFromClient stores values in the "storage" collection of database.
func NewMongoFromClient(cli *mongo.Client, database string) *Mongo {
	return NewMongo(cli.Database(database).Collection(mongoCollection))
}

// ConnectMongo establishes a connection and pings the primary.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo couldn't Connect: %v", err)
	}
	if err = cli.Ping(ctx, nil); err != nil {
		_ = cli.Disconnect(ctx)
		return nil, fmt.Errorf("mongo couldn't Ping: %v", err)
	}
	return cli, nil
}

func (m *Mongo) Get(ctx context.Context, key string) (string, bool, error) {
	var doc document
	err := m.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("repository.Mongo.Get key %s: %v", key, err)
	}
	return doc.Value, true, nil
}

func (m *Mongo) Set(ctx context.Context, key, value string) error {
	_, err := m.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: key}},
		document{Key: key, Value: value},
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("repository.Mongo.Set key %s: %v", key, err)
	}
	return nil
}
