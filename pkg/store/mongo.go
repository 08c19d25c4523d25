package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arclabs/breadboard/pkg/circuit"
	"github.com/arclabs/breadboard/pkg/errors"
)

const designCollection = "designs"

// MongoStore is a MongoDB-backed design store for server deployments.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(designCollection),
	}, nil
}

func (s *MongoStore) Save(ctx context.Context, name string, data circuit.Data) error {
	if err := errors.ValidateDesignName(name); err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{
			"$set":         bson.M{"data": data, "updated_at": now},
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save design")
	}
	return nil
}

func (s *MongoStore) Load(ctx context.Context, name string) (*Design, error) {
	if err := errors.ValidateDesignName(name); err != nil {
		return nil, err
	}

	var d Design
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeDesignNotFound, "design %q not found", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "load design")
	}
	return &d, nil
}

func (s *MongoStore) List(ctx context.Context) ([]Design, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list designs")
	}
	defer cursor.Close(ctx)

	var designs []Design
	if err := cursor.All(ctx, &designs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode designs")
	}
	return designs, nil
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateDesignName(name); err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": name})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete design")
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeDesignNotFound, "design %q not found", name)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
