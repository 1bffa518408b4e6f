package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mvollbrecht/pageflow/pkg/errors"
	"github.com/mvollbrecht/pageflow/pkg/paper"
)

// MongoStore persists documents in a MongoDB collection, one BSON
// document per paper with the paper ID as _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
// Documents live in the "documents" collection of the given database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection("documents"),
	}, nil
}

func (s *MongoStore) Put(ctx context.Context, doc *paper.Document) error {
	if doc == nil || doc.ID == "" {
		return errors.New(errors.ErrCodeInvalidDocument, "document must have an ID")
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "store document %q", doc.ID)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*paper.Document, error) {
	var doc paper.Document
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeDocumentNotFound, "document %q not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "load document %q", id)
	}
	return &doc, nil
}

func (s *MongoStore) List(ctx context.Context) ([]*paper.Document, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list documents")
	}
	defer cur.Close(ctx)

	var out []*paper.Document
	for cur.Next(ctx) {
		var doc paper.Document
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "decode document")
		}
		out = append(out, &doc)
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "iterate documents")
	}
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete document %q", id)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeDocumentNotFound, "document %q not found", id)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
