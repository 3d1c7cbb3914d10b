package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/kallax/pkg/core/pack"
	kerrors "github.com/matzehuels/kallax/pkg/errors"
)

// Collection is the MongoDB collection holding records.
const Collection = "results"

// mongoRecord is the stored document. Config and result are kept as their
// JSON encoding so the document matches the API shape exactly.
type mongoRecord struct {
	Owner     string    `bson:"_id"`
	ID        string    `bson:"run_id"`
	Config    string    `bson:"config"`
	Result    string    `bson:"result"`
	CreatedAt time.Time `bson:"created_at"`
}

// MongoStore is a [Store] backed by one MongoDB collection, one document
// per owner.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and uses the given database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, kerrors.Wrap(kerrors.ErrCodeNetwork, err, "ping mongodb")
	}
	return NewMongoStoreFromClient(client, database), nil
}

// NewMongoStoreFromClient wraps an existing client.
func NewMongoStoreFromClient(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(Collection),
	}
}

func (s *MongoStore) SaveLast(ctx context.Context, rec Record) error {
	if err := validate(rec); err != nil {
		return err
	}
	doc, err := toMongo(rec)
	if err != nil {
		return err
	}
	_, err = s.coll.ReplaceOne(ctx,
		bson.M{"_id": doc.Owner},
		doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return kerrors.Wrap(kerrors.ErrCodeNetwork, err, "save result for %q", rec.Owner)
	}
	return nil
}

func (s *MongoStore) Last(ctx context.Context, owner string) (*Record, error) {
	var doc mongoRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": NormalizeOwner(owner)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(owner)
	}
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeNetwork, err, "load result for %q", owner)
	}
	return fromMongo(doc)
}

// Ping checks that the primary is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeNetwork, err, "ping mongodb")
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func toMongo(rec Record) (mongoRecord, error) {
	cfg, err := json.Marshal(rec.Config)
	if err != nil {
		return mongoRecord{}, kerrors.Wrap(kerrors.ErrCodeInternal, err, "encode config")
	}
	res, err := json.Marshal(rec.Result)
	if err != nil {
		return mongoRecord{}, kerrors.Wrap(kerrors.ErrCodeInternal, err, "encode result")
	}
	return mongoRecord{
		Owner:     NormalizeOwner(rec.Owner),
		ID:        rec.ID,
		Config:    string(cfg),
		Result:    string(res),
		CreatedAt: rec.CreatedAt.UTC(),
	}, nil
}

func fromMongo(doc mongoRecord) (*Record, error) {
	rec := &Record{
		ID:        doc.ID,
		Owner:     doc.Owner,
		Result:    &pack.Result{},
		CreatedAt: doc.CreatedAt,
	}
	if err := json.Unmarshal([]byte(doc.Config), &rec.Config); err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInternal, err, "decode stored config")
	}
	if err := json.Unmarshal([]byte(doc.Result), rec.Result); err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInternal, err, "decode stored result")
	}
	return rec, nil
}

var _ Store = (*MongoStore)(nil)
