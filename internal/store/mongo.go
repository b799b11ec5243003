package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"formbot/internal/domain"
	apperrors "formbot/pkg/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

// mongoDocument is the stored shape of a FormSubmission. The _id is left to
// the server on insert and accepted in any BSON type on read.
type mongoDocument struct {
	ID        interface{} `bson:"_id,omitempty"`
	Company   string      `bson:"company"`
	Name      string      `bson:"name"`
	Email     string      `bson:"email"`
	Phone     string      `bson:"phone"`
	CreatedAt time.Time   `bson:"created_at"`
}

// MongoStore reads and writes one collection of one database.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore binds client to database.collection. The database is always
// named explicitly.
func NewMongoStore(client *mongo.Client, database, collection string) *MongoStore {
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
}

func (s *MongoStore) Insert(ctx context.Context, sub domain.FormSubmission) (string, error) {
	doc := mongoDocument{
		Company:   sub.Company,
		Name:      sub.Name,
		Email:     sub.Email,
		Phone:     sub.Phone,
		CreatedAt: sub.CreatedAt,
	}
	result, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", classifyMongo(err, apperrors.ErrCodeWrite, "insertOne into "+s.coll.Name())
	}
	return formatID(result.InsertedID), nil
}

func (s *MongoStore) Find(ctx context.Context, opts FindOptions) ([]domain.FormSubmission, error) {
	// _id order keeps skip paging stable while inserts happen
	findOpts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(opts.skip())).
		SetLimit(int64(opts.EffectiveLimit()))

	cursor, err := s.coll.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, classifyMongo(err, apperrors.ErrCodeRead, "find in "+s.coll.Name())
	}
	defer cursor.Close(ctx)

	var docs []mongoDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, classifyMongo(err, apperrors.ErrCodeRead, "decode "+s.coll.Name())
	}

	subs := make([]domain.FormSubmission, len(docs))
	for i, d := range docs {
		subs[i] = domain.FormSubmission{
			ID:        formatID(d.ID),
			Company:   d.Company,
			Name:      d.Name,
			Email:     d.Email,
			Phone:     d.Phone,
			CreatedAt: d.CreatedAt,
		}
	}
	return subs, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return classifyMongo(err, apperrors.ErrCodeConnectivity, "ping")
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func formatID(id interface{}) string {
	switch v := id.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// classifyMongo reports server selection, network and timeout failures as
// connectivity errors and everything else under fallback.
func classifyMongo(err error, fallback apperrors.ErrorCode, message string) error {
	if isUnreachable(err) {
		return apperrors.Connectivity(message+": mongo unreachable", err)
	}
	return apperrors.Wrap(fallback, message, err)
}

func isUnreachable(err error) bool {
	var selErr topology.ServerSelectionError
	return errors.As(err, &selErr) ||
		errors.Is(err, topology.ErrServerSelectionTimeout) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		mongo.IsNetworkError(err) ||
		mongo.IsTimeout(err)
}
