package store

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SaurabhVishwakarma412/PedoDerma/module/messaging/model"
)

type mongoStore struct {
	coll *mongo.Collection
}

// messageDoc is the stored shape; _id stays an ObjectID inside Mongo and is
// exposed as its hex form on model.Message.
type messageDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ClientMsgID string             `bson:"client_msg_id,omitempty"`
	From        string             `bson:"from"`
	To          string             `bson:"to"`
	Body        string             `bson:"body"`
	SentAt      int64              `bson:"sent_at"`
	Read        bool               `bson:"read"`
}

func (d *messageDoc) toModel() model.Message {
	return model.Message{
		ID:          d.ID.Hex(),
		ClientMsgID: d.ClientMsgID,
		From:        d.From,
		To:          d.To,
		Body:        d.Body,
		SentAt:      d.SentAt,
		Read:        d.Read,
	}
}

// NewMongo wraps an already-connected database and ensures the indexes the
// queries rely on.
func NewMongo(ctx context.Context, db *mongo.Database) (Store, error) {
	s := &mongoStore{coll: db.Collection(model.MessageTableName)}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *mongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// idempotency key: one stored row per (sender, client key)
			Keys: bson.D{
				{Key: model.MessageFieldFrom, Value: 1},
				{Key: model.MessageFieldClientMsgID, Value: 1},
			},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(
				bson.M{model.MessageFieldClientMsgID: bson.M{"$exists": true}},
			),
		},
		{
			Keys: bson.D{
				{Key: model.MessageFieldFrom, Value: 1},
				{Key: model.MessageFieldTo, Value: 1},
				{Key: model.MessageFieldSentAt, Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: model.MessageFieldTo, Value: 1},
				{Key: model.MessageFieldRead, Value: 1},
			},
		},
	})
	return errors.Wrap(err, "ensure message indexes")
}

func (s *mongoStore) Insert(ctx context.Context, m *model.Message) (string, error) {
	if m.ClientMsgID != "" {
		var prev messageDoc
		err := s.coll.FindOne(ctx, bson.M{
			model.MessageFieldFrom:        m.From,
			model.MessageFieldClientMsgID: m.ClientMsgID,
		}).Decode(&prev)
		if err == nil {
			m.ID = prev.ID.Hex()
			return m.ID, nil
		}
		if err != mongo.ErrNoDocuments {
			return "", errors.Wrap(err, "idempotency lookup")
		}
	}

	doc := messageDoc{
		ID:          primitive.NewObjectID(),
		ClientMsgID: m.ClientMsgID,
		From:        m.From,
		To:          m.To,
		Body:        m.Body,
		SentAt:      m.SentAt,
		Read:        m.Read,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// lost the race to the other write path; the row is there
			return s.Insert(ctx, m)
		}
		return "", errors.Wrap(err, "insert message")
	}
	m.ID = doc.ID.Hex()
	return m.ID, nil
}

func (s *mongoStore) QueryByPair(ctx context.Context, a, b string) ([]model.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{model.MessageFieldFrom: a, model.MessageFieldTo: b},
		bson.M{model.MessageFieldFrom: b, model.MessageFieldTo: a},
	}}
	return s.find(ctx, filter)
}

func (s *mongoStore) QueryAllInvolving(ctx context.Context, participantID string) ([]model.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{model.MessageFieldFrom: participantID},
		bson.M{model.MessageFieldTo: participantID},
	}}
	return s.find(ctx, filter)
}

func (s *mongoStore) find(ctx context.Context, filter bson.M) ([]model.Message, error) {
	cur, err := s.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: model.MessageFieldSentAt, Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "query messages")
	}
	defer func() { _ = cur.Close(ctx) }()

	var out []model.Message
	for cur.Next(ctx) {
		var d messageDoc
		if err := cur.Decode(&d); err != nil {
			return nil, errors.Wrap(err, "decode message")
		}
		out = append(out, d.toModel())
	}
	return out, errors.Wrap(cur.Err(), "iterate messages")
}

func (s *mongoStore) MarkRead(ctx context.Context, readerID, counterpartID string) (int64, error) {
	res, err := s.coll.UpdateMany(ctx,
		bson.M{
			model.MessageFieldTo:   readerID,
			model.MessageFieldFrom: counterpartID,
			model.MessageFieldRead: false,
		},
		bson.M{"$set": bson.M{model.MessageFieldRead: true}},
	)
	if err != nil {
		return 0, errors.Wrap(err, "mark read")
	}
	return res.ModifiedCount, nil
}
