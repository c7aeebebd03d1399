package directory

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const doctorsTableName = "doctors"

type mongoStore struct {
	coll *mongo.Collection
}

func NewMongo(db *mongo.Database) Store {
	return &mongoStore{coll: db.Collection(doctorsTableName)}
}

func (s *mongoStore) List(ctx context.Context) ([]Doctor, error) {
	cur, err := s.coll.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"name": 1, "specialization": 1}))
	if err != nil {
		return nil, errors.Wrap(err, "list doctors")
	}
	defer func() { _ = cur.Close(ctx) }()

	var out []Doctor
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode doctors")
	}
	return out, nil
}

func (s *mongoStore) Seed(ctx context.Context, doctors []Doctor) error {
	for _, d := range doctors {
		_, err := s.coll.UpdateOne(ctx,
			bson.M{"name": d.Name},
			bson.M{"$setOnInsert": bson.M{
				"name":           d.Name,
				"specialization": d.Specialization,
			}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return errors.Wrap(err, "seed doctor")
		}
	}
	return nil
}
