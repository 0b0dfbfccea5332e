package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	IncidentsColName = "incidents"
	ServicesColName  = "services"
)

// AncillaryRepo covers the read-only incident/service collections and
// the bulk replace used by the seeding utility.
type AncillaryRepo interface {
	ListCollection(ctx context.Context, name string, limit int) ([]bson.M, error)
	ReplaceCollection(ctx context.Context, name string, docs []interface{}) error
}

func (mdb *MongodbRepo) ListCollection(ctx context.Context, name string, limit int) ([]bson.M, error) {
	col := mdb.Collection(name)

	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}
	opts := options.Find().SetLimit(int64(limit))

	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding %s: %v", name, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding %s: %v", name, err)
	}

	return docs, nil
}

// ReplaceCollection wipes a collection and inserts fresh documents.
// Seeding only; there is no cross-collection atomicity.
func (mdb *MongodbRepo) ReplaceCollection(ctx context.Context, name string, docs []interface{}) error {
	col := mdb.Collection(name)

	if _, err := col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("error clearing %s: %v", name, err)
	}

	if len(docs) == 0 {
		return nil
	}

	if _, err := col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("error seeding %s: %v", name, err)
	}

	return nil
}
