package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AccountRepo interface {
	CreateAccount(ctx context.Context, account *Account) (*Account, error)
	GetAccountByID(ctx context.Context, id primitive.ObjectID) (*Account, error)
	FindAccountByEmail(ctx context.Context, email string) (*Account, error)
	FindAccountByUsername(ctx context.Context, username string) (*Account, error)
	UpdateAccount(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Account, error)
	DeleteAccount(ctx context.Context, id primitive.ObjectID) (*Account, error)
	AccountsWithEvents(ctx context.Context) ([]bson.M, error)
	EnsureAccountIndexes(ctx context.Context) error
}

// EnsureAccountIndexes creates the unique indexes backing the
// username/email uniqueness invariant.
func (mdb *MongodbRepo) EnsureAccountIndexes(ctx context.Context) error {
	col := mdb.Collection(AccountsColName)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("username_unique"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
	}

	if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("error creating account indexes: %v", err)
	}

	return nil
}

func (mdb *MongodbRepo) CreateAccount(ctx context.Context, account *Account) (*Account, error) {
	col := mdb.Collection(AccountsColName)

	if account.ID.IsZero() {
		account.ID = primitive.NewObjectID()
	}
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	if _, err := col.InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("error inserting account: %v", err)
	}

	return account, nil
}

func (mdb *MongodbRepo) GetAccountByID(ctx context.Context, id primitive.ObjectID) (*Account, error) {
	return mdb.findAccount(ctx, bson.M{"_id": id})
}

func (mdb *MongodbRepo) FindAccountByEmail(ctx context.Context, email string) (*Account, error) {
	return mdb.findAccount(ctx, bson.M{"email": email})
}

func (mdb *MongodbRepo) FindAccountByUsername(ctx context.Context, username string) (*Account, error) {
	return mdb.findAccount(ctx, bson.M{"username": username})
}

func (mdb *MongodbRepo) findAccount(ctx context.Context, filter bson.M) (*Account, error) {
	col := mdb.Collection(AccountsColName)

	var account Account
	err := col.FindOne(ctx, filter).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error finding account: %v", err)
	}

	return &account, nil
}

func (mdb *MongodbRepo) UpdateAccount(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Account, error) {
	col := mdb.Collection(AccountsColName)

	fields["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var account Account
	err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("error updating account: %v", err)
	}

	return &account, nil
}

func (mdb *MongodbRepo) DeleteAccount(ctx context.Context, id primitive.ObjectID) (*Account, error) {
	col := mdb.Collection(AccountsColName)

	var account Account
	err := col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error deleting account: %v", err)
	}

	return &account, nil
}

// AccountsWithEvents joins accounts to the events they created and
// keeps only accounts with at least one event. Password hashes are
// stripped in the pipeline, never after the fact.
func (mdb *MongodbRepo) AccountsWithEvents(ctx context.Context) ([]bson.M, error) {
	col := mdb.Collection(AccountsColName)

	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         EventsColName,
			"localField":   "_id",
			"foreignField": "creator_id",
			"as":           "events",
		}}},
		{{Key: "$match", Value: bson.M{"events.0": bson.M{"$exists": true}}}},
		{{Key: "$project", Value: bson.M{"password_hash": 0}}},
	}

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating accounts with events: %v", err)
	}
	defer cursor.Close(ctx)

	var accounts []bson.M
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("error decoding accounts with events: %v", err)
	}

	return accounts, nil
}
