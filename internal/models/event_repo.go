package models

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventRepo interface {
	CreateEvent(ctx context.Context, event *Event) (*Event, error)
	GetEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error)
	UpdateTitle(ctx context.Context, id primitive.ObjectID, title string) (*Event, error)
	UpdateDescription(ctx context.Context, id primitive.ObjectID, description string) (*Event, error)
	DeleteEvent(ctx context.Context, id primitive.ObjectID) error
	IncrementPopularity(ctx context.Context, id primitive.ObjectID) (*Event, error)
	ListEvents(ctx context.Context, filter EventFilter, page PageOptions, sortOrder int) ([]EventSummary, int64, error)
	MediaEvents(ctx context.Context) ([]*Event, error)
	SortedTitles(ctx context.Context) ([]string, error)
	TopEvents(ctx context.Context, n int64) ([]TopEvent, error)
	SearchByParticipant(ctx context.Context, name string, page PageOptions) (*EventPage, error)
	SearchByOrganizer(ctx context.Context, name string, page PageOptions) (*EventPage, error)
}

func (mdb *MongodbRepo) CreateEvent(ctx context.Context, event *Event) (*Event, error) {
	col := mdb.Collection(EventsColName)

	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	if _, err := col.InsertOne(ctx, event); err != nil {
		return nil, fmt.Errorf("error inserting event: %v", err)
	}

	return event, nil
}

func (mdb *MongodbRepo) GetEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error) {
	col := mdb.Collection(EventsColName)

	var event Event
	err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error finding event: %v", err)
	}

	return &event, nil
}

// updateEventField overwrites one field and returns the updated
// document; the document itself is never removed.
func (mdb *MongodbRepo) updateEventField(ctx context.Context, id primitive.ObjectID, field, value string) (*Event, error) {
	col := mdb.Collection(EventsColName)

	update := bson.M{"$set": bson.M{field: value, "updated_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var event Event
	err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error updating event %s: %v", field, err)
	}

	return &event, nil
}

func (mdb *MongodbRepo) UpdateTitle(ctx context.Context, id primitive.ObjectID, title string) (*Event, error) {
	return mdb.updateEventField(ctx, id, "title", title)
}

func (mdb *MongodbRepo) UpdateDescription(ctx context.Context, id primitive.ObjectID, description string) (*Event, error) {
	return mdb.updateEventField(ctx, id, "description", description)
}

func (mdb *MongodbRepo) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	col := mdb.Collection(EventsColName)

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting event: %v", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (mdb *MongodbRepo) IncrementPopularity(ctx context.Context, id primitive.ObjectID) (*Event, error) {
	col := mdb.Collection(EventsColName)

	update := bson.M{
		"$inc": bson.M{"popularity": 1},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var event Event
	err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error incrementing popularity: %v", err)
	}

	return &event, nil
}

// ListEvents runs the filtered list query: a projected Find plus a
// CountDocuments over the same predicate so the total reflects the
// filtered set independent of the pagination window.
func (mdb *MongodbRepo) ListEvents(ctx context.Context, filter EventFilter, page PageOptions, sortOrder int) ([]EventSummary, int64, error) {
	col := mdb.Collection(EventsColName)
	page = page.Normalize()
	predicate := filter.Build()

	opts := options.Find().
		SetProjection(bson.M{
			"title": 1, "description": 1, "date": 1, "location": 1,
			"category": 1, "status": 1, "creator_id": 1,
		}).
		SetSort(bson.D{{Key: "date", Value: sortOrder}}).
		SetSkip(int64(page.Skip)).
		SetLimit(int64(page.Limit))

	cursor, err := col.Find(ctx, predicate, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error finding events: %v", err)
	}
	defer cursor.Close(ctx)

	var events []EventSummary
	if err := cursor.All(ctx, &events); err != nil {
		return nil, 0, fmt.Errorf("error decoding events: %v", err)
	}

	total, err := col.CountDocuments(ctx, predicate)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting events: %v", err)
	}

	return events, total, nil
}

func (mdb *MongodbRepo) MediaEvents(ctx context.Context) ([]*Event, error) {
	col := mdb.Collection(EventsColName)

	filter := bson.M{"description": bson.M{"$exists": true, "$ne": ""}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding media events: %v", err)
	}
	defer cursor.Close(ctx)

	var events []*Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("error decoding media events: %v", err)
	}

	return events, nil
}

func (mdb *MongodbRepo) SortedTitles(ctx context.Context) ([]string, error) {
	col := mdb.Collection(EventsColName)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"title": bson.M{"$exists": true, "$ne": ""}}}},
		{{Key: "$project", Value: bson.M{"_id": 0, "title": 1}}},
		{{Key: "$sort", Value: bson.M{"title": 1}}},
	}

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating titles: %v", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Title string `bson:"title"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding titles: %v", err)
	}

	titles := make([]string, 0, len(rows))
	for _, row := range rows {
		titles = append(titles, row.Title)
	}

	return titles, nil
}

// TopEvents returns the n most popular events with the organizer
// username resolved through a left-outer join on accounts.
func (mdb *MongodbRepo) TopEvents(ctx context.Context, n int64) ([]TopEvent, error) {
	col := mdb.Collection(EventsColName)

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.M{"popularity": -1}}},
		{{Key: "$limit", Value: n}},
		{{Key: "$lookup", Value: bson.M{
			"from":         AccountsColName,
			"localField":   "creator_id",
			"foreignField": "_id",
			"as":           "organizerInfo",
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":        0,
			"title":      1,
			"popularity": 1,
			"date":       bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$date"}},
			"organizer":  bson.M{"$arrayElemAt": bson.A{"$organizerInfo.username", 0}},
		}}},
	}

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating top events: %v", err)
	}
	defer cursor.Close(ctx)

	var top []TopEvent
	if err := cursor.All(ctx, &top); err != nil {
		return nil, fmt.Errorf("error decoding top events: %v", err)
	}

	return top, nil
}

// facetStage computes the total count and one page of projected results
// in a single pipeline execution, so total always reflects the full
// filtered/joined set regardless of the skip/limit window.
func facetStage(page PageOptions, project bson.M) bson.D {
	return bson.D{{Key: "$facet", Value: bson.M{
		"metadata": bson.A{bson.M{"$count": "total"}},
		"data": bson.A{
			bson.M{"$skip": page.Skip},
			bson.M{"$limit": page.Limit},
			bson.M{"$project": project},
		},
	}}}
}

func (mdb *MongodbRepo) runFacet(ctx context.Context, pipeline mongo.Pipeline, page PageOptions) (*EventPage, error) {
	col := mdb.Collection(EventsColName)

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error running aggregation: %v", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		Metadata []struct {
			Total int64 `bson:"total"`
		} `bson:"metadata"`
		Data []bson.M `bson:"data"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("error decoding aggregation: %v", err)
	}

	eventPage := &EventPage{Skip: page.Skip, Limit: page.Limit, Items: []bson.M{}}
	if len(result) > 0 {
		if len(result[0].Metadata) > 0 {
			eventPage.Total = result[0].Metadata[0].Total
		}
		if result[0].Data != nil {
			eventPage.Items = result[0].Data
		}
	}

	return eventPage, nil
}

func nameRegex(name string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}
}

// SearchByParticipant joins events to accounts over participant_ids and
// keeps events where any resolved username matches case-insensitively.
func (mdb *MongodbRepo) SearchByParticipant(ctx context.Context, name string, page PageOptions) (*EventPage, error) {
	page = page.Normalize()

	project := bson.M{
		"_id":         0,
		"id":          bson.M{"$toString": "$_id"},
		"title":       1,
		"description": 1,
		"url":         1,
		"date":        1,
		"endDate":     "$end_date",
		"location":    1,
		"creatorId":   bson.M{"$toString": "$creator_id"},
		"participants": bson.M{"$map": bson.M{
			"input": "$participants",
			"as":    "participant",
			"in": bson.M{
				"id":       bson.M{"$toString": "$$participant._id"},
				"username": "$$participant.username",
				"email":    "$$participant.email",
			},
		}},
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"participant_ids": bson.M{"$exists": true, "$not": bson.M{"$size": 0}},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         AccountsColName,
			"localField":   "participant_ids",
			"foreignField": "_id",
			"as":           "participants",
		}}},
		{{Key: "$match", Value: bson.M{
			"participants.username": bson.M{"$regex": nameRegex(name)},
		}}},
		{{Key: "$sort", Value: bson.M{"date": 1}}},
		facetStage(page, project),
	}

	return mdb.runFacet(ctx, pipeline, page)
}

// SearchByOrganizer joins events to accounts over creator_id. An event
// whose organizer cannot be resolved keeps a sentinel "unknown" record
// instead of dropping out of the page.
func (mdb *MongodbRepo) SearchByOrganizer(ctx context.Context, name string, page PageOptions) (*EventPage, error) {
	page = page.Normalize()

	project := bson.M{
		"_id":         0,
		"id":          bson.M{"$toString": "$_id"},
		"title":       1,
		"description": 1,
		"url":         1,
		"date":        1,
		"endDate":     "$end_date",
		"location":    1,
		"organizer": bson.M{"$cond": bson.A{
			bson.M{"$gt": bson.A{bson.M{"$size": "$organizer"}, 0}},
			bson.M{
				"id":       bson.M{"$toString": bson.M{"$arrayElemAt": bson.A{"$organizer._id", 0}}},
				"username": bson.M{"$arrayElemAt": bson.A{"$organizer.username", 0}},
				"email":    bson.M{"$arrayElemAt": bson.A{"$organizer.email", 0}},
			},
			bson.M{"id": "unknown", "username": "Inconnu", "email": "N/A"},
		}},
		"participantsCount": bson.M{"$size": bson.M{"$ifNull": bson.A{"$participant_ids", bson.A{}}}},
	}

	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         AccountsColName,
			"localField":   "creator_id",
			"foreignField": "_id",
			"as":           "organizer",
		}}},
		{{Key: "$match", Value: bson.M{
			"organizer.username": bson.M{"$regex": nameRegex(name)},
		}}},
		{{Key: "$sort", Value: bson.M{"date": 1}}},
		facetStage(page, project),
	}

	return mdb.runFacet(ctx, pipeline, page)
}
