package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type StatsRepo interface {
	DescriptionStats(ctx context.Context) (*DescriptionStats, error)
	MediaEventsByCreator(ctx context.Context) ([]CreatorMediaStats, error)
}

type GlobalDescriptionStats struct {
	TotalEvents   int64   `bson:"totalEvents" json:"totalEvents"`
	AverageLength float64 `bson:"averageLength" json:"averageLength"`
	TotalLength   int64   `bson:"totalLength" json:"totalLength"`
}

type CategoryDescriptionStats struct {
	Category      string  `bson:"category" json:"category"`
	EventCount    int64   `bson:"eventCount" json:"eventCount"`
	AverageLength float64 `bson:"averageLength" json:"averageLength"`
	MinLength     int64   `bson:"minLength" json:"minLength"`
	MaxLength     int64   `bson:"maxLength" json:"maxLength"`
}

type LongDescription struct {
	Title             string `bson:"title" json:"title"`
	Category          string `bson:"category" json:"category,omitempty"`
	DescriptionLength int64  `bson:"descriptionLength" json:"descriptionLength"`
	Excerpt           string `bson:"excerpt" json:"excerpt"`
	Date              string `bson:"date" json:"date"`
}

type StatusDescriptionStats struct {
	Status        string  `bson:"status" json:"status"`
	EventCount    int64   `bson:"eventCount" json:"eventCount"`
	AverageLength float64 `bson:"averageLength" json:"averageLength"`
}

// DescriptionStats groups the derived description views. The four
// pipelines run as independent round trips; concurrent writes between
// them can make the report inconsistent as a snapshot.
type DescriptionStats struct {
	Global     GlobalDescriptionStats     `json:"global"`
	ByCategory []CategoryDescriptionStats `json:"byCategory"`
	Longest    []LongDescription          `json:"longestDescriptions"`
	ByStatus   []StatusDescriptionStats   `json:"byStatus"`
}

type CreatorMediaStats struct {
	CreatorID       string  `bson:"_id" json:"creatorId"`
	MediaEvents     int64   `bson:"mediaEventsCount" json:"mediaEventsCount"`
	TotalPopularity int64   `bson:"totalPopularity" json:"totalPopularity"`
	AvgPopularity   float64 `bson:"avgPopularity" json:"avgPopularity"`
}

// descriptionLengthStage derives descriptionLength for every document
// before grouping; missing descriptions count as length 0.
func descriptionLengthStage() bson.D {
	return bson.D{{Key: "$addFields", Value: bson.M{
		"descriptionLength": bson.M{"$strLenCP": bson.M{"$ifNull": bson.A{"$description", ""}}},
	}}}
}

func (mdb *MongodbRepo) aggregateInto(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	col := mdb.Collection(EventsColName)

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("error running stats aggregation: %v", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("error decoding stats aggregation: %v", err)
	}

	return nil
}

func (mdb *MongodbRepo) DescriptionStats(ctx context.Context) (*DescriptionStats, error) {
	stats := &DescriptionStats{}

	globalPipeline := mongo.Pipeline{
		descriptionLengthStage(),
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"totalEvents":   bson.M{"$sum": 1},
			"averageLength": bson.M{"$avg": "$descriptionLength"},
			"totalLength":   bson.M{"$sum": "$descriptionLength"},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":           0,
			"totalEvents":   1,
			"averageLength": bson.M{"$round": bson.A{"$averageLength", 2}},
			"totalLength":   1,
		}}},
	}
	var global []GlobalDescriptionStats
	if err := mdb.aggregateInto(ctx, globalPipeline, &global); err != nil {
		return nil, err
	}
	if len(global) > 0 {
		stats.Global = global[0]
	}

	categoryPipeline := mongo.Pipeline{
		descriptionLengthStage(),
		{{Key: "$group", Value: bson.M{
			"_id":           "$category",
			"eventCount":    bson.M{"$sum": 1},
			"averageLength": bson.M{"$avg": "$descriptionLength"},
			"minLength":     bson.M{"$min": "$descriptionLength"},
			"maxLength":     bson.M{"$max": "$descriptionLength"},
		}}},
		{{Key: "$sort", Value: bson.M{"eventCount": -1}}},
		{{Key: "$project", Value: bson.M{
			"_id":           0,
			"category":      bson.M{"$ifNull": bson.A{"$_id", "uncategorized"}},
			"eventCount":    1,
			"averageLength": bson.M{"$round": bson.A{"$averageLength", 2}},
			"minLength":     1,
			"maxLength":     1,
		}}},
	}
	if err := mdb.aggregateInto(ctx, categoryPipeline, &stats.ByCategory); err != nil {
		return nil, err
	}

	longestPipeline := mongo.Pipeline{
		descriptionLengthStage(),
		{{Key: "$sort", Value: bson.M{"descriptionLength": -1}}},
		{{Key: "$limit", Value: 5}},
		{{Key: "$project", Value: bson.M{
			"_id":               0,
			"title":             1,
			"category":          1,
			"descriptionLength": 1,
			"excerpt":           bson.M{"$substrCP": bson.A{bson.M{"$ifNull": bson.A{"$description", ""}}, 0, 100}},
			"date":              bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$date"}},
		}}},
	}
	if err := mdb.aggregateInto(ctx, longestPipeline, &stats.Longest); err != nil {
		return nil, err
	}

	statusPipeline := mongo.Pipeline{
		descriptionLengthStage(),
		{{Key: "$group", Value: bson.M{
			"_id":           "$status",
			"eventCount":    bson.M{"$sum": 1},
			"averageLength": bson.M{"$avg": "$descriptionLength"},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":           0,
			"status":        bson.M{"$ifNull": bson.A{"$_id", "unknown"}},
			"eventCount":    1,
			"averageLength": bson.M{"$round": bson.A{"$averageLength", 2}},
		}}},
		{{Key: "$sort", Value: bson.M{"eventCount": -1}}},
	}
	if err := mdb.aggregateInto(ctx, statusPipeline, &stats.ByStatus); err != nil {
		return nil, err
	}

	return stats, nil
}

func (mdb *MongodbRepo) MediaEventsByCreator(ctx context.Context) ([]CreatorMediaStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"description": bson.M{"$exists": true, "$ne": ""}}}},
		{{Key: "$group", Value: bson.M{
			"_id":              bson.M{"$toString": "$creator_id"},
			"mediaEventsCount": bson.M{"$sum": 1},
			"totalPopularity":  bson.M{"$sum": "$popularity"},
			"avgPopularity":    bson.M{"$avg": "$popularity"},
		}}},
		{{Key: "$sort", Value: bson.M{"mediaEventsCount": -1}}},
	}

	var stats []CreatorMediaStats
	if err := mdb.aggregateInto(ctx, pipeline, &stats); err != nil {
		return nil, err
	}

	return stats, nil
}
