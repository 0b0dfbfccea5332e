package models

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventFilter holds the recognized list/search query options. Absent
// options simply omit the corresponding predicate clause.
type EventFilter struct {
	Search    string
	Category  string
	Status    string
	MinLength int
}

// Build translates the filter into a single Mongo predicate. It is
// pure: same inputs always produce the same document, no I/O.
func (f EventFilter) Build() bson.M {
	filter := bson.M{}

	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": pattern}},
			bson.M{"description": bson.M{"$regex": pattern}},
		}
	}

	if f.Category != "" {
		filter["category"] = f.Category
	}

	if f.Status != "" {
		filter["status"] = f.Status
	}

	if f.MinLength > 0 {
		filter["$expr"] = bson.M{
			"$gte": bson.A{bson.M{"$strLenCP": bson.M{"$ifNull": bson.A{"$description", ""}}}, f.MinLength},
		}
	}

	return filter
}
