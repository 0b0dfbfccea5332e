package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EventsColName = "events"

	// Field resets overwrite with these placeholders instead of
	// removing the document. Callers treat them as a semantic null.
	TitlePlaceholder       = "Titre non disponible"
	DescriptionPlaceholder = "Description non disponible"
)

type Event struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title          string               `bson:"title" json:"title" validate:"required"`
	URL            string               `bson:"url,omitempty" json:"url,omitempty"`
	Description    string               `bson:"description,omitempty" json:"description,omitempty"`
	Date           time.Time            `bson:"date" json:"date" validate:"required"`
	EndDate        *time.Time           `bson:"end_date,omitempty" json:"endDate,omitempty"`
	Location       string               `bson:"location,omitempty" json:"location,omitempty"`
	Category       string               `bson:"category,omitempty" json:"category,omitempty"`
	Status         string               `bson:"status,omitempty" json:"status,omitempty"`
	Popularity     int64                `bson:"popularity" json:"popularity"`
	CreatorID      primitive.ObjectID   `bson:"creator_id" json:"creatorId"`
	ParticipantIDs []primitive.ObjectID `bson:"participant_ids,omitempty" json:"participantIds,omitempty"`
	CreatedAt      time.Time            `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt      time.Time            `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// EventSummary is the projection returned by the filtered list
// endpoints. DescriptionLength is derived, not stored.
type EventSummary struct {
	ID                primitive.ObjectID `bson:"_id" json:"id"`
	Title             string             `bson:"title" json:"title"`
	Description       string             `bson:"description" json:"description,omitempty"`
	Date              time.Time          `bson:"date" json:"date"`
	Location          string             `bson:"location" json:"location,omitempty"`
	Category          string             `bson:"category" json:"category,omitempty"`
	Status            string             `bson:"status" json:"status,omitempty"`
	CreatorID         primitive.ObjectID `bson:"creator_id" json:"creatorId"`
	DescriptionLength int                `bson:"-" json:"descriptionLength"`
}

// TopEvent is the projection produced by the popularity top-N pipeline.
type TopEvent struct {
	Title      string `bson:"title" json:"title"`
	Popularity int64  `bson:"popularity" json:"popularity"`
	Date       string `bson:"date" json:"date"`
	Organizer  string `bson:"organizer" json:"organizer,omitempty"`
}
