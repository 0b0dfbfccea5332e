package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const AccountsColName = "accounts"

type Account struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username     string               `bson:"username" json:"username" validate:"required"`
	Email        string               `bson:"email" json:"email" validate:"required,email"`
	PasswordHash string               `bson:"password_hash" json:"-"`
	EventIDs     []primitive.ObjectID `bson:"event_ids,omitempty" json:"eventIds,omitempty"`
	CreatedAt    time.Time            `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt    time.Time            `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}
