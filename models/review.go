package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title" binding:"required,max=80"`
	Description string             `bson:"reviewDescription" json:"reviewDescription" binding:"required"`
	Rating      float64            `bson:"rating" json:"rating" binding:"required,min=1,max=5"`
	Bootcamp    primitive.ObjectID `bson:"bootcamp" json:"bootcamp"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ReviewExpanded is a review whose bootcamp reference has been resolved
// inline via $lookup.
type ReviewExpanded struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"reviewDescription" json:"reviewDescription"`
	Rating      float64            `bson:"rating" json:"rating"`
	Bootcamp    BootcampRef        `bson:"bootcamp" json:"bootcamp"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
