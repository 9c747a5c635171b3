package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location is a GeoJSON Point plus the locality fields the geocoder
// discovered. It replaces the raw address before the record is stored.
type Location struct {
	Type             string    `bson:"type" json:"type"`
	Coordinates      []float64 `bson:"coordinates" json:"coordinates"`
	FormattedAddress string    `bson:"formattedAddress,omitempty" json:"formattedAddress,omitempty"`
	Street           string    `bson:"street,omitempty" json:"street,omitempty"`
	City             string    `bson:"city,omitempty" json:"city,omitempty"`
	Zipcode          string    `bson:"zipcode,omitempty" json:"zipcode,omitempty"`
	Country          string    `bson:"country,omitempty" json:"country,omitempty"`
}

var Subjects = []string{
	"Mobile Development",
	"Web Development",
	"Data Science",
	"Cloud Architecting",
	"UI/UX",
	"DevOps",
	"Other",
}

func ValidSubjects(subjects []string) bool {
	for _, s := range subjects {
		found := false
		for _, known := range Subjects {
			if s == known {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

type Bootcamp struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name" binding:"required,max=50"`
	Slug          string             `bson:"slug" json:"slug"`
	Description   string             `bson:"description" json:"description" binding:"required,max=500"`
	WebsiteURL    string             `bson:"websiteUrl,omitempty" json:"websiteUrl,omitempty" binding:"omitempty,url"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address       string             `bson:"-" json:"address,omitempty" binding:"required"`
	Location      Location           `bson:"location" json:"location"`
	Subject       []string           `bson:"subject" json:"subject" binding:"required"`
	RatingAvg     float64            `bson:"ratingAvg,omitempty" json:"ratingAvg,omitempty"`
	CostAvg       float64            `bson:"costAvg,omitempty" json:"costAvg,omitempty"`
	Images        string             `bson:"images" json:"images"`
	JobAssistance bool               `bson:"jobAssistance" json:"jobAssistance"`
	JobGuarantee  bool               `bson:"jobGuarantee" json:"jobGuarantee"`
	User          primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

const DefaultBootcampImage = "image-not-found.jpg"

// BootcampRef is the projected subset embedded when a course or review
// expands its bootcamp reference.
type BootcampRef struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
}
