package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Skill string

const (
	SkillBeginner     Skill = "Beginner"
	SkillIntermediate Skill = "Intermediate"
	SkillAdvanced     Skill = "Advanced"
)

func ValidSkill(s Skill) bool {
	return s == SkillBeginner || s == SkillIntermediate || s == SkillAdvanced
}

type Course struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title" binding:"required"`
	Description  string             `bson:"description" json:"description" binding:"required"`
	Duration     string             `bson:"duration" json:"duration" binding:"required"`
	Tuition      float64            `bson:"tuition" json:"tuition" binding:"required"`
	MinimumSkill Skill              `bson:"minimumSkill" json:"minimumSkill" binding:"required"`
	Bootcamp     primitive.ObjectID `bson:"bootcamp" json:"bootcamp"`
	User         primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CourseExpanded is a course whose bootcamp reference has been resolved
// inline via $lookup.
type CourseExpanded struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Duration     string             `bson:"duration" json:"duration"`
	Tuition      float64            `bson:"tuition" json:"tuition"`
	MinimumSkill Skill              `bson:"minimumSkill" json:"minimumSkill"`
	Bootcamp     BootcampRef        `bson:"bootcamp" json:"bootcamp"`
	User         primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
