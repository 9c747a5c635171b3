package controllers

import (
	"bootcamper/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ownsOrAdmin is the ownership bypass shared by the mutating handlers: the
// acting user must own the record or hold the Admin role.
func ownsOrAdmin(user models.User, owner primitive.ObjectID) bool {
	return user.ID == owner || user.Role == models.RoleAdmin
}
