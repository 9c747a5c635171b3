package controllers

import (
	"context"
	"net/http"
	"time"

	"bootcamper/apperrors"
	"bootcamper/database"
	"bootcamper/models"
	"bootcamper/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

func GetAllUsers(c *gin.Context) {
	listResources[models.User](c, database.UserCollection, userFields, nil)
}

// CreateUser is the admin-only create; unlike registration it may assign
// any role, including Admin.
func CreateUser(c *gin.Context) {
	var input struct {
		Name     string      `json:"name" binding:"required"`
		Email    string      `json:"email" binding:"required"`
		Password string      `json:"password" binding:"required"`
		Role     models.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, apperrors.BadRequest("Please add a name, email and password"))
		return
	}

	if !models.ValidName(input.Name) {
		utils.RespondError(c, apperrors.BadRequest("Name can only consist of alphabet and spaces"))
		return
	}
	if !models.ValidEmail(input.Email) {
		utils.RespondError(c, apperrors.BadRequest("Please add a valid email"))
		return
	}
	if !models.ValidPassword(input.Password) {
		utils.RespondError(c, apperrors.BadRequest("Password must contain one uppercase, one lowercase, and one numeric"))
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		utils.RespondError(c, apperrors.BadRequest("Invalid role"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), 10)
	if err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}

	now := time.Now()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  string(hashed),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := database.UserCollection.InsertOne(ctx, user); err != nil {
		utils.RespondError(c, apperrors.FromMongo(err, "User not found"))
		return
	}

	utils.RespondData(c, http.StatusCreated, user)
}

func UpdateUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		utils.RespondError(c, apperrors.NotFound("Resource not found with id of "+c.Param("userId")))
		return
	}

	var input struct {
		Name  *string      `json:"name"`
		Email *string      `json:"email"`
		Role  *models.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, apperrors.BadRequest("Invalid request body"))
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		if !models.ValidName(*input.Name) {
			utils.RespondError(c, apperrors.BadRequest("Name can only consist of alphabet and spaces"))
			return
		}
		update["name"] = *input.Name
	}
	if input.Email != nil {
		if !models.ValidEmail(*input.Email) {
			utils.RespondError(c, apperrors.BadRequest("Please add a valid email"))
			return
		}
		update["email"] = *input.Email
	}
	if input.Role != nil {
		if !models.ValidRole(*input.Role) {
			utils.RespondError(c, apperrors.BadRequest("Invalid role"))
			return
		}
		update["role"] = *input.Role
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.User
	err = database.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": userID}, bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		utils.RespondError(c, apperrors.FromMongo(err, "User not found with id of "+c.Param("userId")))
		return
	}

	utils.RespondData(c, http.StatusOK, updated)
}

func DeleteUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		utils.RespondError(c, apperrors.NotFound("Resource not found with id of "+c.Param("userId")))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := database.UserCollection.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}

	utils.RespondData(c, http.StatusOK, gin.H{})
}
