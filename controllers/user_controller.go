package controllers

import (
	"context"
	"net/http"
	"time"

	"bootcamper/apperrors"
	"bootcamper/database"
	"bootcamper/middleware"
	"bootcamper/models"
	"bootcamper/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// UpdateUserDetails lets the authenticated user change their own name
// and/or email. At least one of the two must be present.
func UpdateUserDetails(c *gin.Context) {
	user, ok := middleware.Principal(c)
	if !ok {
		utils.RespondError(c, apperrors.Unauthorized("Request unauthorized"))
		return
	}

	var input struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || (input.Name == "" && input.Email == "") {
		utils.RespondError(c, apperrors.BadRequest("Please enter the name or email"))
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Name != "" {
		if !models.ValidName(input.Name) {
			utils.RespondError(c, apperrors.BadRequest("Name can only consist of alphabet and spaces"))
			return
		}
		update["name"] = input.Name
	}
	if input.Email != "" {
		if !models.ValidEmail(input.Email) {
			utils.RespondError(c, apperrors.BadRequest("Please add a valid email"))
			return
		}
		update["email"] = input.Email
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.User
	err := database.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": user.ID}, bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		utils.RespondError(c, apperrors.FromMongo(err, "Invalid user"))
		return
	}

	utils.RespondData(c, http.StatusOK, updated)
}

// UpdateUserPassword replaces the password after checking the current one,
// then re-issues a session token exactly like login does.
func UpdateUserPassword(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		utils.RespondError(c, apperrors.Unauthorized("Request unauthorized"))
		return
	}

	var input struct {
		Password    string `json:"password"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Password == "" || input.NewPassword == "" {
		utils.RespondError(c, apperrors.BadRequest("Please input your current password and new password"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := database.UserCollection.FindOne(ctx, bson.M{"_id": principal.ID}).Decode(&user); err != nil {
		utils.RespondError(c, apperrors.Unauthorized("Invalid user"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, apperrors.Unauthorized("Invalid password"))
		return
	}

	if !models.ValidPassword(input.NewPassword) {
		utils.RespondError(c, apperrors.BadRequest("New password must contain one uppercase, one lowercase, and one numeric"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), 10)
	if err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}

	_, err = database.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{
		"password":  string(hashed),
		"updatedAt": time.Now(),
	}})
	if err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}

	token, err := utils.SignToken(user.ID.Hex())
	if err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}

	utils.SetTokenCookie(c, token)
	c.JSON(http.StatusOK, utils.Envelope{Success: true, Message: "Password resetted successfully", Token: token})
}
