package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bootcamper/apperrors"
	"bootcamper/database"
	"bootcamper/logger"
	"bootcamper/mailer"
	"bootcamper/middleware"
	"bootcamper/models"
	"bootcamper/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = 5 * time.Minute

// Register creates an account. The chosen role is limited to User or
// Publisher; admins are only created through the admin endpoints.
func Register(c *gin.Context) {
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
	if !models.ValidRegisterRole(role) {
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

// Login validates credentials and issues a signed token in both the body
// and a http-only cookie.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
		utils.RespondError(c, apperrors.BadRequest("Please input a valid email and password"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := database.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		utils.RespondError(c, apperrors.Unauthorized("Invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, apperrors.Unauthorized("Invalid credentials"))
		return
	}

	token, err := utils.SignToken(user.ID.Hex())
	if err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}

	utils.SetTokenCookie(c, token)
	utils.RespondToken(c, http.StatusOK, user, token)
}

func Logout(c *gin.Context) {
	utils.ClearTokenCookie(c)
	utils.RespondMessage(c, http.StatusOK, "Logout Successfully")
}

func CurrentLoggedIn(c *gin.Context) {
	user, ok := middleware.Principal(c)
	if !ok {
		utils.RespondError(c, apperrors.Unauthorized("Request unauthorized"))
		return
	}
	utils.RespondData(c, http.StatusOK, user)
}

// ForgotPassword stores a hashed single-use reset token with a short expiry
// and mails the plain token to the user as a reset link.
func ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, apperrors.BadRequest("Please add an email"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := database.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		utils.RespondError(c, apperrors.NotFound("No user found with the email: "+input.Email))
		return
	}

	plain, hashed, err := utils.NewResetToken()
	if err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}

	_, err = database.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{
		"resetPasswordToken":  hashed,
		"resetPasswordExpire": time.Now().Add(resetTokenTTL),
	}})
	if err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	resetURL := fmt.Sprintf("%s://%s/api/v1/auth/reset-password/%s", scheme, c.Request.Host, plain)
	message := "You are receiving this email because you (or someone else) has requested the reset of a password. Please make a request to: \n\n" + resetURL

	if err := mailer.Send(user.Email, "Password reset token", message); err != nil {
		logger.Errorw("reset email failed", "email", user.Email, "error", err)

		// Clear the token again so the failed delivery leaves nothing usable.
		_, _ = database.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$unset": bson.M{
			"resetPasswordToken":  "",
			"resetPasswordExpire": "",
		}})
		utils.RespondError(c, apperrors.NotFound("Email could not be sent"))
		return
	}

	utils.RespondMessage(c, http.StatusOK, "Email sent")
}

// ResetPassword validates the emailed token against its stored hash and
// expiry window, then replaces the password and clears the token fields.
func ResetPassword(c *gin.Context) {
	var input struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, apperrors.BadRequest("Please add a password"))
		return
	}

	if !models.ValidPassword(input.Password) {
		utils.RespondError(c, apperrors.BadRequest("Password must contain one uppercase, one lowercase, and one numeric"))
		return
	}

	hashedToken := utils.HashResetToken(c.Param("resetToken"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := database.UserCollection.FindOne(ctx, bson.M{
		"resetPasswordToken":  hashedToken,
		"resetPasswordExpire": bson.M{"$gt": time.Now()},
	}).Decode(&user)
	if err != nil {
		utils.RespondError(c, apperrors.BadRequest("Invalid token"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), 10)
	if err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}

	_, err = database.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set":   bson.M{"password": string(hashed), "updatedAt": time.Now()},
		"$unset": bson.M{"resetPasswordToken": "", "resetPasswordExpire": ""},
	})
	if err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}

	utils.RespondData(c, http.StatusOK, "Password successfully been reset")
}
