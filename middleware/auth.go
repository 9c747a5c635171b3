package middleware

import (
	"context"
	"strings"
	"time"

	"bootcamper/apperrors"
	"bootcamper/database"
	"bootcamper/models"
	"bootcamper/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const principalKey = "principal"

// RequireAuth extracts the bearer credential from the Authorization header
// or the token cookie (header wins), verifies it and loads the acting user
// for downstream handlers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			utils.RespondError(c, apperrors.Unauthorized("Request unauthorized"))
			return
		}

		userID, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.RespondError(c, apperrors.Unauthorized("Request unauthorized"))
			return
		}

		objID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			utils.RespondError(c, apperrors.Unauthorized("Request unauthorized"))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := database.UserCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&user); err != nil {
			utils.RespondError(c, apperrors.Unauthorized("Request unauthorized"))
			return
		}

		c.Set(principalKey, user)
		c.Next()
	}
}

// RequireRoles allows the request through only when the principal's role is
// on the route's list. Admin is never implicit.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := Principal(c)
		if !ok {
			utils.RespondError(c, apperrors.Unauthorized("Request unauthorized"))
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		utils.RespondError(c, apperrors.Forbidden(
			"User role '"+string(user.Role)+"' is not authorized to access this route"))
	}
}

// Principal returns the authenticated user stashed by RequireAuth.
func Principal(c *gin.Context) (models.User, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// SetPrincipal is exposed for handler tests that bypass RequireAuth.
func SetPrincipal(c *gin.Context, user models.User) {
	c.Set(principalKey, user)
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}
