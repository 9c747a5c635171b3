package controllers

import (
	"context"
	"net/http"
	"time"

	"bootcamper/aggregates"
	"bootcamper/apperrors"
	"bootcamper/database"
	"bootcamper/middleware"
	"bootcamper/models"
	"bootcamper/query"
	"bootcamper/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetReviews lists every review, or only one bootcamp's reviews when
// reached through the nested route.
func GetReviews(c *gin.Context) {
	if bootcampID := c.Param("bootcampId"); bootcampID != "" {
		id, err := primitive.ObjectIDFromHex(bootcampID)
		if err != nil {
			utils.RespondError(c, apperrors.NotFound("No bootcamp found"))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cur, err := database.ReviewCollection.Find(ctx, bson.M{"bootcamp": id})
		if err != nil {
			utils.RespondError(c, apperrors.Internal(err))
			return
		}
		reviews := []models.Review{}
		if err := cur.All(ctx, &reviews); err != nil {
			utils.RespondError(c, apperrors.Internal(err))
			return
		}

		utils.RespondList(c, http.StatusOK, reviews, len(reviews), nil)
		return
	}

	listResources[models.ReviewExpanded](c, database.ReviewCollection, reviewFields, bootcampPopulate)
}

func GetReview(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("reviewId"))
	if err != nil {
		utils.RespondError(c, apperrors.NotFound("No review found"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	pipeline := append([]bson.D{
		{{Key: "$match", Value: bson.M{"_id": id}}},
	}, query.LookupStages(bootcampPopulate)...)

	cur, err := database.ReviewCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}

	var reviews []models.ReviewExpanded
	if err := cur.All(ctx, &reviews); err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}
	if len(reviews) == 0 {
		utils.RespondError(c, apperrors.NotFound("No review found"))
		return
	}

	utils.RespondData(c, http.StatusOK, reviews[0])
}

// CreateReview adds a review under a bootcamp and recomputes the rating
// average. A user gets one review per bootcamp; the compound unique index
// backs the check against concurrent submissions.
func CreateReview(c *gin.Context) {
	user, ok := middleware.Principal(c)
	if !ok {
		utils.RespondError(c, apperrors.Unauthorized("Request unauthorized"))
		return
	}

	bootcampID, err := primitive.ObjectIDFromHex(c.Param("bootcampId"))
	if err != nil {
		utils.RespondError(c, apperrors.NotFound("No bootcamp found"))
		return
	}

	var review models.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		utils.RespondError(c, apperrors.BadRequest("Please add a title, description and a rating between 1 and 5"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := database.BootcampCollection.FindOne(ctx, bson.M{"_id": bootcampID}).Err(); err != nil {
		utils.RespondError(c, apperrors.FromMongo(err, "No bootcamp found"))
		return
	}

	err = database.ReviewCollection.FindOne(ctx, bson.M{"bootcamp": bootcampID, "user": user.ID}).Err()
	if err == nil {
		utils.RespondError(c, apperrors.BadRequest("User already submitted a review for this bootcamp"))
		return
	}

	now := time.Now()
	review.ID = primitive.NewObjectID()
	review.Bootcamp = bootcampID
	review.User = user.ID
	review.CreatedAt = now
	review.UpdatedAt = now

	if _, err := database.ReviewCollection.InsertOne(ctx, review); err != nil {
		utils.RespondError(c, apperrors.FromMongo(err, "No review found"))
		return
	}

	aggregates.RecalcRatingAvg(ctx, bootcampID)

	utils.RespondData(c, http.StatusCreated, review)
}

// UpdateReview only allows the review's author; admins can delete reviews
// but never edit their content.
func UpdateReview(c *gin.Context) {
	user, ok := middleware.Principal(c)
	if !ok {
		utils.RespondError(c, apperrors.Unauthorized("Request unauthorized"))
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("reviewId"))
	if err != nil {
		utils.RespondError(c, apperrors.NotFound("No review found"))
		return
	}

	var input struct {
		Title       *string  `json:"title"`
		Description *string  `json:"reviewDescription"`
		Rating      *float64 `json:"rating"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, apperrors.BadRequest("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var review models.Review
	if err := database.ReviewCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&review); err != nil {
		utils.RespondError(c, apperrors.FromMongo(err, "No review found"))
		return
	}

	if review.User != user.ID {
		utils.RespondError(c, apperrors.Forbidden("You are not authorized to update this review"))
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Title != nil {
		update["title"] = *input.Title
	}
	if input.Description != nil {
		update["reviewDescription"] = *input.Description
	}
	if input.Rating != nil {
		if *input.Rating < 1 || *input.Rating > 5 {
			utils.RespondError(c, apperrors.BadRequest("Please add a rating between 1 and 5"))
			return
		}
		update["rating"] = *input.Rating
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Review
	err = database.ReviewCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		utils.RespondError(c, apperrors.FromMongo(err, "No review found"))
		return
	}

	aggregates.RecalcRatingAvg(ctx, updated.Bootcamp)

	utils.RespondData(c, http.StatusOK, updated)
}

func DeleteReview(c *gin.Context) {
	user, ok := middleware.Principal(c)
	if !ok {
		utils.RespondError(c, apperrors.Unauthorized("Request unauthorized"))
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("reviewId"))
	if err != nil {
		utils.RespondError(c, apperrors.NotFound("No review found"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var review models.Review
	if err := database.ReviewCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&review); err != nil {
		utils.RespondError(c, apperrors.FromMongo(err, "No review found"))
		return
	}

	if !ownsOrAdmin(user, review.User) {
		utils.RespondError(c, apperrors.Forbidden("You are not authorized to delete this review"))
		return
	}

	if _, err := database.ReviewCollection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}

	aggregates.RecalcRatingAvg(ctx, review.Bootcamp)

	utils.RespondData(c, http.StatusOK, gin.H{})
}
