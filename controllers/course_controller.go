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

var bootcampPopulate = &query.Populate{
	From:       "bootcamps",
	LocalField: "bootcamp",
	Project:    bson.M{"name": 1, "description": 1},
}

// GetCourses lists every course, or only the courses of one bootcamp when
// reached through the nested route.
func GetCourses(c *gin.Context) {
	if bootcampID := c.Param("bootcampId"); bootcampID != "" {
		id, err := primitive.ObjectIDFromHex(bootcampID)
		if err != nil {
			utils.RespondError(c, apperrors.NotFound("Bootcamp not found with the id of "+bootcampID))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cur, err := database.CourseCollection.Find(ctx, bson.M{"bootcamp": id})
		if err != nil {
			utils.RespondError(c, apperrors.Internal(err))
			return
		}
		courses := []models.Course{}
		if err := cur.All(ctx, &courses); err != nil {
			utils.RespondError(c, apperrors.Internal(err))
			return
		}

		utils.RespondList(c, http.StatusOK, courses, len(courses), nil)
		return
	}

	listResources[models.CourseExpanded](c, database.CourseCollection, courseFields, bootcampPopulate)
}

// GetCourse answers a single course with its bootcamp reference expanded to
// the name and description.
func GetCourse(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("courseId"))
	if err != nil {
		utils.RespondError(c, apperrors.NotFound("Course not found with id of "+c.Param("courseId")))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	pipeline := append([]bson.D{
		{{Key: "$match", Value: bson.M{"_id": id}}},
	}, query.LookupStages(bootcampPopulate)...)

	cur, err := database.CourseCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}

	var courses []models.CourseExpanded
	if err := cur.All(ctx, &courses); err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}
	if len(courses) == 0 {
		utils.RespondError(c, apperrors.NotFound("Course not found with id of "+c.Param("courseId")))
		return
	}

	utils.RespondData(c, http.StatusOK, courses[0])
}

// CreateCourse adds a course under a bootcamp and recomputes the
// bootcamp's average cost.
func CreateCourse(c *gin.Context) {
	user, ok := middleware.Principal(c)
	if !ok {
		utils.RespondError(c, apperrors.Unauthorized("Request unauthorized"))
		return
	}

	bootcampID, err := primitive.ObjectIDFromHex(c.Param("bootcampId"))
	if err != nil {
		utils.RespondError(c, apperrors.NotFound("Bootcamp not found with the id of "+c.Param("bootcampId")))
		return
	}

	var course models.Course
	if err := c.ShouldBindJSON(&course); err != nil {
		utils.RespondError(c, apperrors.BadRequest("Invalid course input"))
		return
	}
	if !models.ValidSkill(course.MinimumSkill) {
		utils.RespondError(c, apperrors.BadRequest("Invalid minimum skill"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var bootcamp models.Bootcamp
	if err := database.BootcampCollection.FindOne(ctx, bson.M{"_id": bootcampID}).Decode(&bootcamp); err != nil {
		utils.RespondError(c, apperrors.FromMongo(err, "Bootcamp not found with the id of "+c.Param("bootcampId")))
		return
	}

	if !ownsOrAdmin(user, bootcamp.User) {
		utils.RespondError(c, apperrors.Forbidden("User is not authorized to create a course to this bootcamp"))
		return
	}

	now := time.Now()
	course.ID = primitive.NewObjectID()
	course.Bootcamp = bootcampID
	course.User = user.ID
	course.CreatedAt = now
	course.UpdatedAt = now

	if _, err := database.CourseCollection.InsertOne(ctx, course); err != nil {
		utils.RespondError(c, apperrors.FromMongo(err, "Course not found"))
		return
	}

	aggregates.RecalcCostAvg(ctx, bootcampID)

	utils.RespondData(c, http.StatusCreated, course)
}

func UpdateCourse(c *gin.Context) {
	user, ok := middleware.Principal(c)
	if !ok {
		utils.RespondError(c, apperrors.Unauthorized("Request unauthorized"))
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("courseId"))
	if err != nil {
		utils.RespondError(c, apperrors.NotFound("Course not found with id of "+c.Param("courseId")))
		return
	}

	// The bootcamp reference is not updatable; a course never moves.
	var input struct {
		Title        *string       `json:"title"`
		Description  *string       `json:"description"`
		Duration     *string       `json:"duration"`
		Tuition      *float64      `json:"tuition"`
		MinimumSkill *models.Skill `json:"minimumSkill"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, apperrors.BadRequest("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var course models.Course
	if err := database.CourseCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&course); err != nil {
		utils.RespondError(c, apperrors.FromMongo(err, "Course not found with id of "+c.Param("courseId")))
		return
	}

	if !ownsOrAdmin(user, course.User) {
		utils.RespondError(c, apperrors.Forbidden("User is not authorized to update a course of this bootcamp"))
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Title != nil {
		update["title"] = *input.Title
	}
	if input.Description != nil {
		update["description"] = *input.Description
	}
	if input.Duration != nil {
		update["duration"] = *input.Duration
	}
	if input.Tuition != nil {
		update["tuition"] = *input.Tuition
	}
	if input.MinimumSkill != nil {
		if !models.ValidSkill(*input.MinimumSkill) {
			utils.RespondError(c, apperrors.BadRequest("Invalid minimum skill"))
			return
		}
		update["minimumSkill"] = *input.MinimumSkill
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Course
	err = database.CourseCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		utils.RespondError(c, apperrors.FromMongo(err, "Course not found with id of "+c.Param("courseId")))
		return
	}

	aggregates.RecalcCostAvg(ctx, updated.Bootcamp)

	utils.RespondData(c, http.StatusOK, updated)
}

func DeleteCourse(c *gin.Context) {
	user, ok := middleware.Principal(c)
	if !ok {
		utils.RespondError(c, apperrors.Unauthorized("Request unauthorized"))
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("courseId"))
	if err != nil {
		utils.RespondError(c, apperrors.NotFound("Course not found with id of "+c.Param("courseId")))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var course models.Course
	if err := database.CourseCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&course); err != nil {
		utils.RespondError(c, apperrors.FromMongo(err, "Course not found with id of "+c.Param("courseId")))
		return
	}

	if !ownsOrAdmin(user, course.User) {
		utils.RespondError(c, apperrors.Forbidden("User is not authorized to delete a course of this bootcamp"))
		return
	}

	if _, err := database.CourseCollection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}

	aggregates.RecalcCostAvg(ctx, course.Bootcamp)

	utils.RespondData(c, http.StatusOK, gin.H{})
}
