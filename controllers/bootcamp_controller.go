package controllers

import (
	"context"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"bootcamper/apperrors"
	"bootcamper/config"
	"bootcamper/database"
	"bootcamper/geocoder"
	"bootcamper/middleware"
	"bootcamper/models"
	"bootcamper/utils"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// earthRadiusKM converts a distance into radians for $centerSphere.
const earthRadiusKM = 6378.0

func GetBootcamps(c *gin.Context) {
	listResources[models.Bootcamp](c, database.BootcampCollection, bootcampFields, nil)
}

func GetBootcamp(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("bootcampId"))
	if err != nil {
		utils.RespondError(c, apperrors.NotFound("Bootcamp not found with id of "+c.Param("bootcampId")))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var bootcamp models.Bootcamp
	if err := database.BootcampCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&bootcamp); err != nil {
		utils.RespondError(c, apperrors.FromMongo(err, "Bootcamp not found with id of "+c.Param("bootcampId")))
		return
	}

	utils.RespondData(c, http.StatusOK, bootcamp)
}

// CreateBootcamp persists a new listing. The name is slugged and the
// address geocoded synchronously before the write; the discovered location
// replaces the raw address. Non-admin users may only own one bootcamp.
func CreateBootcamp(c *gin.Context) {
	user, ok := middleware.Principal(c)
	if !ok {
		utils.RespondError(c, apperrors.Unauthorized("Request unauthorized"))
		return
	}

	var bootcamp models.Bootcamp
	if err := c.ShouldBindJSON(&bootcamp); err != nil {
		utils.RespondError(c, apperrors.BadRequest("Invalid bootcamp input"))
		return
	}
	if len(bootcamp.Subject) == 0 || !models.ValidSubjects(bootcamp.Subject) {
		utils.RespondError(c, apperrors.BadRequest("Invalid subject"))
		return
	}
	if bootcamp.Email != "" && !models.ValidEmail(bootcamp.Email) {
		utils.RespondError(c, apperrors.BadRequest("Please add a valid email"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	if user.Role != models.RoleAdmin {
		err := database.BootcampCollection.FindOne(ctx, bson.M{"user": user.ID}).Err()
		if err == nil {
			utils.RespondError(c, apperrors.BadRequest("User has already published a bootcamp"))
			return
		}
	}

	location, err := geocoder.Geocode(ctx, bootcamp.Address)
	if err != nil {
		utils.RespondError(c, apperrors.Wrap(http.StatusInternalServerError, "Server Error", err))
		return
	}

	now := time.Now()
	bootcamp.ID = primitive.NewObjectID()
	bootcamp.Slug = slug.Make(bootcamp.Name)
	bootcamp.Location = location
	bootcamp.Address = ""
	bootcamp.RatingAvg = 0
	bootcamp.CostAvg = 0
	bootcamp.Images = models.DefaultBootcampImage
	bootcamp.User = user.ID
	bootcamp.CreatedAt = now
	bootcamp.UpdatedAt = now

	if _, err := database.BootcampCollection.InsertOne(ctx, bootcamp); err != nil {
		utils.RespondError(c, apperrors.FromMongo(err, "Bootcamp not found"))
		return
	}

	utils.RespondData(c, http.StatusCreated, bootcamp)
}

func UpdateBootcamp(c *gin.Context) {
	user, ok := middleware.Principal(c)
	if !ok {
		utils.RespondError(c, apperrors.Unauthorized("Request unauthorized"))
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("bootcampId"))
	if err != nil {
		utils.RespondError(c, apperrors.NotFound("Bootcamp not found with id of "+c.Param("bootcampId")))
		return
	}

	var input struct {
		Name          *string   `json:"name"`
		Description   *string   `json:"description"`
		WebsiteURL    *string   `json:"websiteUrl"`
		Email         *string   `json:"email"`
		Phone         *string   `json:"phone"`
		Address       *string   `json:"address"`
		Subject       *[]string `json:"subject"`
		JobAssistance *bool     `json:"jobAssistance"`
		JobGuarantee  *bool     `json:"jobGuarantee"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, apperrors.BadRequest("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	var existing models.Bootcamp
	if err := database.BootcampCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
		utils.RespondError(c, apperrors.FromMongo(err, "Bootcamp not found with id of "+c.Param("bootcampId")))
		return
	}

	if !ownsOrAdmin(user, existing.User) {
		utils.RespondError(c, apperrors.Forbidden("User is not authorized to update this bootcamp"))
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		update["name"] = *input.Name
		update["slug"] = slug.Make(*input.Name)
	}
	if input.Description != nil {
		update["description"] = *input.Description
	}
	if input.WebsiteURL != nil {
		update["websiteUrl"] = *input.WebsiteURL
	}
	if input.Email != nil {
		if !models.ValidEmail(*input.Email) {
			utils.RespondError(c, apperrors.BadRequest("Please add a valid email"))
			return
		}
		update["email"] = *input.Email
	}
	if input.Phone != nil {
		update["phone"] = *input.Phone
	}
	if input.Subject != nil {
		if len(*input.Subject) == 0 || !models.ValidSubjects(*input.Subject) {
			utils.RespondError(c, apperrors.BadRequest("Invalid subject"))
			return
		}
		update["subject"] = *input.Subject
	}
	if input.JobAssistance != nil {
		update["jobAssistance"] = *input.JobAssistance
	}
	if input.JobGuarantee != nil {
		update["jobGuarantee"] = *input.JobGuarantee
	}
	if input.Address != nil {
		location, err := geocoder.Geocode(ctx, *input.Address)
		if err != nil {
			utils.RespondError(c, apperrors.Wrap(http.StatusInternalServerError, "Server Error", err))
			return
		}
		update["location"] = location
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Bootcamp
	err = database.BootcampCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		utils.RespondError(c, apperrors.FromMongo(err, "Bootcamp not found with id of "+c.Param("bootcampId")))
		return
	}

	utils.RespondData(c, http.StatusOK, updated)
}

// DeleteBootcamp removes the listing and cascades to its courses and
// reviews.
func DeleteBootcamp(c *gin.Context) {
	user, ok := middleware.Principal(c)
	if !ok {
		utils.RespondError(c, apperrors.Unauthorized("Request unauthorized"))
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("bootcampId"))
	if err != nil {
		utils.RespondError(c, apperrors.NotFound("Bootcamp not found with id of "+c.Param("bootcampId")))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var bootcamp models.Bootcamp
	if err := database.BootcampCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&bootcamp); err != nil {
		utils.RespondError(c, apperrors.FromMongo(err, "Bootcamp not found with id of "+c.Param("bootcampId")))
		return
	}

	if !ownsOrAdmin(user, bootcamp.User) {
		utils.RespondError(c, apperrors.Forbidden("User is not authorized to delete this bootcamp"))
		return
	}

	if _, err := database.BootcampCollection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}
	if _, err := database.CourseCollection.DeleteMany(ctx, bson.M{"bootcamp": id}); err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}
	if _, err := database.ReviewCollection.DeleteMany(ctx, bson.M{"bootcamp": id}); err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}

	utils.RespondData(c, http.StatusOK, gin.H{})
}

// GetBootcampsInRadius geocodes the zipcode and finds every bootcamp inside
// the given distance in kilometers.
func GetBootcampsInRadius(c *gin.Context) {
	zipcode := c.Param("zipcode")
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil || distance <= 0 {
		utils.RespondError(c, apperrors.BadRequest("Invalid distance"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	location, err := geocoder.Geocode(ctx, zipcode)
	if err != nil {
		utils.RespondError(c, apperrors.Wrap(http.StatusInternalServerError, "Server Error", err))
		return
	}

	radius := distance / earthRadiusKM
	center := []interface{}{location.Coordinates, radius}

	cur, err := database.BootcampCollection.Find(ctx, bson.M{
		"location": bson.M{"$geoWithin": bson.M{"$centerSphere": center}},
	})
	if err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}

	bootcamps := []models.Bootcamp{}
	if err := cur.All(ctx, &bootcamps); err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}

	utils.RespondCount(c, http.StatusOK, bootcamps, len(bootcamps))
}

// UploadBootcampPhoto stores an image for the listing. The file must be an
// image under the configured size limit; it is renamed deterministically by
// the bootcamp id plus the original extension.
func UploadBootcampPhoto(c *gin.Context) {
	user, ok := middleware.Principal(c)
	if !ok {
		utils.RespondError(c, apperrors.Unauthorized("Request unauthorized"))
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("bootcampId"))
	if err != nil {
		utils.RespondError(c, apperrors.NotFound("Bootcamp not found with id of "+c.Param("bootcampId")))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var bootcamp models.Bootcamp
	if err := database.BootcampCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&bootcamp); err != nil {
		utils.RespondError(c, apperrors.FromMongo(err, "Bootcamp not found with id of "+c.Param("bootcampId")))
		return
	}

	if !ownsOrAdmin(user, bootcamp.User) {
		utils.RespondError(c, apperrors.Forbidden("User is not authorized to update this bootcamp"))
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, apperrors.BadRequest("No file uploaded"))
		return
	}

	if !utils.IsImage(file) {
		utils.RespondError(c, apperrors.BadRequest("Files must be image"))
		return
	}
	if file.Size > config.GetEnvInt64("FILE_SIZE_LIMIT", 1_000_000) {
		utils.RespondError(c, apperrors.BadRequest("Files too large"))
		return
	}

	filename := "image_bootcamp_" + id.Hex() + filepath.Ext(file.Filename)
	dest := filepath.Join(config.GetEnv("FILE_UPLOAD_PATH", "./public/uploads"), filename)

	if err := c.SaveUploadedFile(file, dest); err != nil {
		utils.RespondError(c, apperrors.Wrap(http.StatusInternalServerError, "There is a problem with files uploading", err))
		return
	}

	_, err = database.BootcampCollection.UpdateOne(ctx,
		bson.M{"_id": id}, bson.M{"$set": bson.M{"images": filename, "updatedAt": time.Now()}})
	if err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}

	utils.RespondData(c, http.StatusOK, filename)
}
