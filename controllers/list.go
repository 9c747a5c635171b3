package controllers

import (
	"context"
	"net/http"
	"time"

	"bootcamper/apperrors"
	"bootcamper/query"
	"bootcamper/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// Filterable fields per record type. The query translator rejects anything
// not listed here.
var (
	userFields = []string{
		"name", "email", "role", "createdAt",
	}
	bootcampFields = []string{
		"name", "slug", "description", "websiteUrl", "email", "phone",
		"subject", "ratingAvg", "costAvg", "jobAssistance", "jobGuarantee",
		"user", "createdAt",
	}
	courseFields = []string{
		"title", "duration", "tuition", "minimumSkill", "bootcamp", "user",
		"createdAt",
	}
	reviewFields = []string{
		"title", "rating", "bootcamp", "user", "createdAt",
	}
)

// listResources runs the shared paginated list cycle: translate the query
// string, count the matching records, fetch the page and answer with the
// envelope. A populate descriptor switches the fetch to an aggregation that
// expands one reference field.
func listResources[T any](c *gin.Context, coll *mongo.Collection, allowed []string, pop *query.Populate) {
	q, err := query.Translate(c.Request.URL.Query(), allowed)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	total, err := coll.CountDocuments(ctx, q.Filter)
	if err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}

	var cur *mongo.Cursor
	if pop != nil {
		cur, err = coll.Aggregate(ctx, q.Pipeline(pop))
	} else {
		cur, err = coll.Find(ctx, q.Filter, q.FindOptions())
	}
	if err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}

	results := []T{}
	if err := cur.All(ctx, &results); err != nil {
		utils.RespondError(c, apperrors.Internal(err))
		return
	}

	utils.RespondList(c, http.StatusOK, results, len(results), query.BuildPagination(q.Page, q.Limit, total))
}
