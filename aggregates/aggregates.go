// Package aggregates recomputes the derived bootcamp averages after course
// and review writes. Failures here are logged and swallowed so the
// triggering write never fails on account of a stale average.
package aggregates

import (
	"context"
	"math"

	"bootcamper/database"
	"bootcamper/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// RecalcRatingAvg stores the arithmetic mean of all review ratings for the
// bootcamp. When no reviews remain the stored value is left untouched.
func RecalcRatingAvg(ctx context.Context, bootcampID primitive.ObjectID) {
	recalc(ctx, database.ReviewCollection, "$rating", "ratingAvg", bootcampID, nil)
}

// RecalcCostAvg stores the mean tuition across the bootcamp's courses,
// rounded up to the nearest multiple of 10.
func RecalcCostAvg(ctx context.Context, bootcampID primitive.ObjectID) {
	recalc(ctx, database.CourseCollection, "$tuition", "costAvg", bootcampID, RoundUpTo10)
}

// RoundUpTo10 rounds a mean up to the nearest multiple of 10.
func RoundUpTo10(mean float64) float64 {
	return math.Ceil(mean/10) * 10
}

func recalc(ctx context.Context, children *mongo.Collection, sourceField, targetField string, bootcampID primitive.ObjectID, round func(float64) float64) {
	pipeline := []bson.M{
		{"$match": bson.M{"bootcamp": bootcampID}},
		{"$group": bson.M{
			"_id": "$bootcamp",
			"avg": bson.M{"$avg": sourceField},
		}},
	}

	cur, err := children.Aggregate(ctx, pipeline)
	if err != nil {
		logger.Errorw("aggregate recompute failed", "field", targetField, "bootcamp", bootcampID.Hex(), "error", err)
		return
	}

	var results []struct {
		Avg float64 `bson:"avg"`
	}
	if err := cur.All(ctx, &results); err != nil {
		logger.Errorw("aggregate recompute decode failed", "field", targetField, "bootcamp", bootcampID.Hex(), "error", err)
		return
	}
	if len(results) == 0 {
		// No children left. The prior stored value stays as-is.
		return
	}

	avg := results[0].Avg
	if round != nil {
		avg = round(avg)
	}

	_, err = database.BootcampCollection.UpdateOne(ctx,
		bson.M{"_id": bootcampID},
		bson.M{"$set": bson.M{targetField: avg}},
	)
	if err != nil {
		logger.Errorw("aggregate recompute store failed", "field", targetField, "bootcamp", bootcampID.Hex(), "error", err)
	}
}
