package database

import (
	"context"
	"time"

	"bootcamper/config"
	"bootcamper/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client
var DB *mongo.Database

func ConnectMongo() {
	uri := config.GetEnv("MONGO_URI", "")
	dbName := config.GetEnv("DB_NAME", "")

	if uri == "" || dbName == "" {
		logger.Fatalw("MONGO_URI or DB_NAME not set in environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Fatalw("MongoDB connection error", "error", err)
	}

	Client = client
	DB = client.Database(dbName)

	logger.Infow("Connected to MongoDB", "database", dbName)
}

var UserCollection *mongo.Collection
var BootcampCollection *mongo.Collection
var CourseCollection *mongo.Collection
var ReviewCollection *mongo.Collection

func InitCollections() {
	UserCollection = DB.Collection("users")
	BootcampCollection = DB.Collection("bootcamps")
	CourseCollection = DB.Collection("courses")
	ReviewCollection = DB.Collection("reviews")
}

// EnsureIndexes creates the unique constraints and the geo index. The
// compound (bootcamp, user) index on reviews backs the one-review-per-user
// rule even under concurrent submissions.
func EnsureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	_, err := UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		logger.Fatalw("failed to create users index", "error", err)
	}

	_, err = BootcampCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(
				bson.M{"email": bson.M{"$type": "string"}},
			),
		},
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
	})
	if err != nil {
		logger.Fatalw("failed to create bootcamps indexes", "error", err)
	}

	_, err = ReviewCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "bootcamp", Value: 1}, {Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		logger.Fatalw("failed to create reviews index", "error", err)
	}
}
