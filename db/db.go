package db

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection          *mongo.Collection
	CartCollection          *mongo.Collection
	BuyNowCollection        *mongo.Collection
	OrdersCollection        *mongo.Collection
	RatingsCollection       *mongo.Collection
	QuestionCollection      *mongo.Collection
	AnswerCollection        *mongo.Collection
	NotificationsCollection *mongo.Collection
	IdempotencyCollection   *mongo.Collection

	// AllProductsCollection is the aggregate catalog; every product also
	// lives in its category bucket below. Both must be written together.
	AllProductsCollection *mongo.Collection
	CatalogBuckets        map[string]*mongo.Collection

	Client *mongo.Client
)

// BucketNames are the fixed category buckets. Unknown categories are an
// error at checkout, not a fallback.
var BucketNames = []string{"Tv", "Mobile", "Laptop", "Fashion"}

func init() {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("storefront")

	UserCollection = database.Collection("users")
	CartCollection = database.Collection("cart")
	BuyNowCollection = database.Collection("buynow")
	OrdersCollection = database.Collection("orders")
	RatingsCollection = database.Collection("ratings")
	QuestionCollection = database.Collection("questions")
	AnswerCollection = database.Collection("answers")
	NotificationsCollection = database.Collection("notifications")
	IdempotencyCollection = database.Collection("idempotency")

	AllProductsCollection = database.Collection("allproducts")
	CatalogBuckets = make(map[string]*mongo.Collection, len(BucketNames))
	for _, name := range BucketNames {
		CatalogBuckets[name] = database.Collection("catalog_" + name)
	}
}

// EnsureIndexes creates the indexes the write paths rely on. Called once
// from main after connect.
func EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if _, err := IdempotencyCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.M{"key": 1},
			Options: options.Index().SetUnique(true).SetName("unique_key"),
		},
		{
			Keys:    bson.M{"expires_at": 1},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_expires_at"),
		},
	}); err != nil {
		return err
	}

	if _, err := RatingsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "productId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("one_rating_per_user_product"),
	}); err != nil {
		return err
	}

	if _, err := OrdersCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	}); err != nil {
		return err
	}

	if _, err := CartCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "productId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("one_entry_per_user_product"),
	}); err != nil {
		return err
	}

	_, err := NotificationsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}
