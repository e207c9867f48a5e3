// config/db.go
package config

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB establishes connection to MongoDB
func ConnectDB() *mongo.Client {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = os.Getenv("MONGODB_URI")
	}

	if mongoURI == "" {
		env := os.Getenv("ENV")
		if env == "development" || env == "dev" {
			mongoURI = "mongodb://localhost:27017"
		} else {
			log.Fatal("MONGO_URI or MONGODB_URI environment variable is required for production")
		}
	}

	// Log connection URI (without password for security)
	log.Printf("Connecting to MongoDB at: %s", maskMongoURI(mongoURI))

	clientOptions := options.Client().ApplyURI(mongoURI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatal("MongoDB connection error:", err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatal("MongoDB ping error:", err)
	}

	log.Println("Connected to MongoDB")

	setupCollections(client)

	return client
}

// GetDatabase returns the application database
func GetDatabase(client *mongo.Client) *mongo.Database {
	return client.Database(DatabaseName())
}

// DatabaseName returns the configured database name
func DatabaseName() string {
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "seller_backend"
	}
	return dbName
}

// setupCollections ensures all necessary collections and indexes exist
func setupCollections(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := client.Database(DatabaseName())

	collections := []string{"sellers", "seller_rewards", "payouts", "users"}
	for _, collName := range collections {
		db.CreateCollection(ctx, collName)
	}

	// Unique lookups for the registry: email and referral code. The unique
	// referralCode index is what makes retry-on-duplicate code generation safe.
	sellerColl := db.Collection("sellers")
	sellerIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "referralCode", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := sellerColl.Indexes().CreateMany(ctx, sellerIndexes); err != nil {
		log.Printf("Error creating seller indexes: %v", err)
	}

	rewardColl := db.Collection("seller_rewards")
	rewardIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "sellerId", Value: 1}, {Key: "createdAt", Value: 1}},
	}
	if _, err := rewardColl.Indexes().CreateOne(ctx, rewardIndex); err != nil {
		log.Printf("Error creating reward index: %v", err)
	}

	payoutColl := db.Collection("payouts")
	payoutIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sellerId", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "referenceNumber", Value: 1}}},
	}
	if _, err := payoutColl.Indexes().CreateMany(ctx, payoutIndexes); err != nil {
		log.Printf("Error creating payout indexes: %v", err)
	}

	userColl := db.Collection("users")
	userIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := userColl.Indexes().CreateOne(ctx, userIndex); err != nil {
		log.Printf("Error creating user email index: %v", err)
	}

	log.Println("Database collections and indexes setup complete")
}

// maskMongoURI masks the password in MongoDB URI for logging
func maskMongoURI(uri string) string {
	if idx := strings.Index(uri, "@"); idx > 0 {
		if colonIdx := strings.LastIndex(uri[:idx], ":"); colonIdx > 0 {
			return uri[:colonIdx+1] + "***" + uri[idx:]
		}
	}
	return uri
}
