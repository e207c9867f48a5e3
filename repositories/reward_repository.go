package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dracohq/seller_backend/models"
)

// RewardRepository stores the append-only reward ledger. There is no update
// or delete: entries are immutable once written.
type RewardRepository struct {
	collection *mongo.Collection
}

func NewRewardRepository(db *mongo.Database) *RewardRepository {
	return &RewardRepository{collection: db.Collection("seller_rewards")}
}

func (r *RewardRepository) Create(ctx context.Context, reward *models.SellerReward) error {
	result, err := r.collection.InsertOne(ctx, reward)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		reward.ID = oid
	}
	return nil
}

// SumPointsBySellerID returns the total of referralPoint across all ledger
// entries for the seller, computed server-side.
func (r *RewardRepository) SumPointsBySellerID(ctx context.Context, sellerID primitive.ObjectID) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"sellerId": sellerID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$referralPoint"},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total int `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

func (r *RewardRepository) CountBySellerID(ctx context.Context, sellerID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"sellerId": sellerID})
}

// FindPageBySellerID returns one page of ledger entries in insertion order.
// The sort includes _id so the order is stable across pages.
func (r *RewardRepository) FindPageBySellerID(ctx context.Context, sellerID primitive.ObjectID, skip, limit int64) ([]models.SellerReward, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"sellerId": sellerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rewards := []models.SellerReward{}
	if err := cursor.All(ctx, &rewards); err != nil {
		return nil, err
	}
	return rewards, nil
}
