package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dracohq/seller_backend/models"
)

type PayoutRepository struct {
	collection *mongo.Collection
}

func NewPayoutRepository(db *mongo.Database) *PayoutRepository {
	return &PayoutRepository{collection: db.Collection("payouts")}
}

func (r *PayoutRepository) Create(ctx context.Context, payout *models.Payout) error {
	result, err := r.collection.InsertOne(ctx, payout)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		payout.ID = oid
	}
	return nil
}

// FindByID returns (nil, nil) when no payout exists with the given id.
func (r *PayoutRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Payout, error) {
	var payout models.Payout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&payout)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payout, nil
}

func (r *PayoutRepository) FindAll(ctx context.Context) ([]models.Payout, error) {
	return r.find(ctx, bson.M{})
}

func (r *PayoutRepository) FindBySellerID(ctx context.Context, sellerID primitive.ObjectID) ([]models.Payout, error) {
	return r.find(ctx, bson.M{"sellerId": sellerID})
}

func (r *PayoutRepository) FindByStatus(ctx context.Context, status string) ([]models.Payout, error) {
	return r.find(ctx, bson.M{"status": status})
}

func (r *PayoutRepository) find(ctx context.Context, filter bson.M) ([]models.Payout, error) {
	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	payouts := []models.Payout{}
	if err := cursor.All(ctx, &payouts); err != nil {
		return nil, err
	}
	return payouts, nil
}

// ReplaceIfStatus writes the full payout document only if the stored status
// is one of expect. The status guard and the write are a single conditional
// update, so two racing transitions cannot both succeed. Returns false when
// the document is absent or the guard did not hold at commit time.
func (r *PayoutRepository) ReplaceIfStatus(ctx context.Context, payout *models.Payout, expect ...string) (bool, error) {
	filter := bson.M{
		"_id":    payout.ID,
		"status": bson.M{"$in": expect},
	}
	result, err := r.collection.ReplaceOne(ctx, filter, payout)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// DeleteIfNotPaid removes the payout unless it is PAID. Paid records are
// permanent once money has moved. Returns false when nothing was deleted.
func (r *PayoutRepository) DeleteIfNotPaid(ctx context.Context, id primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$ne": models.PayoutStatusPaid},
	}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
