package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dracohq/seller_backend/apperrors"
	"github.com/dracohq/seller_backend/models"
)

// ErrDuplicateReferralCode signals that an insert lost the race on the unique
// referralCode index. Callers regenerate the code and retry.
var ErrDuplicateReferralCode = errors.New("referral code already exists")

type SellerRepository struct {
	collection *mongo.Collection
}

func NewSellerRepository(db *mongo.Database) *SellerRepository {
	return &SellerRepository{collection: db.Collection("sellers")}
}

// Create inserts a new seller. A duplicate email maps to a Conflict error; a
// duplicate referral code maps to ErrDuplicateReferralCode so the caller can
// regenerate and retry.
func (r *SellerRepository) Create(ctx context.Context, seller *models.Seller) error {
	result, err := r.collection.InsertOne(ctx, seller)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), "referralCode") {
				return ErrDuplicateReferralCode
			}
			return apperrors.Conflict("seller with email %s already exists", seller.Email)
		}
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		seller.ID = oid
	}
	return nil
}

// FindByID returns (nil, nil) when no seller exists with the given id.
func (r *SellerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Seller, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *SellerRepository) FindByEmail(ctx context.Context, email string) (*models.Seller, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *SellerRepository) FindByReferralCode(ctx context.Context, code string) (*models.Seller, error) {
	return r.findOne(ctx, bson.M{"referralCode": code})
}

func (r *SellerRepository) findOne(ctx context.Context, filter bson.M) (*models.Seller, error) {
	var seller models.Seller
	err := r.collection.FindOne(ctx, filter).Decode(&seller)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &seller, nil
}

func (r *SellerRepository) FindByIDIn(ctx context.Context, ids []primitive.ObjectID) ([]models.Seller, error) {
	if len(ids) == 0 {
		return []models.Seller{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sellers := []models.Seller{}
	if err := cursor.All(ctx, &sellers); err != nil {
		return nil, err
	}
	return sellers, nil
}

func (r *SellerRepository) FindAll(ctx context.Context) ([]models.Seller, error) {
	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sellers := []models.Seller{}
	if err := cursor.All(ctx, &sellers); err != nil {
		return nil, err
	}
	return sellers, nil
}

func (r *SellerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"email": email},
		options.Count().SetLimit(1))
	return count > 0, err
}

func (r *SellerRepository) ExistsByReferralCode(ctx context.Context, code string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"referralCode": code},
		options.Count().SetLimit(1))
	return count > 0, err
}

// Update replaces the stored seller document. Email collisions on the unique
// index map to a Conflict error.
func (r *SellerRepository) Update(ctx context.Context, seller *models.Seller) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": seller.ID}, seller)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict("email %s is already in use", seller.Email)
		}
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("seller not found with ID: %s", seller.ID.Hex())
	}
	return nil
}

// AppendReferral appends newSellerID to the referrer's referredSellerIds if
// not already present and recomputes totalReferrals from the list length, all
// in a single atomic pipeline update. Returns false when the referrer does
// not exist.
func (r *SellerRepository) AppendReferral(ctx context.Context, referrerID, newSellerID primitive.ObjectID) (bool, error) {
	return r.appendUnique(ctx, referrerID, newSellerID, "referredSellerIds", "totalReferrals")
}

// AppendCustomer is the same append-and-recount for customerIds/totalCustomers.
func (r *SellerRepository) AppendCustomer(ctx context.Context, sellerID, customerID primitive.ObjectID) (bool, error) {
	return r.appendUnique(ctx, sellerID, customerID, "customerIds", "totalCustomers")
}

func (r *SellerRepository) appendUnique(ctx context.Context, docID, elem primitive.ObjectID, listField, countField string) (bool, error) {
	list := "$" + listField
	existing := bson.M{"$ifNull": bson.A{list, bson.A{}}}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			listField: bson.M{"$cond": bson.A{
				bson.M{"$in": bson.A{elem, existing}},
				existing,
				bson.M{"$concatArrays": bson.A{existing, bson.A{elem}}},
			}},
		}}},
		{{Key: "$set", Value: bson.M{
			countField:  bson.M{"$size": list},
			"updatedAt": time.Now(),
		}}},
	}
	result, err := r.collection.UpdateByID(ctx, docID, pipeline)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// ReconcileReferralTotals recomputes totalReferrals from the authoritative
// edge list on every seller and returns how many documents changed.
func (r *SellerRepository) ReconcileReferralTotals(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"totalReferrals": bson.M{"$size": bson.M{"$ifNull": bson.A{"$referredSellerIds", bson.A{}}}},
		}}},
	}
	result, err := r.collection.UpdateMany(ctx, bson.M{}, pipeline)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
