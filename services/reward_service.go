// services/reward_service.go
package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dracohq/seller_backend/apperrors"
	"github.com/dracohq/seller_backend/models"
)

// RewardStore is the persistence contract for the append-only reward ledger.
type RewardStore interface {
	Create(ctx context.Context, reward *models.SellerReward) error
	SumPointsBySellerID(ctx context.Context, sellerID primitive.ObjectID) (int, error)
	CountBySellerID(ctx context.Context, sellerID primitive.ObjectID) (int64, error)
	FindPageBySellerID(ctx context.Context, sellerID primitive.ObjectID, skip, limit int64) ([]models.SellerReward, error)
}

type RewardService struct {
	rewards RewardStore
	sellers SellerStore
}

func NewRewardService(rewards RewardStore, sellers SellerStore) *RewardService {
	return &RewardService{rewards: rewards, sellers: sellers}
}

// CreateReward appends one immutable ledger entry for the seller resolved by
// its unique code. The referrer id is stored as an opaque string; it is not
// checked against the referral graph.
func (s *RewardService) CreateReward(ctx context.Context, req models.SellerRewardRequest) (*models.SellerRewardResponse, error) {
	if req.ReferralPoint <= 0 {
		return nil, apperrors.Validation("referral points must be positive")
	}
	if !models.ValidReferrerType(req.ReferrerType) {
		return nil, apperrors.Validation("unknown referrer type: %s", req.ReferrerType)
	}

	seller, err := s.sellers.FindByReferralCode(ctx, req.SellerUniqueCode)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, apperrors.NotFound("seller not found with unique code: %s", req.SellerUniqueCode)
	}

	now := time.Now()
	reward := &models.SellerReward{
		SellerID:      seller.ID,
		ReferrerID:    req.ReferrerID,
		ReferrerType:  req.ReferrerType,
		ReferralPoint: req.ReferralPoint,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.rewards.Create(ctx, reward); err != nil {
		return nil, err
	}

	resp := rewardResponse(reward, seller)
	return &resp, nil
}

// GetTotalEarned returns the full ledger aggregate for the seller. The total
// is always the sum over every entry; page and size only select which entry
// records are attached, and both must be supplied for any to be attached.
func (s *RewardService) GetTotalEarned(ctx context.Context, sellerUniqueCode string, page, size *int) (*models.SellerTotalEarnedResponse, error) {
	seller, err := s.sellers.FindByReferralCode(ctx, sellerUniqueCode)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, apperrors.NotFound("seller not found with unique code: %s", sellerUniqueCode)
	}

	totalPoints, err := s.rewards.SumPointsBySellerID(ctx, seller.ID)
	if err != nil {
		return nil, err
	}
	totalCount, err := s.rewards.CountBySellerID(ctx, seller.ID)
	if err != nil {
		return nil, err
	}

	resp := &models.SellerTotalEarnedResponse{
		SellerID:          seller.ID.Hex(),
		SellerName:        seller.Name,
		SellerEmail:       seller.Email,
		SellerUniqueCode:  seller.ReferralCode,
		TotalEarnedPoints: totalPoints,
		TotalRewards:      totalCount,
	}

	if page != nil && size != nil && *page >= 0 && *size > 0 {
		entries, err := s.rewards.FindPageBySellerID(ctx, seller.ID, int64(*page)*int64(*size), int64(*size))
		if err != nil {
			return nil, err
		}
		rewards := make([]models.SellerRewardResponse, 0, len(entries))
		for i := range entries {
			rewards = append(rewards, rewardResponse(&entries[i], seller))
		}
		totalPages := (totalCount + int64(*size) - 1) / int64(*size)
		resp.Rewards = rewards
		resp.Page = page
		resp.Size = size
		resp.TotalPages = &totalPages
		resp.TotalElements = &totalCount
	}

	return resp, nil
}

func rewardResponse(reward *models.SellerReward, seller *models.Seller) models.SellerRewardResponse {
	return models.SellerRewardResponse{
		ID:               reward.ID.Hex(),
		SellerID:         reward.SellerID.Hex(),
		SellerName:       seller.Name,
		SellerEmail:      seller.Email,
		SellerUniqueCode: seller.ReferralCode,
		ReferrerID:       reward.ReferrerID,
		ReferrerType:     reward.ReferrerType,
		ReferralPoint:    reward.ReferralPoint,
		CreatedAt:        reward.CreatedAt,
		UpdatedAt:        reward.UpdatedAt,
	}
}
