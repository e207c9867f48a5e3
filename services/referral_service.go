// services/referral_service.go
package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dracohq/seller_backend/apperrors"
	"github.com/dracohq/seller_backend/models"
)

// ReferralService maintains the one-level referral edges and keeps the
// derived counters on the referrer consistent. It is the only writer of
// referredSellerIds/totalReferrals.
type ReferralService struct {
	sellers SellerStore
}

func NewReferralService(sellers SellerStore) *ReferralService {
	return &ReferralService{sellers: sellers}
}

// LinkReferral appends newSellerID to the referrer's referral list. The
// append is idempotent and totalReferrals is recomputed from the list length
// rather than incremented, so a repeated call or prior drift self-heals.
func (s *ReferralService) LinkReferral(ctx context.Context, newSellerID, referrerID primitive.ObjectID) error {
	matched, err := s.sellers.AppendReferral(ctx, referrerID, newSellerID)
	if err != nil {
		return err
	}
	if !matched {
		return apperrors.NotFound("referrer not found with ID: %s", referrerID.Hex())
	}
	return nil
}

// GetReferralInfo resolves a seller's side of the referral graph. A dangling
// referredBy reference yields a nil referrer, not an error.
func (s *ReferralService) GetReferralInfo(ctx context.Context, sellerID primitive.ObjectID) (*models.ReferralInfoResponse, error) {
	seller, err := s.sellers.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, apperrors.NotFound("seller not found with ID: %s", sellerID.Hex())
	}

	var referrer *models.Seller
	if seller.ReferredBy != nil {
		referrer, err = s.sellers.FindByID(ctx, *seller.ReferredBy)
		if err != nil {
			return nil, err
		}
	}

	referred, err := s.sellers.FindByIDIn(ctx, seller.ReferredSellerIDs)
	if err != nil {
		return nil, err
	}

	// Restore the edge-list order lost by the batch lookup.
	byID := make(map[primitive.ObjectID]models.Seller, len(referred))
	for _, r := range referred {
		byID[r.ID] = r
	}
	ordered := make([]models.Seller, 0, len(referred))
	for _, id := range seller.ReferredSellerIDs {
		if r, ok := byID[id]; ok {
			ordered = append(ordered, r)
		}
	}

	return &models.ReferralInfoResponse{
		MyReferralCode:   seller.ReferralCode,
		UsedReferralCode: seller.UsedReferralCode,
		ReferredBy:       referrer,
		TotalReferrals:   seller.TotalReferrals,
		ReferredSellers:  ordered,
	}, nil
}

// ReconcileTotals recomputes totalReferrals from the authoritative edge list
// for every seller. Run as an admin action to repair drift left by partial
// registration failures.
func (s *ReferralService) ReconcileTotals(ctx context.Context) (int64, error) {
	return s.sellers.ReconcileReferralTotals(ctx)
}
