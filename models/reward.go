// models/reward.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Referrer types for reward ledger entries
const (
	ReferrerTypeSellerReferral   = "SELLER_REFERRAL"
	ReferrerTypeCustomerReferral = "CUSTOMER_REFERRAL"
	ReferrerTypeDirectSignup     = "DIRECT_SIGNUP"
	ReferrerTypeBonus            = "BONUS"
	ReferrerTypeOther            = "OTHER"
)

// ValidReferrerType reports whether t is one of the known referrer types.
func ValidReferrerType(t string) bool {
	switch t {
	case ReferrerTypeSellerReferral, ReferrerTypeCustomerReferral,
		ReferrerTypeDirectSignup, ReferrerTypeBonus, ReferrerTypeOther:
		return true
	}
	return false
}

// SellerReward is one immutable ledger entry of points credited to a seller.
// Entries are never updated or deleted; totals are recomputed from the ledger.
type SellerReward struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SellerID      primitive.ObjectID `json:"sellerId" bson:"sellerId"`
	ReferrerID    string             `json:"referrerId,omitempty" bson:"referrerId,omitempty"`
	ReferrerType  string             `json:"referrerType" bson:"referrerType"`
	ReferralPoint int                `json:"referralPoint" bson:"referralPoint"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// SellerRewardRequest is the webhook payload for crediting points
type SellerRewardRequest struct {
	SellerUniqueCode string `json:"sellerUniqueCode" validate:"required"`
	ReferralPoint    int    `json:"referralPoint" validate:"required,gt=0"`
	ReferrerID       string `json:"referrerId,omitempty"`
	ReferrerType     string `json:"referrerType" validate:"required"`
}

// SellerRewardResponse is a ledger entry with the resolved seller identity
type SellerRewardResponse struct {
	ID               string    `json:"id"`
	SellerID         string    `json:"sellerId"`
	SellerName       string    `json:"sellerName"`
	SellerEmail      string    `json:"sellerEmail"`
	SellerUniqueCode string    `json:"sellerUniqueCode"`
	ReferrerID       string    `json:"referrerId,omitempty"`
	ReferrerType     string    `json:"referrerType"`
	ReferralPoint    int       `json:"referralPoint"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// SellerTotalEarnedResponse carries the full ledger aggregate for a seller.
// The paginated fields are present only when page and size were both supplied.
type SellerTotalEarnedResponse struct {
	SellerID          string                 `json:"sellerId"`
	SellerName        string                 `json:"sellerName"`
	SellerEmail       string                 `json:"sellerEmail"`
	SellerUniqueCode  string                 `json:"sellerUniqueCode"`
	TotalEarnedPoints int                    `json:"totalEarnedPoints"`
	TotalRewards      int64                  `json:"totalRewards"`
	Rewards           []SellerRewardResponse `json:"rewards,omitempty"`
	Page              *int                   `json:"page,omitempty"`
	Size              *int                   `json:"size,omitempty"`
	TotalPages        *int64                 `json:"totalPages,omitempty"`
	TotalElements     *int64                 `json:"totalElements,omitempty"`
}
