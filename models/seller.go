// models/seller.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Seller account statuses
const (
	SellerStatusPending   = "PENDING"
	SellerStatusActive    = "ACTIVE"
	SellerStatusSuspended = "SUSPENDED"
	SellerStatusInactive  = "INACTIVE"
)

// Seller model
type Seller struct {
	ID                primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Email             string               `json:"email" bson:"email"`
	Name              string               `json:"name" bson:"name"`
	PhoneNumber       string               `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	ReferralCode      string               `json:"referralCode" bson:"referralCode"`
	UsedReferralCode  string               `json:"usedReferralCode,omitempty" bson:"usedReferralCode,omitempty"`
	ReferredBy        *primitive.ObjectID  `json:"referredBy,omitempty" bson:"referredBy,omitempty"`
	CustomerIDs       []primitive.ObjectID `json:"customerIds,omitempty" bson:"customerIds,omitempty"`
	ReferredSellerIDs []primitive.ObjectID `json:"referredSellerIds,omitempty" bson:"referredSellerIds,omitempty"`
	BusinessName      string               `json:"businessName,omitempty" bson:"businessName,omitempty"`
	BusinessType      string               `json:"businessType,omitempty" bson:"businessType,omitempty"` // INDIVIDUAL, AGENCY, CREATOR
	Address           string               `json:"address,omitempty" bson:"address,omitempty"`
	CurrentOccupation string               `json:"currentOccupation,omitempty" bson:"currentOccupation,omitempty"`
	NumberOfCreators  string               `json:"numberOfCreators,omitempty" bson:"numberOfCreators,omitempty"`
	NumberOfFollowers string               `json:"numberOfFollowers,omitempty" bson:"numberOfFollowers,omitempty"`
	Status            string               `json:"status" bson:"status"`
	TotalCustomers    int                  `json:"totalCustomers" bson:"totalCustomers"`
	TotalReferrals    int                  `json:"totalReferrals" bson:"totalReferrals"`
	BankName          string               `json:"bankName,omitempty" bson:"bankName,omitempty"`
	AccountNumber     string               `json:"accountNumber,omitempty" bson:"accountNumber,omitempty"`
	AccountHolderName string               `json:"accountHolderName,omitempty" bson:"accountHolderName,omitempty"`
	IfscCode          string               `json:"ifscCode,omitempty" bson:"ifscCode,omitempty"`
	PaymentMethod     string               `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"` // BANK_TRANSFER, PAYPAL, UPI, CHEQUE
	UpiID             string               `json:"upiId,omitempty" bson:"upiId,omitempty"`
	CreatedAt         time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// SellerRegistrationRequest is the payload for registering a new seller
type SellerRegistrationRequest struct {
	Name              string `json:"name" validate:"required"`
	Email             string `json:"email" validate:"required,email"`
	PhoneNumber       string `json:"phoneNumber,omitempty"`
	BusinessName      string `json:"businessName,omitempty"`
	BusinessType      string `json:"businessType,omitempty"`
	Address           string `json:"address,omitempty"`
	CurrentOccupation string `json:"currentOccupation,omitempty"`
	NumberOfCreators  string `json:"numberOfCreators,omitempty"`
	NumberOfFollowers string `json:"numberOfFollowers,omitempty"`
	UsedReferralCode  string `json:"usedReferralCode,omitempty"`
	Password          string `json:"password,omitempty"`
}

// UpdateSellerRequest replaces a seller's profile fields. Profile fields are
// assigned as-is (full replace); payment fields are assigned directly too, so
// an empty value clears the stored one.
type UpdateSellerRequest struct {
	Name              string `json:"name" validate:"required"`
	Email             string `json:"email" validate:"required,email"`
	PhoneNumber       string `json:"phoneNumber,omitempty"`
	BusinessName      string `json:"businessName,omitempty"`
	BusinessType      string `json:"businessType,omitempty"`
	Address           string `json:"address,omitempty"`
	CurrentOccupation string `json:"currentOccupation,omitempty"`
	NumberOfCreators  string `json:"numberOfCreators,omitempty"`
	NumberOfFollowers string `json:"numberOfFollowers,omitempty"`
	AccountStatus     string `json:"accountStatus,omitempty"`
	BankName          string `json:"bankName,omitempty"`
	AccountNumber     string `json:"accountNumber,omitempty"`
	AccountHolderName string `json:"accountHolderName,omitempty"`
	IfscCode          string `json:"ifscCode,omitempty"`
	PaymentMethod     string `json:"paymentMethod,omitempty"`
	UpiID             string `json:"upiId,omitempty"`
}

// ReferralInfoResponse summarizes a seller's side of the referral graph
type ReferralInfoResponse struct {
	MyReferralCode   string   `json:"myReferralCode"`
	UsedReferralCode string   `json:"usedReferralCode,omitempty"`
	ReferredBy       *Seller  `json:"referredBy,omitempty"`
	TotalReferrals   int      `json:"totalReferrals"`
	ReferredSellers  []Seller `json:"referredSellers"`
}

// SellerWebhookPaymentInfo is the nested payment block on the public webhook
// projection, present only when a payment method is on file.
type SellerWebhookPaymentInfo struct {
	PaymentMethod     string `json:"paymentMethod"`
	BankName          string `json:"bankName,omitempty"`
	AccountHolderName string `json:"accountHolderName,omitempty"`
	UpiID             string `json:"upiId,omitempty"`
}

// SellerWebhookData is the stable projection served to external systems that
// resolve a seller by unique referral code.
type SellerWebhookData struct {
	ID             string                    `json:"id"`
	Name           string                    `json:"name"`
	Email          string                    `json:"email"`
	PhoneNumber    string                    `json:"phoneNumber,omitempty"`
	UniqueCode     string                    `json:"uniqueCode"`
	BusinessName   string                    `json:"businessName,omitempty"`
	BusinessType   string                    `json:"businessType,omitempty"`
	Status         string                    `json:"status"`
	TotalCustomers int                       `json:"totalCustomers"`
	TotalReferrals int                       `json:"totalReferrals"`
	CreatedAt      time.Time                 `json:"createdAt"`
	UpdatedAt      time.Time                 `json:"updatedAt"`
	PaymentInfo    *SellerWebhookPaymentInfo `json:"paymentInfo,omitempty"`
}

// WebhookSellerData builds the public projection for a seller.
func WebhookSellerData(s *Seller) SellerWebhookData {
	data := SellerWebhookData{
		ID:             s.ID.Hex(),
		Name:           s.Name,
		Email:          s.Email,
		PhoneNumber:    s.PhoneNumber,
		UniqueCode:     s.ReferralCode,
		BusinessName:   s.BusinessName,
		BusinessType:   s.BusinessType,
		Status:         s.Status,
		TotalCustomers: s.TotalCustomers,
		TotalReferrals: s.TotalReferrals,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	if s.PaymentMethod != "" {
		data.PaymentInfo = &SellerWebhookPaymentInfo{
			PaymentMethod:     s.PaymentMethod,
			BankName:          s.BankName,
			AccountHolderName: s.AccountHolderName,
			UpiID:             s.UpiID,
		}
	}
	return data
}
