// models/payout.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payout lifecycle statuses. PENDING -> APPROVED/REJECTED,
// APPROVED -> PAID/REJECTED, PROCESSING -> PAID. PAID, REJECTED and
// CANCELLED are terminal. Nothing in this service moves a payout into
// PROCESSING or CANCELLED; those arrive only through external data fixes.
const (
	PayoutStatusPending    = "PENDING"
	PayoutStatusApproved   = "APPROVED"
	PayoutStatusProcessing = "PROCESSING"
	PayoutStatusPaid       = "PAID"
	PayoutStatusRejected   = "REJECTED"
	PayoutStatusCancelled  = "CANCELLED"
)

// Payment methods accepted on payouts
const (
	PaymentMethodBankTransfer = "BANK_TRANSFER"
	PaymentMethodUPI          = "UPI"
	PaymentMethodCheque       = "CHEQUE"
	PaymentMethodCash         = "CASH"
	PaymentMethodPaypal       = "PAYPAL"
	PaymentMethodOther        = "OTHER"
)

// Payout represents one disbursement request tracked through the approval
// lifecycle. Seller name/email are snapshots taken at creation and are not
// re-synced when the seller record changes.
type Payout struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SellerID        primitive.ObjectID `json:"sellerId" bson:"sellerId"`
	SellerName      string             `json:"sellerName" bson:"sellerName"`
	SellerEmail     string             `json:"sellerEmail" bson:"sellerEmail"`
	Amount          float64            `json:"amount" bson:"amount"`
	Currency        string             `json:"currency" bson:"currency"`
	Status          string             `json:"status" bson:"status"`
	PaymentMethod   string             `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	PaymentDetails  string             `json:"paymentDetails,omitempty" bson:"paymentDetails,omitempty"`
	ReferenceNumber string             `json:"referenceNumber" bson:"referenceNumber"`
	Description     string             `json:"description,omitempty" bson:"description,omitempty"`
	Notes           string             `json:"notes,omitempty" bson:"notes,omitempty"`
	ApprovedBy      string             `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	ApprovedAt      *time.Time         `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	RejectedBy      string             `json:"rejectedBy,omitempty" bson:"rejectedBy,omitempty"`
	RejectedAt      *time.Time         `json:"rejectedAt,omitempty" bson:"rejectedAt,omitempty"`
	RejectionReason string             `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
	PaidBy          string             `json:"paidBy,omitempty" bson:"paidBy,omitempty"`
	PaidAt          *time.Time         `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	TransactionID   string             `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// PayoutRequest is the payload for creating or updating a payout. On update,
// only non-nil fields are applied, and only while the payout is PENDING.
type PayoutRequest struct {
	SellerID       string   `json:"sellerId" validate:"required"`
	Amount         *float64 `json:"amount" validate:"required,gt=0"`
	Currency       string   `json:"currency,omitempty"`
	PaymentMethod  string   `json:"paymentMethod,omitempty"`
	PaymentDetails string   `json:"paymentDetails" validate:"required"`
	Description    string   `json:"description,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

// PayoutUpdateRequest carries the optional fields of a payout update
type PayoutUpdateRequest struct {
	Amount         *float64 `json:"amount,omitempty"`
	PaymentMethod  *string  `json:"paymentMethod,omitempty"`
	PaymentDetails *string  `json:"paymentDetails,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
}

// PayoutApprovalRequest is the payload for reject / mark-paid decisions
type PayoutApprovalRequest struct {
	TransactionID   string `json:"transactionId,omitempty"`
	RejectionReason string `json:"rejectionReason,omitempty"`
	Notes           string `json:"notes,omitempty"`
}
