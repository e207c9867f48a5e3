// services/payout_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dracohq/seller_backend/apperrors"
	"github.com/dracohq/seller_backend/models"
	"github.com/dracohq/seller_backend/utils"
)

// PayoutStore is the persistence contract for payouts. ReplaceIfStatus must
// apply the status guard and the write as one atomic conditional update.
type PayoutStore interface {
	Create(ctx context.Context, payout *models.Payout) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Payout, error)
	FindAll(ctx context.Context) ([]models.Payout, error)
	FindBySellerID(ctx context.Context, sellerID primitive.ObjectID) ([]models.Payout, error)
	FindByStatus(ctx context.Context, status string) ([]models.Payout, error)
	ReplaceIfStatus(ctx context.Context, payout *models.Payout, expect ...string) (bool, error)
	DeleteIfNotPaid(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// Notifier delivers a notification to a recipient. Delivery failures must
// never fail the operation that triggered them.
type Notifier interface {
	Notify(to, subject, body string) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(to, subject, body string) error

func (f NotifierFunc) Notify(to, subject, body string) error { return f(to, subject, body) }

// PayoutService drives the payout approval lifecycle. Every state-mutating
// operation takes the acting identity explicitly; nothing is read from
// ambient auth state.
type PayoutService struct {
	payouts  PayoutStore
	sellers  SellerStore
	notifier Notifier
}

func NewPayoutService(payouts PayoutStore, sellers SellerStore, notifier Notifier) *PayoutService {
	return &PayoutService{payouts: payouts, sellers: sellers, notifier: notifier}
}

// Create opens a new PENDING payout for the seller. Name and email are
// snapshotted from the seller at creation and never re-synced. The reference
// number is a near-unique display identifier, not a key.
func (s *PayoutService) Create(ctx context.Context, req models.PayoutRequest) (*models.Payout, error) {
	if req.Amount == nil || *req.Amount <= 0 {
		return nil, apperrors.Validation("amount must be positive")
	}

	sellerID, err := primitive.ObjectIDFromHex(req.SellerID)
	if err != nil {
		return nil, apperrors.Validation("invalid seller ID format")
	}
	seller, err := s.sellers.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, apperrors.NotFound("seller not found with ID: %s", req.SellerID)
	}

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}

	now := time.Now()
	payout := &models.Payout{
		SellerID:        seller.ID,
		SellerName:      seller.Name,
		SellerEmail:     seller.Email,
		Amount:          *req.Amount,
		Currency:        currency,
		Status:          models.PayoutStatusPending,
		PaymentMethod:   req.PaymentMethod,
		PaymentDetails:  req.PaymentDetails,
		ReferenceNumber: utils.GeneratePayoutReference(),
		Description:     req.Description,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.payouts.Create(ctx, payout); err != nil {
		return nil, err
	}

	log.Printf("Payout created: %s for seller: %s amount: %.2f", payout.ID.Hex(), seller.Name, payout.Amount)
	return payout, nil
}

func (s *PayoutService) GetByID(ctx context.Context, payoutID primitive.ObjectID) (*models.Payout, error) {
	payout, err := s.payouts.FindByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if payout == nil {
		return nil, apperrors.NotFound("payout not found with ID: %s", payoutID.Hex())
	}
	return payout, nil
}

func (s *PayoutService) ListAll(ctx context.Context) ([]models.Payout, error) {
	return s.payouts.FindAll(ctx)
}

func (s *PayoutService) ListBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]models.Payout, error) {
	return s.payouts.FindBySellerID(ctx, sellerID)
}

func (s *PayoutService) ListByStatus(ctx context.Context, status string) ([]models.Payout, error) {
	return s.payouts.FindByStatus(ctx, status)
}

// Update rewrites the editable fields of a PENDING payout. Only supplied
// fields are applied (partial merge).
func (s *PayoutService) Update(ctx context.Context, payoutID primitive.ObjectID, req models.PayoutUpdateRequest) (*models.Payout, error) {
	payout, err := s.GetByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if payout.Status != models.PayoutStatusPending {
		return nil, apperrors.InvalidState("only pending payouts can be updated")
	}

	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, apperrors.Validation("amount must be positive")
		}
		payout.Amount = *req.Amount
	}
	if req.PaymentMethod != nil {
		payout.PaymentMethod = *req.PaymentMethod
	}
	if req.PaymentDetails != nil {
		payout.PaymentDetails = *req.PaymentDetails
	}
	if req.Description != nil {
		payout.Description = *req.Description
	}
	if req.Notes != nil {
		payout.Notes = *req.Notes
	}
	payout.UpdatedAt = time.Now()

	return s.commit(ctx, payout, "only pending payouts can be updated", models.PayoutStatusPending)
}

// Approve moves a PENDING payout to APPROVED and records the approver.
func (s *PayoutService) Approve(ctx context.Context, payoutID primitive.ObjectID, approvedBy string) (*models.Payout, error) {
	payout, err := s.GetByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if payout.Status != models.PayoutStatusPending {
		return nil, apperrors.InvalidState("only pending payouts can be approved")
	}

	now := time.Now()
	payout.Status = models.PayoutStatusApproved
	payout.ApprovedBy = approvedBy
	payout.ApprovedAt = &now
	payout.UpdatedAt = now

	updated, err := s.commit(ctx, payout, "only pending payouts can be approved", models.PayoutStatusPending)
	if err != nil {
		return nil, err
	}

	log.Printf("Payout approved: %s by: %s", payoutID.Hex(), approvedBy)
	s.notify(updated, "Payout approved",
		fmt.Sprintf("Your payout %s of %.2f %s has been approved.", updated.ReferenceNumber, updated.Amount, updated.Currency))
	return updated, nil
}

// Reject moves a PENDING or APPROVED payout to REJECTED, recording the
// rejecter and reason. Notes are appended to the existing trail, never
// overwritten.
func (s *PayoutService) Reject(ctx context.Context, payoutID primitive.ObjectID, rejectedBy string, req models.PayoutApprovalRequest) (*models.Payout, error) {
	payout, err := s.GetByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if payout.Status != models.PayoutStatusPending && payout.Status != models.PayoutStatusApproved {
		return nil, apperrors.InvalidState("only pending or approved payouts can be rejected")
	}

	now := time.Now()
	payout.Status = models.PayoutStatusRejected
	payout.RejectedBy = rejectedBy
	payout.RejectedAt = &now
	payout.RejectionReason = req.RejectionReason
	payout.Notes = appendNotes(payout.Notes, req.Notes)
	payout.UpdatedAt = now

	updated, err := s.commit(ctx, payout, "only pending or approved payouts can be rejected",
		models.PayoutStatusPending, models.PayoutStatusApproved)
	if err != nil {
		return nil, err
	}

	log.Printf("Payout rejected: %s by: %s reason: %s", payoutID.Hex(), rejectedBy, req.RejectionReason)
	s.notify(updated, "Payout rejected",
		fmt.Sprintf("Your payout %s was rejected. Reason: %s", updated.ReferenceNumber, req.RejectionReason))
	return updated, nil
}

// MarkPaid moves an APPROVED or PROCESSING payout to PAID, recording the
// payer and the transaction id of the actual money movement.
func (s *PayoutService) MarkPaid(ctx context.Context, payoutID primitive.ObjectID, paidBy string, req models.PayoutApprovalRequest) (*models.Payout, error) {
	payout, err := s.GetByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if payout.Status != models.PayoutStatusApproved && payout.Status != models.PayoutStatusProcessing {
		return nil, apperrors.InvalidState("only approved or processing payouts can be marked as paid")
	}

	now := time.Now()
	payout.Status = models.PayoutStatusPaid
	payout.PaidBy = paidBy
	payout.PaidAt = &now
	payout.TransactionID = req.TransactionID
	payout.Notes = appendNotes(payout.Notes, req.Notes)
	payout.UpdatedAt = now

	updated, err := s.commit(ctx, payout, "only approved or processing payouts can be marked as paid",
		models.PayoutStatusApproved, models.PayoutStatusProcessing)
	if err != nil {
		return nil, err
	}

	log.Printf("Payout marked as paid: %s by: %s transaction: %s", payoutID.Hex(), paidBy, req.TransactionID)
	s.notify(updated, "Payout paid",
		fmt.Sprintf("Your payout %s of %.2f %s has been paid. Transaction: %s", updated.ReferenceNumber, updated.Amount, updated.Currency, req.TransactionID))
	return updated, nil
}

// Delete removes a payout unless it is PAID; paid records are permanent.
func (s *PayoutService) Delete(ctx context.Context, payoutID primitive.ObjectID) error {
	payout, err := s.GetByID(ctx, payoutID)
	if err != nil {
		return err
	}
	if payout.Status == models.PayoutStatusPaid {
		return apperrors.InvalidState("cannot delete paid payouts")
	}

	deleted, err := s.payouts.DeleteIfNotPaid(ctx, payoutID)
	if err != nil {
		return err
	}
	if !deleted {
		// Lost the race: the payout was paid or removed since the read.
		return s.staleGuard(ctx, payoutID, "cannot delete paid payouts")
	}

	log.Printf("Payout deleted: %s", payoutID.Hex())
	return nil
}

// commit writes the mutated payout conditioned on the status the transition
// allows. A guard miss at commit time means a concurrent transition won; the
// record is re-read to tell NotFound from InvalidState.
func (s *PayoutService) commit(ctx context.Context, payout *models.Payout, guardMsg string, expect ...string) (*models.Payout, error) {
	ok, err := s.payouts.ReplaceIfStatus(ctx, payout, expect...)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.staleGuard(ctx, payout.ID, guardMsg)
	}
	return payout, nil
}

func (s *PayoutService) staleGuard(ctx context.Context, payoutID primitive.ObjectID, guardMsg string) error {
	current, err := s.payouts.FindByID(ctx, payoutID)
	if err != nil {
		return err
	}
	if current == nil {
		return apperrors.NotFound("payout not found with ID: %s", payoutID.Hex())
	}
	return apperrors.InvalidState("%s", guardMsg)
}

func (s *PayoutService) notify(payout *models.Payout, subject, body string) {
	if s.notifier == nil || payout.SellerEmail == "" {
		return
	}
	if err := s.notifier.Notify(payout.SellerEmail, subject, body); err != nil {
		log.Printf("Failed to notify seller %s about payout %s: %v", payout.SellerEmail, payout.ID.Hex(), err)
	}
}

func appendNotes(existing, extra string) string {
	if extra == "" {
		return existing
	}
	if existing == "" {
		return extra
	}
	return existing + "\n" + extra
}
