// services/seller_service.go
package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/dracohq/seller_backend/apperrors"
	"github.com/dracohq/seller_backend/models"
	"github.com/dracohq/seller_backend/repositories"
	"github.com/dracohq/seller_backend/utils"
)

// SellerStore is the persistence contract for sellers. Lookup methods return
// (nil, nil) when the entity is absent.
type SellerStore interface {
	Create(ctx context.Context, seller *models.Seller) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Seller, error)
	FindByEmail(ctx context.Context, email string) (*models.Seller, error)
	FindByReferralCode(ctx context.Context, code string) (*models.Seller, error)
	FindByIDIn(ctx context.Context, ids []primitive.ObjectID) ([]models.Seller, error)
	FindAll(ctx context.Context) ([]models.Seller, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByReferralCode(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, seller *models.Seller) error
	AppendReferral(ctx context.Context, referrerID, newSellerID primitive.ObjectID) (bool, error)
	AppendCustomer(ctx context.Context, sellerID, customerID primitive.ObjectID) (bool, error)
	ReconcileReferralTotals(ctx context.Context) (int64, error)
}

// UserStore is the persistence contract for credential accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type SellerService struct {
	sellers SellerStore
	users   UserStore
}

func NewSellerService(sellers SellerStore, users UserStore) *SellerService {
	return &SellerService{sellers: sellers, users: users}
}

// Register creates a new seller with a fresh unique referral code. When a
// referral code was used, the referrer is resolved up front and linked after
// the seller row is committed (two-phase: the edge needs the new seller's id).
// A link failure is not rolled back; the reconciliation pass repairs counters.
func (s *SellerService) Register(ctx context.Context, req models.SellerRegistrationRequest) (*models.Seller, error) {
	exists, err := s.sellers.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("seller with email %s already exists", req.Email)
	}

	var referrer *models.Seller
	if req.UsedReferralCode != "" {
		referrer, err = s.sellers.FindByReferralCode(ctx, req.UsedReferralCode)
		if err != nil {
			return nil, err
		}
		if referrer == nil {
			return nil, apperrors.NotFound("invalid referral code: %s", req.UsedReferralCode)
		}
	}

	now := time.Now()
	seller := &models.Seller{
		Name:              req.Name,
		Email:             req.Email,
		PhoneNumber:       req.PhoneNumber,
		BusinessName:      req.BusinessName,
		BusinessType:      req.BusinessType,
		Address:           req.Address,
		CurrentOccupation: req.CurrentOccupation,
		NumberOfCreators:  req.NumberOfCreators,
		NumberOfFollowers: req.NumberOfFollowers,
		Status:            models.SellerStatusActive,
		CustomerIDs:       []primitive.ObjectID{},
		ReferredSellerIDs: []primitive.ObjectID{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if referrer != nil {
		seller.UsedReferralCode = req.UsedReferralCode
		seller.ReferredBy = &referrer.ID
	}

	if err := s.createWithUniqueCode(ctx, seller); err != nil {
		return nil, err
	}

	if referrer != nil {
		if _, err := s.sellers.AppendReferral(ctx, referrer.ID, seller.ID); err != nil {
			// The seller row is already committed; counters are repaired by
			// the reconciliation pass.
			log.Printf("Failed to link referral %s -> %s: %v", referrer.ID.Hex(), seller.ID.Hex(), err)
		}
	}

	if req.Password != "" {
		if err := s.createUserAccount(ctx, seller, req.Password); err != nil {
			return nil, err
		}
	}

	return seller, nil
}

// createWithUniqueCode assigns a referral code and inserts the seller,
// regenerating on a duplicate. Code generation and the uniqueness check are
// not atomic, so the narrow race is closed by retrying on the unique index.
func (s *SellerService) createWithUniqueCode(ctx context.Context, seller *models.Seller) error {
	for {
		code, err := utils.GenerateReferralCode()
		if err != nil {
			return err
		}
		taken, err := s.sellers.ExistsByReferralCode(ctx, code)
		if err != nil {
			return err
		}
		if taken {
			continue
		}

		seller.ReferralCode = code
		err = s.sellers.Create(ctx, seller)
		if err == repositories.ErrDuplicateReferralCode {
			continue
		}
		return err
	}
}

func (s *SellerService) createUserAccount(ctx context.Context, seller *models.Seller, password string) error {
	exists, err := s.users.ExistsByEmail(ctx, seller.Email)
	if err != nil {
		return err
	}
	if exists {
		log.Printf("User account already exists for email: %s", seller.Email)
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	return s.users.Create(ctx, &models.User{
		Email:     seller.Email,
		Password:  string(hashed),
		Name:      seller.Name,
		Role:      models.RoleSeller,
		SellerID:  &seller.ID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *SellerService) GetByID(ctx context.Context, sellerID primitive.ObjectID) (*models.Seller, error) {
	seller, err := s.sellers.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, apperrors.NotFound("seller not found with ID: %s", sellerID.Hex())
	}
	return seller, nil
}

func (s *SellerService) GetByEmail(ctx context.Context, email string) (*models.Seller, error) {
	seller, err := s.sellers.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, apperrors.NotFound("seller not found with email: %s", email)
	}
	return seller, nil
}

func (s *SellerService) GetByReferralCode(ctx context.Context, code string) (*models.Seller, error) {
	seller, err := s.sellers.FindByReferralCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, apperrors.NotFound("seller not found with unique code: %s", code)
	}
	return seller, nil
}

func (s *SellerService) List(ctx context.Context) ([]models.Seller, error) {
	return s.sellers.FindAll(ctx)
}

// Update replaces the seller's profile and payment fields with the request
// values. Profile and payment fields are assigned directly, so an empty
// payment field clears the stored one. The status changes only when supplied.
func (s *SellerService) Update(ctx context.Context, sellerID primitive.ObjectID, req models.UpdateSellerRequest) (*models.Seller, error) {
	seller, err := s.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	if seller.Email != req.Email {
		exists, err := s.sellers.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.Conflict("email %s is already in use", req.Email)
		}
	}

	seller.Name = req.Name
	seller.Email = req.Email
	seller.PhoneNumber = req.PhoneNumber
	seller.BusinessName = req.BusinessName
	seller.BusinessType = req.BusinessType
	seller.Address = req.Address
	seller.CurrentOccupation = req.CurrentOccupation
	seller.NumberOfCreators = req.NumberOfCreators
	seller.NumberOfFollowers = req.NumberOfFollowers
	if req.AccountStatus != "" {
		seller.Status = req.AccountStatus
	}
	seller.BankName = req.BankName
	seller.AccountNumber = req.AccountNumber
	seller.AccountHolderName = req.AccountHolderName
	seller.IfscCode = req.IfscCode
	seller.PaymentMethod = req.PaymentMethod
	seller.UpiID = req.UpiID
	seller.UpdatedAt = time.Now()

	if err := s.sellers.Update(ctx, seller); err != nil {
		return nil, err
	}
	return seller, nil
}

// AddCustomer records customer ownership on the seller. The append is
// idempotent and totalCustomers is recomputed from the list length.
func (s *SellerService) AddCustomer(ctx context.Context, sellerID, customerID primitive.ObjectID) error {
	matched, err := s.sellers.AppendCustomer(ctx, sellerID, customerID)
	if err != nil {
		return err
	}
	if !matched {
		return apperrors.NotFound("seller not found with ID: %s", sellerID.Hex())
	}
	return nil
}
