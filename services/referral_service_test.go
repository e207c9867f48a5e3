// services/referral_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dracohq/seller_backend/apperrors"
	"github.com/dracohq/seller_backend/models"
)

func TestLinkReferralIdempotent(t *testing.T) {
	sellers := newFakeSellerStore()
	svc := NewReferralService(sellers)
	referrer := seedSeller(sellers, "Referrer", "ref@example.com", "REFAAAA1111")
	newSeller := seedSeller(sellers, "New", "new@example.com", "REFBBBB2222")

	require.NoError(t, svc.LinkReferral(context.Background(), newSeller.ID, referrer.ID))
	require.NoError(t, svc.LinkReferral(context.Background(), newSeller.ID, referrer.ID))

	stored, err := sellers.FindByID(context.Background(), referrer.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{newSeller.ID}, stored.ReferredSellerIDs)
	assert.Equal(t, 1, stored.TotalReferrals)
}

func TestLinkReferralUnknownReferrer(t *testing.T) {
	sellers := newFakeSellerStore()
	svc := NewReferralService(sellers)
	newSeller := seedSeller(sellers, "New", "new@example.com", "REFBBBB2222")

	err := svc.LinkReferral(context.Background(), newSeller.ID, primitive.NewObjectID())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestTotalReferralsMatchesListLength(t *testing.T) {
	sellers := newFakeSellerStore()
	svc := NewReferralService(sellers)
	referrer := seedSeller(sellers, "Referrer", "ref@example.com", "REFAAAA1111")

	for i := 0; i < 5; i++ {
		s := seedSeller(sellers, "S", primitive.NewObjectID().Hex()+"@example.com", "REFC"+primitive.NewObjectID().Hex()[:7])
		require.NoError(t, svc.LinkReferral(context.Background(), s.ID, referrer.ID))
	}

	stored, err := sellers.FindByID(context.Background(), referrer.ID)
	require.NoError(t, err)
	assert.Len(t, stored.ReferredSellerIDs, 5)
	assert.Equal(t, len(stored.ReferredSellerIDs), stored.TotalReferrals)
}

func TestGetReferralInfo(t *testing.T) {
	sellers := newFakeSellerStore()
	svc := NewReferralService(sellers)
	referrer := seedSeller(sellers, "Referrer", "ref@example.com", "REFAAAA1111")
	first := seedSeller(sellers, "First", "first@example.com", "REFBBBB2222")
	second := seedSeller(sellers, "Second", "second@example.com", "REFCCCC3333")

	require.NoError(t, svc.LinkReferral(context.Background(), first.ID, referrer.ID))
	require.NoError(t, svc.LinkReferral(context.Background(), second.ID, referrer.ID))

	info, err := svc.GetReferralInfo(context.Background(), referrer.ID)
	require.NoError(t, err)

	assert.Equal(t, "REFAAAA1111", info.MyReferralCode)
	assert.Nil(t, info.ReferredBy)
	assert.Equal(t, 2, info.TotalReferrals)
	require.Len(t, info.ReferredSellers, 2)
	// Order follows the edge list, which records referral order.
	assert.Equal(t, first.ID, info.ReferredSellers[0].ID)
	assert.Equal(t, second.ID, info.ReferredSellers[1].ID)
}

func TestGetReferralInfoDanglingReferrer(t *testing.T) {
	sellers := newFakeSellerStore()
	svc := NewReferralService(sellers)
	gone := primitive.NewObjectID()
	seller := seedSeller(sellers, "Orphan", "orphan@example.com", "REFAAAA1111")

	stored, err := sellers.FindByID(context.Background(), seller.ID)
	require.NoError(t, err)
	stored.ReferredBy = &gone
	require.NoError(t, sellers.Update(context.Background(), stored))

	info, err := svc.GetReferralInfo(context.Background(), seller.ID)
	require.NoError(t, err)
	assert.Nil(t, info.ReferredBy)
}

func TestGetReferralInfoUnknownSeller(t *testing.T) {
	sellers := newFakeSellerStore()
	svc := NewReferralService(sellers)

	_, err := svc.GetReferralInfo(context.Background(), primitive.NewObjectID())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestReconcileTotalsRepairsDrift(t *testing.T) {
	sellers := newFakeSellerStore()
	svc := NewReferralService(sellers)
	referrer := seedSeller(sellers, "Referrer", "ref@example.com", "REFAAAA1111")
	first := seedSeller(sellers, "First", "first@example.com", "REFBBBB2222")

	// Simulate drift left by a partial registration failure: the edge exists
	// but the counter was never bumped.
	stored, err := sellers.FindByID(context.Background(), referrer.ID)
	require.NoError(t, err)
	stored.ReferredSellerIDs = []primitive.ObjectID{first.ID}
	stored.TotalReferrals = 0
	require.NoError(t, sellers.Update(context.Background(), stored))

	repaired, err := svc.ReconcileTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), repaired)

	fixed, err := sellers.FindByID(context.Background(), referrer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fixed.TotalReferrals)

	// Running again repairs nothing.
	repaired, err = svc.ReconcileTotals(context.Background())
	require.NoError(t, err)
	assert.Zero(t, repaired)
}

func TestRegisterThenReferralInfoRoundTrip(t *testing.T) {
	sellers := newFakeSellerStore()
	users := newFakeUserStore()
	sellerSvc := NewSellerService(sellers, users)
	referralSvc := NewReferralService(sellers)

	referrer, err := sellerSvc.Register(context.Background(), models.SellerRegistrationRequest{
		Name:  "Referrer",
		Email: "ref@example.com",
	})
	require.NoError(t, err)

	referred, err := sellerSvc.Register(context.Background(), models.SellerRegistrationRequest{
		Name:             "Referred",
		Email:            "referred@example.com",
		UsedReferralCode: referrer.ReferralCode,
	})
	require.NoError(t, err)

	info, err := referralSvc.GetReferralInfo(context.Background(), referred.ID)
	require.NoError(t, err)
	require.NotNil(t, info.ReferredBy)
	assert.Equal(t, referrer.ID, info.ReferredBy.ID)
	assert.Equal(t, referrer.ReferralCode, info.UsedReferralCode)

	refInfo, err := referralSvc.GetReferralInfo(context.Background(), referrer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, refInfo.TotalReferrals)
	require.Len(t, refInfo.ReferredSellers, 1)
	assert.Equal(t, referred.ID, refInfo.ReferredSellers[0].ID)
}
