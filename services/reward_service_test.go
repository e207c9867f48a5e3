// services/reward_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dracohq/seller_backend/apperrors"
	"github.com/dracohq/seller_backend/models"
)

func newTestRewardService() (*RewardService, *fakeSellerStore, *fakeRewardStore) {
	sellers := newFakeSellerStore()
	rewards := newFakeRewardStore()
	return NewRewardService(rewards, sellers), sellers, rewards
}

func intPtr(v int) *int { return &v }

func TestCreateReward(t *testing.T) {
	svc, sellers, _ := newTestRewardService()
	seedSeller(sellers, "Asha Verma", "asha@example.com", "REFAAAA1111")

	resp, err := svc.CreateReward(context.Background(), models.SellerRewardRequest{
		SellerUniqueCode: "REFAAAA1111",
		ReferralPoint:    50,
		ReferrerID:       "ext-partner-42",
		ReferrerType:     models.ReferrerTypeSellerReferral,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Asha Verma", resp.SellerName)
	assert.Equal(t, "REFAAAA1111", resp.SellerUniqueCode)
	assert.Equal(t, 50, resp.ReferralPoint)
	assert.Equal(t, "ext-partner-42", resp.ReferrerID)
}

func TestCreateRewardRejectsNonPositivePoints(t *testing.T) {
	svc, sellers, _ := newTestRewardService()
	seedSeller(sellers, "Asha Verma", "asha@example.com", "REFAAAA1111")

	for _, points := range []int{0, -10} {
		_, err := svc.CreateReward(context.Background(), models.SellerRewardRequest{
			SellerUniqueCode: "REFAAAA1111",
			ReferralPoint:    points,
			ReferrerType:     models.ReferrerTypeBonus,
		})
		assert.True(t, apperrors.IsValidation(err))
	}
}

func TestCreateRewardRejectsUnknownReferrerType(t *testing.T) {
	svc, sellers, _ := newTestRewardService()
	seedSeller(sellers, "Asha Verma", "asha@example.com", "REFAAAA1111")

	_, err := svc.CreateReward(context.Background(), models.SellerRewardRequest{
		SellerUniqueCode: "REFAAAA1111",
		ReferralPoint:    10,
		ReferrerType:     "MYSTERY",
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateRewardUnknownSeller(t *testing.T) {
	svc, _, _ := newTestRewardService()

	_, err := svc.CreateReward(context.Background(), models.SellerRewardRequest{
		SellerUniqueCode: "REFNOPE0000",
		ReferralPoint:    10,
		ReferrerType:     models.ReferrerTypeBonus,
	})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetTotalEarnedWithoutPagination(t *testing.T) {
	svc, sellers, _ := newTestRewardService()
	seedSeller(sellers, "Asha Verma", "asha@example.com", "REFAAAA1111")

	for _, points := range []int{10, 20, 30} {
		_, err := svc.CreateReward(context.Background(), models.SellerRewardRequest{
			SellerUniqueCode: "REFAAAA1111",
			ReferralPoint:    points,
			ReferrerType:     models.ReferrerTypeSellerReferral,
		})
		require.NoError(t, err)
	}

	resp, err := svc.GetTotalEarned(context.Background(), "REFAAAA1111", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 60, resp.TotalEarnedPoints)
	assert.Equal(t, int64(3), resp.TotalRewards)
	assert.Nil(t, resp.Rewards)
	assert.Nil(t, resp.Page)
	assert.Nil(t, resp.TotalPages)
}

func TestGetTotalEarnedTotalIndependentOfPage(t *testing.T) {
	svc, sellers, _ := newTestRewardService()
	seedSeller(sellers, "Asha Verma", "asha@example.com", "REFAAAA1111")

	for i := 0; i < 7; i++ {
		_, err := svc.CreateReward(context.Background(), models.SellerRewardRequest{
			SellerUniqueCode: "REFAAAA1111",
			ReferralPoint:    10,
			ReferrerType:     models.ReferrerTypeSellerReferral,
		})
		require.NoError(t, err)
	}

	// The aggregate covers the whole ledger no matter which page is asked for.
	first, err := svc.GetTotalEarned(context.Background(), "REFAAAA1111", intPtr(0), intPtr(3))
	require.NoError(t, err)
	last, err := svc.GetTotalEarned(context.Background(), "REFAAAA1111", intPtr(2), intPtr(3))
	require.NoError(t, err)

	assert.Equal(t, 70, first.TotalEarnedPoints)
	assert.Equal(t, 70, last.TotalEarnedPoints)
	assert.Len(t, first.Rewards, 3)
	assert.Len(t, last.Rewards, 1)
	require.NotNil(t, first.TotalPages)
	assert.Equal(t, int64(3), *first.TotalPages)
	require.NotNil(t, first.TotalElements)
	assert.Equal(t, int64(7), *first.TotalElements)
}

func TestGetTotalEarnedRequiresBothPageAndSize(t *testing.T) {
	svc, sellers, _ := newTestRewardService()
	seedSeller(sellers, "Asha Verma", "asha@example.com", "REFAAAA1111")

	_, err := svc.CreateReward(context.Background(), models.SellerRewardRequest{
		SellerUniqueCode: "REFAAAA1111",
		ReferralPoint:    10,
		ReferrerType:     models.ReferrerTypeSellerReferral,
	})
	require.NoError(t, err)

	// Page alone, size alone, or a non-positive size all mean "no page".
	cases := []struct {
		page, size *int
	}{
		{intPtr(0), nil},
		{nil, intPtr(5)},
		{intPtr(0), intPtr(0)},
		{intPtr(-1), intPtr(5)},
	}
	for _, tc := range cases {
		resp, err := svc.GetTotalEarned(context.Background(), "REFAAAA1111", tc.page, tc.size)
		require.NoError(t, err)
		assert.Nil(t, resp.Rewards)
		assert.Nil(t, resp.Page)
		assert.Equal(t, 10, resp.TotalEarnedPoints)
	}
}

func TestGetTotalEarnedEmptyLedger(t *testing.T) {
	svc, sellers, _ := newTestRewardService()
	seedSeller(sellers, "Asha Verma", "asha@example.com", "REFAAAA1111")

	resp, err := svc.GetTotalEarned(context.Background(), "REFAAAA1111", nil, nil)
	require.NoError(t, err)
	assert.Zero(t, resp.TotalEarnedPoints)
	assert.Zero(t, resp.TotalRewards)
}

func TestGetTotalEarnedUnknownSeller(t *testing.T) {
	svc, _, _ := newTestRewardService()

	_, err := svc.GetTotalEarned(context.Background(), "REFNOPE0000", nil, nil)
	assert.True(t, apperrors.IsNotFound(err))
}
