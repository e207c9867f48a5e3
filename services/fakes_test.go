// services/fakes_test.go
package services

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dracohq/seller_backend/apperrors"
	"github.com/dracohq/seller_backend/models"
	"github.com/dracohq/seller_backend/repositories"
)

// fakeSellerStore is an in-memory SellerStore with the same visible behavior
// as the Mongo repository: lookups return (nil, nil) when absent, Create
// enforces the unique email and referral-code indexes, and the append methods
// are idempotent and recompute the counters from the list lengths.
type fakeSellerStore struct {
	mu      sync.Mutex
	sellers map[primitive.ObjectID]*models.Seller
	order   []primitive.ObjectID
}

func newFakeSellerStore() *fakeSellerStore {
	return &fakeSellerStore{sellers: make(map[primitive.ObjectID]*models.Seller)}
}

func (f *fakeSellerStore) add(s *models.Seller) *models.Seller {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	cp := *s
	f.sellers[cp.ID] = &cp
	f.order = append(f.order, cp.ID)
	return s
}

func (f *fakeSellerStore) Create(_ context.Context, seller *models.Seller) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sellers {
		if s.Email == seller.Email {
			return apperrors.Conflict("seller with email %s already exists", seller.Email)
		}
		if s.ReferralCode == seller.ReferralCode {
			return repositories.ErrDuplicateReferralCode
		}
	}
	seller.ID = primitive.NewObjectID()
	cp := *seller
	f.sellers[cp.ID] = &cp
	f.order = append(f.order, cp.ID)
	return nil
}

func (f *fakeSellerStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Seller, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sellers[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeSellerStore) FindByEmail(_ context.Context, email string) (*models.Seller, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sellers {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSellerStore) FindByReferralCode(_ context.Context, code string) (*models.Seller, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sellers {
		if s.ReferralCode == code {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSellerStore) FindByIDIn(_ context.Context, ids []primitive.ObjectID) ([]models.Seller, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Seller
	for _, id := range ids {
		if s, ok := f.sellers[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSellerStore) FindAll(_ context.Context) ([]models.Seller, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Seller, 0, len(f.order))
	for _, id := range f.order {
		if s, ok := f.sellers[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSellerStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sellers {
		if s.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSellerStore) ExistsByReferralCode(_ context.Context, code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sellers {
		if s.ReferralCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSellerStore) Update(_ context.Context, seller *models.Seller) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sellers[seller.ID]; !ok {
		return apperrors.NotFound("seller not found with ID: %s", seller.ID.Hex())
	}
	for id, s := range f.sellers {
		if id != seller.ID && s.Email == seller.Email {
			return apperrors.Conflict("email %s is already in use", seller.Email)
		}
	}
	cp := *seller
	f.sellers[cp.ID] = &cp
	return nil
}

func (f *fakeSellerStore) AppendReferral(_ context.Context, referrerID, newSellerID primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sellers[referrerID]
	if !ok {
		return false, nil
	}
	if !containsID(s.ReferredSellerIDs, newSellerID) {
		s.ReferredSellerIDs = append(s.ReferredSellerIDs, newSellerID)
	}
	s.TotalReferrals = len(s.ReferredSellerIDs)
	return true, nil
}

func (f *fakeSellerStore) AppendCustomer(_ context.Context, sellerID, customerID primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sellers[sellerID]
	if !ok {
		return false, nil
	}
	if !containsID(s.CustomerIDs, customerID) {
		s.CustomerIDs = append(s.CustomerIDs, customerID)
	}
	s.TotalCustomers = len(s.CustomerIDs)
	return true, nil
}

func (f *fakeSellerStore) ReconcileReferralTotals(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var repaired int64
	for _, s := range f.sellers {
		if want := len(s.ReferredSellerIDs); s.TotalReferrals != want {
			s.TotalReferrals = want
			repaired++
		}
	}
	return repaired, nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Email]; ok {
		return apperrors.Conflict("user with email %s already exists", user.Email)
	}
	user.ID = primitive.NewObjectID()
	cp := *user
	f.users[cp.Email] = &cp
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[email]
	return ok, nil
}

// fakeRewardStore is an in-memory append-only reward ledger.
type fakeRewardStore struct {
	mu      sync.Mutex
	rewards []models.SellerReward
}

func newFakeRewardStore() *fakeRewardStore { return &fakeRewardStore{} }

func (f *fakeRewardStore) Create(_ context.Context, reward *models.SellerReward) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	reward.ID = primitive.NewObjectID()
	f.rewards = append(f.rewards, *reward)
	return nil
}

func (f *fakeRewardStore) SumPointsBySellerID(_ context.Context, sellerID primitive.ObjectID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum int
	for _, r := range f.rewards {
		if r.SellerID == sellerID {
			sum += r.ReferralPoint
		}
	}
	return sum, nil
}

func (f *fakeRewardStore) CountBySellerID(_ context.Context, sellerID primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, r := range f.rewards {
		if r.SellerID == sellerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRewardStore) FindPageBySellerID(_ context.Context, sellerID primitive.ObjectID, skip, limit int64) ([]models.SellerReward, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []models.SellerReward
	for _, r := range f.rewards {
		if r.SellerID == sellerID {
			all = append(all, r)
		}
	}
	if skip >= int64(len(all)) {
		return nil, nil
	}
	end := skip + limit
	if end > int64(len(all)) {
		end = int64(len(all))
	}
	return all[skip:end], nil
}

// fakePayoutStore is an in-memory PayoutStore whose ReplaceIfStatus applies
// the same guard-and-write atomicity as the Mongo conditional replace.
type fakePayoutStore struct {
	mu      sync.Mutex
	payouts map[primitive.ObjectID]*models.Payout
	order   []primitive.ObjectID
}

func newFakePayoutStore() *fakePayoutStore {
	return &fakePayoutStore{payouts: make(map[primitive.ObjectID]*models.Payout)}
}

func (f *fakePayoutStore) add(p *models.Payout) *models.Payout {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := *p
	f.payouts[cp.ID] = &cp
	f.order = append(f.order, cp.ID)
	return p
}

func (f *fakePayoutStore) Create(_ context.Context, payout *models.Payout) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	payout.ID = primitive.NewObjectID()
	cp := *payout
	f.payouts[cp.ID] = &cp
	f.order = append(f.order, cp.ID)
	return nil
}

func (f *fakePayoutStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Payout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.payouts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakePayoutStore) FindAll(_ context.Context) ([]models.Payout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Payout, 0, len(f.order))
	for _, id := range f.order {
		if p, ok := f.payouts[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePayoutStore) FindBySellerID(_ context.Context, sellerID primitive.ObjectID) ([]models.Payout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Payout
	for _, id := range f.order {
		if p, ok := f.payouts[id]; ok && p.SellerID == sellerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePayoutStore) FindByStatus(_ context.Context, status string) ([]models.Payout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Payout
	for _, id := range f.order {
		if p, ok := f.payouts[id]; ok && p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePayoutStore) ReplaceIfStatus(_ context.Context, payout *models.Payout, expect ...string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	current, ok := f.payouts[payout.ID]
	if !ok {
		return false, nil
	}
	matched := false
	for _, s := range expect {
		if current.Status == s {
			matched = true
			break
		}
	}
	if !matched {
		return false, nil
	}
	cp := *payout
	f.payouts[cp.ID] = &cp
	return true, nil
}

func (f *fakePayoutStore) DeleteIfNotPaid(_ context.Context, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payouts[id]
	if !ok || p.Status == models.PayoutStatusPaid {
		return false, nil
	}
	delete(f.payouts, id)
	return true, nil
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	fail bool
}

type sentNotification struct {
	To      string
	Subject string
	Body    string
}

func (n *recordingNotifier) Notify(to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return context.DeadlineExceeded
	}
	n.sent = append(n.sent, sentNotification{To: to, Subject: subject, Body: body})
	return nil
}
