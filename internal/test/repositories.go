package test

import (
	"context"
	"time"

	domainErrors "github.com/mkoval/rpmarket/internal/domain/errors"
	"github.com/mkoval/rpmarket/internal/domain/model"
	"github.com/mkoval/rpmarket/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ProductRepositoryStub serves catalog entries from a slice.
type ProductRepositoryStub struct {
	ListFn    func(context.Context, repository.ProductFilter) ([]model.Product, error)
	GetByIDFn func(context.Context, int64) (*model.Product, error)
	Products  []model.Product
}

// List returns configured products.
func (s *ProductRepositoryStub) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return s.Products, nil
}

// GetByID finds a product in the configured slice.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, p := range s.Products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// CurrencyRepositoryStub serves currencies from a slice.
type CurrencyRepositoryStub struct {
	Currencies []model.Currency
}

// GetByID finds a currency or returns not found.
func (s *CurrencyRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Currency, error) {
	for _, c := range s.Currencies {
		if c.ID == id {
			currency := c
			return &currency, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all configured currencies.
func (s *CurrencyRepositoryStub) List(ctx context.Context) ([]model.Currency, error) {
	return s.Currencies, nil
}

// CartRepositoryStub keeps a single in-memory cart with merge semantics
// matching the SQL implementation.
type CartRepositoryStub struct {
	Cart   model.Cart
	NextID int64
	Err    error
}

// NewCartRepositoryStub constructs an empty cart stub for the user.
func NewCartRepositoryStub(userID, currencyID int64) *CartRepositoryStub {
	return &CartRepositoryStub{Cart: model.Cart{UserID: userID, CurrencyID: currencyID}, NextID: 1}
}

// Get returns a copy of the stored cart.
func (s *CartRepositoryStub) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	cart := s.Cart
	cart.Lines = append([]model.CartLine(nil), s.Cart.Lines...)
	return &cart, nil
}

// AddLine merges on (product, sourcing tier) or appends a new line.
func (s *CartRepositoryStub) AddLine(ctx context.Context, userID int64, line model.CartLine) (*model.Cart, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Cart.Lines {
		existing := &s.Cart.Lines[i]
		if existing.ProductID == line.ProductID && existing.SafeCurrency == line.SafeCurrency {
			existing.Quantity += line.Quantity
			return s.Get(ctx, userID)
		}
	}
	if s.NextID == 0 {
		s.NextID = 1
	}
	line.ID = s.NextID
	s.NextID++
	s.Cart.Lines = append(s.Cart.Lines, line)
	return s.Get(ctx, userID)
}

// SetQuantity updates quantity or removes the line at zero and below.
func (s *CartRepositoryStub) SetQuantity(ctx context.Context, userID, lineID int64, quantity int) (*model.Cart, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Cart.Lines {
		if s.Cart.Lines[i].ID != lineID {
			continue
		}
		if quantity < 1 {
			s.Cart.Lines = append(s.Cart.Lines[:i], s.Cart.Lines[i+1:]...)
		} else {
			s.Cart.Lines[i].Quantity = quantity
			s.Cart.Lines[i].ClampSelection()
		}
		return s.Get(ctx, userID)
	}
	return nil, domainErrors.ErrNotFound
}

// SetSelections writes coupon-selected units per line.
func (s *CartRepositoryStub) SetSelections(ctx context.Context, userID int64, selections map[int64]int) error {
	if s.Err != nil {
		return s.Err
	}
	for i := range s.Cart.Lines {
		if selected, ok := selections[s.Cart.Lines[i].ID]; ok {
			s.Cart.Lines[i].SelectedForCoupon = selected
			s.Cart.Lines[i].ClampSelection()
		}
	}
	return nil
}

// SetCurrency switches the cart currency.
func (s *CartRepositoryStub) SetCurrency(ctx context.Context, userID, currencyID int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.Cart.CurrencyID = currencyID
	return nil
}

// Clear removes all lines.
func (s *CartRepositoryStub) Clear(ctx context.Context, userID int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.Cart.Lines = nil
	return nil
}

// CouponRepositoryStub resolves coupons from configured maps.
type CouponRepositoryStub struct {
	Merchant map[string]*model.Coupon
	Reward   map[string]*model.Coupon
	Redeemed []int64
	Created  []model.Coupon
	NextID   int64
	Err      error
}

// GetMerchantCoupon resolves a merchant coupon by code.
func (s *CouponRepositoryStub) GetMerchantCoupon(ctx context.Context, code string, currencyID int64) (*model.Coupon, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if coupon, ok := s.Merchant[code]; ok {
		return coupon, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetRewardCoupon resolves a reward coupon by code and owner.
func (s *CouponRepositoryStub) GetRewardCoupon(ctx context.Context, code string, userID int64) (*model.Coupon, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if coupon, ok := s.Reward[code]; ok {
		return coupon, nil
	}
	return nil, domainErrors.ErrNotFound
}

// MarkRedeemed records the redeemed coupon.
func (s *CouponRepositoryStub) MarkRedeemed(ctx context.Context, couponID int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.Redeemed = append(s.Redeemed, couponID)
	return nil
}

// CreateRewardCoupon stores the new coupon and assigns an identifier.
func (s *CouponRepositoryStub) CreateRewardCoupon(ctx context.Context, coupon model.Coupon) (*model.Coupon, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.NextID == 0 {
		s.NextID = 1
	}
	coupon.ID = s.NextID
	s.NextID++
	s.Created = append(s.Created, coupon)
	return &coupon, nil
}

// StatusRepositoryStub serves the status catalog from a slice.
type StatusRepositoryStub struct {
	Statuses []model.OrderStatus
	Err      error
}

// List returns the configured catalog.
func (s *StatusRepositoryStub) List(ctx context.Context) ([]model.OrderStatus, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Statuses, nil
}

// GetByID finds a status or returns not found.
func (s *StatusRepositoryStub) GetByID(ctx context.Context, id int64) (*model.OrderStatus, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, st := range s.Statuses {
		if st.ID == id {
			status := st
			return &status, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetDefault returns the status flagged as default.
func (s *StatusRepositoryStub) GetDefault(ctx context.Context) (*model.OrderStatus, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, st := range s.Statuses {
		if st.Default {
			status := st
			return &status, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub keeps orders in-memory and applies updates the way
// the SQL implementation does.
type OrderRepositoryStub struct {
	Orders      []model.Order
	NextID      int64
	Unread      int
	Viewed      []string
	UpdateCalls []repository.OrderUpdate
	Err         error
}

// Create stores the order and assigns an identifier.
func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.NextID == 0 {
		s.NextID = 1
	}
	order.ID = s.NextID
	s.NextID++
	order.CreatedAt = time.Now()
	s.Orders = append(s.Orders, order)
	stored := order
	return &stored, nil
}

// GetByPublicID finds an order owned by the user.
func (s *OrderRepositoryStub) GetByPublicID(ctx context.Context, userID int64, publicID string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, o := range s.Orders {
		if o.UserID == userID && o.PublicID == publicID {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns the user's orders.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Order
	for _, o := range s.Orders {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	return result, nil
}

// Update applies the confirmable-state fields in place.
func (s *OrderRepositoryStub) Update(ctx context.Context, orderID int64, update repository.OrderUpdate) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.UpdateCalls = append(s.UpdateCalls, update)
	for i := range s.Orders {
		if s.Orders[i].ID != orderID {
			continue
		}
		applyUpdate(&s.Orders[i].StatusID, &s.Orders[i].Confirmed, &s.Orders[i].ConfirmedAt, &s.Orders[i].TimerEndsAt, &s.Orders[i].Viewed, update)
		order := s.Orders[i]
		return &order, nil
	}
	return nil, domainErrors.ErrNotFound
}

// MarkViewed records the viewed order.
func (s *OrderRepositoryStub) MarkViewed(ctx context.Context, userID int64, publicID string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Viewed = append(s.Viewed, publicID)
	return nil
}

// UnreadCount returns the configured badge value.
func (s *OrderRepositoryStub) UnreadCount(ctx context.Context, userID int64) (int, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return s.Unread, nil
}

// SelectExpiredTimers returns orders whose countdown has passed.
func (s *OrderRepositoryStub) SelectExpiredTimers(ctx context.Context, now time.Time, limit int) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var expired []model.Order
	for _, o := range s.Orders {
		if o.TimerEndsAt != nil && !o.TimerEndsAt.After(now) {
			expired = append(expired, o)
			if len(expired) == limit {
				break
			}
		}
	}
	return expired, nil
}

// RedeemRepositoryStub keeps redeems in-memory.
type RedeemRepositoryStub struct {
	Redeems []model.Redeem
	NextID  int64
	Err     error
}

// Create stores the redeem and assigns an identifier.
func (s *RedeemRepositoryStub) Create(ctx context.Context, redeem model.Redeem) (*model.Redeem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.NextID == 0 {
		s.NextID = 1
	}
	redeem.ID = s.NextID
	s.NextID++
	s.Redeems = append(s.Redeems, redeem)
	stored := redeem
	return &stored, nil
}

// GetByPublicID finds a redeem owned by the user.
func (s *RedeemRepositoryStub) GetByPublicID(ctx context.Context, userID int64, publicID string) (*model.Redeem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, r := range s.Redeems {
		if r.UserID == userID && r.PublicID == publicID {
			redeem := r
			return &redeem, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns the user's redeems.
func (s *RedeemRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Redeem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Redeem
	for _, r := range s.Redeems {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	return result, nil
}

// Update applies the confirmable-state fields in place.
func (s *RedeemRepositoryStub) Update(ctx context.Context, redeemID int64, update repository.OrderUpdate) (*model.Redeem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Redeems {
		if s.Redeems[i].ID != redeemID {
			continue
		}
		applyUpdate(&s.Redeems[i].StatusID, &s.Redeems[i].Confirmed, &s.Redeems[i].ConfirmedAt, &s.Redeems[i].TimerEndsAt, &s.Redeems[i].Viewed, update)
		redeem := s.Redeems[i]
		return &redeem, nil
	}
	return nil, domainErrors.ErrNotFound
}

func applyUpdate(statusID *int64, confirmed *bool, confirmedAt, timerEndsAt **time.Time, viewed *bool, update repository.OrderUpdate) {
	if update.StatusID != nil {
		*statusID = *update.StatusID
	}
	if update.Confirmed != nil {
		*confirmed = *update.Confirmed
	}
	if update.ConfirmedAt != nil {
		*confirmedAt = update.ConfirmedAt
	}
	if update.TimerEndsAt != nil {
		*timerEndsAt = update.TimerEndsAt
	}
	if update.ClearTimer {
		*timerEndsAt = nil
		*confirmedAt = nil
	}
	if update.Viewed != nil {
		*viewed = *update.Viewed
	}
}

// LoyaltyRepositoryStub tracks point movements in-memory.
type LoyaltyRepositoryStub struct {
	SummaryVal *model.LoyaltySummary
	Entries    []model.LoyaltyEntry
	SpendErr   error
	Err        error
}

// GetSummary returns the configured summary or not found.
func (s *LoyaltyRepositoryStub) GetSummary(ctx context.Context, userID int64) (*model.LoyaltySummary, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.SummaryVal == nil {
		return nil, domainErrors.ErrNotFound
	}
	return s.SummaryVal, nil
}

// AddPoints records an earning entry.
func (s *LoyaltyRepositoryStub) AddPoints(ctx context.Context, userID int64, orderID *int64, points float64, description string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Entries = append(s.Entries, model.LoyaltyEntry{UserID: userID, OrderID: orderID, Points: points, Description: description})
	return nil
}

// SpendPoints records a spending entry or fails with the configured error.
func (s *LoyaltyRepositoryStub) SpendPoints(ctx context.Context, userID int64, points float64, description string) error {
	if s.SpendErr != nil {
		return s.SpendErr
	}
	if s.Err != nil {
		return s.Err
	}
	s.Entries = append(s.Entries, model.LoyaltyEntry{UserID: userID, Points: -points, Description: description})
	return nil
}

// History returns recorded entries.
func (s *LoyaltyRepositoryStub) History(ctx context.Context, userID int64) ([]model.LoyaltyEntry, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Entries, nil
}
