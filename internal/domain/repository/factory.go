package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Products() ProductRepository
	Currencies() CurrencyRepository
	Carts() CartRepository
	Coupons() CouponRepository
	Orders() OrderRepository
	Redeems() RedeemRepository
	Statuses() StatusRepository
	Loyalty() LoyaltyRepository
}
