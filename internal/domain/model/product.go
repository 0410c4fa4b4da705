package model

// ProductKind tags the product union. The tag is decided when catalog data
// is ingested; downstream code switches on it instead of probing fields.
type ProductKind string

const (
	KindItem     ProductKind = "ITEM"
	KindSkin     ProductKind = "SKIN"
	KindUnranked ProductKind = "UNRANKED"
)

// ProductCategory groups products for coupon scoping.
type ProductCategory string

const (
	CategorySkins ProductCategory = "SKINS"
	CategoryItems ProductCategory = "ITEMS"
	CategoryBoth  ProductCategory = "BOTH"
)

// Product describes a purchasable catalog entry.
type Product struct {
	ID           int64
	Kind         ProductKind
	Name         string
	TierRP       int64
	PriceSafeRP  float64
	PriceCheapRP float64
	ImageURL     string
	Active       bool
	Unranked     *UnrankedMeta
}

// UnrankedMeta carries account metadata present only for KindUnranked.
type UnrankedMeta struct {
	Region      string
	Level       int
	BlueEssence int64
}

// Category derives the coupon-scoping category from the product kind.
func (p Product) Category() ProductCategory {
	if p.Kind == KindSkin {
		return CategorySkins
	}
	return CategoryItems
}

// BasePrice returns the RP price for the requested sourcing tier.
func (p Product) BasePrice(safeCurrency bool) float64 {
	if safeCurrency {
		return p.PriceSafeRP
	}
	return p.PriceCheapRP
}
