package model

import (
	"testing"
	"time"
)

func TestCartLineClampSelection(t *testing.T) {
	cases := []struct {
		name     string
		selected int
		quantity int
		want     int
	}{
		{"negative", -2, 3, 0},
		{"within", 2, 3, 2},
		{"above quantity", 5, 3, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line := CartLine{Quantity: tc.quantity, SelectedForCoupon: tc.selected}
			line.ClampSelection()
			if line.SelectedForCoupon != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, line.SelectedForCoupon)
			}
		})
	}
}

func TestCartSubtotal(t *testing.T) {
	cart := Cart{Lines: []CartLine{
		{UnitPrice: 1000, Quantity: 2},
		{UnitPrice: 500, Quantity: 1},
	}}
	if got := cart.Subtotal(); got != 2500 {
		t.Fatalf("expected 2500, got %f", got)
	}
}

func TestCouponMatchesRPType(t *testing.T) {
	cases := []struct {
		filter RPTypeFilter
		safe   bool
		want   bool
	}{
		{RPFilterBoth, true, true},
		{RPFilterBoth, false, true},
		{RPFilterSafe, true, true},
		{RPFilterSafe, false, false},
		{RPFilterCheap, false, true},
		{RPFilterCheap, true, false},
	}

	for _, tc := range cases {
		c := Coupon{RPType: tc.filter}
		if got := c.MatchesRPType(tc.safe); got != tc.want {
			t.Fatalf("filter %s safe=%v: expected %v, got %v", tc.filter, tc.safe, tc.want, got)
		}
	}
}

func TestCouponMatchesCategory(t *testing.T) {
	cases := []struct {
		category ProductCategory
		kind     ProductKind
		want     bool
	}{
		{CategoryBoth, KindItem, true},
		{CategorySkins, KindSkin, true},
		{CategorySkins, KindItem, false},
		{CategoryItems, KindSkin, false},
		{CategoryItems, KindUnranked, true},
	}

	for _, tc := range cases {
		c := Coupon{Category: tc.category}
		if got := c.MatchesCategory(tc.kind); got != tc.want {
			t.Fatalf("category %s kind %s: expected %v, got %v", tc.category, tc.kind, tc.want, got)
		}
	}
}

func TestOrderTimerRunning(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Minute)
	past := now.Add(-time.Minute)

	if (Order{}).TimerRunning(now) {
		t.Fatal("order without timer should not be running")
	}
	if !(Order{TimerEndsAt: &future}).TimerRunning(now) {
		t.Fatal("future timer should be running")
	}
	if (Order{TimerEndsAt: &past}).TimerRunning(now) {
		t.Fatal("past timer should not be running")
	}
}

func TestProductCategory(t *testing.T) {
	if (Product{Kind: KindSkin}).Category() != CategorySkins {
		t.Fatal("skins should map to SKINS category")
	}
	if (Product{Kind: KindUnranked}).Category() != CategoryItems {
		t.Fatal("unranked accounts should map to ITEMS category")
	}
}
