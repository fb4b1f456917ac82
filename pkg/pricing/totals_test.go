package pricing

import "testing"

func TestTaxFlooring(t *testing.T) {
	cases := []struct {
		subtotal int64
		want     int64
	}{
		{0, 0},
		{-100, 0},
		{49, 0},
		{50, 1},
		{99, 1},
		{10000, 200},
		{10049, 200},
	}
	for _, tc := range cases {
		if got := Tax(tc.subtotal); got != tc.want {
			t.Fatalf("Tax(%d) = %d, want %d", tc.subtotal, got, tc.want)
		}
	}
}

func TestComposeTotal(t *testing.T) {
	got := ComposeTotal(10000, 1000, 0, nil)
	if got != 11200 {
		t.Fatalf("ComposeTotal = %d, want 11200", got)
	}
}

func TestComposeTotalWithDiscount(t *testing.T) {
	got := ComposeTotal(10000, 1000, 500, nil)
	if got != 10700 {
		t.Fatalf("ComposeTotal = %d, want 10700", got)
	}
}

func TestComposeTotalOverrideWinsUnconditionally(t *testing.T) {
	override := int64(9999)
	got := ComposeTotal(10000, 1000, 500, &override)
	if got != 9999 {
		t.Fatalf("ComposeTotal = %d, want override 9999", got)
	}

	// Even a zero override is trusted verbatim.
	zero := int64(0)
	if got := ComposeTotal(10000, 1000, 0, &zero); got != 0 {
		t.Fatalf("ComposeTotal = %d, want 0", got)
	}
}

func TestComposeTotalClampsAtZero(t *testing.T) {
	got := ComposeTotal(1000, 900, 5000, nil)
	if got != 0 {
		t.Fatalf("ComposeTotal = %d, want 0 when discount exceeds the order", got)
	}
}

func TestComposeBreakdown(t *testing.T) {
	totals := Compose(10000, 1000, 250, nil)
	if totals.Tax != 200 {
		t.Fatalf("tax = %d, want 200", totals.Tax)
	}
	if totals.Total != 10950 {
		t.Fatalf("total = %d, want 10950", totals.Total)
	}
	if totals.Subtotal != 10000 || totals.ShippingFee != 1000 || totals.CouponDiscount != 250 {
		t.Fatalf("unexpected breakdown %+v", totals)
	}
}

func TestPreDiscountAmount(t *testing.T) {
	if got := PreDiscountAmount(10000, 1000); got != 11200 {
		t.Fatalf("PreDiscountAmount = %d, want 11200", got)
	}
}
