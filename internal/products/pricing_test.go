package products

import (
	"testing"
)

// Test fixture: a monthly subscription at $9.99
func getMonthlyProduct() *Product {
	return &Product{
		ID:       "premium_monthly",
		VendorID: "com.example.premium.monthly",
		GroupID:  "main",
		Price:    Price{Amount: 9.99, Currency: "USD", Localized: "$9.99"},
		Subscription: &Period{
			Unit:          PeriodMonth,
			NumberOfUnits: 1,
		},
	}
}

func TestPricePer_Identity(t *testing.T) {
	p := getMonthlyProduct()

	// Same unit, count 1: the localized string must come back verbatim,
	// never reformatted
	got := PricePer(p, PeriodMonth)
	if got != "$9.99" {
		t.Errorf("PricePer(month) = %q, want verbatim %q", got, "$9.99")
	}
}

func TestPricePer_NoSubscription(t *testing.T) {
	p := &Product{
		ID:    "lifetime",
		Price: Price{Amount: 49.99, Localized: "$49.99"},
	}
	if got := PricePer(p, PeriodMonth); got != "" {
		t.Errorf("PricePer on non-subscription = %q, want empty", got)
	}
}

func TestPricePerAmount_YearlyConversions(t *testing.T) {
	p := &Product{
		ID:    "premium_yearly",
		Price: Price{Amount: 52.0, Currency: "USD", Localized: "$52.00"},
		Subscription: &Period{
			Unit:          PeriodYear,
			NumberOfUnits: 1,
		},
	}

	tests := []struct {
		target PeriodUnit
		want   float64
	}{
		{PeriodYear, 52.0},
		{PeriodMonth, 52.0 / 12},
		{PeriodWeek, 1.0},
		{PeriodDay, 52.0 / 365},
	}
	for _, tt := range tests {
		got, ok := PricePerAmount(p, tt.target)
		if !ok {
			t.Fatalf("PricePerAmount(%v) failed", tt.target)
		}
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("PricePerAmount(%v) = %v, want %v", tt.target, got, tt.want)
		}
	}
}

func TestPricePerAmount_MultiUnitCeiling(t *testing.T) {
	// 3 months for $10.00: per-month is ceil4(10/3) = 3.3334
	p := &Product{
		ID:    "quarterly",
		Price: Price{Amount: 10.0, Currency: "USD", Localized: "$10.00"},
		Subscription: &Period{
			Unit:          PeriodMonth,
			NumberOfUnits: 3,
		},
	}
	got, ok := PricePerAmount(p, PeriodMonth)
	if !ok {
		t.Fatal("PricePerAmount failed")
	}
	if got != 3.3334 {
		t.Errorf("PricePerAmount(month) = %v, want 3.3334 (ceiling at 4 places)", got)
	}
}

func TestPricePerAmount_Monotonic(t *testing.T) {
	// Converting to a smaller period must never yield a larger per-period
	// amount than a longer period's
	units := []PeriodUnit{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear}
	for _, source := range []PeriodUnit{PeriodWeek, PeriodMonth, PeriodYear} {
		for _, count := range []int{1, 2, 3, 6, 12} {
			p := &Product{
				ID:           "probe",
				Price:        Price{Amount: 19.99, Localized: "$19.99"},
				Subscription: &Period{Unit: source, NumberOfUnits: count},
			}
			var prev float64 = -1
			for _, target := range units {
				got, ok := PricePerAmount(p, target)
				if !ok {
					t.Fatalf("conversion %v/%d -> %v failed", source, count, target)
				}
				if prev >= 0 && got < prev {
					t.Errorf("%v/%d: price per %v (%v) < price per %v (%v)",
						source, count, target, got, units[indexOf(units, target)-1], prev)
				}
				prev = got
			}
		}
	}
}

func indexOf(units []PeriodUnit, u PeriodUnit) int {
	for i, v := range units {
		if v == u {
			return i
		}
	}
	return -1
}

func TestReformatLocalized(t *testing.T) {
	tests := []struct {
		name      string
		localized string
		currency  string
		amount    float64
		want      string
	}{
		{"symbol prefix", "$9.99", "USD", 3.5, "$3.50"},
		{"symbol suffix", "9,99 €", "EUR", 1.25, "1,25 €"},
		{"grouped digits", "¥1,200", "JPY", 100.0, "¥100.00"},
		{"no digits", "", "USD", 2.0, "USD 2.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reformatLocalized(tt.localized, tt.currency, tt.amount)
			if got != tt.want {
				t.Errorf("reformatLocalized(%q, %v) = %q, want %q", tt.localized, tt.amount, got, tt.want)
			}
		})
	}
}

func TestProduct_PaymentMode(t *testing.T) {
	p := getMonthlyProduct()
	if p.PaymentMode() != ModeDefault {
		t.Errorf("product without offers should be default mode, got %v", p.PaymentMode())
	}

	p.Offers = []Offer{{ID: "trial", Mode: ModeFreeTrial}}
	if p.PaymentMode() != ModeFreeTrial {
		t.Errorf("payment mode should come from the first offer, got %v", p.PaymentMode())
	}
}
