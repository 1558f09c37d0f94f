package usecase

import "testing"

func floatPtr(v float64) *float64 {
	return &v
}

func TestShouldAlert(t *testing.T) {
	tests := []struct {
		name      string
		previous  *float64
		current   float64
		threshold float64
		want      bool
	}{
		{"drop above threshold alerts", floatPtr(450), 420.50, 10, true},
		{"drop below threshold does not alert", floatPtr(450), 420.50, 30, false},
		{"drop exactly at threshold does not alert", floatPtr(450), 440, 10, false},
		{"no previous price never alerts", nil, 300, 10, false},
		{"price rise never alerts", floatPtr(400), 450, 10, false},
		{"unchanged price never alerts", floatPtr(450), 450, 10, false},
		{"zero threshold alerts on any drop", floatPtr(450), 449.99, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			policy := NewAlertPolicy(tc.threshold)
			if got := policy.ShouldAlert(tc.previous, tc.current); got != tc.want {
				t.Errorf("ShouldAlert(%v, %v) with threshold %v = %v, want %v",
					tc.previous, tc.current, tc.threshold, got, tc.want)
			}
		})
	}
}

func TestPriceDrop(t *testing.T) {
	policy := NewAlertPolicy(10)

	if drop := policy.PriceDrop(nil, 300); drop != nil {
		t.Errorf("expected nil drop without a previous price, got %v", *drop)
	}

	drop := policy.PriceDrop(floatPtr(450), 420.50)
	if drop == nil {
		t.Fatal("expected a drop value")
	}
	if *drop != 29.50 {
		t.Errorf("expected drop of 29.50, got %v", *drop)
	}

	rise := policy.PriceDrop(floatPtr(400), 450)
	if rise == nil || *rise != -50 {
		t.Errorf("expected drop of -50 for a price rise, got %v", rise)
	}
}
