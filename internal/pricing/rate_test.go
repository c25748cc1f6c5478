package pricing

import "testing"

func TestComputeAmount(t *testing.T) {
	cases := []struct {
		name string
		spec string
		qty  int
		want float64
	}{
		{"plain per-thousand", "₹1000 per 1000", 500, 500.00},
		{"K suffix", "₹100 per 1K", 2500, 250.00},
		{"lowercase k suffix", "₹80 per 2k", 1000, 40.00},
		{"thousands separator", "₹1,500 per 1,000", 200, 300.00},
		{"fractional result rounds", "₹1000 per 3000", 100, 33.33},
		{"fallback positional numbers", "Price: 250 for 500 units", 1000, 500.00},
		{"garbage", "garbage", 100, 0.00},
		{"single number only", "₹500 flat", 100, 0.00},
		{"zero per-unit", "₹100 per 0", 100, 0.00},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComputeAmount(tc.spec, tc.qty); got != tc.want {
				t.Fatalf("ComputeAmount(%q, %d) = %v, want %v", tc.spec, tc.qty, got, tc.want)
			}
		})
	}
}

func TestComputeAmountChecked(t *testing.T) {
	t.Run("reports parse success", func(t *testing.T) {
		amount, ok := ComputeAmountChecked("₹1000 per 1000", 500)
		if !ok || amount != 500.00 {
			t.Fatalf("got (%v, %v), want (500.00, true)", amount, ok)
		}
	})
	t.Run("flags unparsable spec instead of failing silently", func(t *testing.T) {
		amount, ok := ComputeAmountChecked("call us for pricing", 100)
		if ok || amount != 0 {
			t.Fatalf("got (%v, %v), want (0, false)", amount, ok)
		}
	})
}

func TestParseRate(t *testing.T) {
	rate, perUnit, ok := ParseRate("₹100 per 1K")
	if !ok || rate != 100 || perUnit != 1000 {
		t.Fatalf("ParseRate = (%v, %v, %v), want (100, 1000, true)", rate, perUnit, ok)
	}
}
