package utils

import "testing"

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{540.00, 54000},
		{0.01, 1},
		{199.99, 19999},
		// representation drift must not truncate down
		{19.90, 1990},
		{1234567.89, 123456789},
	}
	for _, tc := range cases {
		if got := ToMinorUnits(tc.amount); got != tc.want {
			t.Fatalf("ToMinorUnits(%v) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}

func TestFromMinorUnitsInvertsToMinorUnits(t *testing.T) {
	for _, minor := range []int64{1, 100, 54000, 19999} {
		if got := ToMinorUnits(FromMinorUnits(minor)); got != minor {
			t.Fatalf("round trip %d -> %d", minor, got)
		}
	}
}
