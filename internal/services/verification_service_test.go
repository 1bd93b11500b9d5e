package services

import "testing"

func TestTrustScoreWeights(t *testing.T) {
	cases := []struct {
		name                     string
		phone, aadhaar, upi, ngo bool
		want                     int
	}{
		{name: "nothing verified", want: 0},
		{name: "phone only", phone: true, want: 25},
		{name: "upi only", upi: true, want: 25},
		{name: "ngo only", ngo: true, want: 50},
		{name: "phone and upi", phone: true, upi: true, want: 50},
		{name: "phone upi ngo", phone: true, upi: true, ngo: true, want: 100},
		{name: "aadhaar carries no weight", aadhaar: true, want: 0},
		{name: "aadhaar does not change full score", phone: true, aadhaar: true, upi: true, ngo: true, want: 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TrustScore(tc.phone, tc.aadhaar, tc.upi, tc.ngo); got != tc.want {
				t.Fatalf("TrustScore(%v, %v, %v, %v) = %d, want %d", tc.phone, tc.aadhaar, tc.upi, tc.ngo, got, tc.want)
			}
		})
	}
}
