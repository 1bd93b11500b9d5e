package services

import "testing"

func TestAggregateRatings(t *testing.T) {
	cases := []struct {
		name        string
		ratings     []int
		wantAverage float64
		wantTotal   int
	}{
		{name: "no reviews", ratings: nil, wantAverage: 0, wantTotal: 0},
		{name: "single review", ratings: []int{4}, wantAverage: 4, wantTotal: 1},
		{name: "rounds to two decimals", ratings: []int{5, 4, 4}, wantAverage: 4.33, wantTotal: 3},
		{name: "rounds up", ratings: []int{5, 5, 4}, wantAverage: 4.67, wantTotal: 3},
		{name: "all fives", ratings: []int{5, 5, 5, 5}, wantAverage: 5, wantTotal: 4},
		{name: "mixed extremes", ratings: []int{1, 5}, wantAverage: 3, wantTotal: 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			summary := aggregateRatings(tc.ratings)
			if summary.AverageRating != tc.wantAverage {
				t.Fatalf("average = %v, want %v", summary.AverageRating, tc.wantAverage)
			}
			if summary.TotalReviews != tc.wantTotal {
				t.Fatalf("total = %d, want %d", summary.TotalReviews, tc.wantTotal)
			}
		})
	}
}
