package domain

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusNew, StatusInReview, true},
		{StatusInReview, StatusInReview, true},
		{StatusNew, StatusClosed, true},
		{StatusInReview, StatusClosed, true},
		{StatusClosed, StatusClosed, true},
		{StatusClosed, StatusInReview, false},
		{StatusClosed, StatusNew, false},
		{StatusInReview, StatusNew, false},
		{StatusNew, Status("archived"), false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
