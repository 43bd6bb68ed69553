package model

import "testing"

func TestOrderStatusValid(t *testing.T) {
	for _, status := range []OrderStatus{StatusPending, StatusShipped, StatusDelivered} {
		if !status.Valid() {
			t.Errorf("%s should be a valid status", status)
		}
	}
	for _, status := range []OrderStatus{"", "pending", "Lost", "Cancelled"} {
		if status.Valid() {
			t.Errorf("%q should not be a valid status", status)
		}
	}
}

func TestCanTransition(t *testing.T) {
	allowed := map[[2]OrderStatus]bool{
		{StatusPending, StatusShipped}:   true,
		{StatusShipped, StatusDelivered}: true,
	}

	statuses := []OrderStatus{StatusPending, StatusShipped, StatusDelivered}
	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]OrderStatus{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}
