package models

import (
	"errors"
	"testing"
	"time"
)

func TestBookingValidateDates(t *testing.T) {
	start := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	valid := Booking{StartDate: start, EndDate: start.Add(4 * time.Hour)}
	if err := valid.ValidateDates(); err != nil {
		t.Errorf("expected valid dates, got %v", err)
	}

	inverted := Booking{StartDate: start, EndDate: start.Add(-time.Hour)}
	if err := inverted.ValidateDates(); !errors.Is(err, ErrBookingDates) {
		t.Errorf("expected ErrBookingDates for inverted range, got %v", err)
	}

	equal := Booking{StartDate: start, EndDate: start}
	if err := equal.ValidateDates(); !errors.Is(err, ErrBookingDates) {
		t.Errorf("expected ErrBookingDates for zero-length range, got %v", err)
	}
}

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		payment  string
		want     bool
	}{
		{"pending", "confirmed", "paid", true},
		{"pending", "confirmed", "pending", true},
		{"pending", "cancelled", "pending", true},
		{"confirmed", "cancelled", "paid", true},
		{"cancelled", "pending", "pending", false},
		{"cancelled", "confirmed", "paid", false},
		{"confirmed", "pending", "paid", false},
		// a failed payment blocks confirmation
		{"pending", "confirmed", "failed", false},
	}

	for _, tc := range cases {
		if got := CanTransitionBookingStatus(tc.from, tc.to, tc.payment); got != tc.want {
			t.Errorf("CanTransitionBookingStatus(%q, %q, %q) = %v, want %v",
				tc.from, tc.to, tc.payment, got, tc.want)
		}
	}
}

func TestPaymentStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{"pending", "paid", true},
		{"pending", "failed", true},
		{"paid", "refunded", true},
		{"paid", "pending", false},
		{"failed", "paid", false},
		{"refunded", "paid", false},
	}

	for _, tc := range cases {
		if got := CanTransitionPaymentStatus(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransitionPaymentStatus(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
