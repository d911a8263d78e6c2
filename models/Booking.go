package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Booking reserves a boat for a guest over a date range.
// Status and PaymentStatus are independent state axes.
type Booking struct {
	gorm.Model
	UserID          uint      `json:"userID" gorm:"not null;index"`
	BoatID          uint      `json:"boatID" gorm:"not null;index"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	TotalPrice      float64   `json:"totalPrice"`
	ServiceFee      float64   `json:"serviceFee"`
	FinalPrice      float64   `json:"finalPrice"`
	Status          string    `json:"status" gorm:"type:varchar(20);default:'pending';index"`        // pending, confirmed, cancelled
	PaymentStatus   string    `json:"paymentStatus" gorm:"type:varchar(20);default:'pending';index"` // pending, paid, failed, refunded
	GuestCount      int       `json:"guestCount"`
	SpecialRequests string    `json:"specialRequests" gorm:"type:text"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Boat *Boat `json:"boat,omitempty" gorm:"foreignKey:BoatID"`
}

var (
	ErrBookingDates      = errors.New("booking end date must be after start date")
	ErrBookingTransition = errors.New("booking status transition not allowed")
	ErrPaymentTransition = errors.New("payment status transition not allowed")
)

// ValidateDates enforces date ordering at the application level; the schema
// itself does not guard it.
func (b *Booking) ValidateDates() error {
	if !b.EndDate.After(b.StartDate) {
		return ErrBookingDates
	}
	return nil
}

var bookingStatusTransitions = map[string][]string{
	"pending":   {"confirmed", "cancelled"},
	"confirmed": {"cancelled"},
	// cancelled is terminal
}

var paymentStatusTransitions = map[string][]string{
	"pending": {"paid", "failed"},
	"paid":    {"refunded"},
}

// CanTransitionBookingStatus reports whether a booking may move between the
// given statuses. Confirmation is additionally refused while the payment has
// failed; the data layer does not enforce this coupling on its own.
func CanTransitionBookingStatus(from, to, paymentStatus string) bool {
	if to == "confirmed" && paymentStatus == "failed" {
		return false
	}
	for _, next := range bookingStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanTransitionPaymentStatus reports whether the payment axis may move
// between the given states.
func CanTransitionPaymentStatus(from, to string) bool {
	for _, next := range paymentStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
