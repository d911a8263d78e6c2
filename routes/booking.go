package routes

import (
	"barquea-server/models"
	"barquea-server/storage"
	"barquea-server/utils"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
)

type CreateBookingInput struct {
	BoatID          uint      `json:"boatID" validate:"required"`
	StartDate       time.Time `json:"startDate" validate:"required"`
	EndDate         time.Time `json:"endDate" validate:"required"`
	GuestCount      int       `json:"guestCount" validate:"required,min=1"`
	SpecialRequests string    `json:"specialRequests" validate:"max=2000"`
}

const bookingServiceFeeRate = 0.10

func CreateBooking(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CreateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var boat models.Boat
	if err := storage.DB.First(&boat, input.BoatID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Boat not found", ctx)
		return
	}

	if boat.IsAvailable != nil && !*boat.IsAvailable {
		utils.CreateError(iris.StatusConflict, "Booking Error", "Boat is not available", ctx)
		return
	}
	if input.GuestCount > boat.Capacity {
		utils.CreateError(iris.StatusBadRequest, "Booking Error", "Guest count exceeds boat capacity", ctx)
		return
	}

	hours := input.EndDate.Sub(input.StartDate).Hours()
	total := boat.PricePerHour * hours
	if boat.PricingType == "daily" && boat.PricePerDay > 0 {
		days := hours / 24
		if days < 1 {
			days = 1
		}
		total = boat.PricePerDay * days
	}
	fee := total * bookingServiceFeeRate

	booking := models.Booking{
		UserID:          claims.ID,
		BoatID:          boat.ID,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		TotalPrice:      total,
		ServiceFee:      fee,
		FinalPrice:      total + fee,
		Status:          "pending",
		PaymentStatus:   "pending",
		GuestCount:      input.GuestCount,
		SpecialRequests: input.SpecialRequests,
	}

	// Date ordering is an application invariant; the schema does not guard it
	if err := booking.ValidateDates(); err != nil {
		utils.CreateError(iris.StatusBadRequest, "Booking Error", err.Error(), ctx)
		return
	}

	if err := storage.DB.Create(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	now := time.Now()
	storage.DB.Model(&boat).Updates(map[string]interface{}{
		"booking_count":  gorm.Expr("booking_count + 1"),
		"last_booked_at": now,
	})

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "booking": booking})
}

// GetUserBookings lists the authenticated user's bookings.
func GetUserBookings(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var bookings []models.Booking
	if err := storage.DB.Preload("Boat").
		Where("user_id = ?", claims.ID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": bookings})
}

// GetHostBookings lists bookings for all boats owned by the caller.
func GetHostBookings(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var bookings []models.Booking
	if err := storage.DB.Preload("Boat").Preload("User").
		Joins("JOIN boats ON boats.id = bookings.boat_id").
		Where("boats.host_id = ?", claims.ID).
		Order("bookings.created_at DESC").
		Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": bookings})
}

type bookingStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

// UpdateBookingStatus transitions a booking between lifecycle states.
// Hosts may act on bookings of their own boats; admins on any.
func UpdateBookingStatus(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid booking ID", ctx)
		return
	}

	var input bookingStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var booking models.Booking
	if err := storage.DB.Preload("Boat").First(&booking, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	isAdmin := claims.Role == "admin" || claims.Role == "super_admin"
	isOwner := booking.Boat != nil && booking.Boat.HostID == claims.ID
	if !isAdmin && !isOwner {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	if !models.CanTransitionBookingStatus(booking.Status, input.Status, booking.PaymentStatus) {
		utils.CreateError(iris.StatusConflict, "Booking Error",
			"Cannot move booking from "+booking.Status+" to "+input.Status, ctx)
		return
	}

	before := booking
	booking.Status = input.Status
	if err := storage.DB.Save(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if isAdmin {
		utils.Audit(ctx, "booking.status_update", "booking", booking.ID, before, booking)
	}

	ctx.JSON(iris.Map{"success": true, "booking": booking})
}

type paymentStatusInput struct {
	PaymentStatus string `json:"paymentStatus" validate:"required,oneof=pending paid failed refunded"`
}

// UpdatePaymentStatus mutates the independent payment axis. In production
// this is driven by the payment webhook; here it is admin-only.
func UpdatePaymentStatus(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid booking ID", ctx)
		return
	}

	var input paymentStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var booking models.Booking
	if err := storage.DB.First(&booking, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if !models.CanTransitionPaymentStatus(booking.PaymentStatus, input.PaymentStatus) {
		utils.CreateError(iris.StatusConflict, "Booking Error",
			"Cannot move payment from "+booking.PaymentStatus+" to "+input.PaymentStatus, ctx)
		return
	}

	before := booking
	booking.PaymentStatus = input.PaymentStatus
	if err := storage.DB.Save(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "booking.payment_update", "booking", booking.ID, before, booking)
	ctx.JSON(iris.Map{"success": true, "booking": booking})
}

// CancelBooking lets the guest cancel their own booking.
func CancelBooking(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid booking ID", ctx)
		return
	}

	var booking models.Booking
	if err := storage.DB.First(&booking, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if booking.UserID != claims.ID {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	if !models.CanTransitionBookingStatus(booking.Status, "cancelled", booking.PaymentStatus) {
		utils.CreateError(iris.StatusConflict, "Booking Error", "Booking is already cancelled", ctx)
		return
	}

	booking.Status = "cancelled"
	if err := storage.DB.Save(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "booking": booking})
}
