package routes

import (
	"barquea-server/models"
	"barquea-server/storage"
	"time"

	"github.com/kataras/iris/v12"
)

// GET /admin/stats
func AdminStats(ctx iris.Context) {
	var pendingHostApplications int64
	storage.DB.Model(&models.User{}).Where("host_status = ?", "pending").Count(&pendingHostApplications)
	var pendingBookings int64
	storage.DB.Model(&models.Booking{}).Where("status = ?", "pending").Count(&pendingBookings)
	var totalBoats int64
	storage.DB.Model(&models.Boat{}).Count(&totalBoats)

	since7 := time.Now().AddDate(0, 0, -7)
	since30 := time.Now().AddDate(0, 0, -30)
	var newBookings7, newBookings30 int64
	storage.DB.Model(&models.Booking{}).Where("created_at >= ?", since7).Count(&newBookings7)
	storage.DB.Model(&models.Booking{}).Where("created_at >= ?", since30).Count(&newBookings30)

	ctx.JSON(iris.Map{
		"data": iris.Map{
			"pending_host_applications": pendingHostApplications,
			"pending_bookings":          pendingBookings,
			"total_boats":               totalBoats,
			"new_bookings_7d":           newBookings7,
			"new_bookings_30d":          newBookings30,
		},
		"meta":  iris.Map{},
		"links": iris.Map{},
	})
}

// GET /admin/activity
func AdminActivity(ctx iris.Context) {
	var logs []models.AuditLog
	storage.DB.Order("created_at DESC").Limit(100).Find(&logs)
	ctx.JSON(iris.Map{"data": logs, "meta": iris.Map{}, "links": iris.Map{}})
}
