package routes

import (
	"barquea-server/models"
	"barquea-server/storage"
	"barquea-server/utils"
	"encoding/json"
	"fmt"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/datatypes"
)

type CreateBoatInput struct {
	Name         string   `json:"name" validate:"required,max=256"`
	Description  string   `json:"description" validate:"max=5000"`
	Images       []string `json:"images"`
	AddressLine1 string   `json:"addressLine1" validate:"max=512"`
	City         string   `json:"city" validate:"required,max=256"`
	State        string   `json:"state" validate:"max=256"`
	Country      string   `json:"country" validate:"required,max=256"`
	Lat          float64  `json:"lat" validate:"min=-90,max=90"`
	Lng          float64  `json:"lng" validate:"min=-180,max=180"`
	PricePerHour float64  `json:"pricePerHour" validate:"required,min=0"`
	PricePerDay  float64  `json:"pricePerDay" validate:"min=0"`
	PricingType  string   `json:"pricingType" validate:"omitempty,oneof=hourly daily"`
	Capacity     int      `json:"capacity" validate:"required,min=1"`
	BoatType     string   `json:"boatType" validate:"required"`
	Amenities    []string `json:"amenities"`

	LengthMeters float64 `json:"lengthMeters" validate:"min=0"`
	BeamMeters   float64 `json:"beamMeters" validate:"min=0"`
	DraftMeters  float64 `json:"draftMeters" validate:"min=0"`
	Year         int     `json:"year"`
	Brand        string  `json:"brand" validate:"max=128"`
	Model        string  `json:"model" validate:"max=128"`
	Engine       string  `json:"engine" validate:"max=128"`
	FuelType     string  `json:"fuelType" validate:"max=64"`

	Rules              string `json:"rules" validate:"max=5000"`
	LifeJackets        bool   `json:"lifeJackets"`
	FireExtinguisher   bool   `json:"fireExtinguisher"`
	FirstAidKit        bool   `json:"firstAidKit"`
	Flares             bool   `json:"flares"`
	CancellationPolicy string `json:"cancellationPolicy" validate:"omitempty,oneof=flexible moderate strict"`
	MinRentalHours     int    `json:"minRentalHours" validate:"min=0"`
	MaxRentalHours     int    `json:"maxRentalHours" validate:"min=0"`
}

func CreateBoat(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CreateBoatInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !models.IsValidBoatType(input.BoatType) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			fmt.Sprintf("boatType must be one of %v", models.BoatTypes), ctx)
		return
	}

	var host models.User
	if err := storage.DB.First(&host, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	// Ensure arrays are never null
	amenities := input.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	amenitiesJSON, _ := json.Marshal(amenities)

	images := input.Images
	if images == nil {
		images = []string{}
	}
	imagesJSON, _ := json.Marshal(images)

	available := true
	boat := models.Boat{
		HostID:       host.ID,
		Name:         input.Name,
		Description:  input.Description,
		Images:       datatypes.JSON(imagesJSON),
		AddressLine1: input.AddressLine1,
		City:         input.City,
		State:        input.State,
		Country:      input.Country,
		Lat:          input.Lat,
		Lng:          input.Lng,
		PricePerHour: input.PricePerHour,
		PricePerDay:  input.PricePerDay,
		PricingType:  input.PricingType,
		Capacity:     input.Capacity,
		BoatType:     input.BoatType,
		Amenities:    datatypes.JSON(amenitiesJSON),

		LengthMeters: input.LengthMeters,
		BeamMeters:   input.BeamMeters,
		DraftMeters:  input.DraftMeters,
		Year:         input.Year,
		Brand:        input.Brand,
		ModelName:    input.Model,
		Engine:       input.Engine,
		FuelType:     input.FuelType,

		// Host snapshot cached at creation time
		HostName:         host.FirstName + " " + host.LastName,
		HostRating:       host.HostRating,
		HostResponseTime: host.ResponseTime,

		IsAvailable: &available,

		Rules:              input.Rules,
		LifeJackets:        input.LifeJackets,
		FireExtinguisher:   input.FireExtinguisher,
		FirstAidKit:        input.FirstAidKit,
		Flares:             input.Flares,
		CancellationPolicy: input.CancellationPolicy,
		MinRentalHours:     input.MinRentalHours,
		MaxRentalHours:     input.MaxRentalHours,
	}

	if err := storage.DB.Create(&boat).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "Failed to create boat"})
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(boat)
}

func GetBoat(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid boat ID", ctx)
		return
	}

	var boat models.Boat
	if err := storage.DB.Preload("Host").First(&boat, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(boat)
}

type UpdateBoatInput struct {
	Name         *string  `json:"name" validate:"omitempty,max=256"`
	Description  *string  `json:"description" validate:"omitempty,max=5000"`
	Images       []string `json:"images"`
	PricePerHour *float64 `json:"pricePerHour" validate:"omitempty,min=0"`
	PricePerDay  *float64 `json:"pricePerDay" validate:"omitempty,min=0"`
	Capacity     *int     `json:"capacity" validate:"omitempty,min=1"`
	Amenities    []string `json:"amenities"`
	IsAvailable  *bool    `json:"isAvailable"`
	BlockedDates []string `json:"blockedDates"`
	Rules        *string  `json:"rules" validate:"omitempty,max=5000"`
}

func UpdateBoat(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid boat ID", ctx)
		return
	}

	var boat models.Boat
	if err := storage.DB.First(&boat, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if boat.HostID != claims.ID && claims.Role != "admin" && claims.Role != "super_admin" {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	var input UpdateBoatInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Name != nil {
		boat.Name = *input.Name
	}
	if input.Description != nil {
		boat.Description = *input.Description
	}
	if input.Images != nil {
		imagesJSON, _ := json.Marshal(input.Images)
		boat.Images = datatypes.JSON(imagesJSON)
	}
	if input.PricePerHour != nil {
		boat.PricePerHour = *input.PricePerHour
	}
	if input.PricePerDay != nil {
		boat.PricePerDay = *input.PricePerDay
	}
	if input.Capacity != nil {
		boat.Capacity = *input.Capacity
	}
	if input.Amenities != nil {
		amenitiesJSON, _ := json.Marshal(input.Amenities)
		boat.Amenities = datatypes.JSON(amenitiesJSON)
	}
	if input.IsAvailable != nil {
		boat.IsAvailable = input.IsAvailable
	}
	if input.BlockedDates != nil {
		blockedJSON, _ := json.Marshal(input.BlockedDates)
		boat.BlockedDates = datatypes.JSON(blockedJSON)
	}
	if input.Rules != nil {
		boat.Rules = *input.Rules
	}

	// Refresh the host snapshot while we are writing anyway
	var host models.User
	if err := storage.DB.First(&host, boat.HostID).Error; err == nil {
		boat.HostName = host.FirstName + " " + host.LastName
		boat.HostRating = host.HostRating
		boat.HostResponseTime = host.ResponseTime
	}

	if err := storage.DB.Save(&boat).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(boat)
}

func DeleteBoat(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid boat ID", ctx)
		return
	}

	var boat models.Boat
	if err := storage.DB.First(&boat, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if boat.HostID != claims.ID && claims.Role != "admin" && claims.Role != "super_admin" {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	if err := storage.DB.Delete(&boat).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}

// GetHostBoats lists the authenticated host's own listings.
func GetHostBoats(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var boats []models.Boat
	if err := storage.DB.Where("host_id = ?", claims.ID).Order("created_at DESC").Find(&boats).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": boats})
}
