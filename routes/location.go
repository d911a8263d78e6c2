package routes

import (
	"barquea-server/models"
	"barquea-server/storage"
	"barquea-server/utils"

	"github.com/kataras/iris/v12"
)

// Location taxonomy CRUD used by the search surface and the admin panel.
// GET lists, POST creates, DELETE ?id= removes.

func ListCountries(ctx iris.Context) {
	var countries []models.Country
	if err := storage.DB.Order("name ASC").Find(&countries).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"success": false, "error": "Failed to load countries"})
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": countries})
}

type createCountryInput struct {
	Name string `json:"name" validate:"required,max=256"`
	Code string `json:"code" validate:"max=2"`
}

func CreateCountry(ctx iris.Context) {
	var input createCountryInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	country := models.Country{Name: input.Name, Code: input.Code}
	if err := storage.DB.Create(&country).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"success": false, "error": "Failed to create country"})
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": country})
}

func DeleteCountry(ctx iris.Context) {
	deleteByQueryID(ctx, &models.Country{})
}

func ListCities(ctx iris.Context) {
	var cities []models.City
	query := storage.DB.Preload("Country").Order("name ASC")
	if countryID, err := ctx.URLParamInt("countryId"); err == nil && countryID > 0 {
		query = query.Where("country_id = ?", countryID)
	}
	if err := query.Find(&cities).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"success": false, "error": "Failed to load cities"})
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": cities})
}

type createCityInput struct {
	Name      string `json:"name" validate:"required,max=256"`
	CountryID uint   `json:"countryID" validate:"required"`
}

func CreateCity(ctx iris.Context) {
	var input createCityInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var country models.Country
	if err := storage.DB.First(&country, input.CountryID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Country not found", ctx)
		return
	}

	city := models.City{Name: input.Name, CountryID: input.CountryID}
	if err := storage.DB.Create(&city).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"success": false, "error": "Failed to create city"})
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": city})
}

func DeleteCity(ctx iris.Context) {
	deleteByQueryID(ctx, &models.City{})
}

func ListPorts(ctx iris.Context) {
	var ports []models.Port
	query := storage.DB.Preload("City").Order("name ASC")
	if cityID, err := ctx.URLParamInt("cityId"); err == nil && cityID > 0 {
		query = query.Where("city_id = ?", cityID)
	}
	if err := query.Find(&ports).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"success": false, "error": "Failed to load ports"})
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": ports})
}

type createPortInput struct {
	Name   string  `json:"name" validate:"required,max=256"`
	CityID uint    `json:"cityID" validate:"required"`
	Lat    float64 `json:"lat" validate:"min=-90,max=90"`
	Lng    float64 `json:"lng" validate:"min=-180,max=180"`
}

func CreatePort(ctx iris.Context) {
	var input createPortInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var city models.City
	if err := storage.DB.First(&city, input.CityID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "City not found", ctx)
		return
	}

	port := models.Port{Name: input.Name, CityID: input.CityID, Lat: input.Lat, Lng: input.Lng}
	if err := storage.DB.Create(&port).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"success": false, "error": "Failed to create port"})
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": port})
}

func DeletePort(ctx iris.Context) {
	deleteByQueryID(ctx, &models.Port{})
}

func deleteByQueryID(ctx iris.Context, model interface{}) {
	id, err := ctx.URLParamInt("id")
	if err != nil || id <= 0 {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "id query parameter is required", ctx)
		return
	}

	res := storage.DB.Delete(model, id)
	if res.Error != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"success": false, "error": "Failed to delete"})
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true})
}
