package routes

import (
	"barquea-server/services"
	"barquea-server/storage"
	"strconv"
	"strings"

	"github.com/kataras/iris/v12"
)

// parseBoatFilters reads the optional search filters from the query string.
// Unparseable numeric values are ignored rather than rejected.
func parseBoatFilters(ctx iris.Context) services.BoatFilters {
	filters := services.BoatFilters{
		City:     strings.TrimSpace(ctx.URLParam("city")),
		Country:  strings.TrimSpace(ctx.URLParam("country")),
		BoatType: strings.TrimSpace(ctx.URLParam("type")),
	}

	if v, err := ctx.URLParamFloat64("minPrice"); err == nil {
		filters.MinPrice = &v
	}
	if v, err := ctx.URLParamFloat64("maxPrice"); err == nil {
		filters.MaxPrice = &v
	}
	if v, err := ctx.URLParamInt("minCapacity"); err == nil {
		filters.MinCapacity = &v
	}
	if v, err := ctx.URLParamInt("maxCapacity"); err == nil {
		filters.MaxCapacity = &v
	}
	if raw := strings.TrimSpace(ctx.URLParam("amenities")); raw != "" {
		for _, a := range strings.Split(raw, ",") {
			if a = strings.TrimSpace(a); a != "" {
				filters.Amenities = append(filters.Amenities, a)
			}
		}
	}
	if v, err := ctx.URLParamFloat64("minRating"); err == nil {
		filters.MinRating = &v
	}
	if raw := ctx.URLParam("isAvailable"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filters.IsAvailable = &v
		}
	}

	lat, latErr := ctx.URLParamFloat64("lat")
	lng, lngErr := ctx.URLParamFloat64("lng")
	radius, radiusErr := ctx.URLParamFloat64("radius")
	if latErr == nil && lngErr == nil && radiusErr == nil && radius > 0 {
		filters.Latitude = &lat
		filters.Longitude = &lng
		filters.RadiusKm = radius
	}

	return filters
}

// SearchBoats handles boat search with multiple filters
// GET /api/boats/search?city=&country=&type=&minPrice=&maxPrice=&minCapacity=&maxCapacity=&amenities=&minRating=&isAvailable=&lat=&lng=&radius=&sort=&order=&page=&limit=
func SearchBoats(ctx iris.Context) {
	filters := parseBoatFilters(ctx)
	sort := services.BoatSort{
		Field:     strings.TrimSpace(ctx.URLParam("sort")),
		Direction: strings.TrimSpace(ctx.URLParam("order")),
	}
	page := ctx.URLParamIntDefault("page", 1)
	limit := ctx.URLParamIntDefault("limit", 20)
	if limit > 100 {
		limit = 100
	}

	svc := services.NewBoatService(storage.DB)
	result, err := svc.SearchBoats(filters, sort, page, limit)
	if err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"success": false, "error": "Failed to search boats"})
		return
	}

	ctx.JSON(iris.Map{
		"success":    true,
		"data":       result.Data,
		"total":      result.Total,
		"page":       result.Page,
		"limit":      result.Limit,
		"totalPages": result.TotalPages,
	})
}

func listResponse(ctx iris.Context, boats interface{}, err error) {
	if err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"success": false, "error": "Failed to load boats"})
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": boats})
}

// GET /api/boats/popular?limit=
func GetPopularBoats(ctx iris.Context) {
	limit := ctx.URLParamIntDefault("limit", 10)
	svc := services.NewBoatService(storage.DB)
	boats, err := svc.GetPopularBoats(limit)
	listResponse(ctx, boats, err)
}

// GET /api/boats/recent?limit=
func GetRecentBoats(ctx iris.Context) {
	limit := ctx.URLParamIntDefault("limit", 10)
	svc := services.NewBoatService(storage.DB)
	boats, err := svc.GetRecentBoats(limit)
	listResponse(ctx, boats, err)
}

// GET /api/boats/top-rated?limit=
func GetTopRatedBoats(ctx iris.Context) {
	limit := ctx.URLParamIntDefault("limit", 10)
	svc := services.NewBoatService(storage.DB)
	boats, err := svc.GetTopRatedBoats(limit)
	listResponse(ctx, boats, err)
}

// GET /api/boats/by-city/{city}?limit=
func GetBoatsByCity(ctx iris.Context) {
	city := ctx.Params().Get("city")
	limit := ctx.URLParamIntDefault("limit", 10)
	svc := services.NewBoatService(storage.DB)
	boats, err := svc.GetBoatsByCity(city, limit)
	listResponse(ctx, boats, err)
}

// GET /api/boats/by-type/{type}?limit=
func GetBoatsByType(ctx iris.Context) {
	boatType := ctx.Params().Get("type")
	limit := ctx.URLParamIntDefault("limit", 10)
	svc := services.NewBoatService(storage.DB)
	boats, err := svc.GetBoatsByType(boatType, limit)
	listResponse(ctx, boats, err)
}

// GET /api/boats/price-range?min=&max=&limit=
func GetBoatsByPriceRange(ctx iris.Context) {
	min, _ := ctx.URLParamFloat64("min")
	max, maxErr := ctx.URLParamFloat64("max")
	if maxErr != nil || max <= 0 {
		max = 1e9
	}
	limit := ctx.URLParamIntDefault("limit", 10)
	svc := services.NewBoatService(storage.DB)
	boats, err := svc.GetBoatsByPriceRange(min, max, limit)
	listResponse(ctx, boats, err)
}

// GET /api/boats/stats
func GetBoatStats(ctx iris.Context) {
	svc := services.NewBoatService(storage.DB)
	stats, err := svc.GetBoatStats()
	if err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"success": false, "error": "Failed to compute stats"})
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": stats})
}
