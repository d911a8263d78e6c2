package services

import (
	"barquea-server/models"
	"encoding/json"
	"math"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BoatFilters are conjunctive: every supplied predicate must hold.
// Nil pointer fields mean "not filtered".
type BoatFilters struct {
	City        string
	Country     string
	BoatType    string
	MinPrice    *float64
	MaxPrice    *float64
	MinCapacity *int
	MaxCapacity *int
	Amenities   []string
	MinRating   *float64
	IsAvailable *bool
	Latitude    *float64
	Longitude   *float64
	RadiusKm    float64
}

type BoatSort struct {
	Field     string // pricePerHour, rating, createdAt, bookingCount
	Direction string // asc, desc
}

// BoatPage is the uniform paginated envelope returned by SearchBoats.
type BoatPage struct {
	Data       []models.Boat `json:"data"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
}

// BoatService translates structured search criteria into database queries.
type BoatService struct {
	db *gorm.DB
}

func NewBoatService(db *gorm.DB) *BoatService {
	return &BoatService{db: db}
}

const kmPerDegreeLat = 111.0

// boundingBox derives a lat/lng box from a center point and radius using the
// flat-earth approximation (1° lat ≈ 111 km, 1° lng ≈ 111·cos(lat) km).
// Distorted near the poles; acceptable for regional-scale search only.
func boundingBox(lat, lng, radiusKm float64) (minLat, maxLat, minLng, maxLng float64) {
	latDelta := radiusKm / kmPerDegreeLat
	lngDelta := radiusKm / (kmPerDegreeLat * math.Cos(lat*math.Pi/180))
	lngDelta = math.Abs(lngDelta)
	return lat - latDelta, lat + latDelta, lng - lngDelta, lng + lngDelta
}

var sortColumns = map[string]string{
	"pricePerHour": "price_per_hour",
	"rating":       "rating",
	"createdAt":    "created_at",
	"bookingCount": "booking_count",
}

// orderClause maps an API sort to a SQL order clause, falling back to newest
// first for unknown fields. Ties are left to storage order.
func orderClause(sort BoatSort) string {
	column, ok := sortColumns[sort.Field]
	if !ok {
		return "created_at DESC"
	}
	direction := "ASC"
	if strings.EqualFold(sort.Direction, "desc") {
		direction = "DESC"
	}
	return column + " " + direction
}

// totalPages is ceil(total/limit) for limit > 0.
func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func (s *BoatService) applyFilters(q *gorm.DB, filters BoatFilters) *gorm.DB {
	if city := strings.TrimSpace(filters.City); city != "" {
		q = q.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(city)+"%")
	}
	if country := strings.TrimSpace(filters.Country); country != "" {
		q = q.Where("LOWER(country) LIKE ?", "%"+strings.ToLower(country)+"%")
	}
	if filters.BoatType != "" {
		q = q.Where("boat_type = ?", filters.BoatType)
	}
	if filters.MinPrice != nil {
		q = q.Where("price_per_hour >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		q = q.Where("price_per_hour <= ?", *filters.MaxPrice)
	}
	if filters.MinCapacity != nil {
		q = q.Where("capacity >= ?", *filters.MinCapacity)
	}
	if filters.MaxCapacity != nil {
		q = q.Where("capacity <= ?", *filters.MaxCapacity)
	}
	if len(filters.Amenities) > 0 {
		// jsonb containment: the boat's amenity set must include ALL listed
		if encoded, err := json.Marshal(filters.Amenities); err == nil {
			q = q.Where("amenities @> ?", datatypes.JSON(encoded))
		}
	}
	if filters.MinRating != nil {
		q = q.Where("rating >= ?", *filters.MinRating)
	}
	if filters.IsAvailable != nil {
		q = q.Where("is_available = ?", *filters.IsAvailable)
	}
	if filters.Latitude != nil && filters.Longitude != nil && filters.RadiusKm > 0 {
		minLat, maxLat, minLng, maxLng := boundingBox(*filters.Latitude, *filters.Longitude, filters.RadiusKm)
		q = q.Where("lat BETWEEN ? AND ?", minLat, maxLat).
			Where("lng BETWEEN ? AND ?", minLng, maxLng)
	}
	return q
}

// SearchBoats applies the filters, sort and 1-indexed pagination and returns
// the page envelope. Pages past the end yield empty data with correct totals.
// Database failures propagate to the caller; no retry, no partial results.
func (s *BoatService) SearchBoats(filters BoatFilters, sort BoatSort, page, limit int) (*BoatPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	q := s.applyFilters(s.db.Model(&models.Boat{}), filters)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var boats []models.Boat
	if err := q.Order(orderClause(sort)).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&boats).Error; err != nil {
		return nil, err
	}

	return &BoatPage{
		Data:       boats,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// listBoats runs a fixed-sort single-page query; no total count is computed.
func (s *BoatService) listBoats(filters BoatFilters, sort BoatSort, limit int) ([]models.Boat, error) {
	if limit <= 0 {
		limit = 10
	}
	var boats []models.Boat
	q := s.applyFilters(s.db.Model(&models.Boat{}), filters)
	if err := q.Order(orderClause(sort)).Limit(limit).Find(&boats).Error; err != nil {
		return nil, err
	}
	return boats, nil
}

func (s *BoatService) GetPopularBoats(limit int) ([]models.Boat, error) {
	return s.listBoats(BoatFilters{}, BoatSort{Field: "bookingCount", Direction: "desc"}, limit)
}

func (s *BoatService) GetRecentBoats(limit int) ([]models.Boat, error) {
	return s.listBoats(BoatFilters{}, BoatSort{Field: "createdAt", Direction: "desc"}, limit)
}

func (s *BoatService) GetTopRatedBoats(limit int) ([]models.Boat, error) {
	return s.listBoats(BoatFilters{}, BoatSort{Field: "rating", Direction: "desc"}, limit)
}

func (s *BoatService) GetBoatsByCity(city string, limit int) ([]models.Boat, error) {
	return s.listBoats(BoatFilters{City: city}, BoatSort{Field: "rating", Direction: "desc"}, limit)
}

func (s *BoatService) GetBoatsByType(boatType string, limit int) ([]models.Boat, error) {
	return s.listBoats(BoatFilters{BoatType: boatType}, BoatSort{Field: "rating", Direction: "desc"}, limit)
}

func (s *BoatService) GetBoatsByPriceRange(minPrice, maxPrice float64, limit int) ([]models.Boat, error) {
	return s.listBoats(
		BoatFilters{MinPrice: &minPrice, MaxPrice: &maxPrice},
		BoatSort{Field: "pricePerHour", Direction: "asc"},
		limit,
	)
}

type BoatStats struct {
	TotalBoats     int64            `json:"totalBoats"`
	AvailableBoats int64            `json:"availableBoats"`
	AverageRating  float64          `json:"averageRating"`
	TotalBookings  int64            `json:"totalBookings"`
	ByType         map[string]int64 `json:"byType"`
	ByCity         map[string]int64 `json:"byCity"`
}

// GetBoatStats scans the available-listing subset on every call; nothing is
// maintained incrementally.
func (s *BoatService) GetBoatStats() (*BoatStats, error) {
	stats := &BoatStats{
		ByType: map[string]int64{},
		ByCity: map[string]int64{},
	}

	if err := s.db.Model(&models.Boat{}).Count(&stats.TotalBoats).Error; err != nil {
		return nil, err
	}

	available := s.db.Model(&models.Boat{}).Where("is_available = ?", true)
	if err := available.Count(&stats.AvailableBoats).Error; err != nil {
		return nil, err
	}

	var agg struct {
		AvgRating     float64
		TotalBookings int64
	}
	if err := s.db.Model(&models.Boat{}).
		Where("is_available = ?", true).
		Select("COALESCE(AVG(rating), 0) AS avg_rating, COALESCE(SUM(booking_count), 0) AS total_bookings").
		Scan(&agg).Error; err != nil {
		return nil, err
	}
	stats.AverageRating = agg.AvgRating
	stats.TotalBookings = agg.TotalBookings

	type bucket struct {
		Key string
		N   int64
	}

	var byType []bucket
	if err := s.db.Model(&models.Boat{}).
		Where("is_available = ?", true).
		Select("boat_type AS key, COUNT(*) AS n").
		Group("boat_type").
		Scan(&byType).Error; err != nil {
		return nil, err
	}
	for _, b := range byType {
		stats.ByType[b.Key] = b.N
	}

	var byCity []bucket
	if err := s.db.Model(&models.Boat{}).
		Where("is_available = ?", true).
		Select("city AS key, COUNT(*) AS n").
		Group("city").
		Scan(&byCity).Error; err != nil {
		return nil, err
	}
	for _, b := range byCity {
		stats.ByCity[b.Key] = b.N
	}

	return stats, nil
}
