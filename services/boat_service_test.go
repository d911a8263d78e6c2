package services

import (
	"math"
	"strings"
	"testing"

	"barquea-server/models"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newDryRunDB opens a postgres-dialect session that builds SQL without ever
// touching a server, so statement construction can be asserted directly.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("open dry-run session: %v", err)
	}
	return db
}

func TestBoundingBoxContainsCenter(t *testing.T) {
	cases := []struct {
		name     string
		lat, lng float64
		radius   float64
	}{
		{"equator", 0, 0, 10},
		{"mediterranean", 43.29, 5.37, 25},
		{"southern hemisphere", -33.86, 151.2, 5},
		{"tiny radius", 44.4, 8.9, 0.1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			minLat, maxLat, minLng, maxLng := boundingBox(tc.lat, tc.lng, tc.radius)
			if tc.lat < minLat || tc.lat > maxLat {
				t.Errorf("center lat %f outside [%f, %f]", tc.lat, minLat, maxLat)
			}
			if tc.lng < minLng || tc.lng > maxLng {
				t.Errorf("center lng %f outside [%f, %f]", tc.lng, minLng, maxLng)
			}
		})
	}
}

func TestBoundingBoxLatitudeSpan(t *testing.T) {
	// 111 km of radius is one degree of latitude under the approximation
	minLat, maxLat, _, _ := boundingBox(10, 20, 111)
	if math.Abs((maxLat-minLat)-2) > 1e-9 {
		t.Errorf("expected 2 degree lat span, got %f", maxLat-minLat)
	}
}

func TestBoundingBoxWidensWithLatitude(t *testing.T) {
	// The longitude span must grow as cos(lat) shrinks
	_, _, minLng0, maxLng0 := boundingBox(0, 0, 50)
	_, _, minLng60, maxLng60 := boundingBox(60, 0, 50)

	span0 := maxLng0 - minLng0
	span60 := maxLng60 - minLng60
	if span60 <= span0 {
		t.Errorf("expected wider lng span at 60° (%f) than at the equator (%f)", span60, span0)
	}
	// cos(60°) = 0.5, so the span should roughly double
	if math.Abs(span60/span0-2) > 1e-6 {
		t.Errorf("expected lng span ratio 2, got %f", span60/span0)
	}
}

func TestOrderClause(t *testing.T) {
	cases := []struct {
		sort BoatSort
		want string
	}{
		{BoatSort{Field: "pricePerHour", Direction: "asc"}, "price_per_hour ASC"},
		{BoatSort{Field: "pricePerHour", Direction: "desc"}, "price_per_hour DESC"},
		{BoatSort{Field: "rating", Direction: "DESC"}, "rating DESC"},
		{BoatSort{Field: "bookingCount", Direction: ""}, "booking_count ASC"},
		{BoatSort{Field: "createdAt", Direction: "desc"}, "created_at DESC"},
		// unknown fields must never reach the SQL string
		{BoatSort{Field: "password; DROP TABLE boats", Direction: "asc"}, "created_at DESC"},
		{BoatSort{Field: "", Direction: ""}, "created_at DESC"},
	}

	for _, tc := range cases {
		if got := orderClause(tc.sort); got != tc.want {
			t.Errorf("orderClause(%+v) = %q, want %q", tc.sort, got, tc.want)
		}
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 7, 15},
		{5, 0, 0},
	}

	for _, tc := range cases {
		if got := totalPages(tc.total, tc.limit); got != tc.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}

func TestSearchFiltersAreConjunctive(t *testing.T) {
	db := newDryRunDB(t)
	svc := NewBoatService(db)

	minPrice, maxPrice := 50.0, 400.0
	var boats []models.Boat
	stmt := svc.applyFilters(db.Model(&models.Boat{}), BoatFilters{
		City:      "Genoa",
		BoatType:  "sailboat",
		MinPrice:  &minPrice,
		MaxPrice:  &maxPrice,
		Amenities: []string{"gps", "life jackets"},
	}).Find(&boats).Statement

	sql := stmt.SQL.String()
	for _, predicate := range []string{
		"LOWER(city) LIKE",
		"boat_type =",
		"price_per_hour >=",
		"price_per_hour <=",
		"amenities @>",
	} {
		if !strings.Contains(sql, predicate) {
			t.Errorf("expected %q in the generated query, got %q", predicate, sql)
		}
	}
	if strings.Contains(sql, " OR ") {
		t.Errorf("supplied filters must combine with AND only, got %q", sql)
	}

	// The amenity predicate must bind the full list as one jsonb document,
	// so the stored set has to contain every requested amenity.
	foundContainment := false
	for _, v := range stmt.Vars {
		if doc, ok := v.(datatypes.JSON); ok && string(doc) == `["gps","life jackets"]` {
			foundContainment = true
		}
	}
	if !foundContainment {
		t.Errorf("expected jsonb containment var for the amenity list, got %v", stmt.Vars)
	}
}

func TestSearchGeoFilterBindsBoundingBox(t *testing.T) {
	db := newDryRunDB(t)
	svc := NewBoatService(db)

	lat, lng := 44.4, 8.9
	var boats []models.Boat
	stmt := svc.applyFilters(db.Model(&models.Boat{}), BoatFilters{
		Latitude:  &lat,
		Longitude: &lng,
		RadiusKm:  25,
	}).Find(&boats).Statement

	sql := stmt.SQL.String()
	if !strings.Contains(sql, "lat BETWEEN") || !strings.Contains(sql, "lng BETWEEN") {
		t.Fatalf("expected lat/lng range predicates, got %q", sql)
	}

	minLat, maxLat, _, _ := boundingBox(lat, lng, 25)
	hasMin, hasMax := false, false
	for _, v := range stmt.Vars {
		if f, ok := v.(float64); ok {
			if f == minLat {
				hasMin = true
			}
			if f == maxLat {
				hasMax = true
			}
		}
	}
	if !hasMin || !hasMax {
		t.Errorf("expected bounding-box latitudes [%f, %f] among vars %v", minLat, maxLat, stmt.Vars)
	}
}

func TestSearchPageWindowClause(t *testing.T) {
	db := newDryRunDB(t)
	svc := NewBoatService(db)

	// page 3 at 20 per page must skip the first 40 rows
	var boats []models.Boat
	stmt := svc.applyFilters(db.Model(&models.Boat{}), BoatFilters{}).
		Order(orderClause(BoatSort{Field: "createdAt", Direction: "desc"})).
		Offset((3 - 1) * 20).
		Limit(20).
		Find(&boats).Statement

	sql := stmt.SQL.String()
	if !strings.Contains(sql, "LIMIT") || !strings.Contains(sql, "OFFSET") {
		t.Fatalf("expected a limit/offset window, got %q", sql)
	}
	if !strings.Contains(sql, "created_at DESC") {
		t.Errorf("expected the sort clause in the query, got %q", sql)
	}

	hasLimit, hasOffset := false, false
	for _, v := range stmt.Vars {
		if n, ok := v.(int); ok {
			if n == 20 {
				hasLimit = true
			}
			if n == 40 {
				hasOffset = true
			}
		}
	}
	if !hasLimit || !hasOffset {
		t.Errorf("expected limit 20 and offset 40 among vars %v", stmt.Vars)
	}
}

func TestSearchPastLastPageIsEmpty(t *testing.T) {
	svc := NewBoatService(newDryRunDB(t))

	page, err := svc.SearchBoats(BoatFilters{BoatType: "yacht"}, BoatSort{Field: "rating", Direction: "desc"}, 42, 20)
	if err != nil {
		t.Fatalf("SearchBoats: %v", err)
	}
	if len(page.Data) != 0 {
		t.Errorf("a page past the end must carry no rows, got %d", len(page.Data))
	}
	if page.Page != 42 || page.Limit != 20 {
		t.Errorf("requested page metadata must be echoed back, got page=%d limit=%d", page.Page, page.Limit)
	}
	if page.TotalPages != totalPages(page.Total, page.Limit) {
		t.Errorf("totalPages %d inconsistent with total=%d limit=%d", page.TotalPages, page.Total, page.Limit)
	}
}
